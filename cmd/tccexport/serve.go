package main

import (
	"context"
	"errors"
	"fmt"
	"net"

	tccexport "github.com/alnah/go-tccexport"
	"github.com/alnah/go-tccexport/internal/hints"
	"github.com/alnah/go-tccexport/internal/server"
)

// runServe starts the HTTP export server until the context is cancelled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.maxBody != 0 {
		cfg.Server.MaxBodyBytes = flags.maxBody
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg, env)
	factory, err := newExporterFactory(cfg, logger, env, false)
	if err != nil {
		return err
	}
	exporter, err := factory.configured()
	if err != nil {
		return err
	}

	loader, err := tccexport.NewProfileLoader(cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	opts := []server.Option{
		server.WithLogger(logger),
		server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		server.WithProfiles(loader),
	}

	if path := storePath(flags.db, cfg); path != "" {
		s, err := openStore(path)
		if err != nil {
			return err
		}
		defer s.Close()
		opts = append(opts, server.WithProjects(s))
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Listening on %s\n", cfg.Server.Addr)
	}
	err = server.New(exporter, opts...).ListenAndServe(ctx, cfg.Server.Addr)
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "listen" {
		return fmt.Errorf("%w%s", err, hints.ForServerListen(cfg.Server.Addr))
	}
	return err
}
