package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrNoStore            = errors.New("no project store configured")
	ErrReadManuscript     = errors.New("failed to read manuscript file")
	ErrWriteManuscript    = errors.New("failed to write manuscript file")
	ErrReadSource         = errors.New("failed to read import source")
	ErrWriteArtifact      = errors.New("failed to write artifact")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// run dispatches a command and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	warnUnknownEnvVars(env.Stderr, env.Environ())

	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "export":
		err = runExport(ctx, rest, env)
	case "import":
		err = runImport(ctx, rest, env)
	case "project":
		err = runProject(ctx, rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "profiles":
		err = runProfiles(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "tccexport %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		runHelp([]string{cmd}, env)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
