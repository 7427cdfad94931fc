package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tccexport "github.com/alnah/go-tccexport"
	"github.com/alnah/go-tccexport/internal/config"
	"github.com/alnah/go-tccexport/internal/fileutil"
	"github.com/alnah/go-tccexport/internal/hints"
	"github.com/alnah/go-tccexport/internal/logging"
	"github.com/alnah/go-tccexport/internal/store"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// loadConfig builds the effective configuration.
// Priority: CLI flags > TCCEXPORT_* env vars > config file > defaults.
func loadConfig(f *commonFlags, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig(env.Getenv)

	cfg := config.DefaultConfig()
	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeCommonFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, envCfg, nil
}

// mergeCommonFlags merges CLI flags into config. CLI values override config values.
func mergeCommonFlags(f *commonFlags, cfg *config.Config) {
	if f.profile != "" {
		cfg.Profile.Name = f.profile
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
}

// newLogger builds the diagnostic logger. Logs go to stderr so stdout stays
// reserved for command output.
func newLogger(cfg *config.Config, env *Environment) *slog.Logger {
	return logging.New(env.Stderr, cfg.Log.Level, cfg.Log.Format)
}

// isProfileFile reports whether a profile value names a YAML file rather
// than a profile.
func isProfileFile(value string) bool {
	ext := strings.ToLower(filepath.Ext(value))
	return fileutil.IsFilePath(value) || ext == ".yaml" || ext == ".yml"
}

// profileOption resolves the configured profile into an exporter option.
// A nil option means the exporter picks its default.
func profileOption(cfg *config.Config) (tccexport.Option, error) {
	value := cfg.Profile.Name
	switch {
	case value == "":
		if cfg.Assets.BasePath != "" {
			return tccexport.WithAssetPath(cfg.Assets.BasePath), nil
		}
		return nil, nil
	case isProfileFile(value):
		data, err := os.ReadFile(value) // #nosec G304 -- user-provided profile path
		if err != nil {
			return nil, fmt.Errorf("reading profile: %w", err)
		}
		p, err := tccexport.ParseProfile(data)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", value, err)
		}
		return tccexport.WithProfile(p), nil
	default:
		return func(e *tccexport.Exporter) {
			tccexport.WithProfileName(value)(e)
			tccexport.WithAssetPath(cfg.Assets.BasePath)(e)
		}, nil
	}
}

// exporterFactory builds exporters for one command run. When no profile is
// configured, a manuscript's Style field selects the profile; exporters are
// cached per style.
type exporterFactory struct {
	cfg    *config.Config
	logger *slog.Logger
	base   []tccexport.Option

	mu    sync.Mutex
	cache map[string]*tccexport.Exporter
}

// newExporterFactory validates the configured profile up front so a bad
// name fails before any file is touched.
func newExporterFactory(cfg *config.Config, logger *slog.Logger, env *Environment, verify bool) (*exporterFactory, error) {
	base := []tccexport.Option{
		tccexport.WithLogger(logger),
		tccexport.WithClock(env.Now),
	}
	if cfg.Filename.Suffix != "" {
		base = append(base, tccexport.WithFilenameSuffix(cfg.Filename.Suffix))
	}
	if verify || cfg.PDF.Verify {
		base = append(base, tccexport.WithPDFVerification())
	}

	f := &exporterFactory{
		cfg:    cfg,
		logger: logger,
		base:   base,
		cache:  make(map[string]*tccexport.Exporter),
	}
	if _, err := f.configured(); err != nil {
		return nil, withProfileHint(err, cfg.Assets.BasePath)
	}
	return f, nil
}

// configured returns the exporter for the configured (or default) profile.
func (f *exporterFactory) configured() (*tccexport.Exporter, error) {
	return f.get("")
}

// forManuscript returns the exporter for m. An explicitly configured
// profile wins; otherwise m.Style is tried, falling back to the default
// when no profile of that name exists.
func (f *exporterFactory) forManuscript(m tccexport.Manuscript) (*tccexport.Exporter, error) {
	style := strings.ToLower(strings.TrimSpace(m.Style))
	if f.cfg.Profile.Name != "" || style == "" {
		return f.configured()
	}

	e, err := f.get(style)
	if errors.Is(err, tccexport.ErrProfileNotFound) {
		f.logger.Warn("unknown manuscript style, using default profile", "style", m.Style, "title", m.Title)
		return f.configured()
	}
	return e, err
}

func (f *exporterFactory) get(style string) (*tccexport.Exporter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e, ok := f.cache[style]; ok {
		return e, nil
	}

	opts := append([]tccexport.Option{}, f.base...)
	if style == "" {
		opt, err := profileOption(f.cfg)
		if err != nil {
			return nil, err
		}
		if opt != nil {
			opts = append(opts, opt)
		}
	} else {
		opts = append(opts, tccexport.WithProfileName(style), tccexport.WithAssetPath(f.cfg.Assets.BasePath))
	}

	e, err := tccexport.NewExporter(opts...)
	if err != nil {
		return nil, err
	}
	f.cache[style] = e
	return e, nil
}

// withProfileHint appends the available profile names to a not-found error.
func withProfileHint(err error, assetPath string) error {
	if !errors.Is(err, tccexport.ErrProfileNotFound) {
		return err
	}
	loader, lerr := tccexport.NewProfileLoader(assetPath)
	if lerr != nil {
		return err
	}
	names, lerr := loader.ListProfiles()
	if lerr != nil {
		return err
	}
	return fmt.Errorf("%w%s", err, hints.ForProfileNotFound(names))
}

// storePath resolves the project store path: flag, then config/env.
func storePath(flagDB string, cfg *config.Config) string {
	if flagDB != "" {
		return flagDB
	}
	return cfg.Store.Path
}

// openStore opens the project store, creating its directory if needed.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w%s", ErrNoStore, hints.ForStore(""))
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
			return nil, fmt.Errorf("%w: %v%s", store.ErrOpen, err, hints.ForStore(path))
		}
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForStore(path))
	}
	return s, nil
}
