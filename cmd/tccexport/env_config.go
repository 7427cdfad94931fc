package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-tccexport/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "TCCEXPORT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // TCCEXPORT_CONFIG: config file name or path
	Profile    string // TCCEXPORT_PROFILE: profile name or YAML path
	AssetPath  string // TCCEXPORT_ASSET_PATH: custom profile directory
	OutputDir  string // TCCEXPORT_OUTPUT_DIR: default output directory
	DBPath     string // TCCEXPORT_DB: project store path
	Addr       string // TCCEXPORT_ADDR: server listen address
	LogLevel   string // TCCEXPORT_LOG_LEVEL: debug, info, warn, error
	LogFormat  string // TCCEXPORT_LOG_FORMAT: text, json
	Workers    int    // TCCEXPORT_WORKERS: parallel export workers
}

// knownEnvVars lists valid TCCEXPORT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TCCEXPORT_CONFIG":     true,
	"TCCEXPORT_PROFILE":    true,
	"TCCEXPORT_ASSET_PATH": true,
	"TCCEXPORT_OUTPUT_DIR": true,
	"TCCEXPORT_DB":         true,
	"TCCEXPORT_ADDR":       true,
	"TCCEXPORT_LOG_LEVEL":  true,
	"TCCEXPORT_LOG_FORMAT": true,
	"TCCEXPORT_WORKERS":    true,
	"TCCEXPORT_CONTAINER":  true, // read by doctor only
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("TCCEXPORT_CONFIG"),
		Profile:    getenv("TCCEXPORT_PROFILE"),
		AssetPath:  getenv("TCCEXPORT_ASSET_PATH"),
		OutputDir:  getenv("TCCEXPORT_OUTPUT_DIR"),
		DBPath:     getenv("TCCEXPORT_DB"),
		Addr:       getenv("TCCEXPORT_ADDR"),
		LogLevel:   getenv("TCCEXPORT_LOG_LEVEL"),
		LogFormat:  getenv("TCCEXPORT_LOG_FORMAT"),
	}

	if workers := getenv("TCCEXPORT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes warnings for unrecognized TCCEXPORT_* variables.
// Helps catch typos like TCCEXPORT_PROFIL instead of TCCEXPORT_PROFILE.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Empty fields, and fields still holding their default, take the env value.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeCommonFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	defaults := config.DefaultConfig()

	setIfUnset(&cfg.Profile.Name, env.Profile, "")
	setIfUnset(&cfg.Assets.BasePath, env.AssetPath, "")
	setIfUnset(&cfg.Output.DefaultDir, env.OutputDir, "")
	setIfUnset(&cfg.Store.Path, env.DBPath, "")
	setIfUnset(&cfg.Server.Addr, env.Addr, defaults.Server.Addr)
	setIfUnset(&cfg.Log.Level, env.LogLevel, defaults.Log.Level)
	setIfUnset(&cfg.Log.Format, env.LogFormat, defaults.Log.Format)
}

// setIfUnset assigns value to *field when value is set and *field is empty
// or still equal to its default.
func setIfUnset(field *string, value, def string) {
	if value == "" {
		return
	}
	if *field == "" || *field == def {
		*field = value
	}
}
