package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-tccexport/internal/fileutil"
	"github.com/alnah/go-tccexport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxProfileLength     = 4096 // profile name or path
	MaxAddrLength        = 256  // "host:port"
	MaxSuffixLength      = 32   // "_TCC"
	MaxBodyBytesCeiling  = 64 << 20
	DefaultMaxBodyBytes  = 8 << 20
	DefaultServerAddress = ":8080"
)

// userConfigDirName is the directory under os.UserConfigDir searched for
// named configs.
const userConfigDirName = "go-tccexport"

// Config holds all configuration for the CLI and the HTTP server.
type Config struct {
	Profile  ProfileConfig  `yaml:"profile"`
	Output   OutputConfig   `yaml:"output"`
	Assets   AssetsConfig   `yaml:"assets"`
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Filename FilenameConfig `yaml:"filename"`
	PDF      PDFConfig      `yaml:"pdf"`
}

// ProfileConfig selects the formatting profile.
type ProfileConfig struct {
	Name string `yaml:"name"` // built-in or custom profile name, or a path to a YAML file
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Formats    []string `yaml:"formats"`    // docx, pdf, md (empty = docx and pdf)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = built-in profiles only
}

// StoreConfig defines the project database.
type StoreConfig struct {
	Path string `yaml:"path"` // SQLite file (empty = no store)
}

// ServerConfig defines the HTTP surface.
type ServerConfig struct {
	Addr         string `yaml:"addr"`         // Listen address (default: ":8080")
	MaxBodyBytes int64  `yaml:"maxBodyBytes"` // Request body limit (default: 8 MiB)
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: info)
	Format string `yaml:"format"` // text, json (default: text)
}

// FilenameConfig defines artifact naming.
type FilenameConfig struct {
	Suffix string `yaml:"suffix"` // Appended to the title stem (default: "_TCC")
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Verify bool `yaml:"verify"` // Re-read rendered PDFs and check the page count
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"profile.name", c.Profile.Name, MaxProfileLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"store.path", c.Store.Path, MaxPathLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"filename.suffix", c.Filename.Suffix, MaxSuffixLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	for i, f := range c.Output.Formats {
		switch strings.ToLower(f) {
		case "docx", "pdf", "md", "markdown":
			// valid
		default:
			return fmt.Errorf("%w: output.formats[%d]: %q (must be docx, pdf or md)", ErrInvalidValue, i, f)
		}
	}

	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case "debug", "info", "warn", "warning", "error":
			// valid
		default:
			return fmt.Errorf("%w: log.level: %q (must be debug, info, warn or error)", ErrInvalidValue, c.Log.Level)
		}
	}
	if c.Log.Format != "" {
		switch strings.ToLower(c.Log.Format) {
		case "text", "json":
			// valid
		default:
			return fmt.Errorf("%w: log.format: %q (must be text or json)", ErrInvalidValue, c.Log.Format)
		}
	}

	if strings.ContainsAny(c.Filename.Suffix, "/\\\x00") {
		return fmt.Errorf("%w: filename.suffix: %q contains a path separator", ErrInvalidValue, c.Filename.Suffix)
	}

	if c.Server.MaxBodyBytes < 0 || c.Server.MaxBodyBytes > MaxBodyBytesCeiling {
		return fmt.Errorf("%w: server.maxBodyBytes: must be between 0 and %d, got %d",
			ErrInvalidValue, MaxBodyBytesCeiling, c.Server.MaxBodyBytes)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Formats: []string{"docx", "pdf"}},
		Server: ServerConfig{Addr: DefaultServerAddress, MaxBodyBytes: DefaultMaxBodyBytes},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Unset fields keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg, yamlutil.MaxSettingsSize); err != nil {
		var pathErr *fs.PathError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.As(err, &pathErr):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// the current directory, then ~/.config/go-tccexport/, each with .yaml then .yml.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
