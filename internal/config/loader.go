package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = ".lobster-rust.yaml"
	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "LOBSTER_RUST"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a loader that looks for .lobster-rust.yaml and .env in
// rootDir.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader for an explicit config file. Unlike with
// NewLoader, a missing file is an error.
func NewFileLoader(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (LOBSTER_RUST_*)
// 2. Config file
// 3. Default values
func (l *loader) Load() (*Config, error) {
	// Variables already set in the environment win over the .env file.
	if err := godotenv.Load(filepath.Join(l.rootDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., LOBSTER_RUST_MARKERS_TRACE)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnv(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// bindEnv binds the keys that AutomaticEnv cannot discover on Unmarshal.
func bindEnv(v *viper.Viper) {
	v.BindEnv("source_dir")
	v.BindEnv("output")
	v.BindEnv("lib")
	v.BindEnv("only_tagged")
	v.BindEnv("markers.trace")
	v.BindEnv("markers.exclude")
	v.BindEnv("ignore")
	v.BindEnv("cache_size")
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("source_dir", defaults.SourceDir)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("lib", defaults.Lib)
	v.SetDefault("only_tagged", defaults.OnlyTagged)
	v.SetDefault("markers.trace", defaults.Markers.Trace)
	v.SetDefault("markers.exclude", defaults.Markers.Exclude)
	v.SetDefault("ignore", defaults.Ignore)
	v.SetDefault("cache_size", defaults.CacheSize)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}
