package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/mdhtml/internal/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "mdhtml.yaml"

// Config represents the application configuration.
type Config struct {
	Parser  ParserConfig  `yaml:"parser"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// ParserConfig controls how markdown is matched.
type ParserConfig struct {
	MaxNestingDepth  int  `yaml:"max_nesting_depth"`
	StripFrontmatter bool `yaml:"strip_frontmatter"`
	NormalizeUnicode bool `yaml:"normalize_unicode"`
}

// OutputConfig controls how rendered HTML is written.
type OutputConfig struct {
	TrailingNewline bool `yaml:"trailing_newline"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	Metrics      bool   `yaml:"metrics"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg, nil)
	return cfg
}

// Load loads configuration from the specified file.
//
// A missing file at DefaultPath is not an error: the defaults are returned.
// A missing file anywhere else is. Environment variables from .env files are
// loaded first and ${VAR} references in the YAML are expanded.
func Load(configPath string) (*Config, error) {
	if _, err := loadEnvFile(); err != nil {
		return nil, derrors.ConfigInvalid(".env", err)
	}

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultPath
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return nil, derrors.ConfigNotFound(configPath)
		}
		return Default(), nil
	}
	if err != nil {
		return nil, derrors.ConfigInvalid(configPath, fmt.Errorf("failed to read config file: %w", err))
	}

	return Parse(configPath, data)
}

// Parse decodes YAML configuration data, applies defaults and validates it.
// path is used in error context only.
func Parse(path string, data []byte) (*Config, error) {
	expanded := []byte(os.ExpandEnv(string(data)))

	var raw map[string]any
	if err := yaml.Unmarshal(expanded, &raw); err != nil {
		return nil, derrors.ConfigInvalid(path, fmt.Errorf("failed to unmarshal config: %w", err))
	}

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, derrors.ConfigInvalid(path, fmt.Errorf("failed to unmarshal config: %w", err))
	}

	applyDefaults(&cfg, raw)
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if configPath == "" {
		configPath = DefaultPath
	}
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.ValidationFailed("config", fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath))
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return derrors.InternalError("failed to marshal example config", err)
	}
	header := "# mdhtml configuration. Values may reference ${ENV} variables.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return derrors.WriteFailed(configPath, err)
	}
	return nil
}
