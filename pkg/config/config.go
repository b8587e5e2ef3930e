package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"github.com/ekaya-inc/fileconv/pkg/models"
)

const configFile = "config.yaml"

// Config holds all configuration for fileconv.
// Configuration can come from a YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values. config.yaml is optional.
type Config struct {
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// DataDir is the directory holding one subdirectory per dataset root.
	DataDir string `yaml:"data_dir" env:"DATA_DIR" env-default:"data"`

	// Dataset roots for each source format
	Roots RootsConfig `yaml:"roots"`

	// SkipMetadata disables writing the resolved column mapping to metadata.json.
	SkipMetadata bool `yaml:"skip_metadata" env:"SKIP_METADATA" env-default:"false"`

	// DefaultSchemasPath optionally replaces the built-in default schema set
	// with a YAML file of the same shape.
	DefaultSchemasPath string `yaml:"default_schemas_path" env:"DEFAULT_SCHEMAS_PATH" env-default:""`
}

// RootsConfig names the two dataset roots. Each is the other's alternate when
// its schemas.json is missing.
type RootsConfig struct {
	// Delimited is the root whose part files are delimited text.
	Delimited string `yaml:"delimited" env:"CSV_SOURCE_ROOT" env-default:"retail_db"`
	// JSON is the root whose part files are line-delimited JSON.
	JSON string `yaml:"json" env:"JSON_SOURCE_ROOT" env-default:"retail_db_json"`
}

// Load reads config.yaml (if present) with environment variable overrides,
// or the environment alone when there is no config file.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat(configFile); err == nil {
		if err := cleanenv.ReadConfig(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", configFile, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate checks the roots form a usable pair and the log level parses.
func (c *Config) validate() error {
	c.Roots.Delimited = strings.TrimSpace(c.Roots.Delimited)
	c.Roots.JSON = strings.TrimSpace(c.Roots.JSON)

	if c.Roots.Delimited == "" || c.Roots.JSON == "" {
		return errors.New("both CSV_SOURCE_ROOT and JSON_SOURCE_ROOT must be set")
	}
	if c.Roots.Delimited == c.Roots.JSON {
		return fmt.Errorf("CSV_SOURCE_ROOT and JSON_SOURCE_ROOT must differ, both are %q", c.Roots.Delimited)
	}
	if strings.ContainsAny(c.Roots.Delimited+c.Roots.JSON, `/\`) {
		return errors.New("dataset root names must not contain path separators")
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// RootFor returns the dataset root that holds the source files for a direction.
func (c *Config) RootFor(direction models.Direction) models.DatasetRoot {
	name := c.Roots.Delimited
	if direction == models.JSONToDelimited {
		name = c.Roots.JSON
	}
	return models.DatasetRoot{DataDir: c.DataDir, Name: name}
}
