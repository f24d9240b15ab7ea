package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding configuration values,
// e.g. HELIX_DATABASE_DSN overrides database.dsn
const EnvPrefix = "HELIX"

// CLIConfig holds the settings used by the command line tool
type CLIConfig struct {
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
	Keys     KeySettings      `mapstructure:"keys"`
}

// Validate checks every section of the CLI configuration
func (c *CLIConfig) Validate() error {
	return validateSections(&c.Logger, &c.Database, &c.Keys)
}

// RestConfig holds the settings used by the REST server
type RestConfig struct {
	Port     string           `mapstructure:"port"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
	Keys     KeySettings      `mapstructure:"keys"`
}

// Validate checks every section of the REST configuration
func (c *RestConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	return validateSections(&c.Logger, &c.Database, &c.Keys)
}

type validatable interface {
	Validate() error
}

func validateSections(sections ...validatable) error {
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// InitializeCLIConfig loads the CLI configuration from path when it is not
// empty, then applies HELIX_* environment overrides on top of the defaults.
func InitializeCLIConfig(path string) (*CLIConfig, error) {
	v := newViper()
	if err := readConfigFile(v, path); err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// InitializeRestConfig loads the REST configuration from the YAML file at
// path, then applies HELIX_* environment overrides.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := newViper()
	v.SetDefault("port", "8080")
	if err := readConfigFile(v, path); err != nil {
		return nil, err
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "helix.db")
	v.SetDefault("database.name", "helix")
	v.SetDefault("keys.directory", "keys")
	v.SetDefault("keys.default_bit_length", 2048)
	return v
}

func readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}
