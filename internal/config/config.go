// Package config loads MXD's runtime configuration from a YAML file and
// environment variables, in that ascending order of precedence, validating
// the result before the server starts. No command-line flag overrides a
// configuration value.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mxdserver/mxd/internal/store"
)

// Config is MXD's complete runtime configuration.
//
// Precedence (highest to lowest): environment variable (MXD_*) >
// configuration file > the defaults applied by ApplyDefaults. There is no
// command-line flag for any field.
type Config struct {
	// Bind is the host:port the Hotline-protocol listener accepts on.
	Bind string `mapstructure:"bind" yaml:"bind" validate:"required,hostname_port"`

	// Database selects and configures the persistence backend.
	Database store.Config `mapstructure:"database" yaml:"database"`

	// Argon2 holds the password-hashing cost parameters.
	Argon2 Argon2Config `mapstructure:"argon2" yaml:"argon2"`

	// Logging controls log level and output format.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Metrics controls the Prometheus metrics endpoint.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Telemetry controls OpenTelemetry trace export.
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Banner configures the optional S3-backed DownloadBanner source. When
	// Bucket is empty the banner transaction replies with an empty payload.
	Banner BannerConfig `mapstructure:"banner" yaml:"banner"`
}

// BannerConfig names the S3 object the DownloadBanner transaction serves.
type BannerConfig struct {
	Bucket string `mapstructure:"bucket" yaml:"bucket"`
	Key    string `mapstructure:"key" yaml:"key"`
	Region string `mapstructure:"region" yaml:"region"`
}

// Argon2Config holds the Argon2id cost parameters. They are set from the
// configuration file or the environment only; there are no --argon2-*
// command-line flags.
type Argon2Config struct {
	MCost uint32 `mapstructure:"m_cost" yaml:"m_cost" validate:"required"`
	TCost uint32 `mapstructure:"t_cost" yaml:"t_cost" validate:"required"`
	PCost uint8  `mapstructure:"p_cost" yaml:"p_cost" validate:"required"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`
}

// MetricsConfig controls the Prometheus metrics HTTP endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Bind    string `mapstructure:"bind" yaml:"bind" validate:"omitempty,hostname_port"`
}

// TelemetryConfig controls OpenTelemetry span export.
type TelemetryConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint   string  `mapstructure:"endpoint" yaml:"endpoint" validate:"omitempty,hostname_port"`
	Insecure   bool    `mapstructure:"insecure" yaml:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate" validate:"gte=0,lte=1"`
}

// Load reads configuration from configPath (or the default location when
// empty), layering environment variables over it, applying defaults for
// anything still unset, and validating the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if found {
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("MXD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(defaultConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read config file: %w", err)
	}
	return true, nil
}

func defaultConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "mxd")
}

// Validate runs struct-tag validation over cfg.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

// Save writes cfg as YAML to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
