package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DatabaseType selects the backing database driver.
type DatabaseType string

const (
	DatabaseTypeSQLite   DatabaseType = "sqlite"
	DatabaseTypePostgres DatabaseType = "postgres"
)

// SQLiteConfig holds sqlite-specific settings.
type SQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// PostgresConfig holds postgres-specific settings.
type PostgresConfig struct {
	Host         string `mapstructure:"host" yaml:"host"`
	Port         int    `mapstructure:"port" yaml:"port"`
	Database     string `mapstructure:"database" yaml:"database"`
	User         string `mapstructure:"user" yaml:"user"`
	Password     string `mapstructure:"password" yaml:"password"`
	SSLMode      string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
}

// DSN returns the PostgreSQL connection string.
func (c *PostgresConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		c.Host, c.Port, c.User, c.Password, c.Database)
	if c.SSLMode != "" {
		dsn += fmt.Sprintf(" sslmode=%s", c.SSLMode)
	}
	return dsn
}

// Config selects and configures the backing database.
type Config struct {
	Type     DatabaseType   `mapstructure:"type" yaml:"type"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite" yaml:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
}

// ApplyDefaults fills in unset fields with MXD's defaults.
func (c *Config) ApplyDefaults() {
	if c.Type == "" {
		c.Type = DatabaseTypeSQLite
	}
	if c.Type == DatabaseTypeSQLite && c.SQLite.Path == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, _ := os.UserHomeDir()
			configDir = filepath.Join(home, ".config")
		}
		c.SQLite.Path = filepath.Join(configDir, "mxd", "mxd.db")
	}
	if c.Type == DatabaseTypePostgres {
		if c.Postgres.Port == 0 {
			c.Postgres.Port = 5432
		}
		if c.Postgres.SSLMode == "" {
			c.Postgres.SSLMode = "disable"
		}
		if c.Postgres.MaxOpenConns == 0 {
			c.Postgres.MaxOpenConns = 25
		}
		if c.Postgres.MaxIdleConns == 0 {
			c.Postgres.MaxIdleConns = 5
		}
	}
}

// Validate checks the configuration is complete enough to open a
// connection.
func (c *Config) Validate() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case DatabaseTypePostgres:
		if c.Postgres.Host == "" {
			return fmt.Errorf("postgres host is required")
		}
		if c.Postgres.Database == "" {
			return fmt.Errorf("postgres database is required")
		}
		if c.Postgres.User == "" {
			return fmt.Errorf("postgres user is required")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}
	return nil
}
