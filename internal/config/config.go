package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage drivers accepted by DatabaseConfig.Driver.
const (
	DriverSQLite = "sqlite"
	DriverBuntDB = "buntdb"
)

// Config holds all configuration options for the timelog application
type Config struct {
	Database    DatabaseConfig    `env:",prefix=TL_DB_"`
	Validation  ValidationConfig  `env:",prefix=TL_VALIDATION_"`
	Display     DisplayConfig     `env:",prefix=TL_DISPLAY_"`
	Application ApplicationConfig `env:",prefix=TL_APP_"`
	Commands    CommandsConfig    `env:",prefix=TL_"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver         string        `env:"DRIVER, overwrite"`
	Dir            string        `env:"DIR, overwrite"`
	Filename       string        `env:"FILENAME, overwrite"`
	QueryTimeout   time.Duration `env:"QUERY_TIMEOUT, overwrite"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT, overwrite"`
	DirPermissions uint32        `env:"DIR_PERMISSIONS, overwrite"`
}

// ValidationConfig holds the rules applied to user supplied days.
type ValidationConfig struct {
	AllowFutureDays bool `env:"ALLOW_FUTURE_DAYS, overwrite"`
	MaxRangeDays    int  `env:"MAX_RANGE_DAYS, overwrite"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	Format       string `env:"FORMAT, overwrite"` // table, markdown or csv
	Color        bool   `env:"COLOR, overwrite"`
	ShowDefaults bool   `env:"SHOW_DEFAULTS, overwrite"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TIMEOUT, overwrite"`
	Verbose bool          `env:"VERBOSE, overwrite"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ExportDefaultFormat string `env:"EXPORT_DEFAULT_FORMAT, overwrite"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            filepath.Join(homeDir, ".timelog"),
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			AllowFutureDays: false,
			MaxRangeDays:    366,
		},
		Display: DisplayConfig{
			Format:       "table",
			Color:        true,
			ShowDefaults: true,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
		Commands: CommandsConfig{
			ExportDefaultFormat: "csv",
		},
	}
}

// GetDatabasePath returns the full path to the database file. An empty
// filename selects the driver's default file name.
func (c *Config) GetDatabasePath() string {
	filename := c.Database.Filename
	if filename == "" {
		switch c.Database.Driver {
		case DriverBuntDB:
			filename = "timelog.buntdb"
		default:
			filename = "timelog.db"
		}
	}
	return filepath.Join(c.Database.Dir, filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment overrides the current values with the TL_*
// environment variables.
func (c *Config) LoadFromEnvironment(ctx context.Context) error {
	return c.LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom overrides the current values with those found by lookuper.
// Variables that are not set leave the current value untouched.
func (c *Config) LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) error {
	return envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   c,
		Lookuper: lookuper,
	})
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverBuntDB:
	default:
		return &ConfigError{Field: "database.driver", Message: "driver must be sqlite or buntdb"}
	}
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Validation.MaxRangeDays < 1 {
		return &ConfigError{Field: "validation.max_range_days", Message: "maximum range must be at least one day"}
	}

	switch c.Display.Format {
	case "table", "markdown", "csv":
	default:
		return &ConfigError{Field: "display.format", Message: "format must be table, markdown or csv"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	switch c.Commands.ExportDefaultFormat {
	case "csv", "json", "yaml":
	default:
		return &ConfigError{Field: "commands.export_default_format", Message: "export format must be csv, json or yaml"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
