package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	lookuper envconfig.Lookuper
}

// NewLoader creates a loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{config: NewConfig()}
}

// NewLoaderWithLookuper creates a loader reading variables from lookuper
// instead of the process environment.
func NewLoaderWithLookuper(lookuper envconfig.Lookuper) *Loader {
	return &Loader{
		config:   NewConfig(),
		lookuper: lookuper,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (see LoadWithOverrides)
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	if err := l.loadEnvironment(ctx); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(ctx context.Context, overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(config)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields are not
// applied.
type ConfigOverrides struct {
	DBDriver       *string
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	AllowFutureDays *bool

	DisplayFormat *string
	Color         *bool
	ShowDefaults  *bool

	Timeout *time.Duration
	Verbose *bool

	ExportDefaultFormat *string
}

func (o *ConfigOverrides) apply(config *Config) {
	setIf(&config.Database.Driver, o.DBDriver)
	setIf(&config.Database.Dir, o.DBDir)
	setIf(&config.Database.Filename, o.DBFilename)
	setIf(&config.Database.QueryTimeout, o.DBQueryTimeout)
	setIf(&config.Database.WriteTimeout, o.DBWriteTimeout)

	setIf(&config.Validation.AllowFutureDays, o.AllowFutureDays)

	setIf(&config.Display.Format, o.DisplayFormat)
	setIf(&config.Display.Color, o.Color)
	setIf(&config.Display.ShowDefaults, o.ShowDefaults)

	setIf(&config.Application.Timeout, o.Timeout)
	setIf(&config.Application.Verbose, o.Verbose)

	setIf(&config.Commands.ExportDefaultFormat, o.ExportDefaultFormat)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (l *Loader) loadEnvironment(ctx context.Context) error {
	if l.lookuper == nil {
		return l.config.LoadFromEnvironment(ctx)
	}
	return l.config.LoadFrom(ctx, l.lookuper)
}
