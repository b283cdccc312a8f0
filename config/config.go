// SPDX-License-Identifier: MIT

// Package config loads binary settings from the environment. Every variable
// carries the TOURGA_ prefix, e.g. TOURGA_GA_POPULATION_SIZE or
// TOURGA_SERVER_ADDR.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/tourga/ga"
)

// Prefix is prepended to every variable name.
const Prefix = "TOURGA_"

// ErrInvalid wraps every parse or validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the process configuration read from TOURGA_* environment
// variables. Load fills defaults and validates it.
type Config struct {
	GA struct {
		PopulationSize     int           `env:"POPULATION_SIZE" envDefault:"500" validate:"gte=2"`
		MutationRate       float64       `env:"MUTATION_RATE" envDefault:"0.1" validate:"gte=0,lte=1"`
		TournamentSize     int           `env:"TOURNAMENT_SIZE" envDefault:"5" validate:"gte=1"`
		MaxGenerations     int           `env:"MAX_GENERATIONS" envDefault:"1500" validate:"gte=1"`
		GenerationInterval time.Duration `env:"GENERATION_INTERVAL" envDefault:"50ms" validate:"gte=0s"`
		Seed               int64         `env:"SEED" envDefault:"0"`
	} `envPrefix:"GA_"`
	Server struct {
		Addr            string        `env:"ADDR" envDefault:":8080" validate:"required"`
		ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
		WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
		IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
		MaxRuns         int           `env:"MAX_RUNS" envDefault:"16" validate:"gte=1"`
		MaxCities       int           `env:"MAX_CITIES" envDefault:"2000" validate:"gte=2"`
		ProgressRate    float64       `env:"PROGRESS_RATE" envDefault:"20" validate:"gt=0"`
	} `envPrefix:"SERVER_"`
	NATS struct {
		URL             string        `env:"URL"`
		Prefix          string        `env:"PREFIX" envDefault:"tourga" validate:"required"`
		ConnectAttempts int           `env:"CONNECT_ATTEMPTS" envDefault:"5" validate:"gte=1"`
		ConnectWait     time.Duration `env:"CONNECT_WAIT" envDefault:"2s"`
	} `envPrefix:"NATS_"`
	Store struct {
		Path string `env:"PATH"`
	} `envPrefix:"STORE_"`
	Log struct {
		Level  string `env:"LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
		Format string `env:"FORMAT" envDefault:"text" validate:"oneof=text json"`
	} `envPrefix:"LOG_"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the process environment.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads vars instead of the process environment. Keys include the
// prefix.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			// The first error keeps the log line readable.
			return nil, fmt.Errorf("%w: %w", ErrInvalid, aggErr.Errors[0])
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, fmt.Errorf("%w: %s violates %s=%s (got %v)",
				ErrInvalid, fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cfg, nil
}

// GAConfig maps the GA section onto ga.Config.
func (c *Config) GAConfig() ga.Config {
	return ga.Config{
		PopulationSize:     c.GA.PopulationSize,
		MutationRate:       c.GA.MutationRate,
		TournamentSize:     c.GA.TournamentSize,
		MaxGenerations:     c.GA.MaxGenerations,
		GenerationInterval: c.GA.GenerationInterval,
		Seed:               c.GA.Seed,
	}
}

// NewLogger builds the slog logger described by the Log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
