// SPDX-License-Identifier: MIT

// Package config loads the blochlab configuration from YAML.
//
// Parse starts from Default and overlays the document, so a file only needs
// the keys it changes. The result is checked with validator struct tags.
//
//	numeric:
//	  tolerance: 1e-10
//	  decimals: 2
//	  convention: physics
//	log:
//	  level: info
//	  format: text
//	session:
//	  initial_state: ket0
//	metrics:
//	  enabled: false
//	  namespace: blochlab
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/blochlab/cmatrix"
	"github.com/katalvlaran/blochlab/model"
)

// ErrInvalidConfig indicates a document that does not decode or validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root document.
type Config struct {
	Numeric Numeric `yaml:"numeric"`
	Log     Log     `yaml:"log"`
	Session Session `yaml:"session"`
	Metrics Metrics `yaml:"metrics"`
}

// Numeric is the numeric policy handed to every matrix.
type Numeric struct {
	Tolerance  float64 `yaml:"tolerance" validate:"gt=0,lte=0.001"`
	Decimals   int     `yaml:"decimals" validate:"min=0,max=12"`
	Convention string  `yaml:"convention" validate:"oneof=physics renderer"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Session configures a new session.
type Session struct {
	InitialState string `yaml:"initial_state" validate:"required"`
}

// Metrics configures the Prometheus collectors.
type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace" validate:"required"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Numeric: Numeric{
			Tolerance:  cmatrix.DefaultAbsTol,
			Decimals:   model.DefaultDecimals,
			Convention: cmatrix.ConventionPhysics.String(),
		},
		Log:     Log{Level: "info", Format: "text"},
		Session: Session{InitialState: "ket0"},
		Metrics: Metrics{Namespace: "blochlab"},
	}
}

// Load reads and parses the file at path.
// Errors: ErrInvalidConfig, or the file system error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return Parse(data)
}

// Parse overlays data on Default and validates the result. Unknown keys
// are rejected.
// Errors: ErrInvalidConfig.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the struct tags.
// Errors: ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Convention returns the parsed axis convention.
func (c *Config) Convention() cmatrix.Convention {
	conv, err := cmatrix.ParseConvention(c.Numeric.Convention)
	if err != nil {
		return cmatrix.ConventionPhysics
	}

	return conv
}

// ModelOptions translates the numeric policy into model options. A nil
// logger is left to the model default.
func (c *Config) ModelOptions(log *slog.Logger) []model.Option {
	opts := []model.Option{
		model.WithTolerance(c.Numeric.Tolerance),
		model.WithDecimals(c.Numeric.Decimals),
		model.WithConvention(c.Convention()),
	}
	if log != nil {
		opts = append(opts, model.WithLogger(log))
	}

	return opts
}

// Level returns the slog level named by Log.Level.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger builds the configured handler writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: c.Level()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}

	return slog.New(slog.NewTextHandler(w, hopts))
}
