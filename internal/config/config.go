// Package config holds the player's runtime settings.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Config holds application configuration
type Config struct {
	// StartDir is the directory shown at startup. Empty means the working directory.
	StartDir string
	// LogFile receives JSON logs. Empty disables logging.
	LogFile  string
	LogLevel string `default:"info" validate:"oneof=debug info warn warning error"`

	TickRate    time.Duration `default:"66ms" validate:"gte=10ms,lte=1s"`
	IdleTimeout time.Duration `default:"1s" validate:"gte=10ms,lte=10s"`

	SampleRate     int           `default:"44100" validate:"gte=8000,lte=192000"`
	BufferDuration time.Duration `default:"100ms" validate:"gte=10ms,lte=1s"`
}

// Finalize fills unset fields with defaults, resolves StartDir to an
// absolute path with symlinks followed when it exists, and validates the
// result.
func (c *Config) Finalize() error {
	if err := defaults.Set(c); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	if c.StartDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get working directory")
		}
		c.StartDir = wd
	}
	abs, err := filepath.Abs(c.StartDir)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve start directory %q", c.StartDir)
	}
	c.StartDir = abs
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		c.StartDir = resolved
	}

	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
