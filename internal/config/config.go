// ./internal/config/config.go

// Package config loads the settings of the commands from a YAML file and the
// environment.
package config

/*
Package config reads settings from YAML and the environment.

This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, write to the Free Software
Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
02110-1301, USA.
*/

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mshafiee/calceph"
)

const (
	DefaultBackend      = "auto"
	DefaultPositionUnit = "au"
	DefaultTimeUnit     = "day"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Environment variables overriding the file.
const (
	EnvEphemeris    = "CALCEPH_EPHEMERIS" // list separated by os.PathListSeparator
	EnvBackend      = "CALCEPH_BACKEND"
	EnvPrefetch     = "CALCEPH_PREFETCH"
	EnvLogLevel     = "CALCEPH_LOG_LEVEL"
	EnvLogFormat    = "CALCEPH_LOG_FORMAT"
	EnvPositionUnit = "CALCEPH_POSITION_UNIT"
	EnvTimeUnit     = "CALCEPH_TIME_UNIT"
)

var backends = []string{"auto", "calceph", "calceph-dynamic", "jplde"}

type Config struct {
	Ephemeris    []string  `yaml:"ephemeris"`
	Backend      string    `yaml:"backend"`
	Prefetch     bool      `yaml:"prefetch"`
	PositionUnit string    `yaml:"position_unit"`
	TimeUnit     string    `yaml:"time_unit"`
	Log          LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:      DefaultBackend,
		PositionUnit: DefaultPositionUnit,
		TimeUnit:     DefaultTimeUnit,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads the YAML file at path, if path is not empty, over the
// defaults, then applies the environment. A .env file in the working
// directory is loaded into the environment first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvEphemeris); v != "" {
		c.Ephemeris = filepath.SplitList(v)
	}
	c.Backend = getEnv(EnvBackend, c.Backend)
	if v := os.Getenv(EnvPrefetch); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvPrefetch, v, err)
		}
		c.Prefetch = b
	}
	c.PositionUnit = getEnv(EnvPositionUnit, c.PositionUnit)
	c.TimeUnit = getEnv(EnvTimeUnit, c.TimeUnit)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
	c.Log.Format = getEnv(EnvLogFormat, c.Log.Format)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks the values that name closed sets.
func (c *Config) Validate() error {
	var errs []error
	if c.Backend != "" && !slices.Contains(backends, c.Backend) {
		errs = append(errs, fmt.Errorf("backend %q is not one of %s", c.Backend, strings.Join(backends, ", ")))
	}
	if _, _, err := c.Units(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q is not text or json", c.Log.Format))
	}
	for _, p := range c.Ephemeris {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, errors.New("empty ephemeris path"))
			break
		}
	}
	return errors.Join(errs...)
}

// Units returns the configured result units.
func (c *Config) Units() (calceph.PositionUnit, calceph.TimeUnit, error) {
	pu, err := calceph.ParsePositionUnit(c.PositionUnit)
	if err != nil {
		return 0, 0, err
	}
	tu, err := calceph.ParseTimeUnit(c.TimeUnit)
	if err != nil {
		return 0, 0, err
	}
	return pu, tu, nil
}

// OpenOptions returns the options for calceph.Open matching c.
func (c *Config) OpenOptions() []calceph.Option {
	var opts []calceph.Option
	if c.Backend != "" {
		opts = append(opts, calceph.WithBackend(c.Backend))
	}
	if c.Prefetch {
		opts = append(opts, calceph.WithPrefetch())
	}
	return opts
}
