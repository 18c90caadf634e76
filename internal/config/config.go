// Package config loads the shiftctl configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendPeriph = "periph"
	BackendSim    = "sim"
)

// Config is the top-level shiftctl configuration.
type Config struct {
	Registers int          `yaml:"registers"`
	Fill      int          `yaml:"fill"`
	Backend   string       `yaml:"backend"` // "periph" or "sim"
	Pins      PinsConfig   `yaml:"pins"`
	Logger    LoggerConfig `yaml:"logger"`
}

// PinsConfig names the periph.io pins driving the chain.
type PinsConfig struct {
	Data  string `yaml:"data"`
	Clock string `yaml:"clock"`
	Latch string `yaml:"latch"`
}

// LoggerConfig configures driver logging.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Defaults returns a configuration for a single register on the simulator.
func Defaults() *Config {
	return &Config{
		Registers: 1,
		Fill:      0x00,
		Backend:   BackendSim,
		Pins: PinsConfig{
			Data:  "GPIO17",
			Clock: "GPIO27",
			Latch: "GPIO22",
		},
		Logger: LoggerConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. A missing file is not an error. The result is not validated so
// callers can apply their own overrides first; call Validate afterwards.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	ApplyEnvOverrides(cfg)
	return cfg, nil
}

// ApplyEnvOverrides applies SHIFTCTL_* environment variables to cfg.
// Unparseable values are left for Validate to report.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SHIFTCTL_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("SHIFTCTL_REGISTERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			n = -1
		}
		cfg.Registers = n
	}
	if v := os.Getenv("SHIFTCTL_LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
}

// SlogLevel returns the configured level.
func (c LoggerConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. It returns a
// *ValidationError listing every problem found.
func Validate(cfg *Config) error {
	ve := &ValidationError{}

	if cfg.Registers <= 0 {
		ve.Add("registers must be positive, got %d", cfg.Registers)
	}
	if cfg.Fill < 0 || cfg.Fill > 0xFF {
		ve.Add("fill must be within 0x00-0xFF, got %d", cfg.Fill)
	}

	switch cfg.Backend {
	case BackendSim:
	case BackendPeriph:
		pins := map[string]string{
			"data": cfg.Pins.Data, "clock": cfg.Pins.Clock, "latch": cfg.Pins.Latch,
		}
		seen := map[string]string{}
		for _, role := range []string{"data", "clock", "latch"} {
			name := pins[role]
			if name == "" {
				ve.Add("pins.%s is required for the periph backend", role)
				continue
			}
			if other, ok := seen[name]; ok {
				ve.Add("pins.%s and pins.%s both use %s", other, role, name)
			}
			seen[name] = role
		}
	default:
		ve.Add("backend must be %q or %q, got %q", BackendPeriph, BackendSim, cfg.Backend)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logger.Level)); err != nil {
		ve.Add("logger.level %q is not a log level", cfg.Logger.Level)
	}
	switch cfg.Logger.Format {
	case "text", "json":
	default:
		ve.Add("logger.format must be text or json, got %q", cfg.Logger.Format)
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}
