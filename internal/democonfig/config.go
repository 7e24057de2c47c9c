// Package democonfig loads the configuration for cmd/mooring-demo: flags,
// environment variables and an optional TOML file, merged with flag
// precedence over environment over file.
package democonfig

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the demo command's tunables, a thin shell around
// mooring.Config plus the demo's own knobs (drain file, workload count).
type Config struct {
	Port        int
	Ephemeral   bool
	GracePeriod time.Duration
	Timeout     time.Duration

	// DrainFile, when set, is watched for readiness toggling; see
	// internal/readinesswatcher.
	DrainFile string

	// Workers is the number of simulated background workers creating and
	// retiring beacons.
	Workers int
}

// DefaultConfig returns a Config with the same defaults mooring.Config
// would fill in itself, made explicit here so the demo can log them.
func DefaultConfig() Config {
	return Config{
		Port:        9000,
		GracePeriod: 5 * time.Second,
		Timeout:     60 * time.Second,
		Workers:     3,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.GracePeriod < 0 {
		return fmt.Errorf("gracePeriod must not be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}

// configSetter applies configuration values while respecting flag
// precedence: a value is only applied if the corresponding flag was not
// explicitly set on the command line.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

func (s *configSetter) setDurationFromString(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// ApplyEnvConfig applies MOORING_* environment variables, respecting flags
// that have already been set explicitly (checked via changed).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("drain-file", os.Getenv("MOORING_DRAIN_FILE"), &cfg.DrainFile)

	if err := s.setIntFromString("port", os.Getenv("MOORING_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("workers", os.Getenv("MOORING_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setDurationFromString("grace-period", os.Getenv("MOORING_GRACE_PERIOD"), &cfg.GracePeriod); err != nil {
		return err
	}
	if err := s.setDurationFromString("timeout", os.Getenv("MOORING_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}

	var ephemeral bool
	s.setBoolFromString("ephemeral", os.Getenv("MOORING_EPHEMERAL"), &ephemeral)
	if os.Getenv("MOORING_EPHEMERAL") != "" && !changed["ephemeral"] {
		cfg.Ephemeral = ephemeral
	}

	return nil
}

// FileExists reports whether a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
