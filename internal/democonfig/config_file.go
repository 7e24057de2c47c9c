package democonfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses a string for the duration fields to
// keep the TOML representation friendly to hand-editing.
type FileConfig struct {
	Port        int    `toml:"port"`
	Ephemeral   *bool  `toml:"ephemeral"`
	GracePeriod string `toml:"grace_period"`
	Timeout     string `toml:"timeout"`
	DrainFile   string `toml:"drain_file"`
	Workers     int    `toml:"workers"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.mooring/config.toml, or "" if the user home
// directory cannot be resolved.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".mooring", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to cfg, respecting
// flags that have already been set explicitly (checked via changed).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt("port", fc.Port, &cfg.Port)
	s.setInt("workers", fc.Workers, &cfg.Workers)
	s.setString("drain-file", fc.DrainFile, &cfg.DrainFile)
	s.setBool("ephemeral", fc.Ephemeral, &cfg.Ephemeral)

	if err := s.setDuration("grace-period", fc.GracePeriod, &cfg.GracePeriod); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}

	return nil
}
