// Package config loads hostlink settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults match the board firmware and the original fixed setup.
const (
	DefaultBaud     = 115200
	DefaultInterval = 500 * time.Millisecond
	DefaultSettle   = 100 * time.Millisecond
)

// Config holds every setting the commands read.
type Config struct {
	Port       string        `yaml:"port"`
	Baud       int           `yaml:"baud"`
	Interval   time.Duration `yaml:"interval"`
	Settle     time.Duration `yaml:"settle"`
	StatusAddr string        `yaml:"status_addr"`
	LogFile    string        `yaml:"log_file"`
}

// DefaultPort is the usual USB-serial device for the current OS.
func DefaultPort() string {
	switch runtime.GOOS {
	case "windows":
		return "COM6"
	case "darwin":
		return "/dev/cu.usbserial-0001"
	default:
		return "/dev/ttyUSB0"
	}
}

// Default returns a Config with every field at its default.
func Default() *Config {
	return &Config{
		Port:     DefaultPort(),
		Baud:     DefaultBaud,
		Interval: DefaultInterval,
		Settle:   DefaultSettle,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort()
	}
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the sender cannot run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port is empty")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("config: baud must be positive, got %d", c.Baud)
	}
	if c.Interval < 0 {
		return fmt.Errorf("config: interval must not be negative, got %s", c.Interval)
	}
	if c.Settle < 0 {
		return fmt.Errorf("config: settle must not be negative, got %s", c.Settle)
	}
	return nil
}
