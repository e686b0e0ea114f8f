// Package config loads the service configuration from YAML, overlaying
// file values on built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// QRNGConfig holds the generation and test defaults.
type QRNGConfig struct {
	// Qubits is the circuit width; each execution yields this many bits.
	Qubits int `yaml:"qubits"`
	// Workers > 1 enables concurrent chunk execution.
	Workers int `yaml:"workers"`
	// Threshold for the frequency test verdict.
	Threshold float64 `yaml:"threshold"`
	// Level for pattern test verdicts.
	Level float64 `yaml:"level"`
	// MinPattern..MaxPattern pattern lengths tested in comparisons.
	MinPattern int `yaml:"min_pattern"`
	MaxPattern int `yaml:"max_pattern"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	QRNG   QRNGConfig   `yaml:"qrng"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		QRNG: QRNGConfig{
			Qubits:     4,
			Workers:    1,
			Threshold:  0.01,
			Level:      0.05,
			MinPattern: 2,
			MaxPattern: 6,
		},
		Log: LogConfig{Level: "info", Pretty: true},
	}
}

// Load reads path and overlays it on the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the core cannot honor.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.QRNG.Qubits < 1 || c.QRNG.Qubits > 20 {
		return fmt.Errorf("qrng.qubits %d out of range 1..20", c.QRNG.Qubits)
	}
	if c.QRNG.Workers < 0 {
		return fmt.Errorf("qrng.workers %d negative", c.QRNG.Workers)
	}
	if c.QRNG.Threshold < 0 || c.QRNG.Threshold >= 1 {
		return fmt.Errorf("qrng.threshold %g out of range [0,1)", c.QRNG.Threshold)
	}
	if c.QRNG.Level < 0 || c.QRNG.Level >= 1 {
		return fmt.Errorf("qrng.level %g out of range [0,1)", c.QRNG.Level)
	}
	if c.QRNG.MinPattern < 1 || c.QRNG.MaxPattern < c.QRNG.MinPattern {
		return fmt.Errorf("qrng pattern range %d..%d invalid", c.QRNG.MinPattern, c.QRNG.MaxPattern)
	}
	return nil
}
