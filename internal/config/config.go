package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"portcheck/internal/logger"
	"portcheck/internal/models"
)

// Config represents configuration data for the port checker.
type Config struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig controls the optional HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig mirrors the behaviour of running the checker with no input:
// port 80 on localhost with a three second timeout.
func DefaultConfig() Config {
	return Config{
		Host:    "localhost",
		Port:    80,
		Timeout: 3 * time.Second,
		Log:     LogConfig{Level: logger.DefaultLevel},
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// Target returns the probe target described by the configuration.
func (c Config) Target() models.Target {
	return models.Target{Host: c.Host, Port: c.Port, Timeout: c.Timeout}
}

// Validate checks the merged configuration.
func (c Config) Validate() error {
	if err := c.Target().Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errors.New("server addr must not be empty")
	}
	return nil
}

// Load reads configuration from yaml file. Missing files fall back to defaults.
// The result is not validated: callers merge command line overrides first and
// then call Validate.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = logger.DefaultLevel
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultConfig().Server.Addr
	}
	return cfg, nil
}
