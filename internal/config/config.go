package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTopic           = "chemical-equilibrium"
	DefaultTicks           = 60
	DefaultHistoryCapacity = 30
)

// Config is a run file for the CLI. A zero Interval keeps the
// simulation's own tick interval.
type Config struct {
	Topic           string             `yaml:"topic"`
	Interval        time.Duration      `yaml:"interval,omitempty"`
	Ticks           int                `yaml:"ticks"`
	Seed            int64              `yaml:"seed"`
	HistoryCapacity int                `yaml:"history_capacity"`
	Params          map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Topic:           DefaultTopic,
		Ticks:           DefaultTicks,
		HistoryCapacity: DefaultHistoryCapacity,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", c.Ticks)
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %s", c.Interval)
	}
	if c.HistoryCapacity < 0 {
		return fmt.Errorf("history_capacity must not be negative, got %d", c.HistoryCapacity)
	}
	return nil
}

// Merge overlays preset parameters and returns a copy; values already set
// on c win.
func (c *Config) Merge(preset map[string]float64) *Config {
	out := *c
	out.Params = make(map[string]float64, len(preset)+len(c.Params))
	for k, v := range preset {
		out.Params[k] = v
	}
	for k, v := range c.Params {
		out.Params[k] = v
	}
	return &out
}
