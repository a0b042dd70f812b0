// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/gviegas/anim/clip"
)

// Config holds the settings of a run.
type Config struct {
	// Tree is the path of a blend tree description.
	// The built-in description is used if empty.
	Tree       string  `json:"tree"`
	Ticks      int     `json:"ticks"`
	DT         float32 `json:"dt"`
	Mode       string  `json:"mode"`
	Speed      float32 `json:"speed"`
	Characters int     `json:"characters"`
	LogLevel   string  `json:"log_level"`
	// MetricsAddr is the address to serve /metrics on.
	// Metrics are disabled if empty.
	MetricsAddr string `json:"metrics_addr"`
}

// Flags holds CLI flag values that override config file
// settings.
type Flags struct {
	Tree        string
	Ticks       int
	DT          float64
	Mode        string
	Speed       float64
	Characters  int
	LogLevel    string
	MetricsAddr string
}

// Load reads a JSON config file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies non-zero flags over c and fills any
// remaining zero fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Tree != "" {
		c.Tree = flags.Tree
	}
	if flags.Ticks > 0 {
		c.Ticks = flags.Ticks
	}
	if flags.DT > 0 {
		c.DT = float32(flags.DT)
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Speed >= 0 {
		c.Speed = float32(flags.Speed)
	}
	if flags.Characters > 0 {
		c.Characters = flags.Characters
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.MetricsAddr != "" {
		c.MetricsAddr = flags.MetricsAddr
	}

	if c.Ticks <= 0 {
		c.Ticks = 120
	}
	if c.DT <= 0 {
		c.DT = 1.0 / 60
	}
	if c.Mode == "" {
		c.Mode = clip.Lerp.String()
	}
	if c.Characters <= 0 {
		c.Characters = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the values of c.
func (c *Config) Validate() error {
	if _, ok := clip.ParseMode(c.Mode); !ok {
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the logging level named by c.LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return l, nil
}
