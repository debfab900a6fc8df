// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads and writes bayesplot configuration files.
//
// A configuration file is YAML or TOML, chosen by its extension.
// Fields missing from a file keep their default values.
package config // import "github.com/aclements/go-bayesplot/config"

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/aclements/go-bayesplot/plot"
	"github.com/aclements/go-bayesplot/render"
	"github.com/aclements/go-bayesplot/stats"
)

// ErrFormat is returned for a file extension that is neither YAML nor
// TOML.
var ErrFormat = errors.New("unknown config file format")

// Config is the contents of a configuration file.
type Config struct {
	Plot    PlotConfig    `yaml:"plot" toml:"plot"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// PlotConfig holds the settings shared by the plot routines. See
// plot.Config.
type PlotConfig struct {
	MaxSubplots     int      `yaml:"max_subplots" toml:"max_subplots"`
	Colors          []string `yaml:"colors" toml:"colors"`
	LineWidth       float64  `yaml:"line_width" toml:"line_width"`
	MarkerSize      float64  `yaml:"marker_size" toml:"marker_size"`
	BandwidthFactor float64  `yaml:"bandwidth_factor" toml:"bandwidth_factor"`
	KDEGridSize     int      `yaml:"kde_grid_size" toml:"kde_grid_size"`
}

// RenderConfig selects and sizes the output backend.
type RenderConfig struct {
	Backend string `yaml:"backend" toml:"backend"`
	Width   int    `yaml:"width" toml:"width"`
	Height  int    `yaml:"height" toml:"height"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn or error.
	Level string `yaml:"level" toml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	p := plot.DefaultConfig()
	return &Config{
		Plot: PlotConfig{
			MaxSubplots:     p.MaxSubplots,
			Colors:          append([]string(nil), p.Colors...),
			LineWidth:       p.LineWidth,
			MarkerSize:      p.MarkerSize,
			BandwidthFactor: stats.DefaultBandwidthFactor,
			KDEGridSize:     stats.DefaultGridSize,
		},
		Render: RenderConfig{
			Backend: "svg",
			Width:   render.DefaultWidth,
		},
		Logging: LoggingConfig{Level: "warn"},
	}
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrFormat, path)
}

// Load reads the configuration file at path over the defaults.
func Load(path string) (*Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	switch f {
	case formatYAML:
		err = yaml.Unmarshal(data, cfg)
	case formatTOML:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path in the format given by its extension.
func (c *Config) Save(path string) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case formatYAML:
		data, err = yaml.Marshal(c)
	case formatTOML:
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the backend name and logging level.
func (c *Config) Validate() error {
	if _, err := render.Lookup(c.Render.Backend, render.Options{}); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}
	if c.Plot.MaxSubplots < 0 {
		return fmt.Errorf("%w: negative max_subplots %d", plot.ErrInvalidArgument, c.Plot.MaxSubplots)
	}
	return nil
}

// PlotConfig returns the plot configuration, logging to logger.
func (c *Config) PlotConfig(logger *zap.Logger) *plot.Config {
	return &plot.Config{
		MaxSubplots:     c.Plot.MaxSubplots,
		Colors:          append([]string(nil), c.Plot.Colors...),
		LineWidth:       c.Plot.LineWidth,
		MarkerSize:      c.Plot.MarkerSize,
		BandwidthFactor: c.Plot.BandwidthFactor,
		KDEGridSize:     c.Plot.KDEGridSize,
		Logger:          logger,
	}
}

// Backend returns the configured render backend.
func (c *Config) Backend(logger *zap.Logger) (render.Backend, error) {
	return render.Lookup(c.Render.Backend, render.Options{
		Width:  c.Render.Width,
		Height: c.Render.Height,
		Logger: logger,
	})
}

// Logger returns a production logger at the configured level, or at
// debug level if verbose.
func (c *Config) Logger(verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
