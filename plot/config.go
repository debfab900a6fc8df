// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"go.uber.org/zap"

	"github.com/aclements/go-bayesplot/dataset"
	"github.com/aclements/go-bayesplot/stats"
)

// DefaultMaxSubplots is the default limit on the number of variables
// one routine plots.
const DefaultMaxSubplots = 40

// DefaultColors is the default color cycle.
var DefaultColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Config holds the settings shared by every plot routine. It is read
// but never modified by the routines, so one Config may serve many
// calls.
type Config struct {
	// MaxSubplots limits the number of plotted variables (rows of a
	// trace plot, panels of a posterior predictive plot). Extra
	// variables are dropped with a warning. If this is zero, there
	// is no limit.
	MaxSubplots int

	// Colors is the color cycle. Color i of the cycle is used for
	// chain i.
	Colors []string

	LineWidth  float64
	MarkerSize float64

	// BandwidthFactor and KDEGridSize configure every kernel
	// density estimate; see stats.FastKDE.
	BandwidthFactor float64
	KDEGridSize     int

	// Logger receives warnings. If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxSubplots:     DefaultMaxSubplots,
		Colors:          DefaultColors,
		LineWidth:       1.5,
		MarkerSize:      4,
		BandwidthFactor: stats.DefaultBandwidthFactor,
		KDEGridSize:     stats.DefaultGridSize,
	}
}

// resolve returns c with unset fields filled from DefaultConfig.
func (c *Config) resolve() *Config {
	d := DefaultConfig()
	if c == nil {
		d.Logger = zap.NewNop()
		return d
	}
	out := *c
	if len(out.Colors) == 0 {
		out.Colors = d.Colors
	}
	if out.LineWidth <= 0 {
		out.LineWidth = d.LineWidth
	}
	if out.MarkerSize <= 0 {
		out.MarkerSize = d.MarkerSize
	}
	if out.BandwidthFactor <= 0 {
		out.BandwidthFactor = d.BandwidthFactor
	}
	if out.KDEGridSize <= 0 {
		out.KDEGridSize = d.KDEGridSize
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	return &out
}

// Color returns color i of the color cycle.
func (c *Config) Color(i int) string {
	colors := c.resolve().Colors
	return colors[i%len(colors)]
}

func (c *Config) kde(factor float64) stats.FastKDE {
	if factor <= 0 {
		factor = c.BandwidthFactor
	}
	return stats.FastKDE{BandwidthFactor: factor, GridSize: c.KDEGridSize}
}

// limit drops plotters beyond MaxSubplots, logging a warning.
func (c *Config) limit(routine string, ps []dataset.Plotter) []dataset.Plotter {
	if c.MaxSubplots <= 0 || len(ps) <= c.MaxSubplots {
		return ps
	}
	c.Logger.Warn("too many variables to plot; dropping the rest",
		zap.String("routine", routine),
		zap.Int("variables", len(ps)),
		zap.Int("max_subplots", c.MaxSubplots))
	return ps[:c.MaxSubplots]
}
