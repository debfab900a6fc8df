// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/aclements/go-bayesplot/stats"
)

// Distribution plot kinds.
const (
	KindAuto = "auto"
	KindHist = "hist"
	KindKDE  = "kde"
)

// rugSpace is the offset of the rug below the density, as a fraction
// of the density's maximum.
const rugSpace = 0.2

// DistOptions configures a distribution plot.
type DistOptions struct {
	// Kind is KindAuto (or ""), KindHist or KindKDE. KindAuto is
	// KindHist for Discrete values and KindKDE otherwise.
	Kind string

	// Discrete indicates that the values are integral.
	Discrete bool

	// Values2, if not nil, are paired with the values to plot a
	// bivariate density. Kind is then ignored.
	Values2 []float64

	// Color is the color of the plot. If empty, it is the first
	// color of the cycle.
	Color string

	// Label is the legend entry.
	Label string

	Cumulative bool

	// Rotated swaps the axes, so the density runs along y.
	Rotated bool

	// Rug marks each value with a tick below the density. KDE
	// only.
	Rug bool

	// Quantiles, if set, draws rules from the axis to the density
	// at each quantile. They must be ascending in [0, 1]. KDE
	// only.
	Quantiles []float64

	// BandwidthFactor overrides the Config's bandwidth factor.
	BandwidthFactor float64

	// Truncate limits the KDE to the range of the values.
	Truncate bool

	// Bins selects histogram bins. The zero value is the automatic
	// rule.
	Bins stats.Bins

	// FillAlpha is the opacity of the area under the KDE. If zero,
	// the area is not filled.
	FillAlpha float64
}

// ResolveKind returns the concrete kind, KindHist or KindKDE, that a
// distribution plot of kind uses.
func ResolveKind(kind string, discrete bool) (string, error) {
	switch kind {
	case KindAuto, "":
		if discrete {
			return KindHist, nil
		}
		return KindKDE, nil
	case KindHist, KindKDE:
		return kind, nil
	}
	return "", fmt.Errorf("%w %q: want %q, %q or %q", ErrInvalidKind, kind, KindAuto, KindHist, KindKDE)
}

// Dist returns a one-panel figure of the distribution of values.
func (c *Config) Dist(values []float64, opts DistOptions) (*Figure, error) {
	f := NewFigure(1, 1)
	if err := c.DistOnto(f.Panels[0], values, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// DistOnto adds a plot of the distribution of values to p.
func (c *Config) DistOnto(p *Panel, values []float64, opts DistOptions) error {
	c = c.resolve()
	kind, err := ResolveKind(opts.Kind, opts.Discrete)
	if err != nil {
		return err
	}
	if opts.Color == "" {
		opts.Color = c.Color(0)
	}

	var layers []Layer
	switch {
	case opts.Values2 != nil:
		layers, err = c.kde2DLayers(values, opts)
	case kind == KindHist:
		layers, err = c.histLayers(values, opts)
	default:
		layers, err = c.kdeLayers(values, opts)
	}
	if err != nil {
		return err
	}
	p.Add(layers...)
	if opts.Label != "" {
		p.Legend = true
	}
	if opts.Values2 == nil {
		p.HideYTicks = !opts.Rotated
	}
	return nil
}

func (c *Config) histLayers(values []float64, opts DistOptions) ([]Layer, error) {
	h, err := stats.Histogram(values, opts.Bins)
	if err != nil {
		return nil, err
	}
	heights := h.Density()
	if opts.Cumulative {
		heights = h.Cumulative()
	}
	return []Layer{&Bars{
		Edges:   h.Edges,
		Heights: heights,
		Rotated: opts.Rotated,
		Style:   Style{Color: opts.Color, Alpha: 1, Width: c.LineWidth, Label: opts.Label},
	}}, nil
}

func (c *Config) kdeLayers(values []float64, opts DistOptions) ([]Layer, error) {
	for i, q := range opts.Quantiles {
		if !(q >= 0 && q <= 1) || i > 0 && q < opts.Quantiles[i-1] {
			return nil, fmt.Errorf("%w: quantiles %v must be ascending in [0, 1]", ErrInvalidArgument, opts.Quantiles)
		}
	}
	k := c.kde(opts.BandwidthFactor)
	k.Truncate = opts.Truncate
	k.Cumulative = opts.Cumulative
	g, err := k.Estimate(values)
	if err != nil {
		return nil, err
	}
	xs, ys := g.X(), g.Density
	line := Style{Color: opts.Color, Alpha: 1, Width: c.LineWidth, Label: opts.Label}

	var layers []Layer
	if opts.FillAlpha > 0 {
		fill := Style{Color: opts.Color, Alpha: opts.FillAlpha}
		if opts.Rotated {
			layers = append(layers, &Fill{X: ys, Y: xs, Rotated: true, Style: fill})
		} else {
			layers = append(layers, &Fill{X: xs, Y: ys, Style: fill})
		}
	}
	if opts.Rotated {
		layers = append(layers, &Line{X: ys, Y: xs, Style: line})
	} else {
		layers = append(layers, &Line{X: xs, Y: ys, Style: line})
	}

	if len(opts.Quantiles) > 0 {
		s := stats.Finite(values)
		s.Sort()
		for _, q := range opts.Quantiles {
			x := s.Percentile(q)
			rule := Style{Color: opts.Color, Alpha: 1, Width: c.LineWidth}
			layers = append(layers, &Rule{At: x, Vertical: !opts.Rotated, From: 0, To: g.At(x), Style: rule})
		}
	}

	if opts.Rug {
		s := stats.Finite(values)
		off := make([]float64, len(s.Xs))
		floats.AddConst(-rugSpace*floats.Max(ys), off)
		rug := Style{Color: opts.Color, Alpha: 1, Marker: "|", Size: c.MarkerSize}
		if opts.Rotated {
			layers = append(layers, &Points{X: off, Y: s.Xs, Style: rug})
		} else {
			layers = append(layers, &Points{X: s.Xs, Y: off, Style: rug})
		}
	}
	return layers, nil
}

func (c *Config) kde2DLayers(values []float64, opts DistOptions) ([]Layer, error) {
	factor := opts.BandwidthFactor
	if factor <= 0 {
		factor = c.BandwidthFactor
	}
	g, err := stats.FastKDE2D{BandwidthFactor: factor}.Estimate(values, opts.Values2)
	if err != nil {
		return nil, err
	}
	return []Layer{&Tiles{
		X: g.X(), Y: g.Y(), Z: g.Density,
		Style: Style{Color: opts.Color, Alpha: 1, Label: opts.Label},
	}}, nil
}

// densityMax returns the largest y extent of p's layers, or 1 if p
// is empty.
func densityMax(p *Panel) float64 {
	b := p.Bounds()
	if math.IsNaN(b.YMax) || b.YMax <= 0 {
		return 1
	}
	return b.YMax
}
