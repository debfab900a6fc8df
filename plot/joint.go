// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"slices"

	"github.com/aclements/go-bayesplot/dataset"
	"github.com/aclements/go-bayesplot/stats"
)

// Joint plot kinds.
const (
	KindScatter = "scatter"
	KindHexbin  = "hexbin"
)

// JointOptions configures a joint plot.
type JointOptions struct {
	// VarNames and Coords must select exactly two variables.
	VarNames []string
	Coords   map[string][]string

	// Kind is KindScatter (the default when empty), KindKDE or
	// KindHexbin.
	Kind string

	// GridSize is the number of hexagons across the x range for
	// KindHexbin. If zero, it is n^0.35 for n points.
	GridSize int

	// Axes, if not nil, are the joint, top marginal and right
	// marginal panels to draw onto, in that order.
	Axes []*Panel

	Color string
}

// Joint returns a figure of the joint distribution of two variables
// of the posterior with their marginal distributions above and to the
// right. The figure is a 2×2 grid with the top marginal at (0, 0),
// the joint plot at (1, 0) and the right marginal at (1, 1).
func (c *Config) Joint(id *dataset.InferenceData, opts JointOptions) (*Figure, error) {
	c = c.resolve()
	kind := opts.Kind
	if kind == "" {
		kind = KindScatter
	}
	switch kind {
	case KindScatter, KindKDE, KindHexbin:
	default:
		return nil, fmt.Errorf("%w %q: want %q, %q or %q", ErrInvalidKind, kind, KindScatter, KindKDE, KindHexbin)
	}
	if opts.Axes != nil && len(opts.Axes) != 3 {
		return nil, fmt.Errorf("%w: need 3 axes, have %d", ErrInvalidArgument, len(opts.Axes))
	}
	color := opts.Color
	if color == "" {
		color = c.Color(0)
	}

	post, err := id.Group(dataset.Posterior)
	if err != nil {
		return nil, err
	}
	names, err := dataset.VarNames(post, opts.VarNames)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: every variable is excluded", ErrInvalidArgument)
	}
	ds, err := dataset.Select(post, opts.Coords)
	if err != nil {
		return nil, err
	}
	plotters := slices.Collect(dataset.Iterate(ds, names, nil, true))
	if len(plotters) != 2 {
		return nil, fmt.Errorf("%w: joint plot needs exactly 2 variables, have %d", ErrInvalidArgument, len(plotters))
	}
	px, py := plotters[0], plotters[1]
	xs, ys := px.Values.Values, py.Values.Values
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %s has %d values, %s has %d", ErrInvalidArgument, px.Label(), len(xs), py.Label(), len(ys))
	}

	var fig *Figure
	var joint, top, right *Panel
	if opts.Axes != nil {
		joint, top, right = opts.Axes[0], opts.Axes[1], opts.Axes[2]
		fig = &Figure{Rows: 2, Cols: 2, Panels: []*Panel{top, nil, joint, right}}
	} else {
		fig = NewFigure(2, 2)
		top, joint, right = fig.At(0, 0), fig.At(1, 0), fig.At(1, 1)
		fig.Panels[1] = nil
	}
	joint.XLabel, joint.YLabel = px.Label(), py.Label()

	switch kind {
	case KindScatter:
		joint.Add(&Points{X: xs, Y: ys, Style: Style{Color: color, Alpha: 1, Marker: "o", Size: c.MarkerSize}})
	case KindKDE:
		if err := c.DistOnto(joint, xs, DistOptions{Values2: ys, Color: color}); err != nil {
			return nil, err
		}
	case KindHexbin:
		gridsize := opts.GridSize
		if gridsize <= 0 {
			gridsize = max(1, int(math.Pow(float64(len(xs)), 0.35)))
		}
		g, err := stats.HexBin(xs, ys, gridsize)
		if err != nil {
			return nil, err
		}
		joint.Add(&Hexes{Grid: g, Style: Style{Color: color, Alpha: 1}})
	}

	if err := c.DistOnto(top, xs, DistOptions{Discrete: px.Values.Discrete, Color: color}); err != nil {
		return nil, fmt.Errorf("%s: %w", px.Label(), err)
	}
	if err := c.DistOnto(right, ys, DistOptions{Discrete: py.Values.Discrete, Color: color, Rotated: true}); err != nil {
		return nil, fmt.Errorf("%s: %w", py.Label(), err)
	}
	return fig, nil
}
