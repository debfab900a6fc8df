// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/aclements/go-bayesplot/dataset"
)

// Divergence marker positions.
const (
	DivergencesBottom = "bottom"
	DivergencesTop    = "top"
	DivergencesNone   = "none"
)

// traceAlpha is the opacity of trace lines.
const traceAlpha = 0.35

// TraceOptions configures a trace plot.
type TraceOptions struct {
	// VarNames are the variables to plot. See dataset.VarNames.
	VarNames []string

	// Coords restricts the posterior before plotting.
	Coords map[string][]string

	// Combined plots one density of all chains instead of one per
	// chain.
	Combined bool

	// Compact plots every coordinate of a multi-dimensional
	// variable in one row instead of one row per coordinate.
	Compact bool

	// Divergences marks divergent transitions, taken from the
	// diverging variable of the sample_stats group, at the
	// DivergencesBottom (the default when empty) or DivergencesTop
	// of each panel. DivergencesNone disables the markers. If
	// there is no divergence data, no markers are drawn.
	Divergences string

	// Lines are reference values drawn as vertical rules on the
	// density panel and horizontal rules on the trace panel.
	Lines []RefLine

	// Legend labels the chains.
	Legend bool
}

// RefLine is a set of reference values for variable Var at
// selection Sel.
type RefLine struct {
	Var string

	// Sel must match the plotted selection exactly.
	Sel map[string]string

	Values []float64
}

// Trace returns a figure with one row per plotted variable and
// selection of the posterior: a density panel on the left and the
// sampled values against draw, one line per chain, on the right.
func (c *Config) Trace(id *dataset.InferenceData, opts TraceOptions) (*Figure, error) {
	c = c.resolve()
	switch opts.Divergences {
	case "", DivergencesBottom, DivergencesTop, DivergencesNone:
	default:
		return nil, fmt.Errorf("%w: divergences %q: want %q, %q or %q", ErrInvalidArgument, opts.Divergences, DivergencesBottom, DivergencesTop, DivergencesNone)
	}
	if opts.Divergences == "" {
		opts.Divergences = DivergencesBottom
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
	var skip []string
	if opts.Compact {
		for _, d := range ds.Dims() {
			if d != dataset.Chain && d != dataset.Draw {
				skip = append(skip, d)
			}
		}
	}
	plotters := c.limit("trace", slices.Collect(dataset.Iterate(ds, names, skip, false)))
	if len(plotters) == 0 {
		return nil, fmt.Errorf("%w: no variables to plot", ErrInvalidArgument)
	}

	var divergent [][]int
	if opts.Divergences != DivergencesNone {
		divergent, err = c.divergences(id, opts.Coords)
		if err != nil {
			return nil, err
		}
	}

	fig := NewFigure(len(plotters), 2)
	for i, p := range plotters {
		dens, tr := fig.At(i, 0), fig.At(i, 1)
		dens.Title, tr.Title = p.Label(), p.Label()
		tr.XLabel = dataset.Draw
		tr.Legend = opts.Legend

		chains := chainSeries(p.Values)
		for ch, series := range chains {
			color := c.Color(ch)
			label := ""
			if opts.Legend {
				label = fmt.Sprintf("chain %d", ch)
			}
			for j, ys := range series {
				style := Style{Color: color, Alpha: traceAlpha, Width: c.LineWidth}
				if j == 0 {
					style.Label = label
				}
				tr.Add(&Line{X: drawIndexes(len(ys)), Y: ys, Style: style})
				if opts.Combined {
					continue
				}
				dopts := DistOptions{Discrete: p.Values.Discrete, Color: color}
				if err := c.DistOnto(dens, ys, dopts); err != nil {
					return nil, fmt.Errorf("%s chain %d: %w", p.Label(), ch, err)
				}
			}
		}
		if opts.Combined && len(chains) > 0 {
			color := c.Color(len(chains))
			for j := range chains[0] {
				var pooled []float64
				for _, series := range chains {
					pooled = append(pooled, series[j]...)
				}
				dopts := DistOptions{Discrete: p.Values.Discrete, Color: color}
				if err := c.DistOnto(dens, pooled, dopts); err != nil {
					return nil, fmt.Errorf("%s: %w", p.Label(), err)
				}
			}
		}

		if divergent != nil {
			markDivergences(c, dens, tr, chains, divergent, opts.Divergences)
		}

		for _, ref := range opts.Lines {
			if ref.Var != p.Var || !selectionEqual(p.Sel, ref.Sel) {
				continue
			}
			for _, v := range ref.Values {
				rule := Style{Color: "#000000", Alpha: 0.75, Width: c.LineWidth}
				dens.Add(&Rule{At: v, Vertical: true, From: math.NaN(), To: math.NaN(), Style: rule})
				rule.Alpha = traceAlpha
				tr.Add(&Rule{At: v, From: math.NaN(), To: math.NaN(), Style: rule})
			}
		}
	}
	return fig, nil
}

// chainSeries splits the values of a trace plotter into
// series[chain][k][draw], where k ranges over the coordinates of any
// compacted dimensions.
func chainSeries(a *dataset.Array) [][][]float64 {
	var rows [][]float64
	if len(a.Dims) > 0 && a.Dims[0] == dataset.Chain {
		rows = a.Rows()
	} else {
		rows = [][]float64{a.Values}
	}
	if len(rows) == 0 {
		return nil
	}
	draws := a.Size(dataset.Draw)
	if draws == 0 {
		draws = len(rows[0])
	}
	out := make([][][]float64, len(rows))
	for ch, row := range rows {
		k := 1
		if draws > 0 {
			k = len(row) / draws
		}
		out[ch] = make([][]float64, k)
		for j := range out[ch] {
			ys := make([]float64, draws)
			for d := range ys {
				ys[d] = row[d*k+j]
			}
			out[ch][j] = ys
		}
	}
	return out
}

func drawIndexes(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

func selectionEqual(sel dataset.Selection, m map[string]string) bool {
	if len(sel) != len(m) {
		return false
	}
	for _, c := range sel {
		if l, ok := m[c.Dim]; !ok || l != c.Label {
			return false
		}
	}
	return true
}

// divergences returns the divergent draws of each chain, or nil if
// the inference data has no divergence information.
func (c *Config) divergences(id *dataset.InferenceData, coords map[string][]string) ([][]int, error) {
	ss, err := id.Group(dataset.SampleStats)
	if err != nil {
		c.Logger.Debug("no sample_stats group; divergences disabled")
		return nil, nil
	}
	if !ss.Has("diverging") {
		c.Logger.Debug("no diverging variable; divergences disabled")
		return nil, nil
	}
	// Only chain and draw selections apply to sampler statistics.
	sel := make(map[string][]string)
	for _, d := range []string{dataset.Chain, dataset.Draw} {
		if labels, ok := coords[d]; ok {
			sel[d] = labels
		}
	}
	ss, err = dataset.Select(ss, sel)
	if err != nil {
		return nil, err
	}
	div, err := ss.Var("diverging")
	if err != nil {
		return nil, err
	}

	var out [][]int
	for _, series := range chainSeries(div) {
		var draws []int
		for d, v := range series[0] {
			if v != 0 && !math.IsNaN(v) {
				draws = append(draws, d)
			}
		}
		out = append(out, draws)
	}
	c.Logger.Debug("loaded divergences", zap.Int("chains", len(out)))
	return out, nil
}

// markDivergences draws a tick at each divergent draw: on the trace
// panel at the draw, and on the density panel at the value drawn.
func markDivergences(c *Config, dens, tr *Panel, chains [][][]float64, divergent [][]int, where string) {
	var vals []float64
	for _, series := range chains {
		for _, ys := range series {
			vals = append(vals, ys...)
		}
	}
	if len(vals) == 0 {
		return
	}
	lo, hi := floats.Min(vals), floats.Max(vals)
	trY, densY := lo, 0.0
	if where == DivergencesTop {
		trY, densY = hi, densityMax(dens)
	}

	style := Style{Color: "#000000", Alpha: 1, Marker: "|", Size: c.MarkerSize * 2}
	var tx, ty, dx, dy []float64
	for ch, draws := range divergent {
		if ch >= len(chains) {
			break
		}
		for _, d := range draws {
			for _, ys := range chains[ch] {
				if d >= len(ys) {
					continue
				}
				tx, ty = append(tx, float64(d)), append(ty, trY)
				dx, dy = append(dx, ys[d]), append(dy, densY)
			}
		}
	}
	if len(tx) == 0 {
		return
	}
	tr.Add(&Points{X: tx, Y: ty, Style: style})
	dens.Add(&Points{X: dx, Y: dy, Style: style})
}
