// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/aclements/go-bayesplot/dataset"
	"github.com/aclements/go-bayesplot/stats"
)

// KindCumulative plots empirical CDFs in a posterior predictive plot.
const KindCumulative = "cumulative"

const (
	observedColor = "#000000"
	ppColor       = 5 // index into the color cycle
	meanColor     = 0
)

// PPCOptions configures a posterior predictive check plot.
type PPCOptions struct {
	// Kind is KindKDE (the default when empty), KindCumulative or
	// KindScatter.
	Kind string

	// Alpha is the opacity of the replicate curves. If zero, it is
	// 1 for animations, 0.7 for KindScatter and 0.2 otherwise.
	Alpha float64

	// HideMean omits the posterior predictive mean.
	HideMean bool

	// VarNames are observed variables. See dataset.VarNames.
	VarNames []string

	// Coords are resolved against the observed data and applied
	// by position to both the observed data and the posterior
	// predictive.
	Coords map[string][]string

	// Flatten lists the observed dimensions pooled into each
	// panel. If nil, every dimension is pooled; an empty non-nil
	// list pools none, giving one panel per coordinate.
	Flatten []string

	// FlattenPP is like Flatten for the posterior predictive. If
	// nil, it is Flatten.
	FlattenPP []string

	// DataPairs maps observed variable names to posterior
	// predictive names. Unlisted variables have the same name in
	// both groups.
	DataPairs map[string]string

	// NumPPSamples is the number of replicate draws to plot. If
	// zero, it is every draw, or at most 5 for a static
	// KindScatter plot. Fewer than all draws are chosen at random
	// without replacement.
	NumPPSamples int

	// Rand is the source for subsampling and jitter. If nil, a
	// randomly seeded source is used.
	Rand *rand.Rand

	// Jitter adds uniform noise of this many row heights to the
	// markers of a KindScatter plot. It must not be negative.
	Jitter float64

	// Animated puts the replicate curves in animation frames, one
	// frame per replicate draw, instead of drawing them all.
	Animated bool
}

type ppcPair struct {
	obs, pp dataset.Plotter
}

// PPC returns a posterior predictive check figure with one panel per
// plotted observed variable and selection. Each panel overlays the
// observed data, a set of replicate draws from the posterior
// predictive, and their mean.
func (c *Config) PPC(id *dataset.InferenceData, opts PPCOptions) (*Figure, error) {
	c = c.resolve()
	kind := opts.Kind
	if kind == "" {
		kind = KindKDE
	}
	switch kind {
	case KindKDE, KindCumulative, KindScatter:
	default:
		return nil, fmt.Errorf("%w %q: want %q, %q or %q", ErrInvalidKind, kind, KindKDE, KindCumulative, KindScatter)
	}
	if opts.Jitter < 0 {
		return nil, fmt.Errorf("%w: negative jitter %v", ErrInvalidArgument, opts.Jitter)
	}
	alpha := opts.Alpha
	if alpha == 0 {
		switch {
		case opts.Animated:
			alpha = 1
		case kind == KindScatter:
			alpha = 0.7
		default:
			alpha = 0.2
		}
	}

	obsDS, err := id.Group(dataset.ObservedData)
	if err != nil {
		return nil, err
	}
	ppDS, err := id.Group(dataset.PosteriorPredictive)
	if err != nil {
		return nil, err
	}

	chains, draws := ppDS.NumSamples()
	total := chains * draws
	numPP := opts.NumPPSamples
	switch {
	case numPP < 0:
		return nil, fmt.Errorf("%w: %d posterior predictive samples", ErrInvalidArgument, numPP)
	case numPP == 0 && kind == KindScatter && !opts.Animated:
		numPP = min(5, total)
	case numPP == 0:
		numPP = total
	}
	if numPP > total || numPP == 0 {
		return nil, fmt.Errorf("%w: requested %d posterior predictive samples, have %d", ErrInsufficientSamples, numPP, total)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	sampleIx := sampleIndexes(rng, total, numPP)

	pairs, err := c.ppcPairs(obsDS, ppDS, opts)
	if err != nil {
		return nil, err
	}

	rows, cols := gridShape(len(pairs))
	fig := NewFigure(rows, cols)
	for i := len(pairs); i < len(fig.Panels); i++ {
		fig.Panels[i] = nil
	}
	var frames [][]Layer
	if opts.Animated {
		frames = make([][]Layer, len(pairs))
	}
	for i, pr := range pairs {
		d := &ppcPanel{
			c:       c,
			p:       fig.Panels[i],
			kind:    kind,
			alpha:   alpha,
			opts:    &opts,
			rng:     rng,
			numPP:   numPP,
			obsName: pr.obs.Var,
			ppName:  pr.pp.Var,
		}
		d.p.XLabel = pr.obs.Label()
		d.p.Legend = true

		d.obs = pr.obs.Values.Values
		reps, err := replicates(pr.pp.Values)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pr.pp.Label(), err)
		}
		for _, ix := range sampleIx {
			d.reps = append(d.reps, reps[ix])
		}
		d.discrete = pr.pp.Values.Discrete

		if err := d.draw(); err != nil {
			return nil, fmt.Errorf("%s: %w", pr.obs.Label(), err)
		}
		if opts.Animated {
			frames[i] = d.frames
		}
	}

	if opts.Animated {
		fig.Animation = &Animation{Frames: make([][]FrameLayer, numPP)}
		for k := range fig.Animation.Frames {
			for i := range pairs {
				fig.Animation.Frames[k] = append(fig.Animation.Frames[k], FrameLayer{Panel: i, Layer: frames[i][k]})
			}
		}
	}
	return fig, nil
}

// ppcPairs matches observed and posterior predictive plotters.
func (c *Config) ppcPairs(obsDS, ppDS *dataset.Dataset, opts PPCOptions) ([]ppcPair, error) {
	names, err := dataset.VarNames(obsDS, opts.VarNames)
	if err != nil {
		return nil, err
	}

	idx := make(map[string][]int, len(opts.Coords))
	for dim, labels := range opts.Coords {
		is, err := dataset.Indices(obsDS, dim, labels)
		if err != nil {
			return nil, err
		}
		idx[dim] = is
	}
	obsSel, err := dataset.ISelect(obsDS, idx)
	if err != nil {
		return nil, err
	}
	ppSel, err := dataset.ISelect(ppDS, idx)
	if err != nil {
		return nil, fmt.Errorf("posterior predictive: %w", err)
	}

	flatten, flattenPP := opts.Flatten, opts.FlattenPP
	if flatten == nil {
		flatten = obsSel.Dims()
		if flattenPP == nil {
			flattenPP = ppSel.Dims()
		}
	}
	if flattenPP == nil {
		flattenPP = flatten
	}

	var pairs []ppcPair
	var obsPlotters []dataset.Plotter
	for _, name := range names {
		ppName := name
		if n, ok := opts.DataPairs[name]; ok {
			ppName = n
		}
		if !ppSel.Has(ppName) {
			return nil, fmt.Errorf("posterior predictive: %w: %q", dataset.ErrUnknownVariable, ppName)
		}
		obs := slices.Collect(dataset.Iterate(obsSel, []string{name}, flatten, true))
		pp := slices.Collect(dataset.Iterate(ppSel, []string{ppName}, flattenPP, true))
		if len(obs) != len(pp) {
			return nil, fmt.Errorf("%w: %s has %d selections but %s has %d", ErrInvalidArgument, name, len(obs), ppName, len(pp))
		}
		for k := range obs {
			pairs = append(pairs, ppcPair{obs[k], pp[k]})
		}
		obsPlotters = append(obsPlotters, obs...)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no variables to plot", ErrInvalidArgument)
	}
	return pairs[:len(c.limit("ppc", obsPlotters))], nil
}

// replicates splits a combined posterior predictive array into one
// slice per draw.
func replicates(a *dataset.Array) ([][]float64, error) {
	if len(a.Dims) == 0 || a.Dims[0] != dataset.Sample {
		return nil, fmt.Errorf("%w: posterior predictive has no chain or draw dimension", ErrInvalidArgument)
	}
	return a.Rows(), nil
}

// sampleIndexes returns n distinct indexes in [0, total). If n is
// total, they are in order.
func sampleIndexes(rng *rand.Rand, total, n int) []int {
	perm := make([]int, total)
	for i := range perm {
		perm[i] = i
	}
	if n == total {
		return perm
	}
	for i := 0; i < n; i++ {
		j := i + rng.IntN(total-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:n]
}

// gridShape returns a grid of at most 3 columns holding n panels.
func gridShape(n int) (rows, cols int) {
	cols = min(n, 3)
	return (n + cols - 1) / cols, cols
}

// ppcPanel draws one panel of a posterior predictive plot.
type ppcPanel struct {
	c     *Config
	p     *Panel
	kind  string
	alpha float64
	opts  *PPCOptions
	rng   *rand.Rand
	numPP int

	obsName, ppName string
	obs             []float64
	reps            [][]float64
	discrete        bool

	// frames are the per-replicate layers of an animation.
	frames []Layer
}

func (d *ppcPanel) observedLabel() string { return "Observed " + d.obsName }
func (d *ppcPanel) ppLabel() string       { return "Posterior predictive " + d.ppName }
func (d *ppcPanel) meanLabel() string     { return "Posterior predictive mean " + d.ppName }

func (d *ppcPanel) repStyle(i int) Style {
	s := Style{Color: d.c.Color(ppColor), Alpha: d.alpha, Width: 0.5 * d.c.LineWidth}
	if i == 0 {
		s.Label = d.ppLabel()
	}
	return s
}

func (d *ppcPanel) meanStyle() Style {
	return Style{Color: d.c.Color(meanColor), Alpha: 1, Width: d.c.LineWidth, Dash: true, Label: d.meanLabel()}
}

// addRep adds the layer for replicate i, to the panel or to the
// animation.
func (d *ppcPanel) addRep(l Layer) {
	if d.opts.Animated {
		d.frames = append(d.frames, l)
	} else {
		d.p.Add(l)
	}
}

func (d *ppcPanel) pooled() []float64 {
	var all []float64
	for _, r := range d.reps {
		all = append(all, r...)
	}
	return all
}

func (d *ppcPanel) draw() error {
	d.c.Logger.Debug("drawing posterior predictive panel",
		zap.String("observed", d.obsName),
		zap.String("kind", d.kind),
		zap.Int("replicates", len(d.reps)))
	switch d.kind {
	case KindKDE:
		d.p.HideYTicks = true
		if d.discrete {
			return d.drawHist()
		}
		return d.drawKDE()
	case KindCumulative:
		d.drawCumulative()
		return nil
	}
	return d.drawScatter()
}

func (d *ppcPanel) drawKDE() error {
	k := d.c.kde(0)
	g, err := k.Estimate(d.obs)
	if err != nil {
		return fmt.Errorf("observed: %w", err)
	}
	obsStyle := Style{Color: observedColor, Alpha: 1, Width: d.c.LineWidth, Label: d.observedLabel()}

	var grids []*stats.Grid
	for i, r := range d.reps {
		rg, err := k.Estimate(r)
		if err != nil {
			return fmt.Errorf("replicate %d: %w", i, err)
		}
		grids = append(grids, rg)
		d.addRep(&Line{X: rg.X(), Y: rg.Density, Style: d.repStyle(i)})
	}
	d.p.Add(&Line{X: g.X(), Y: g.Density, Style: obsStyle})

	if !d.opts.HideMean {
		xs, ys := meanDensity(grids)
		d.p.Add(&Line{X: xs, Y: ys, Style: d.meanStyle()})
	}
	return nil
}

// meanDensity averages densities on a common grid spanning all of
// them.
func meanDensity(grids []*stats.Grid) (xs, ys []float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, g := range grids {
		lo, hi = math.Min(lo, g.Min), math.Max(hi, g.Max)
	}
	xs = floats.Span(make([]float64, len(grids[0].Density)), lo, hi)
	ys = make([]float64, len(xs))
	for _, g := range grids {
		for j, x := range xs {
			ys[j] += g.At(x)
		}
	}
	floats.Scale(1/float64(len(grids)), ys)
	return xs, ys
}

func (d *ppcPanel) drawHist() error {
	all := append(slices.Clone(d.obs), d.pooled()...)
	edges, err := stats.BinsAuto.Resolve(all)
	if err != nil {
		return err
	}
	bins := stats.BinEdges(edges...)
	if len(edges) < 2 {
		return nil
	}
	step := func(vals []float64, style Style) (*Line, error) {
		h, err := stats.Histogram(vals, bins)
		if err != nil {
			return nil, err
		}
		dens := h.Density()
		ys := append([]float64{dens[0]}, dens...)
		return &Line{X: edges, Y: ys, Step: true, Style: style}, nil
	}

	for i, r := range d.reps {
		l, err := step(r, d.repStyle(i))
		if err != nil {
			return err
		}
		d.addRep(l)
	}
	l, err := step(d.obs, Style{Color: observedColor, Alpha: 1, Width: d.c.LineWidth, Label: d.observedLabel()})
	if err != nil {
		return err
	}
	d.p.Add(l)
	if !d.opts.HideMean {
		l, err := step(d.pooled(), d.meanStyle())
		if err != nil {
			return err
		}
		d.p.Add(l)
	}
	return nil
}

func (d *ppcPanel) drawCumulative() {
	ecdf := func(vals []float64, style Style) *Line {
		xs, fs := stats.ECDF(stats.Finite(vals).Xs)
		return &Line{X: xs, Y: fs, Step: d.discrete, Style: style}
	}
	for i, r := range d.reps {
		d.addRep(ecdf(r, d.repStyle(i)))
	}
	d.p.Add(ecdf(d.obs, Style{Color: observedColor, Alpha: 1, Width: d.c.LineWidth, Label: d.observedLabel()}))
	if !d.opts.HideMean {
		d.p.Add(ecdf(d.pooled(), d.meanStyle()))
	}
}

func (d *ppcPanel) drawScatter() error {
	limit := 1.0
	if !d.opts.HideMean {
		before := len(d.p.Layers)
		var err error
		if d.discrete {
			err = d.drawScatterMeanHist()
		} else {
			err = d.c.DistOnto(d.p, d.pooled(), DistOptions{Kind: KindKDE, Color: d.c.Color(meanColor), Label: d.meanLabel()})
		}
		if err != nil {
			return err
		}
		for _, l := range d.p.Layers[before:] {
			if line, ok := l.(*Line); ok {
				line.Dash = true
			}
		}
		limit = densityMax(d.p)
	}
	limit *= 1.05
	rowsY := floats.Span(make([]float64, d.numPP+1), 0, limit)
	scale := rowsY[1] - rowsY[0]

	heights := func(n int, y float64) []float64 {
		ys := make([]float64, n)
		for i := range ys {
			ys[i] = y
			if d.opts.Jitter > 0 {
				ys[i] += d.rng.Float64() * scale * d.opts.Jitter
			}
		}
		return ys
	}
	marker := func(alpha float64, color, label string) Style {
		return Style{Color: color, Alpha: alpha, Marker: "o", Size: d.c.MarkerSize, Label: label}
	}

	d.p.Add(&Points{X: d.obs, Y: heights(len(d.obs), 0), Style: marker(d.alpha, d.c.Color(meanColor), d.observedLabel())})
	for i, r := range d.reps {
		y := rowsY[i+1]
		if d.opts.Animated {
			y = limit / 2 * 0.5
		}
		style := marker(d.alpha, d.c.Color(ppColor), "")
		if i == 0 {
			style.Label = d.ppLabel()
		}
		d.addRep(&Points{X: r, Y: heights(len(r), y), Style: style})
	}
	return nil
}

func (d *ppcPanel) drawScatterMeanHist() error {
	vals := d.pooled()
	h, err := stats.Histogram(vals, stats.BinsAuto)
	if err != nil {
		return err
	}
	if len(h.Counts) == 0 {
		return nil
	}
	dens := h.Density()
	ys := append([]float64{dens[0]}, dens...)
	d.p.Add(&Line{X: h.Edges, Y: ys, Step: true, Style: d.meanStyle()})
	return nil
}
