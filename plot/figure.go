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

// Style is the resolved appearance of a layer.
type Style struct {
	// Color is an SVG color, usually "#rrggbb".
	Color string

	// Alpha is the opacity in [0, 1].
	Alpha float64

	// Width is the stroke width of lines.
	Width float64

	// Dash draws lines dashed.
	Dash bool

	// Marker is the point marker: "o" for circles or "|" for
	// vertical ticks.
	Marker string

	// Size is the marker size.
	Size float64

	// Label is the legend entry of the layer, if any.
	Label string
}

// Rect is an axis-aligned bounding box. NaN bounds are unknown.
type Rect struct {
	XMin, XMax, YMin, YMax float64
}

// EmptyRect has every bound unknown.
var EmptyRect = Rect{math.NaN(), math.NaN(), math.NaN(), math.NaN()}

// Union returns the smallest Rect covering r and o, ignoring unknown
// bounds.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		XMin: nanMin(r.XMin, o.XMin),
		XMax: nanMax(r.XMax, o.XMax),
		YMin: nanMin(r.YMin, o.YMin),
		YMax: nanMax(r.YMax, o.YMax),
	}
}

func nanMin(a, b float64) float64 {
	if math.IsNaN(a) || b < a {
		return b
	}
	return a
}

func nanMax(a, b float64) float64 {
	if math.IsNaN(a) || b > a {
		return b
	}
	return a
}

// xyBounds returns the bounds of the finite points (xs[i], ys[i]).
func xyBounds(xs, ys []float64) Rect {
	r := EmptyRect
	for i := range xs {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		r = r.Union(Rect{x, x, y, y})
	}
	return r
}

// A Layer is one drawable element of a panel.
type Layer interface {
	// Bounds returns the data extent of the layer.
	Bounds() Rect
}

// Line is a polyline through (X[i], Y[i]).
type Line struct {
	X, Y []float64

	// Step draws the line as a staircase where Y[i] holds over
	// (X[i-1], X[i]].
	Step bool

	Style
}

func (l *Line) Bounds() Rect { return xyBounds(l.X, l.Y) }

// Bars is a histogram: bar i spans [Edges[i], Edges[i+1]] with height
// Heights[i].
type Bars struct {
	Edges, Heights []float64

	// Rotated draws the bars horizontally.
	Rotated bool

	Style
}

func (b *Bars) Bounds() Rect {
	if len(b.Heights) == 0 {
		return EmptyRect
	}
	r := Rect{b.Edges[0], b.Edges[len(b.Edges)-1], 0, floats.Max(b.Heights)}
	if b.Rotated {
		r = Rect{r.YMin, r.YMax, r.XMin, r.XMax}
	}
	return r
}

// Points is a set of markers at (X[i], Y[i]).
type Points struct {
	X, Y []float64
	Style
}

func (p *Points) Bounds() Rect { return xyBounds(p.X, p.Y) }

// Fill shades the area between the curve (X[i], Y[i]) and the x axis,
// or the y axis if Rotated.
type Fill struct {
	X, Y    []float64
	Rotated bool
	Style
}

func (f *Fill) Bounds() Rect {
	r := xyBounds(f.X, f.Y)
	if f.Rotated {
		return r.Union(Rect{0, 0, math.NaN(), math.NaN()})
	}
	return r.Union(Rect{math.NaN(), math.NaN(), 0, 0})
}

// Rule is a reference line at At, vertical (x = At) or horizontal
// (y = At). It spans [From, To] along the other axis, or the whole
// panel if those are NaN.
type Rule struct {
	At       float64
	Vertical bool
	From, To float64
	Style
}

func (r *Rule) Bounds() Rect {
	b := Rect{r.At, r.At, r.From, r.To}
	if math.IsNaN(r.From) {
		b.YMin, b.YMax = math.NaN(), math.NaN()
	}
	if !r.Vertical {
		b = Rect{b.YMin, b.YMax, b.XMin, b.XMax}
	}
	return b
}

// Tiles is a heat map: Z[i][j] is the value at (X[i], Y[j]). Style
// gives the color of the largest value; smaller values fade to white.
type Tiles struct {
	X, Y []float64
	Z    [][]float64
	Style
}

func (t *Tiles) Bounds() Rect {
	if len(t.X) == 0 || len(t.Y) == 0 {
		return EmptyRect
	}
	return Rect{t.X[0], t.X[len(t.X)-1], t.Y[0], t.Y[len(t.Y)-1]}
}

// Max returns the largest value of t.
func (t *Tiles) Max() float64 {
	m := 0.0
	for _, row := range t.Z {
		m = math.Max(m, floats.Max(row))
	}
	return m
}

// Hexes is a hexagonal-binned scatter plot. Style gives the color of
// the fullest bin.
type Hexes struct {
	Grid *stats.HexGrid
	Style
}

func (h *Hexes) Bounds() Rect {
	r := EmptyRect
	for _, hex := range h.Grid.Hexes {
		xs, ys := h.Grid.Vertices(hex)
		r = r.Union(xyBounds(xs[:], ys[:]))
	}
	return r
}

// Panel is one set of axes in a figure.
type Panel struct {
	Title          string
	XLabel, YLabel string

	// Legend shows the labels of labeled layers.
	Legend bool

	// HideYTicks omits the y axis ticks, as for density panels.
	HideYTicks bool

	Layers []Layer
}

// Add appends layers to p.
func (p *Panel) Add(layers ...Layer) {
	p.Layers = append(p.Layers, layers...)
}

// Bounds returns the union of the bounds of p's layers.
func (p *Panel) Bounds() Rect {
	r := EmptyRect
	for _, l := range p.Layers {
		r = r.Union(l.Bounds())
	}
	return r
}

// Figure is a grid of panels.
type Figure struct {
	Title      string
	Rows, Cols int

	// Panels are stored in row-major order. A nil panel is an
	// empty cell of the grid.
	Panels []*Panel

	// Animation, if not nil, holds layers drawn one frame at a
	// time over the static panels.
	Animation *Animation
}

// NewFigure returns a figure of rows×cols empty panels.
func NewFigure(rows, cols int) *Figure {
	f := &Figure{Rows: rows, Cols: cols, Panels: make([]*Panel, rows*cols)}
	for i := range f.Panels {
		f.Panels[i] = &Panel{}
	}
	return f
}

// At returns the panel at row r and column c.
func (f *Figure) At(r, c int) *Panel {
	return f.Panels[r*f.Cols+c]
}

// An Animation is a sequence of frames, each a set of layers to draw
// over the figure's static panels.
type Animation struct {
	Frames [][]FrameLayer
}

// FrameLayer is a layer drawn on panel Panel in one frame.
type FrameLayer struct {
	Panel int
	Layer Layer
}

// NumFrames returns the number of animation frames, which is 0 for a
// static figure.
func (f *Figure) NumFrames() int {
	if f.Animation == nil {
		return 0
	}
	return len(f.Animation.Frames)
}

// Frame returns a static copy of f with the layers of frame i added
// to its panels. f is not modified.
func (f *Figure) Frame(i int) (*Figure, error) {
	if i < 0 || i >= f.NumFrames() {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrInvalidArgument, i, f.NumFrames())
	}
	out := &Figure{Title: f.Title, Rows: f.Rows, Cols: f.Cols, Panels: make([]*Panel, len(f.Panels))}
	for j, p := range f.Panels {
		if p == nil {
			continue
		}
		cp := *p
		cp.Layers = append([]Layer(nil), p.Layers...)
		out.Panels[j] = &cp
	}
	for _, fl := range f.Animation.Frames[i] {
		out.Panels[fl.Panel].Add(fl.Layer)
	}
	return out, nil
}
