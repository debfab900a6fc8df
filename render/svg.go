// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	svg "github.com/ajstarks/svgo"
	"go.uber.org/zap"

	"github.com/aclements/go-bayesplot/plot"
)

// Panel layout in pixels.
const (
	padLeft   = 48
	padRight  = 12
	padTop    = 22
	padBottom = 36
	labelPad  = 16
	titleSize = 24

	tickLen    = 4
	tickSpaceX = 70
	tickSpaceY = 40
)

// svgBackend lays out figures itself and writes them with svgo.
type svgBackend struct {
	opts Options
}

func (b *svgBackend) Name() string { return "svg" }

func (b *svgBackend) Render(w io.Writer, f *plot.Figure) error {
	if err := checkFigure(f); err != nil {
		return err
	}
	ew := &errWriter{w: w}
	width, height := b.opts.size(f)
	c := &canvas{SVG: svg.New(ew), log: b.opts.logger()}
	c.Start(width, height, `font-family="sans-serif" font-size="10"`)
	c.Rect(0, 0, width, height, "fill:white")

	top := 0
	if f.Title != "" {
		c.Title(f.Title)
		c.Text(width/2, titleSize-6, f.Title, "text-anchor:middle;font-size:14px")
		top = titleSize
	}
	cw, ch := width/max(1, f.Cols), (height-top)/max(1, f.Rows)
	for i, p := range f.Panels {
		if p == nil {
			continue
		}
		r, col := i/f.Cols, i%f.Cols
		c.panel(i, p, col*cw, top+r*ch, cw, ch)
	}
	c.End()
	return ew.err
}

// errWriter remembers the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

type canvas struct {
	*svg.SVG
	log *zap.Logger
}

// frame maps data coordinates to a panel's plot area.
type frame struct {
	x0, y0, w, h int
	xs, ys       scale.Linear
}

func (fr *frame) px(x float64) int {
	return fr.x0 + int(math.Round(fr.xs.Map(x)*float64(fr.w)))
}

func (fr *frame) py(y float64) int {
	return fr.y0 + fr.h - int(math.Round(fr.ys.Map(y)*float64(fr.h)))
}

// axisRange pads [lo, hi] so data does not touch the frame.
func axisRange(lo, hi float64) (float64, float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 1
	}
	if lo == hi {
		d := math.Max(math.Abs(lo)*0.1, 0.5)
		return lo - d, hi + d
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

func (c *canvas) panel(i int, p *plot.Panel, x, y, w, h int) {
	left := padLeft
	if p.YLabel != "" {
		left += labelPad
	}
	bottom := padBottom
	if p.XLabel != "" {
		bottom += labelPad / 2
	}
	fr := &frame{x0: x + left, y0: y + padTop, w: w - left - padRight, h: h - padTop - bottom}
	if fr.w <= 0 || fr.h <= 0 {
		c.log.Debug("panel too small to draw", zap.Int("panel", i))
		return
	}
	bounds := p.Bounds()
	xmin, xmax := axisRange(bounds.XMin, bounds.XMax)
	ymin, ymax := axisRange(bounds.YMin, bounds.YMax)
	fr.xs = scale.Linear{Min: xmin, Max: xmax}
	fr.ys = scale.Linear{Min: ymin, Max: ymax}

	c.Rect(fr.x0, fr.y0, fr.w, fr.h, "fill:#fafafa;stroke:#888")
	c.axes(fr, p)

	clip := "clip" + strconv.Itoa(i)
	c.ClipPath(`id="` + clip + `"`)
	c.Rect(fr.x0, fr.y0, fr.w, fr.h)
	c.ClipEnd()
	c.Group(`clip-path="url(#` + clip + `)"`)
	for _, l := range p.Layers {
		c.layer(fr, l)
	}
	c.Gend()

	if p.Title != "" {
		c.Text(fr.x0+fr.w/2, fr.y0-6, p.Title, "text-anchor:middle;font-size:12px")
	}
	if p.Legend {
		c.legend(fr, p)
	}
}

func (c *canvas) axes(fr *frame, p *plot.Panel) {
	xt, _ := fr.xs.Ticks(scale.TickOptions{Max: max(2, fr.w/tickSpaceX)})
	for _, t := range xt {
		x := fr.px(t)
		c.Line(x, fr.y0+fr.h, x, fr.y0+fr.h+tickLen, "stroke:#888")
		c.Text(x, fr.y0+fr.h+tickLen+10, tickLabel(t), "text-anchor:middle;fill:#444")
	}
	if !p.HideYTicks {
		yt, _ := fr.ys.Ticks(scale.TickOptions{Max: max(2, fr.h/tickSpaceY)})
		for _, t := range yt {
			y := fr.py(t)
			c.Line(fr.x0-tickLen, y, fr.x0, y, "stroke:#888")
			c.Text(fr.x0-tickLen-2, y+3, tickLabel(t), "text-anchor:end;fill:#444")
		}
	}
	if p.XLabel != "" {
		c.Text(fr.x0+fr.w/2, fr.y0+fr.h+padBottom-6, p.XLabel, "text-anchor:middle")
	}
	if p.YLabel != "" {
		x, y := fr.x0-padLeft-labelPad/2, fr.y0+fr.h/2
		c.Text(x, y, p.YLabel, fmt.Sprintf(`text-anchor="middle" transform="rotate(-90 %d %d)"`, x, y))
	}
}

func tickLabel(v float64) string {
	if math.Abs(v) < 1e-12 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func colorOf(s plot.Style) string {
	if s.Color == "" {
		return "#000000"
	}
	return s.Color
}

func strokeStyle(s plot.Style) string {
	st := fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%.3g;stroke-width:%.3g", colorOf(s), s.Alpha, math.Max(s.Width, 0.5))
	if s.Dash {
		st += ";stroke-dasharray:5,3"
	}
	return st
}

func fillStyle(color string, alpha float64) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%.3g;stroke:none", color, alpha)
}

func (c *canvas) layer(fr *frame, l plot.Layer) {
	var label string
	switch l := l.(type) {
	case *plot.Line:
		label = l.Label
	case *plot.Bars:
		label = l.Label
	case *plot.Points:
		label = l.Label
	case *plot.Fill:
		label = l.Label
	}
	if label != "" {
		c.Group()
		c.Title(label)
		defer c.Gend()
	}

	switch l := l.(type) {
	case *plot.Line:
		xs, ys := l.X, l.Y
		if l.Step {
			xs, ys = stepPath(xs, ys)
		}
		c.polylines(fr, xs, ys, strokeStyle(l.Style))

	case *plot.Bars:
		style := fillStyle(colorOf(l.Style), l.Alpha) + ";stroke:white;stroke-width:0.5"
		for k, hgt := range l.Heights {
			x0, x1, y0, y1 := fr.px(l.Edges[k]), fr.px(l.Edges[k+1]), fr.py(0), fr.py(hgt)
			if l.Rotated {
				x0, x1, y0, y1 = fr.px(0), fr.px(hgt), fr.py(l.Edges[k]), fr.py(l.Edges[k+1])
			}
			c.Rect(min(x0, x1), min(y0, y1), abs(x1-x0), abs(y1-y0), style)
		}

	case *plot.Points:
		style := fillStyle(colorOf(l.Style), l.Alpha)
		r := max(1, int(math.Round(l.Size/2)))
		for k := range l.X {
			if !finite(l.X[k]) || !finite(l.Y[k]) {
				continue
			}
			x, y := fr.px(l.X[k]), fr.py(l.Y[k])
			if l.Marker == "|" {
				c.Line(x, y-r, x, y+r, strokeStyle(plot.Style{Color: l.Color, Alpha: l.Alpha, Width: 1}))
			} else {
				c.Circle(x, y, r, style)
			}
		}

	case *plot.Fill:
		xs, ys := fillOutline(l.X, l.Y, l.Rotated)
		px, py := fr.pixels(xs, ys)
		if len(px) > 2 {
			c.Polygon(px, py, fillStyle(colorOf(l.Style), l.Alpha))
		}

	case *plot.Rule:
		xs, ys := ruleEnds(l, plot.Rect{
			XMin: fr.xs.Min, XMax: fr.xs.Max,
			YMin: fr.ys.Min, YMax: fr.ys.Max,
		})
		c.Line(fr.px(xs[0]), fr.py(ys[0]), fr.px(xs[1]), fr.py(ys[1]), strokeStyle(l.Style))

	case *plot.Tiles:
		top := l.Max()
		if !(top > 0) || len(l.X) < 2 || len(l.Y) < 2 {
			return
		}
		base := parseColor(colorOf(l.Style))
		dx, dy := (l.X[1]-l.X[0])/2, (l.Y[1]-l.Y[0])/2
		for xi, x := range l.X {
			for yi, y := range l.Y {
				f := l.Z[xi][yi] / top
				if f < 0.005 {
					continue
				}
				x0, x1, y0, y1 := fr.px(x-dx), fr.px(x+dx), fr.py(y+dy), fr.py(y-dy)
				c.Rect(x0, y0, max(1, x1-x0), max(1, y1-y0), fillStyle(hex(fade(base, f)), l.Alpha))
			}
		}

	case *plot.Hexes:
		top := float64(l.Grid.MaxCount())
		base := parseColor(colorOf(l.Style))
		for _, h := range l.Grid.Hexes {
			vx, vy := l.Grid.Vertices(h)
			px, py := fr.pixels(vx[:], vy[:])
			c.Polygon(px, py, fillStyle(hex(fade(base, float64(h.Count)/top)), l.Alpha)+";stroke:white;stroke-width:0.3")
		}

	default:
		c.log.Debug("svg backend skipping layer", zap.String("type", fmt.Sprintf("%T", l)))
	}
}

// polylines draws the finite runs of (xs, ys).
func (c *canvas) polylines(fr *frame, xs, ys []float64, style string) {
	var px, py []int
	flush := func() {
		if len(px) > 1 {
			c.Polyline(px, py, style)
		}
		px, py = nil, nil
	}
	for k := range xs {
		if !finite(xs[k]) || !finite(ys[k]) {
			flush()
			continue
		}
		px, py = append(px, fr.px(xs[k])), append(py, fr.py(ys[k]))
	}
	flush()
}

// pixels maps the finite points of (xs, ys) to pixels.
func (fr *frame) pixels(xs, ys []float64) (px, py []int) {
	for k := range xs {
		if finite(xs[k]) && finite(ys[k]) {
			px, py = append(px, fr.px(xs[k])), append(py, fr.py(ys[k]))
		}
	}
	return
}

// stepPath expands a step line so Y[i] holds over (X[i-1], X[i]].
func stepPath(xs, ys []float64) ([]float64, []float64) {
	if len(xs) == 0 {
		return nil, nil
	}
	sx, sy := []float64{xs[0]}, []float64{ys[0]}
	for i := 1; i < len(xs); i++ {
		sx = append(sx, xs[i-1], xs[i])
		sy = append(sy, ys[i], ys[i])
	}
	return sx, sy
}

func (c *canvas) legend(fr *frame, p *plot.Panel) {
	type entry struct {
		label string
		style plot.Style
	}
	var entries []entry
	for _, l := range p.Layers {
		var s plot.Style
		switch l := l.(type) {
		case *plot.Line:
			s = l.Style
		case *plot.Bars:
			s = l.Style
		case *plot.Points:
			s = l.Style
		default:
			continue
		}
		if s.Label != "" {
			entries = append(entries, entry{s.Label, s})
		}
	}
	if len(entries) == 0 {
		return
	}
	const rowH, swatch = 13, 16
	wid := 0
	for _, e := range entries {
		wid = max(wid, 6*len(e.label))
	}
	wid += swatch + 14
	x, y := fr.x0+fr.w-wid-4, fr.y0+4
	c.Rect(x, y, wid, rowH*len(entries)+6, "fill:white;fill-opacity:0.8;stroke:#ccc")
	for k, e := range entries {
		ly := y + 3 + rowH*k + rowH/2
		s := e.style
		s.Alpha = math.Max(s.Alpha, 0.6)
		s.Width = math.Max(s.Width, 1.5)
		c.Line(x+4, ly, x+4+swatch, ly, strokeStyle(s))
		c.Text(x+8+swatch, ly+3, e.label)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
