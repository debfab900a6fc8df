// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"go.uber.org/zap"

	"github.com/aclements/go-bayesplot/plot"
)

// Marks of the gg data table, in drawing order.
const (
	markArea  = "area"
	markTile  = "tile"
	markPath  = "path"
	markStep  = "step"
	markPoint = "point"
)

var markOrder = []string{markTile, markArea, markPath, markStep, markPoint}

// ggBackend renders figures through go-gg. Every layer becomes rows
// of one long table with row and col columns to facet by, a series
// column to group by, a mark column selecting the gg layer, and x, y
// and color columns. Each facet row is labeled with its first panel
// title.
type ggBackend struct {
	opts Options
}

func (b *ggBackend) Name() string { return "gg" }

func (b *ggBackend) Render(w io.Writer, f *plot.Figure) error {
	if err := checkFigure(f); err != nil {
		return err
	}
	d := &ggData{log: b.opts.logger()}
	for i, p := range f.Panels {
		if p != nil {
			d.addPanel(i, p)
		}
	}
	if len(d.x) == 0 {
		return ErrEmptyFigure
	}

	rows, cols := make([]int, len(d.panel)), make([]int, len(d.panel))
	for i, p := range d.panel {
		rows[i], cols[i] = p/f.Cols, p%f.Cols
	}
	tab := table.NewBuilder(nil).
		Add("row", rows).
		Add("col", cols).
		Add("series", d.series).
		Add("mark", d.mark).
		Add("x", d.x).
		Add("y", d.y).
		Add("color", d.color).
		Done()

	// go-gg cannot split scales under FacetWrap. Splitting both
	// scales in both facets gives every cell its own axes.
	plt := gg.NewPlot(tab)
	plt.Add(gg.FacetX{
		Col:          "col",
		SplitXScales: true,
		SplitYScales: true,
		Labeler:      func(interface{}) string { return "" },
	})
	plt.Add(gg.FacetY{
		Col:          "row",
		SplitXScales: true,
		SplitYScales: true,
		Labeler: func(v interface{}) string {
			if r, ok := v.(int); ok {
				return rowTitle(f, r)
			}
			return fmt.Sprint(v)
		},
	})
	for _, m := range markOrder {
		if !d.marks[m] {
			continue
		}
		plt.Save()
		plt.SetData(table.FilterEq(plt.Data(), "mark", m))
		plt.GroupBy("series")
		paths := gg.LayerPaths{X: "x", Y: "y", Color: "color"}
		switch m {
		case markArea:
			plt.Add(gg.LayerPaths{X: "x", Y: "y", Fill: "color"})
		case markTile:
			plt.Add(gg.LayerTiles{X: "x", Y: "y", Fill: "color"})
		case markPath:
			plt.Add(paths)
		case markStep:
			plt.Add(gg.LayerSteps{LayerPaths: paths, Step: gg.StepVH})
		case markPoint:
			plt.Add(gg.LayerPoints{X: "x", Y: "y", Color: "color"})
		}
		plt.Restore()
	}

	width, height := b.opts.size(f)
	return plt.WriteSVG(w, width, height)
}

// rowTitle returns the first panel title in row r of f.
func rowTitle(f *plot.Figure, r int) string {
	for c := range f.Cols {
		if p := f.At(r, c); p != nil && p.Title != "" {
			return p.Title
		}
	}
	return ""
}

// ggData accumulates the columns of the gg table.
type ggData struct {
	log *zap.Logger

	panel, series []int
	mark          []string
	x, y          []float64
	color         []color.Color

	nseries int
	marks   map[string]bool
}

// add adds one series of color c. Points with a non-finite coordinate
// are dropped.
func (d *ggData) add(panel int, mark string, xs, ys []float64, c color.Color) {
	d.addColors(panel, mark, xs, ys, func(int) color.Color { return c })
}

// addColors is like add, but point i has color c(i).
func (d *ggData) addColors(panel int, mark string, xs, ys []float64, c func(i int) color.Color) {
	s := d.nseries
	d.nseries++
	n := 0
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		d.panel = append(d.panel, panel)
		d.series = append(d.series, s)
		d.mark = append(d.mark, mark)
		d.x = append(d.x, xs[i])
		d.y = append(d.y, ys[i])
		d.color = append(d.color, c(i))
		n++
	}
	if n > 0 {
		if d.marks == nil {
			d.marks = make(map[string]bool)
		}
		d.marks[mark] = true
	}
}

func (d *ggData) addPanel(i int, p *plot.Panel) {
	bounds := p.Bounds()
	for _, l := range p.Layers {
		switch l := l.(type) {
		case *plot.Line:
			mark := markPath
			if l.Step {
				mark = markStep
			}
			d.add(i, mark, l.X, l.Y, styleColor(l.Style))

		case *plot.Bars:
			xs, ys := barOutline(l.Edges, l.Heights)
			if l.Rotated {
				xs, ys = ys, xs
			}
			d.add(i, markArea, xs, ys, styleColor(l.Style))

		case *plot.Fill:
			xs, ys := fillOutline(l.X, l.Y, l.Rotated)
			d.add(i, markArea, xs, ys, styleColor(l.Style))

		case *plot.Points:
			d.add(i, markPoint, l.X, l.Y, styleColor(l.Style))

		case *plot.Rule:
			xs, ys := ruleEnds(l, bounds)
			d.add(i, markPath, xs, ys, styleColor(l.Style))

		case *plot.Tiles:
			top := l.Max()
			if !(top > 0) {
				break
			}
			base := parseColor(l.Color)
			var xs, ys []float64
			var cs []color.Color
			for xi, x := range l.X {
				for yi, y := range l.Y {
					xs, ys = append(xs, x), append(ys, y)
					cs = append(cs, fade(base, l.Z[xi][yi]/top))
				}
			}
			d.addColors(i, markTile, xs, ys, func(k int) color.Color { return cs[k] })

		case *plot.Hexes:
			top := float64(l.Grid.MaxCount())
			base := parseColor(l.Color)
			for _, h := range l.Grid.Hexes {
				vx, vy := l.Grid.Vertices(h)
				xs, ys := append(vx[:], vx[0]), append(vy[:], vy[0])
				d.add(i, markArea, xs, ys, fade(base, float64(h.Count)/top))
			}

		default:
			d.log.Debug("gg backend skipping layer", zap.String("type", fmt.Sprintf("%T", l)))
		}
	}
}

func styleColor(s plot.Style) color.Color {
	return withAlpha(parseColor(s.Color), s.Alpha)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// barOutline returns the closed outline of a histogram.
func barOutline(edges, heights []float64) (xs, ys []float64) {
	if len(heights) == 0 {
		return nil, nil
	}
	xs, ys = []float64{edges[0]}, []float64{0}
	for i, h := range heights {
		xs = append(xs, edges[i], edges[i+1])
		ys = append(ys, h, h)
	}
	xs = append(xs, edges[len(heights)], edges[0])
	ys = append(ys, 0, 0)
	return
}

// fillOutline closes the curve (xs, ys) along the axis.
func fillOutline(xs, ys []float64, rotated bool) ([]float64, []float64) {
	if len(xs) == 0 {
		return nil, nil
	}
	ox := append(append([]float64(nil), xs...), 0, 0)
	oy := append(append([]float64(nil), ys...), 0, 0)
	n := len(xs)
	if rotated {
		oy[n], oy[n+1] = ys[n-1], ys[0]
	} else {
		ox[n], ox[n+1] = xs[n-1], xs[0]
	}
	return ox, oy
}

// ruleEnds returns the end points of a rule, spanning bounds where
// the rule has no extent of its own.
func ruleEnds(r *plot.Rule, bounds plot.Rect) (xs, ys []float64) {
	from, to := r.From, r.To
	lo, hi := bounds.YMin, bounds.YMax
	if !r.Vertical {
		lo, hi = bounds.XMin, bounds.XMax
	}
	if math.IsNaN(from) || math.IsNaN(to) {
		from, to = lo, hi
	}
	if r.Vertical {
		return []float64{r.At, r.At}, []float64{from, to}
	}
	return []float64{from, to}, []float64{r.At, r.At}
}
