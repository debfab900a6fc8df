// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Hex is one non-empty hexagonal bin.
type Hex struct {
	// X and Y are the center of the hexagon.
	X, Y float64

	Count int
}

// HexGrid is the result of hexagonal binning.
type HexGrid struct {
	// Hexes are the non-empty bins, ordered by center y then x.
	Hexes []Hex

	// Sx and Sy are the horizontal and vertical lattice spacing.
	Sx, Sy float64
}

// HexBin bins the points (xs[i], ys[i]) into a hexagonal grid with
// gridsize hexagons across the x range and gridsize/√3 down the y
// range. Points with a non-finite coordinate are ignored.
//
// The grid is the union of two rectangular lattices offset by half a
// cell; each point goes to the nearer lattice center, where distance
// is scaled so the cells are regular hexagons.
func HexBin(xs, ys []float64, gridsize int) (*HexGrid, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if gridsize < 1 {
		return nil, fmt.Errorf("%w: grid size %d", ErrInvalidBins, gridsize)
	}
	var fx, fy []float64
	for i := range xs {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			fx = append(fx, xs[i])
			fy = append(fy, ys[i])
		}
	}
	if len(fx) == 0 {
		return &HexGrid{}, nil
	}

	nx := gridsize
	ny := int(float64(nx) / math.Sqrt(3))
	if ny < 1 {
		ny = 1
	}
	xmin, xmax := nonsingular(floats.Min(fx), floats.Max(fx))
	ymin, ymax := nonsingular(floats.Min(fy), floats.Max(fy))
	pad := 1e-9 * (xmax - xmin)
	xmin, xmax = xmin-pad, xmax+pad
	sx := (xmax - xmin) / float64(nx)
	sy := (ymax - ymin) / float64(ny)

	type key struct {
		lattice int
		ix, iy  int
	}
	counts := make(map[key]int)
	for i := range fx {
		x, y := (fx[i]-xmin)/sx, (fy[i]-ymin)/sy
		ix1, iy1 := math.RoundToEven(x), math.RoundToEven(y)
		ix2, iy2 := math.Floor(x), math.Floor(y)
		d1 := (x-ix1)*(x-ix1) + 3*(y-iy1)*(y-iy1)
		d2 := (x-ix2-0.5)*(x-ix2-0.5) + 3*(y-iy2-0.5)*(y-iy2-0.5)
		if d1 < d2 {
			counts[key{0, int(ix1), int(iy1)}]++
		} else {
			counts[key{1, int(ix2), int(iy2)}]++
		}
	}

	g := &HexGrid{Sx: sx, Sy: sy}
	for k, c := range counts {
		off := 0.0
		if k.lattice == 1 {
			off = 0.5
		}
		g.Hexes = append(g.Hexes, Hex{
			X:     (float64(k.ix)+off)*sx + xmin,
			Y:     (float64(k.iy)+off)*sy + ymin,
			Count: c,
		})
	}
	sort.Slice(g.Hexes, func(i, j int) bool {
		a, b := g.Hexes[i], g.Hexes[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return g, nil
}

// hexShape is the unit hexagon in lattice units, scaled by (Sx, Sy/3).
var hexShape = [6][2]float64{{.5, -.5}, {.5, .5}, {0, 1}, {-.5, .5}, {-.5, -.5}, {0, -1}}

// Vertices returns the corners of the hexagon h.
func (g *HexGrid) Vertices(h Hex) (xs, ys [6]float64) {
	for i, v := range hexShape {
		xs[i] = h.X + v[0]*g.Sx
		ys[i] = h.Y + v[1]*g.Sy/3
	}
	return
}

// MaxCount returns the largest bin count.
func (g *HexGrid) MaxCount() int {
	max := 0
	for _, h := range g.Hexes {
		if h.Count > max {
			max = h.Count
		}
	}
	return max
}

// nonsingular widens an empty interval.
func nonsingular(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}
