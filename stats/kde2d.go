// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultGridSize2D is the default number of grid points along each
// axis of a FastKDE2D.
const DefaultGridSize2D = 128

// FastKDE2D represents options for constructing a binned bivariate
// kernel density estimate with a product Gaussian kernel. Each axis
// uses its own Scott bandwidth, so the kernel is axis-aligned.
//
// The default (zero) value of FastKDE2D is a reasonable default
// configuration.
type FastKDE2D struct {
	// BandwidthFactor scales both bandwidths, as in FastKDE.
	BandwidthFactor float64

	// GridSize is the number of grid points along each axis. It
	// is rounded up to a power of two. If this is zero,
	// DefaultGridSize2D is used.
	GridSize int
}

// Grid2D is a bivariate density sampled on a regular grid.
type Grid2D struct {
	// Density[i][j] is the density at (X()[i], Y()[j]).
	Density [][]float64

	XMin, XMax float64
	YMin, YMax float64
}

// X returns the grid coordinates along the x axis.
func (g *Grid2D) X() []float64 {
	return floats.Span(make([]float64, len(g.Density)), g.XMin, g.XMax)
}

// Y returns the grid coordinates along the y axis.
func (g *Grid2D) Y() []float64 {
	return floats.Span(make([]float64, len(g.Density[0])), g.YMin, g.YMax)
}

// Max returns the largest density value.
func (g *Grid2D) Max() float64 {
	max := 0.0
	for _, row := range g.Density {
		max = math.Max(max, floats.Max(row))
	}
	return max
}

// Estimate computes the kernel density estimate of the points
// (xs[i], ys[i]). Points with a non-finite coordinate are ignored.
func (k FastKDE2D) Estimate(xs, ys []float64) (*Grid2D, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(xs), len(ys))
	}
	var fx, fy []float64
	for i := range xs {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			fx = append(fx, xs[i])
			fy = append(fy, ys[i])
		}
	}

	n := gridSize(k.GridSize, DefaultGridSize2D)
	var lo, hi, h [2]float64
	for axis, vals := range [2][]float64{fx, fy} {
		s := Sample{Xs: vals}.Copy().Sort()
		if !s.distinct() {
			return nil, fmt.Errorf("%w: axis %d needs at least two distinct finite values", ErrDegenerateInput, axis)
		}
		bw, err := scaledBandwidth(*s, k.BandwidthFactor)
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", axis, err)
		}
		min, max := s.Bounds()
		lo[axis], hi[axis], h[axis] = min-ExtendBandwidths*bw, max+ExtendBandwidths*bw, bw
	}
	dx := (hi[0] - lo[0]) / float64(n-1)
	dy := (hi[1] - lo[1]) / float64(n-1)

	density := make([][]float64, n)
	for i := range density {
		density[i] = make([]float64, n)
	}
	for p := range fx {
		px, py := (fx[p]-lo[0])/dx, (fy[p]-lo[1])/dy
		i, j := int(px), int(py)
		fi, fj := px-float64(i), py-float64(j)
		for di, wi := range [2]float64{1 - fi, fi} {
			for dj, wj := range [2]float64{1 - fj, fj} {
				if i+di < n && j+dj < n {
					density[i+di][j+dj] += wi * wj
				}
			}
		}
	}

	// The kernel is separable: smooth each row along y, then each
	// column along x.
	for i := range density {
		density[i] = smooth(density[i], h[1]/dy)
	}
	col := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := range density {
			col[i] = density[i][j]
		}
		sm := smooth(col, h[0]/dx)
		for i := range density {
			density[i][j] = sm[i]
		}
	}

	total := 0.0
	for _, row := range density {
		total += floats.Sum(row)
	}
	total *= dx * dy
	if !(total > 0) {
		return nil, fmt.Errorf("%w: density estimate vanished", ErrDegenerateInput)
	}
	for _, row := range density {
		floats.Scale(1/total, row)
	}

	return &Grid2D{Density: density, XMin: lo[0], XMax: hi[0], YMin: lo[1], YMax: hi[1]}, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
