// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultBandwidthFactor is the bandwidth factor at which FastKDE
// uses Scott's rule unscaled.
const DefaultBandwidthFactor = 4.5

// DefaultGridSize is the default number of grid points of a FastKDE.
const DefaultGridSize = 1024

// ExtendBandwidths is how many bandwidths FastKDE pads the grid on
// each side of the sample unless Truncate is set.
const ExtendBandwidths = 3

// FastKDE represents options for constructing a binned kernel density
// estimate.
//
// Kernel density estimation constructs an estimate ƒ̂(x) of an unknown
// distribution ƒ(x) given a sample from that distribution. Evaluating
// a Gaussian at every sample for every output point costs O(nm);
// FastKDE instead bins the sample onto a regular grid (linear
// binning) and convolves the bin weights with a sampled Gaussian
// kernel using an FFT, which costs O(n + m log m).
//
// The density is reflected at both ends of the grid, so no mass is
// lost at the boundaries, and the result is normalized so its
// trapezoid integral over the grid is exactly 1.
//
// The default (zero) value of FastKDE is a reasonable default
// configuration.
type FastKDE struct {
	// BandwidthFactor scales the bandwidth. Larger values give
	// smoother estimates. The bandwidth is BandwidthScott scaled
	// by BandwidthFactor/DefaultBandwidthFactor. If this is zero,
	// DefaultBandwidthFactor is used.
	BandwidthFactor float64

	// GridSize is the number of grid points. It is rounded up to
	// a power of two. If this is zero, DefaultGridSize is used.
	GridSize int

	// Truncate limits the grid to [min(xs), max(xs)]. Otherwise
	// the grid extends ExtendBandwidths bandwidths beyond the
	// sample on each side.
	Truncate bool

	// Cumulative returns the cumulative density estimate instead
	// of the probability density.
	Cumulative bool
}

// Grid is a density sampled on an evenly spaced grid.
type Grid struct {
	// Density[i] is the density at Min + i*(Max-Min)/(len(Density)-1).
	Density []float64

	// Min and Max are the first and last grid points.
	Min, Max float64

	// Bandwidth is the kernel bandwidth used for the estimate.
	Bandwidth float64
}

// X returns the grid coordinates of g.
func (g *Grid) X() []float64 {
	if len(g.Density) == 1 {
		return []float64{g.Min}
	}
	return floats.Span(make([]float64, len(g.Density)), g.Min, g.Max)
}

// Step returns the spacing between grid points.
func (g *Grid) Step() float64 {
	return (g.Max - g.Min) / float64(len(g.Density)-1)
}

// At returns the density at x, linearly interpolated between grid
// points. It is 0 outside [g.Min, g.Max].
func (g *Grid) At(x float64) float64 {
	if x < g.Min || x > g.Max || len(g.Density) == 0 {
		return 0
	}
	pos := (x - g.Min) / g.Step()
	i := int(pos)
	if i >= len(g.Density)-1 {
		return g.Density[len(g.Density)-1]
	}
	frac := pos - float64(i)
	return g.Density[i]*(1-frac) + g.Density[i+1]*frac
}

// KDEOf returns the default FastKDE of xs.
func KDEOf(xs []float64) (*Grid, error) {
	return FastKDE{}.Estimate(xs)
}

// Estimate computes the kernel density estimate of xs. Non-finite
// values are ignored. It returns ErrDegenerateInput if xs has fewer
// than two distinct finite values.
func (k FastKDE) Estimate(xs []float64) (*Grid, error) {
	s := Finite(xs)
	s.Sort()
	if !s.distinct() {
		return nil, fmt.Errorf("%w: need at least two distinct finite values, have %d values", ErrDegenerateInput, len(s.Xs))
	}

	h, err := k.bandwidth(s)
	if err != nil {
		return nil, err
	}

	lo, hi := s.Bounds()
	if !k.Truncate {
		lo, hi = lo-ExtendBandwidths*h, hi+ExtendBandwidths*h
	}
	n := gridSize(k.GridSize, DefaultGridSize)
	dx := (hi - lo) / float64(n-1)

	density := smooth(linearBin(s.Xs, lo, dx, n), h/dx)
	area := trapezoid(density, dx)
	if !(area > 0) {
		return nil, fmt.Errorf("%w: density estimate vanished", ErrDegenerateInput)
	}
	floats.Scale(1/area, density)

	if k.Cumulative {
		density = cumulativeTrapezoid(density, dx)
	}
	return &Grid{Density: density, Min: lo, Max: hi, Bandwidth: h}, nil
}

func (k FastKDE) bandwidth(s Sample) (float64, error) {
	return scaledBandwidth(s, k.BandwidthFactor)
}

// scaledBandwidth returns Scott's bandwidth for s scaled by factor,
// falling back to Silverman's rule if s has a zero IQR.
func scaledBandwidth(s Sample, factor float64) (float64, error) {
	if factor == 0 {
		factor = DefaultBandwidthFactor
	}
	if !(factor > 0) {
		panic(fmt.Sprint("non-positive bandwidth factor ", factor))
	}
	h := BandwidthScott(s)
	if !(h > 0) {
		h = BandwidthSilverman(s)
	}
	if !(h > 0) || math.IsInf(h, 0) {
		return 0, fmt.Errorf("%w: zero variance", ErrDegenerateInput)
	}
	return h * factor / DefaultBandwidthFactor, nil
}

// BandwidthSilverman is a bandwidth estimator implementing
// Silverman's Rule of Thumb. It's fast, but not very robust to
// outliers as it assumes data is approximately normal.
//
// Silverman, B. W. (1986) Density Estimation.
func BandwidthSilverman(data interface {
	StdDev() float64
	Weight() float64
}) float64 {
	return 1.06 * data.StdDev() * math.Pow(data.Weight(), -1.0/5)
}

// BandwidthScott is a bandwidth estimator implementing Scott's Rule.
// This is generally robust to outliers: it chooses the minimum
// between the sample's standard deviation and an robust estimator of
// a Gaussian distribution's standard deviation.
//
// Scott, D. W. (1992) Multivariate Density Estimation: Theory,
// Practice, and Visualization.
func BandwidthScott(data interface {
	StdDev() float64
	Weight() float64
	Percentile(float64) float64
}) float64 {
	iqr := data.Percentile(0.75) - data.Percentile(0.25)
	hScale := 1.06 * math.Pow(data.Weight(), -1.0/5)
	stdDev := data.StdDev()
	if stdDev < iqr/1.349 {
		// Use Silverman's Rule of Thumb
		return hScale * stdDev
	} else {
		// Use IQR/1.349 as a robust estimator of the standard
		// deviation of a Gaussian distribution.
		return hScale * (iqr / 1.349)
	}
}

// TODO(austin) Implement bandwidth estimator from Botev, Grotowski,
// Kroese. (2010) Kernel Density Estimation via Diffusion.

// linearBin distributes each x between its two neighboring grid
// points lo+i*dx in proportion to its distance from them.
func linearBin(xs []float64, lo, dx float64, n int) []float64 {
	grid := make([]float64, n)
	for _, x := range xs {
		pos := (x - lo) / dx
		i := int(math.Floor(pos))
		if i < 0 || i >= n {
			continue
		}
		frac := pos - float64(i)
		if i+1 >= n {
			grid[i]++
			continue
		}
		grid[i] += 1 - frac
		grid[i+1] += frac
	}
	return grid
}

// trapezoid returns the trapezoid-rule integral of ys sampled with
// spacing dx.
func trapezoid(ys []float64, dx float64) float64 {
	if len(ys) < 2 {
		return 0
	}
	sum := floats.Sum(ys) - (ys[0]+ys[len(ys)-1])/2
	return sum * dx
}

// cumulativeTrapezoid returns the running trapezoid integral of ys,
// normalized to end at 1.
func cumulativeTrapezoid(ys []float64, dx float64) []float64 {
	out := make([]float64, len(ys))
	for i := 1; i < len(ys); i++ {
		out[i] = out[i-1] + (ys[i-1]+ys[i])/2*dx
	}
	if total := out[len(out)-1]; total > 0 {
		floats.Scale(1/total, out)
	}
	return out
}

// gridSize returns n (or def if n is 0) rounded up to a power of two.
func gridSize(n, def int) int {
	if n <= 0 {
		n = def
	}
	if n < 2 {
		n = 2
	}
	return nextPow2(n)
}
