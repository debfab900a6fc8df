// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is a collection of unweighted observations.
type Sample struct {
	Xs []float64

	// Sorted indicates that Xs is sorted in ascending order.
	Sorted bool
}

// Finite returns a sample of the finite values of xs. The result does
// not share storage with xs.
func Finite(xs []float64) Sample {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return Sample{Xs: out}
}

// Weight returns the total weight of the sample.
func (s Sample) Weight() float64 {
	return float64(len(s.Xs))
}

// Bounds returns the minimum and maximum values of the sample. If the
// sample is empty, it returns NaN, NaN.
func (s Sample) Bounds() (min float64, max float64) {
	if len(s.Xs) == 0 {
		return nan, nan
	}
	if s.Sorted {
		return s.Xs[0], s.Xs[len(s.Xs)-1]
	}
	return floats.Min(s.Xs), floats.Max(s.Xs)
}

// Mean returns the arithmetic mean of the sample.
func (s Sample) Mean() float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	return stat.Mean(s.Xs, nil)
}

// StdDev returns the sample standard deviation. It is 0 for samples
// with fewer than two values.
func (s Sample) StdDev() float64 {
	if len(s.Xs) < 2 {
		return 0
	}
	return stat.StdDev(s.Xs, nil)
}

// Percentile returns the pctileth value from the sample. pctile is in
// [0, 1] and is clamped to that range. This uses linear interpolation
// of the empirical CDF.
func (s Sample) Percentile(pctile float64) float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	if pctile <= 0 {
		min, _ := s.Bounds()
		return min
	} else if pctile >= 1 {
		_, max := s.Bounds()
		return max
	}
	if !s.Sorted {
		s = *s.Copy().Sort()
	}
	return stat.Quantile(pctile, stat.LinInterp, s.Xs, nil)
}

// IQR returns the interquartile range of the sample.
func (s Sample) IQR() float64 {
	if !s.Sorted {
		s = *s.Copy().Sort()
	}
	return s.Percentile(0.75) - s.Percentile(0.25)
}

// Sort sorts the samples in place in s and returns s.
func (s *Sample) Sort() *Sample {
	if !s.Sorted {
		sort.Float64s(s.Xs)
		s.Sorted = true
	}
	return s
}

// Copy returns a copy of s.
func (s Sample) Copy() *Sample {
	xs := make([]float64, len(s.Xs))
	copy(xs, s.Xs)
	return &Sample{xs, s.Sorted}
}

// distinct reports whether a sorted sample holds at least two
// different values.
func (s Sample) distinct() bool {
	min, max := s.Bounds()
	return len(s.Xs) >= 2 && min != max
}
