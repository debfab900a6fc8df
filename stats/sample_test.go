// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func TestSamplePercentile(t *testing.T) {
	s := Sample{Xs: []float64{15, 20, 35, 40, 50}}
	testFunc(t, "Percentile", s.Percentile, map[float64]float64{
		-1: 15,
		0:  15,
		1:  50,
		2:  50,
	})
	if got := s.Percentile(0.5); got < 20 || got > 40 {
		t.Errorf("median of %v = %v; want within [20, 40]", s.Xs, got)
	}
	if s.Sorted {
		t.Errorf("Percentile sorted the receiver")
	}
}

func TestSampleMoments(t *testing.T) {
	s := Sample{Xs: []float64{2, 4, 4, 4, 5, 5, 7, 9}}
	if got := s.Mean(); !aeq(5, got) {
		t.Errorf("Mean = %v; want 5", got)
	}
	if got, want := s.StdDev(), math.Sqrt(32.0/7); !aeq(want, got) {
		t.Errorf("StdDev = %v; want %v", got, want)
	}
	lo, hi := s.Bounds()
	if lo != 2 || hi != 9 {
		t.Errorf("Bounds = %v, %v; want 2, 9", lo, hi)
	}

	var empty Sample
	if lo, hi := empty.Bounds(); !math.IsNaN(lo) || !math.IsNaN(hi) {
		t.Errorf("empty Bounds = %v, %v; want NaN, NaN", lo, hi)
	}
	if got := empty.StdDev(); got != 0 {
		t.Errorf("empty StdDev = %v; want 0", got)
	}
}

func TestFinite(t *testing.T) {
	s := Finite([]float64{1, math.NaN(), math.Inf(1), 2, math.Inf(-1)})
	if len(s.Xs) != 2 || s.Xs[0] != 1 || s.Xs[1] != 2 {
		t.Errorf("Finite = %v; want [1 2]", s.Xs)
	}
}
