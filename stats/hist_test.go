// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func checkHist(t *testing.T, name string, h *Hist, n int) {
	t.Helper()
	if got := h.Total(); got != n {
		t.Errorf("%s: counted %d samples; want %d", name, got, n)
	}
	if len(h.Edges) != len(h.Counts)+1 {
		t.Errorf("%s: %d edges for %d bins", name, len(h.Edges), len(h.Counts))
	}
	for i := 1; i < len(h.Edges); i++ {
		if !(h.Edges[i] > h.Edges[i-1]) {
			t.Errorf("%s: edges not increasing at %d: %v", name, i, h.Edges)
			break
		}
	}
}

func TestHistogramAuto(t *testing.T) {
	for name, xs := range map[string][]float64{
		"wobble":   wobble(1000),
		"small":    {0.1, 0.7, 0.3},
		"constant": {2.5, 2.5, 2.5},
		"integers": {1, 2, 2, 3, 3, 3, 10},
		"wide":     {0, 1e6},
	} {
		h, err := Histogram(xs, BinsAuto)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		checkHist(t, name, h, len(xs))
		if len(h.Counts) > MaxAutoBins {
			t.Errorf("%s: %d bins exceeds MaxAutoBins", name, len(h.Counts))
		}
	}
}

func TestHistogramAutoSturges(t *testing.T) {
	// The IQR is zero, so the bin width is Sturges' range/(log2(n)+1).
	xs := []float64{0, 0, 0, 0, 0, 0, 0, 1.5}
	h, err := Histogram(xs, BinsAuto)
	if err != nil {
		t.Fatal(err)
	}
	want := &Hist{Counts: []int{7, 0, 0, 1}, Edges: []float64{0, 0.375, 0.75, 1.125, 1.5}}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("got %+v; want %+v", h, want)
	}
}

func TestHistogramNonFinite(t *testing.T) {
	xs := []float64{0.25, math.NaN(), 0.75, math.Inf(1), 1.25, math.Inf(-1), 1.75}
	for name, bins := range map[string]Bins{
		"auto":  BinsAuto,
		"count": BinCount(2),
	} {
		h, err := Histogram(xs, bins)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		// Only the four finite values are counted.
		checkHist(t, name, h, 4)
		if h.Edges[0] != 0.25 || h.Edges[len(h.Edges)-1] != 1.75 {
			t.Errorf("%s: edges %v; want range [0.25, 1.75]", name, h.Edges)
		}
	}

	// Explicit edges drop values outside them as well.
	h, err := Histogram(xs, BinEdges(0.5, 1, 1.5))
	if err != nil {
		t.Fatal(err)
	}
	want := &Hist{Counts: []int{1, 1}, Edges: []float64{0.5, 1, 1.5}}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("got %+v; want %+v", h, want)
	}
}

func TestHistogramIntegers(t *testing.T) {
	h, err := Histogram([]float64{1, 2, 2, 3}, BinsAuto)
	if err != nil {
		t.Fatal(err)
	}
	want := &Hist{Counts: []int{1, 2, 1}, Edges: []float64{0.5, 1.5, 2.5, 3.5}}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("got %+v; want %+v", h, want)
	}

	// A wide integer range is coarsened.
	xs := make([]float64, 1000)
	for i := range xs {
		xs[i] = float64(i)
	}
	h, err = Histogram(xs, BinsAuto)
	if err != nil {
		t.Fatal(err)
	}
	checkHist(t, "0..999", h, len(xs))
	if len(h.Counts) > MaxAutoBins {
		t.Errorf("%d bins exceeds MaxAutoBins", len(h.Counts))
	}
	for i, e := range h.Edges {
		if e != math.Trunc(e)+0.5 && e != math.Trunc(e)-0.5 {
			t.Errorf("edge %d = %v is not a half-integer", i, e)
			break
		}
	}
}

func TestHistogramConstant(t *testing.T) {
	h, err := Histogram([]float64{2.5, 2.5}, BinsAuto)
	if err != nil {
		t.Fatal(err)
	}
	want := &Hist{Counts: []int{2}, Edges: []float64{2, 3}}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("got %+v; want %+v", h, want)
	}
}

func TestHistogramEmpty(t *testing.T) {
	for _, xs := range [][]float64{nil, {math.NaN()}} {
		h, err := Histogram(xs, BinsAuto)
		if err != nil {
			t.Fatal(err)
		}
		if len(h.Counts) != 0 || !reflect.DeepEqual(h.Edges, []float64{0}) {
			t.Errorf("Histogram(%v) = %+v; want no bins and edges [0]", xs, h)
		}
		if d := h.Density(); len(d) != 0 {
			t.Errorf("Density of empty histogram = %v", d)
		}
	}
}

func TestHistogramCount(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}
	h, err := Histogram(xs, BinCount(4))
	if err != nil {
		t.Fatal(err)
	}
	want := &Hist{Counts: []int{2, 2, 2, 3}, Edges: []float64{0, 2, 4, 6, 8}}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("got %+v; want %+v", h, want)
	}

	d := h.Density()
	area := 0.0
	for i, v := range d {
		area += v * (h.Edges[i+1] - h.Edges[i])
	}
	if !aeq(1, area) {
		t.Errorf("density integrates to %v; want 1", area)
	}
	cum := h.Cumulative()
	if !aeq(1, cum[len(cum)-1]) || !aeq(2.0/9, cum[0]) {
		t.Errorf("Cumulative = %v", cum)
	}
}

func TestHistogramEdges(t *testing.T) {
	xs := []float64{-1, 0, 0.5, 1, 1.5, 2, 3}
	h, err := Histogram(xs, BinEdges(0, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	// -1 and 3 fall outside the edges.
	want := &Hist{Counts: []int{2, 3}, Edges: []float64{0, 1, 2}}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("got %+v; want %+v", h, want)
	}
}

func TestHistogramInvalidBins(t *testing.T) {
	for _, b := range []Bins{
		BinCount(0),
		BinCount(-3),
		BinEdges(1),
		BinEdges(0, 2, 1),
		BinEdges(0, 0, 1),
	} {
		if _, err := Histogram([]float64{1, 2}, b); !errors.Is(err, ErrInvalidBins) {
			t.Errorf("Histogram with %v: error = %v; want ErrInvalidBins", b, err)
		}
	}
}

func TestIsIntegral(t *testing.T) {
	for _, tc := range []struct {
		xs   []float64
		want bool
	}{
		{nil, false},
		{[]float64{math.NaN()}, false},
		{[]float64{1, 2, -3}, true},
		{[]float64{1, math.NaN(), 4}, true},
		{[]float64{1, 2.5}, false},
	} {
		if got := IsIntegral(tc.xs); got != tc.want {
			t.Errorf("IsIntegral(%v) = %v; want %v", tc.xs, got, tc.want)
		}
	}
}
