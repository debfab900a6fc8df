// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// MaxAutoBins caps the number of bins chosen by the automatic rule.
const MaxAutoBins = 200

type binKind int

const (
	binAuto binKind = iota
	binCount
	binEdges
)

// Bins specifies how to bin a sample: a fixed number of equal-width
// bins, explicit bin edges, or an automatic rule.
//
// The zero value of Bins selects the automatic rule. For
// integer-valued samples, this creates one bin per integer with edges
// at half-integers (widening bins to stay under MaxAutoBins). For
// other samples, it uses the narrower of the Sturges and
// Freedman-Diaconis bin widths.
type Bins struct {
	kind  binKind
	n     int
	edges []float64
}

// BinsAuto selects the automatic binning rule.
var BinsAuto = Bins{}

// BinCount returns a Bins of n equal-width bins spanning the sample.
func BinCount(n int) Bins {
	return Bins{kind: binCount, n: n}
}

// BinEdges returns a Bins with the given edges, which must be
// strictly increasing.
func BinEdges(edges ...float64) Bins {
	return Bins{kind: binEdges, edges: edges}
}

// IsAuto reports whether b uses the automatic rule.
func (b Bins) IsAuto() bool {
	return b.kind == binAuto
}

func (b Bins) String() string {
	switch b.kind {
	case binCount:
		return fmt.Sprintf("%d bins", b.n)
	case binEdges:
		return fmt.Sprintf("edges %v", b.edges)
	}
	return "auto"
}

// Resolve returns the bin edges b selects for xs. Non-finite values
// are ignored. If xs has no finite values, it returns a single edge
// at 0.
func (b Bins) Resolve(xs []float64) ([]float64, error) {
	switch b.kind {
	case binCount:
		if b.n < 1 {
			return nil, fmt.Errorf("%w: bin count %d", ErrInvalidBins, b.n)
		}
	case binEdges:
		if len(b.edges) < 2 {
			return nil, fmt.Errorf("%w: need at least 2 edges, have %d", ErrInvalidBins, len(b.edges))
		}
		for i := 1; i < len(b.edges); i++ {
			if !(b.edges[i] > b.edges[i-1]) {
				return nil, fmt.Errorf("%w: edges not strictly increasing at %d", ErrInvalidBins, i)
			}
		}
		return append([]float64(nil), b.edges...), nil
	}

	s := Finite(xs)
	if len(s.Xs) == 0 {
		return []float64{0}, nil
	}
	s.Sort()
	lo, hi := s.Bounds()
	if b.kind == binCount {
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}
		return span(b.n, lo, hi), nil
	}
	if IsIntegral(s.Xs) {
		return integerEdges(lo, hi), nil
	}
	return autoEdges(&s), nil
}

// integerEdges returns edges at half-integers covering [lo, hi] with
// at most MaxAutoBins bins.
func integerEdges(lo, hi float64) []float64 {
	nb := int(hi-lo) + 1
	width := 1
	if nb > MaxAutoBins {
		width = (nb + MaxAutoBins - 1) / MaxAutoBins
		nb = (nb + width - 1) / width
	}
	edges := make([]float64, nb+1)
	for i := range edges {
		edges[i] = lo - 0.5 + float64(i*width)
	}
	return edges
}

// autoEdges implements numpy's "auto" rule for a sorted, non-empty
// sample.
func autoEdges(s *Sample) []float64 {
	lo, hi := s.Bounds()
	rng := hi - lo
	if rng == 0 {
		return []float64{lo - 0.5, lo + 0.5}
	}
	n := float64(len(s.Xs))
	width := rng / (math.Log2(n) + 1)
	if fd := 2 * s.IQR() * math.Pow(n, -1.0/3); fd > 0 && fd < width {
		width = fd
	}
	nb := int(math.Ceil(rng / width))
	if nb < 1 {
		nb = 1
	} else if nb > MaxAutoBins {
		nb = MaxAutoBins
	}
	return span(nb, lo, hi)
}

// span returns nb+1 evenly spaced edges from lo to hi. The last edge
// is exactly hi.
func span(nb int, lo, hi float64) []float64 {
	edges := floats.Span(make([]float64, nb+1), lo, hi)
	edges[nb] = hi
	return edges
}

// IsIntegral reports whether xs is non-empty and every finite value
// in xs is an integer.
func IsIntegral(xs []float64) bool {
	seen := false
	for _, x := range xs {
		if !isFinite(x) {
			continue
		}
		if x != math.Trunc(x) {
			return false
		}
		seen = true
	}
	return seen
}

// Hist is a histogram of a sample.
type Hist struct {
	// Counts[i] is the number of samples in
	// [Edges[i], Edges[i+1]). The last bin is closed.
	Counts []int

	// Edges are the strictly increasing bin edges.
	// len(Edges) == len(Counts)+1.
	Edges []float64
}

// Histogram bins xs according to bins. Non-finite values and values
// outside the outermost edges are not counted.
func Histogram(xs []float64, bins Bins) (*Hist, error) {
	edges, err := bins.Resolve(xs)
	if err != nil {
		return nil, err
	}
	if len(edges) < 2 {
		return &Hist{Counts: []int{}, Edges: edges}, nil
	}
	h := &Hist{Counts: make([]int, len(edges)-1), Edges: edges}
	last := len(edges) - 1
	for _, x := range xs {
		if !isFinite(x) || x < edges[0] || x > edges[last] {
			continue
		}
		// Index of the last edge <= x.
		i := sort.Search(len(edges), func(k int) bool { return edges[k] > x }) - 1
		if i == last {
			i--
		}
		h.Counts[i]++
	}
	return h, nil
}

// Total returns the number of counted samples.
func (h *Hist) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Density returns the counts normalized so the histogram integrates
// to 1. It is all zeros if the histogram is empty.
func (h *Hist) Density() []float64 {
	out := make([]float64, len(h.Counts))
	total := float64(h.Total())
	if total == 0 {
		return out
	}
	for i, c := range h.Counts {
		out[i] = float64(c) / (total * (h.Edges[i+1] - h.Edges[i]))
	}
	return out
}

// Cumulative returns the fraction of counted samples at or below the
// upper edge of each bin.
func (h *Hist) Cumulative() []float64 {
	out := make([]float64, len(h.Counts))
	total := float64(h.Total())
	if total == 0 {
		return out
	}
	cum := 0
	for i, c := range h.Counts {
		cum += c
		out[i] = float64(cum) / total
	}
	return out
}
