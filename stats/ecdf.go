// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "gonum.org/v1/gonum/floats"

// ECDF returns the empirical CDF of xs as a sorted copy of xs and the
// cumulative fraction at each sorted value. The fractions are evenly
// spaced from 0 to 1 inclusive; fractions[i] = i/(n-1). Ties are kept,
// so repeated values produce repeated steps.
//
// A single value has fraction 0. xs is not modified.
func ECDF(xs []float64) (sorted, fractions []float64) {
	s := Sample{Xs: xs}.Copy().Sort()
	switch len(s.Xs) {
	case 0:
		return []float64{}, []float64{}
	case 1:
		return s.Xs, []float64{0}
	}
	return s.Xs, floats.Span(make([]float64, len(s.Xs)), 0, 1)
}
