// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// testFunc checks f against a table of inputs and expected outputs.
func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := vals[x], f(x)
		if math.IsNaN(want) && math.IsNaN(got) || aeq(want, got) {
			continue
		}
		t.Errorf("%s(%v) = %v; want %v", name, x, got, want)
	}
}

// wobble returns a deterministic, roughly bell-shaped sample of n
// values.
func wobble(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		u := (float64(i) + 0.5) / float64(n)
		// Sum of three shifted uniforms approximates a normal.
		xs[i] = u + math.Mod(u*7.31, 1) + math.Mod(u*13.7, 1) - 1.5
	}
	return xs
}
