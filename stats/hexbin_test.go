// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"math"
	"testing"
)

func TestHexBin(t *testing.T) {
	xs := wobble(500)
	ys := make([]float64, len(xs))
	for i := range ys {
		ys[i] = math.Cos(float64(i)) * 3
	}
	ys[7] = math.NaN()

	g, err := HexBin(xs, ys, 20)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for i, h := range g.Hexes {
		if h.Count <= 0 {
			t.Errorf("hex %d has count %d", i, h.Count)
		}
		total += h.Count
		if i > 0 {
			p := g.Hexes[i-1]
			if p.Y > h.Y || p.Y == h.Y && p.X >= h.X {
				t.Errorf("hexes out of order at %d", i)
			}
		}
	}
	if total != len(xs)-1 {
		t.Errorf("binned %d points; want %d", total, len(xs)-1)
	}
	if g.MaxCount() < 1 {
		t.Errorf("MaxCount = %d", g.MaxCount())
	}

	vx, vy := g.Vertices(g.Hexes[0])
	for i := range vx {
		if math.Abs(vx[i]-g.Hexes[0].X) > g.Sx/2+1e-12 || math.Abs(vy[i]-g.Hexes[0].Y) > g.Sy/3+1e-12 {
			t.Errorf("vertex %d (%v, %v) too far from center", i, vx[i], vy[i])
		}
	}
}

func TestHexBinErrors(t *testing.T) {
	if _, err := HexBin([]float64{1, 2}, []float64{1}, 10); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("mismatched lengths: error = %v", err)
	}
	if _, err := HexBin([]float64{1, 2}, []float64{1, 2}, 0); !errors.Is(err, ErrInvalidBins) {
		t.Errorf("zero grid size: error = %v", err)
	}
	g, err := HexBin(nil, nil, 10)
	if err != nil || len(g.Hexes) != 0 {
		t.Errorf("empty input: %v, %v", g, err)
	}
	// A single point still lands in one hex.
	g, err = HexBin([]float64{1}, []float64{1}, 10)
	if err != nil || len(g.Hexes) != 1 || g.Hexes[0].Count != 1 {
		t.Errorf("single point: %+v, %v", g, err)
	}
}
