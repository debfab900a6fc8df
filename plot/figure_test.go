// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelBounds(t *testing.T) {
	p := &Panel{}
	assert.True(t, math.IsNaN(p.Bounds().XMin))

	p.Add(&Line{X: []float64{1, 2, math.NaN()}, Y: []float64{0, 5, 7}})
	p.Add(&Rule{At: 10, Vertical: true, From: math.NaN(), To: math.NaN()})
	p.Add(&Bars{Edges: []float64{-1, 0}, Heights: []float64{3}, Rotated: true})
	assert.Equal(t, Rect{0, 10, -1, 5}, p.Bounds())
}

func TestFigureFrame(t *testing.T) {
	f := NewFigure(1, 2)
	f.At(0, 1).Add(&Line{X: []float64{0, 1}, Y: []float64{0, 1}})
	assert.Equal(t, 0, f.NumFrames())
	_, err := f.Frame(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	f.Animation = &Animation{Frames: [][]FrameLayer{
		{{Panel: 1, Layer: &Points{X: []float64{0}, Y: []float64{0}}}},
		{{Panel: 0, Layer: &Points{X: []float64{1}, Y: []float64{1}}}},
	}}
	require.Equal(t, 2, f.NumFrames())

	fr, err := f.Frame(0)
	require.NoError(t, err)
	assert.Len(t, fr.At(0, 1).Layers, 2)
	assert.Len(t, fr.At(0, 0).Layers, 0)
	assert.Nil(t, fr.Animation)

	// The original is untouched.
	assert.Len(t, f.At(0, 1).Layers, 1)
	fr, err = f.Frame(1)
	require.NoError(t, err)
	assert.Len(t, fr.At(0, 0).Layers, 1)
	assert.Len(t, fr.At(0, 1).Layers, 1)
}
