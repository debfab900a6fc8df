// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJointScatter(t *testing.T) {
	c := DefaultConfig()
	f, err := c.Joint(posterior(t), JointOptions{VarNames: []string{"mu", "k"}})
	require.NoError(t, err)
	require.Equal(t, 2, f.Rows)
	require.Equal(t, 2, f.Cols)
	assert.Nil(t, f.At(0, 1))

	joint := f.At(1, 0)
	assert.Equal(t, "mu", joint.XLabel)
	assert.Equal(t, "k", joint.YLabel)
	pts := layersOf[*Points](joint)
	require.Len(t, pts, 1)
	assert.Len(t, pts[0].X, nChains*nDraws)
	assert.Len(t, pts[0].Y, nChains*nDraws)

	// mu is continuous; k is integral and rotated.
	assert.Len(t, layersOf[*Line](f.At(0, 0)), 1)
	bars := layersOf[*Bars](f.At(1, 1))
	require.Len(t, bars, 1)
	assert.True(t, bars[0].Rotated)
}

func TestJointKinds(t *testing.T) {
	id := posterior(t)
	c := DefaultConfig()
	opts := JointOptions{VarNames: []string{"mu", "theta"}, Coords: map[string][]string{"school": {"C"}}}

	opts.Kind = KindHexbin
	f, err := c.Joint(id, opts)
	require.NoError(t, err)
	assert.Equal(t, "theta[C]", f.At(1, 0).YLabel)
	hexes := layersOf[*Hexes](f.At(1, 0))
	require.Len(t, hexes, 1)
	total := 0
	for _, h := range hexes[0].Grid.Hexes {
		total += h.Count
	}
	assert.Equal(t, nChains*nDraws, total)

	opts.Kind = KindKDE
	f, err = c.Joint(id, opts)
	require.NoError(t, err)
	assert.Len(t, layersOf[*Tiles](f.At(1, 0)), 1)
	rot := layersOf[*Line](f.At(1, 1))
	require.Len(t, rot, 1)
	assert.True(t, f.At(0, 0).HideYTicks)
	assert.False(t, f.At(1, 1).HideYTicks)
}

func TestJointAxes(t *testing.T) {
	axes := []*Panel{{}, {}, {}}
	f, err := DefaultConfig().Joint(posterior(t), JointOptions{VarNames: []string{"mu", "k"}, Axes: axes})
	require.NoError(t, err)
	assert.Same(t, axes[0], f.At(1, 0))
	assert.Same(t, axes[1], f.At(0, 0))
	assert.Same(t, axes[2], f.At(1, 1))
	assert.NotEmpty(t, axes[0].Layers)
	assert.NotEmpty(t, axes[1].Layers)
	assert.NotEmpty(t, axes[2].Layers)
}

func TestJointErrors(t *testing.T) {
	id := posterior(t)
	c := DefaultConfig()
	for _, names := range [][]string{{"mu"}, {"theta"}, {"mu", "theta"}, {"~mu", "~theta", "~k"}} {
		_, err := c.Joint(id, JointOptions{VarNames: names})
		assert.ErrorIs(t, err, ErrInvalidArgument, "%v", names)
	}
	_, err := c.Joint(id, JointOptions{VarNames: []string{"mu", "k"}, Kind: "contour"})
	assert.ErrorIs(t, err, ErrInvalidKind)
	_, err = c.Joint(id, JointOptions{VarNames: []string{"mu", "k"}, Axes: []*Panel{{}, {}}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
