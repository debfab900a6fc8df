// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plotted struct {
	Label  string
	Dims   []string
	Values []float64
}

func summarize(ps []Plotter) []plotted {
	var out []plotted
	for _, p := range ps {
		out = append(out, plotted{p.Label(), p.Values.Dims, p.Values.Values})
	}
	return out
}

func TestIterate(t *testing.T) {
	ds := schools(t)
	got := summarize(slices.Collect(Iterate(ds, nil, nil, false)))
	want := []plotted{
		{"mu", []string{Chain, Draw}, []float64{0, 10, 20, 100, 110, 120}},
		{"theta[Choate]", []string{Chain, Draw}, []float64{0, 10, 20, 100, 110, 120}},
		{"theta[Deerfield]", []string{Chain, Draw}, []float64{1, 11, 21, 101, 111, 121}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Iterate mismatch (-want +got):\n%s", diff)
	}
}

func TestIterateCombined(t *testing.T) {
	ds := schools(t)
	ps := slices.Collect(Iterate(ds, []string{"theta"}, nil, true))
	require.Len(t, ps, 2)
	assert.Equal(t, []string{Sample}, ps[1].Values.Dims)
	assert.Equal(t, []int{6}, ps[1].Values.Shape())
	assert.Equal(t, []float64{1, 11, 21, 101, 111, 121}, ps[1].Values.Values)
	label, ok := ps[1].Sel.Get("school")
	assert.True(t, ok)
	assert.Equal(t, "Deerfield", label)
	_, ok = ps[1].Sel.Get(Chain)
	assert.False(t, ok)
}

func TestIterateSkip(t *testing.T) {
	ds := schools(t)
	theta, _ := ds.Var("theta")

	ps := slices.Collect(Iterate(ds, []string{"theta"}, []string{"school"}, false))
	require.Len(t, ps, 1)
	assert.Empty(t, ps[0].Sel)
	assert.Equal(t, "theta", ps[0].Label())
	assert.Equal(t, []string{Chain, Draw, "school"}, ps[0].Values.Dims)
	assert.Equal(t, theta.Values, ps[0].Values.Values)

	ps = slices.Collect(Iterate(ds, []string{"theta"}, []string{"school"}, true))
	require.Len(t, ps, 1)
	assert.Equal(t, []string{Sample, "school"}, ps[0].Values.Dims)
	assert.Equal(t, []int{6, 2}, ps[0].Values.Shape())
}

func TestIterateOrder(t *testing.T) {
	ds := schools(t)
	got := summarize(slices.Collect(Iterate(ds, []string{"theta", "mu"}, nil, true)))
	var labels []string
	for _, p := range got {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"theta[Choate]", "theta[Deerfield]", "mu"}, labels)
}

func TestIterateRestartable(t *testing.T) {
	ds := schools(t)
	seq := Iterate(ds, nil, nil, true)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second iteration differs (-first +second):\n%s", diff)
	}

	// Stopping early is fine.
	n := 0
	for range seq {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestIterateScalar(t *testing.T) {
	a, err := NewArray("sigma", nil, nil, nil, []float64{3})
	require.NoError(t, err)
	ds, err := New(a)
	require.NoError(t, err)
	ps := slices.Collect(Iterate(ds, nil, nil, true))
	require.Len(t, ps, 1)
	assert.Empty(t, ps[0].Sel)
	assert.Equal(t, []float64{3}, ps[0].Values.Values)
}

func TestIterateEmptyNames(t *testing.T) {
	ds := schools(t)
	all := slices.Collect(Iterate(ds, nil, nil, true))
	empty := slices.Collect(Iterate(ds, []string{}, nil, true))
	require.Len(t, all, 3)
	if diff := cmp.Diff(summarize(all), summarize(empty)); diff != "" {
		t.Errorf("empty names differ from nil (-nil +empty):\n%s", diff)
	}
}

func TestIterateErr(t *testing.T) {
	ds := schools(t)
	_, err := IterateErr(ds, []string{"mu", "tau"}, nil, true)
	assert.ErrorIs(t, err, ErrUnknownVariable)

	seq, err := IterateErr(ds, []string{"mu"}, nil, true)
	require.NoError(t, err)
	assert.Len(t, slices.Collect(seq), 1)
}

func TestVarNames(t *testing.T) {
	ds := schools(t)
	for _, tc := range []struct {
		in   []string
		want []string
	}{
		{nil, []string{"mu", "theta"}},
		{[]string{}, []string{"mu", "theta"}},
		{[]string{"theta"}, []string{"theta"}},
		{[]string{"~mu"}, []string{"theta"}},
		{[]string{"~mu", "~theta"}, nil},
	} {
		got, err := VarNames(ds, tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "VarNames(%v)", tc.in)
	}

	_, err := VarNames(ds, []string{"tau"})
	assert.ErrorIs(t, err, ErrUnknownVariable)
	_, err = VarNames(ds, []string{"~tau"})
	assert.ErrorIs(t, err, ErrUnknownVariable)
}
