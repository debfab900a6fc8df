// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"slices"
)

// Select returns the subset of ds with each dimension in coords
// restricted to the given labels, in the given order. Dimensions not
// in coords are kept whole, and variables without a selected
// dimension are kept unchanged. ds is not modified.
func Select(ds *Dataset, coords map[string][]string) (*Dataset, error) {
	idx := make(map[string][]int, len(coords))
	for _, dim := range selectionOrder(coords) {
		is, err := Indices(ds, dim, coords[dim])
		if err != nil {
			return nil, err
		}
		idx[dim] = is
	}
	return ISelect(ds, idx)
}

// ISelect is like Select, but selects by position along each
// dimension.
func ISelect(ds *Dataset, idx map[string][]int) (*Dataset, error) {
	for _, dim := range selectionOrder(idx) {
		if !ds.HasDim(dim) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
		}
		n := ds.Size(dim)
		for _, i := range idx[dim] {
			if i < 0 || i >= n {
				return nil, fmt.Errorf("%w: index %d out of range for dimension %q of length %d", ErrUnknownCoordinate, i, dim, n)
			}
		}
	}

	out := &Dataset{vars: make(map[string]*Array, len(ds.vars))}
	for _, name := range ds.names {
		a := ds.vars[name]
		for _, dim := range selectionOrder(idx) {
			if d := a.DimIndex(dim); d >= 0 {
				a = a.Take(d, idx[dim])
			}
		}
		out.names = append(out.names, name)
		out.vars[name] = a
	}
	return out, nil
}

// Indices returns the positions of labels along dimension dim of ds.
func Indices(ds *Dataset, dim string, labels []string) ([]int, error) {
	if !ds.HasDim(dim) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
	}
	have := ds.Labels(dim)
	out := make([]int, len(labels))
	for i, l := range labels {
		j := slices.Index(have, l)
		if j < 0 {
			return nil, fmt.Errorf("%w: %q has no label %q", ErrUnknownCoordinate, dim, l)
		}
		out[i] = j
	}
	return out, nil
}

// selectionOrder returns the keys of m in sorted order, so errors and
// selection are deterministic.
func selectionOrder[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
