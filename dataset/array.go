// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"strconv"
)

// Array is a dense, row-major array of float64 values with named
// dimensions and per-dimension coordinate labels.
type Array struct {
	Name string

	// Dims are the dimension names, outermost first.
	Dims []string

	// Coords[i] are the labels along Dims[i]. The shape of the
	// array is the number of labels along each dimension.
	Coords [][]string

	// Values are the elements in row-major order; the last
	// dimension varies fastest.
	Values []float64

	// Discrete indicates that the values are integral, such as
	// counts or indicator draws.
	Discrete bool
}

// NewArray returns an Array after checking that dims, coords and
// values agree. A nil entry in coords is filled with the labels "0",
// "1", ... using the length given by shape.
func NewArray(name string, dims []string, shape []int, coords [][]string, values []float64) (*Array, error) {
	if len(shape) != len(dims) {
		return nil, fmt.Errorf("%w: %s has %d dimensions but shape %v", ErrShape, name, len(dims), shape)
	}
	if coords == nil {
		coords = make([][]string, len(dims))
	}
	if len(coords) != len(dims) {
		return nil, fmt.Errorf("%w: %s has %d dimensions but %d coordinate lists", ErrShape, name, len(dims), len(coords))
	}
	seen := make(map[string]bool)
	cs := make([][]string, len(dims))
	for i, d := range dims {
		if seen[d] {
			return nil, fmt.Errorf("%w: %s repeats dimension %q", ErrShape, name, d)
		}
		seen[d] = true
		if coords[i] == nil {
			cs[i] = RangeLabels(shape[i])
			continue
		}
		if len(coords[i]) != shape[i] {
			return nil, fmt.Errorf("%w: %s dimension %q has %d labels, want %d", ErrShape, name, d, len(coords[i]), shape[i])
		}
		cs[i] = coords[i]
	}
	a := &Array{Name: name, Dims: dims, Coords: cs, Values: values}
	if a.Len() != len(values) {
		return nil, fmt.Errorf("%w: %s has shape %v but %d values", ErrShape, name, shape, len(values))
	}
	return a, nil
}

// RangeLabels returns the labels "0" through n-1.
func RangeLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

// Shape returns the number of labels along each dimension.
func (a *Array) Shape() []int {
	shape := make([]int, len(a.Coords))
	for i, c := range a.Coords {
		shape[i] = len(c)
	}
	return shape
}

// Len returns the number of elements implied by the shape.
func (a *Array) Len() int {
	n := 1
	for _, c := range a.Coords {
		n *= len(c)
	}
	return n
}

// DimIndex returns the position of dim in a.Dims, or -1.
func (a *Array) DimIndex(dim string) int {
	for i, d := range a.Dims {
		if d == dim {
			return i
		}
	}
	return -1
}

// Size returns the length of dimension dim, or 0 if a lacks it.
func (a *Array) Size(dim string) int {
	if i := a.DimIndex(dim); i >= 0 {
		return len(a.Coords[i])
	}
	return 0
}

func (a *Array) strides() []int {
	st := make([]int, len(a.Coords))
	s := 1
	for i := len(a.Coords) - 1; i >= 0; i-- {
		st[i] = s
		s *= len(a.Coords[i])
	}
	return st
}

// At returns the element at the given index along each dimension.
func (a *Array) At(idx ...int) float64 {
	if len(idx) != len(a.Dims) {
		panic(fmt.Sprintf("At: %d indexes for %d dimensions", len(idx), len(a.Dims)))
	}
	off := 0
	for i, s := range a.strides() {
		off += idx[i] * s
	}
	return a.Values[off]
}

// Take returns a new array holding only the positions idx along
// dimension dim, in the order given.
func (a *Array) Take(dim int, idx []int) *Array {
	coords := make([][]string, len(a.Coords))
	copy(coords, a.Coords)
	labels := make([]string, len(idx))
	for i, j := range idx {
		labels[i] = a.Coords[dim][j]
	}
	coords[dim] = labels

	out := &Array{Name: a.Name, Dims: a.Dims, Coords: coords, Discrete: a.Discrete}
	st := a.strides()
	outer := 1
	for _, c := range a.Coords[:dim] {
		outer *= len(c)
	}
	inner := st[dim]
	out.Values = make([]float64, 0, outer*len(idx)*inner)
	for o := 0; o < outer; o++ {
		base := o * len(a.Coords[dim]) * inner
		for _, j := range idx {
			off := base + j*inner
			out.Values = append(out.Values, a.Values[off:off+inner]...)
		}
	}
	return out
}

// gather returns the elements of a with the dimensions at positions
// fixed held at the given indexes, walking the dimensions at
// positions free in row-major order.
func (a *Array) gather(free []int, fixed map[int]int) []float64 {
	st := a.strides()
	base := 0
	for d, i := range fixed {
		base += i * st[d]
	}
	n := 1
	for _, d := range free {
		n *= len(a.Coords[d])
	}
	out := make([]float64, 0, n)
	if n == 0 {
		return out
	}
	idx := make([]int, len(free))
	for {
		off := base
		for k, d := range free {
			off += idx[k] * st[d]
		}
		out = append(out, a.Values[off])

		// Advance the odometer; the last free dimension
		// varies fastest.
		k := len(free) - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < len(a.Coords[free[k]]) {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			return out
		}
	}
}

// Rows splits a along its first dimension, returning one slice per
// label of that dimension. For a chain×draw array, these are the
// draws of each chain.
func (a *Array) Rows() [][]float64 {
	if len(a.Dims) == 0 {
		return [][]float64{a.Values}
	}
	n := len(a.Coords[0])
	rows := make([][]float64, n)
	if n == 0 {
		return rows
	}
	width := len(a.Values) / n
	for i := range rows {
		rows[i] = a.Values[i*width : (i+1)*width]
	}
	return rows
}

func (a *Array) String() string {
	return fmt.Sprintf("%s%v", a.Name, a.Dims)
}
