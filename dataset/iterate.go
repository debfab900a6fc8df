// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// A Coord names one coordinate label of one dimension.
type Coord struct {
	Dim, Label string
}

// A Selection identifies one point in the iterated dimensions of a
// variable, in the variable's dimension order.
type Selection []Coord

// Get returns the label selected along dim.
func (s Selection) Get(dim string) (string, bool) {
	for _, c := range s {
		if c.Dim == dim {
			return c.Label, true
		}
	}
	return "", false
}

// Map returns s as a map from dimension to label.
func (s Selection) Map() map[string]string {
	m := make(map[string]string, len(s))
	for _, c := range s {
		m[c.Dim] = c.Label
	}
	return m
}

// Labels returns the selected labels joined by ", ".
func (s Selection) Labels() string {
	labels := make([]string, len(s))
	for i, c := range s {
		labels[i] = c.Label
	}
	return strings.Join(labels, ", ")
}

func (s Selection) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.Dim + "=" + c.Label
	}
	return strings.Join(parts, ", ")
}

// A Plotter is one unit of plotting: the values of variable Var at
// selection Sel.
//
// Values holds the dimensions that were not iterated: chain and draw
// (or a single pooled sample dimension), followed by the skipped
// dimensions in stored order.
type Plotter struct {
	Var    string
	Sel    Selection
	Values *Array
}

// Label returns a display label such as "theta" or "theta[Choate]".
func (p Plotter) Label() string {
	if len(p.Sel) == 0 {
		return p.Var
	}
	return p.Var + "[" + p.Sel.Labels() + "]"
}

// Iterate returns the sequence of Plotters for the variables
// varNames of ds, in order. If varNames is empty, it uses every
// variable in natural order; unknown names are skipped (see
// IterateErr).
//
// For each variable, Iterate yields one Plotter per combination of
// the labels of the dimensions other than chain, draw and skipDims,
// with the last dimension varying fastest. A variable with no such
// dimension yields exactly one Plotter with an empty selection.
//
// If combined is true, chain and draw are pooled into one leading
// Sample dimension of every Plotter's Values. Otherwise they are kept
// as separate leading dimensions. Chain is never a selection
// dimension.
//
// The sequence is restartable: ranging over it twice yields the same
// Plotters.
func Iterate(ds *Dataset, varNames []string, skipDims []string, combined bool) iter.Seq[Plotter] {
	if len(varNames) == 0 {
		varNames = ds.Names()
	}
	return func(yield func(Plotter) bool) {
		for _, name := range varNames {
			a, ok := ds.vars[name]
			if !ok {
				continue
			}
			for p := range iterateArray(a, skipDims, combined) {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// IterateErr is like Iterate, but first checks that every name in
// varNames is a variable of ds.
func IterateErr(ds *Dataset, varNames []string, skipDims []string, combined bool) (iter.Seq[Plotter], error) {
	for _, name := range varNames {
		if !ds.Has(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}
	}
	return Iterate(ds, varNames, skipDims, combined), nil
}

func iterateArray(a *Array, skipDims []string, combined bool) iter.Seq[Plotter] {
	var lead, skip, sel []int
	for _, dim := range []string{Chain, Draw} {
		if d := a.DimIndex(dim); d >= 0 {
			lead = append(lead, d)
		}
	}
	for d, name := range a.Dims {
		switch {
		case name == Chain || name == Draw:
		case slices.Contains(skipDims, name):
			skip = append(skip, d)
		default:
			sel = append(sel, d)
		}
	}
	free := append(slices.Clone(lead), skip...)

	dims := make([]string, 0, len(free))
	coords := make([][]string, 0, len(free))
	if combined && len(lead) > 0 {
		n := 1
		for _, d := range lead {
			n *= len(a.Coords[d])
		}
		dims = append(dims, Sample)
		coords = append(coords, RangeLabels(n))
		for _, d := range skip {
			dims = append(dims, a.Dims[d])
			coords = append(coords, a.Coords[d])
		}
	} else {
		for _, d := range free {
			dims = append(dims, a.Dims[d])
			coords = append(coords, a.Coords[d])
		}
	}

	return func(yield func(Plotter) bool) {
		idx := make([]int, len(sel))
		for _, d := range sel {
			if len(a.Coords[d]) == 0 {
				return
			}
		}
		for {
			fixed := make(map[int]int, len(sel))
			s := make(Selection, len(sel))
			for k, d := range sel {
				fixed[d] = idx[k]
				s[k] = Coord{a.Dims[d], a.Coords[d][idx[k]]}
			}
			vals := &Array{
				Name:     a.Name,
				Dims:     dims,
				Coords:   coords,
				Values:   a.gather(free, fixed),
				Discrete: a.Discrete,
			}
			if !yield(Plotter{Var: a.Name, Sel: s, Values: vals}) {
				return
			}

			k := len(sel) - 1
			for ; k >= 0; k-- {
				idx[k]++
				if idx[k] < len(a.Coords[sel[k]]) {
					break
				}
				idx[k] = 0
			}
			if k < 0 {
				return
			}
		}
	}
}

// VarNames resolves a list of variable names against ds. A nil or
// empty list means every variable. If every name starts with "~", the result is
// every variable except those named.
func VarNames(ds *Dataset, names []string) ([]string, error) {
	if len(names) == 0 {
		return ds.Names(), nil
	}
	negated := len(names) > 0
	for _, n := range names {
		if !strings.HasPrefix(n, "~") {
			negated = false
			break
		}
	}
	if !negated {
		for _, n := range names {
			if !ds.Has(n) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, n)
			}
		}
		return slices.Clone(names), nil
	}

	exclude := make(map[string]bool)
	for _, n := range names {
		n = strings.TrimPrefix(n, "~")
		if !ds.Has(n) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, n)
		}
		exclude[n] = true
	}
	var out []string
	for _, n := range ds.names {
		if !exclude[n] {
			out = append(out, n)
		}
	}
	return out, nil
}
