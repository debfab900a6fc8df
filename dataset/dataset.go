// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"slices"
)

// Dataset is an ordered collection of named Arrays that share their
// chain and draw dimensions.
type Dataset struct {
	names []string
	vars  map[string]*Array
}

// New returns a Dataset holding arrays in the given order.
func New(arrays ...*Array) (*Dataset, error) {
	ds := &Dataset{vars: make(map[string]*Array)}
	for _, a := range arrays {
		if err := ds.Add(a); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Add appends a to ds. It is an error if ds already has a variable
// of the same name or if a's chain or draw dimension disagrees with
// the other variables.
func (ds *Dataset) Add(a *Array) error {
	if ds.vars == nil {
		ds.vars = make(map[string]*Array)
	}
	if _, ok := ds.vars[a.Name]; ok {
		return fmt.Errorf("%w: duplicate variable %q", ErrShape, a.Name)
	}
	for _, dim := range []string{Chain, Draw} {
		n := a.Size(dim)
		if n == 0 {
			continue
		}
		if have := ds.Size(dim); have != 0 && have != n {
			return fmt.Errorf("%w: %s has %d %ss, dataset has %d", ErrShape, a.Name, n, dim, have)
		}
	}
	ds.names = append(ds.names, a.Name)
	ds.vars[a.Name] = a
	return nil
}

// Names returns the variable names in insertion order.
func (ds *Dataset) Names() []string {
	return slices.Clone(ds.names)
}

// Var returns the named variable.
func (ds *Dataset) Var(name string) (*Array, error) {
	a, ok := ds.vars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return a, nil
}

// Has reports whether ds has a variable called name.
func (ds *Dataset) Has(name string) bool {
	_, ok := ds.vars[name]
	return ok
}

// Dims returns every dimension name used by a variable of ds, in
// order of first appearance.
func (ds *Dataset) Dims() []string {
	var dims []string
	for _, name := range ds.names {
		for _, d := range ds.vars[name].Dims {
			if !slices.Contains(dims, d) {
				dims = append(dims, d)
			}
		}
	}
	return dims
}

// HasDim reports whether any variable of ds has dimension dim.
func (ds *Dataset) HasDim(dim string) bool {
	for _, a := range ds.vars {
		if a.DimIndex(dim) >= 0 {
			return true
		}
	}
	return false
}

// Size returns the length of dimension dim, taken from the first
// variable that has it, or 0.
func (ds *Dataset) Size(dim string) int {
	if labels := ds.Labels(dim); labels != nil {
		return len(labels)
	}
	return 0
}

// Sizes returns the length of every dimension of ds.
func (ds *Dataset) Sizes() map[string]int {
	sizes := make(map[string]int)
	for _, d := range ds.Dims() {
		sizes[d] = ds.Size(d)
	}
	return sizes
}

// Labels returns the coordinate labels of dim, taken from the first
// variable that has it, or nil.
func (ds *Dataset) Labels(dim string) []string {
	for _, name := range ds.names {
		a := ds.vars[name]
		if i := a.DimIndex(dim); i >= 0 {
			return a.Coords[i]
		}
	}
	return nil
}

// NumSamples returns the number of chains and draws. A dataset
// without a chain dimension has one chain.
func (ds *Dataset) NumSamples() (chains, draws int) {
	chains, draws = ds.Size(Chain), ds.Size(Draw)
	if chains == 0 {
		chains = 1
	}
	return
}

// InferenceData is a set of named Datasets, such as the posterior,
// the posterior predictive and the observed data of one model fit.
type InferenceData struct {
	order  []string
	groups map[string]*Dataset
}

// NewInferenceData returns an empty InferenceData.
func NewInferenceData() *InferenceData {
	return &InferenceData{groups: make(map[string]*Dataset)}
}

// SetGroup adds or replaces group name.
func (d *InferenceData) SetGroup(name string, ds *Dataset) {
	if _, ok := d.groups[name]; !ok {
		d.order = append(d.order, name)
	}
	d.groups[name] = ds
}

// Group returns the named group.
func (d *InferenceData) Group(name string) (*Dataset, error) {
	ds, ok := d.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	return ds, nil
}

// HasGroup reports whether d has group name.
func (d *InferenceData) HasGroup(name string) bool {
	_, ok := d.groups[name]
	return ok
}

// Groups returns the group names in insertion order.
func (d *InferenceData) Groups() []string {
	return slices.Clone(d.order)
}
