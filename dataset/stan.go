// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// stanStats renames CmdStan sampler diagnostics.
var stanStats = map[string]string{
	"lp__":          "lp",
	"accept_stat__": "acceptance_rate",
	"stepsize__":    "step_size",
	"treedepth__":   "tree_depth",
	"n_leapfrog__":  "n_steps",
	"divergent__":   "diverging",
	"energy__":      "energy",
}

// stanVar collects the CSV columns of one variable.
type stanVar struct {
	name  string
	group string
	shape []int
	cols  map[int]int // flat element index -> column
	idx   [][]int     // element index of each column, in column order
	order []int       // columns in column order
}

// LoadStanCSV reads CmdStan output, one CSV per chain, into an
// InferenceData with posterior and sample_stats groups.
//
// Lines starting with "#" are ignored. A column "theta.2.3" is
// element [1, 2] of variable theta, whose dimensions are named
// theta_dim_0, theta_dim_1. Columns ending in "__" are sampler
// diagnostics and go to sample_stats; divergent__ becomes diverging.
// A variable is Discrete if all of its values are integers.
func LoadStanCSV(chains ...io.Reader) (*InferenceData, error) {
	if len(chains) == 0 {
		return nil, fmt.Errorf("%w: no chains", ErrShape)
	}
	var header []string
	var draws [][][]string
	for i, r := range chains {
		cr := csv.NewReader(r)
		cr.Comment = '#'
		records, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", i, err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: chain %d has no header", ErrShape, i)
		}
		if header == nil {
			header = records[0]
		} else if !slices.Equal(header, records[0]) {
			return nil, fmt.Errorf("%w: chain %d has different columns", ErrShape, i)
		}
		if i > 0 && len(records)-1 != len(draws[0]) {
			return nil, fmt.Errorf("%w: chain %d has %d draws, chain 0 has %d", ErrShape, i, len(records)-1, len(draws[0]))
		}
		draws = append(draws, records[1:])
	}

	vars, err := stanColumns(header)
	if err != nil {
		return nil, err
	}

	nchains, ndraws := len(draws), len(draws[0])
	groups := map[string]*Dataset{Posterior: {}, SampleStats: {}}
	for _, v := range vars {
		n := product(v.shape)
		values := make([]float64, 0, nchains*ndraws*n)
		integral := true
		for c := range draws {
			for d, row := range draws[c] {
				for e := 0; e < n; e++ {
					x, err := strconv.ParseFloat(strings.TrimSpace(row[v.cols[e]]), 64)
					if err != nil {
						return nil, fmt.Errorf("chain %d draw %d column %s: %w", c, d, header[v.cols[e]], err)
					}
					integral = integral && x == math.Trunc(x)
					values = append(values, x)
				}
			}
		}

		dims := []string{Chain, Draw}
		shape := []int{nchains, ndraws}
		for k, s := range v.shape {
			dims = append(dims, fmt.Sprintf("%s_dim_%d", v.name, k))
			shape = append(shape, s)
		}
		a, err := NewArray(v.name, dims, shape, nil, values)
		if err != nil {
			return nil, err
		}
		a.Discrete = integral && len(values) > 0
		if err := groups[v.group].Add(a); err != nil {
			return nil, err
		}
	}

	id := NewInferenceData()
	id.SetGroup(Posterior, groups[Posterior])
	id.SetGroup(SampleStats, groups[SampleStats])
	return id, nil
}

// stanColumns groups CSV columns into variables in order of first
// appearance and checks that every element of each variable has a
// column.
func stanColumns(header []string) ([]*stanVar, error) {
	var vars []*stanVar
	byName := make(map[string]*stanVar)
	for col, h := range header {
		parts := strings.Split(strings.TrimSpace(h), ".")
		name, group := parts[0], Posterior
		if strings.HasSuffix(name, "__") {
			group = SampleStats
			if n, ok := stanStats[name]; ok {
				name = n
			} else {
				name = strings.TrimSuffix(name, "__")
			}
		}
		idx := make([]int, len(parts)-1)
		for k, p := range parts[1:] {
			i, err := strconv.Atoi(p)
			if err != nil || i < 1 {
				return nil, fmt.Errorf("%w: bad index in column %q", ErrShape, h)
			}
			idx[k] = i - 1
		}

		v := byName[name]
		if v == nil {
			v = &stanVar{name: name, group: group, shape: make([]int, len(idx)), cols: make(map[int]int)}
			byName[name] = v
			vars = append(vars, v)
		} else if len(v.shape) != len(idx) {
			return nil, fmt.Errorf("%w: column %q has %d indexes, want %d", ErrShape, h, len(idx), len(v.shape))
		}
		for k, i := range idx {
			v.shape[k] = max(v.shape[k], i+1)
		}
		v.idx = append(v.idx, idx)
		v.order = append(v.order, col)
	}

	for _, v := range vars {
		for k, idx := range v.idx {
			flat := 0
			for d, i := range idx {
				flat = flat*v.shape[d] + i
			}
			if _, dup := v.cols[flat]; dup {
				return nil, fmt.Errorf("%w: duplicate column %q", ErrShape, header[v.order[k]])
			}
			v.cols[flat] = v.order[k]
		}
		if len(v.cols) != product(v.shape) {
			return nil, fmt.Errorf("%w: variable %s has %d of %d element columns", ErrShape, v.name, len(v.cols), product(v.shape))
		}
	}
	return vars, nil
}
