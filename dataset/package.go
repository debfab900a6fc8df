// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset implements labeled multi-dimensional sample arrays
// as produced by MCMC samplers.
//
// An Array holds the draws of one variable, indexed by named
// dimensions such as "chain", "draw" and "school", each with a list
// of coordinate labels. Arrays are grouped into a Dataset, and
// Datasets into the named groups of an InferenceData.
//
// Select and ISelect restrict a Dataset to a subset of coordinates.
// Iterate walks the variables of a Dataset as a sequence of Plotters,
// one per coordinate combination.
package dataset // import "github.com/aclements/go-bayesplot/dataset"

import "errors"

// Well-known dimension names.
const (
	Chain = "chain"
	Draw  = "draw"

	// Sample is the dimension that pools chain and draw in combined
	// iteration.
	Sample = "sample"
)

// Well-known group names.
const (
	Posterior           = "posterior"
	PosteriorPredictive = "posterior_predictive"
	ObservedData        = "observed_data"
	SampleStats         = "sample_stats"
	Prior               = "prior"
)

var (
	// ErrUnknownDimension is returned when a selection names a
	// dimension the dataset does not have.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrUnknownCoordinate is returned when a selection names a
	// coordinate label (or index) a dimension does not have.
	ErrUnknownCoordinate = errors.New("unknown coordinate")

	// ErrUnknownVariable is returned for variable names not in a
	// dataset.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrUnknownGroup is returned for group names not in an
	// InferenceData.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrShape is returned when array values, dimensions and
	// coordinates disagree.
	ErrShape = errors.New("shape mismatch")
)
