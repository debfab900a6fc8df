// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats implements the density estimators behind the plot
// routines: binned kernel density estimates, histograms with
// automatic bin rules, empirical CDFs, and hexagonal binning.
package stats // import "github.com/aclements/go-bayesplot/stats"

import (
	"errors"
	"math"
)

var inf = math.Inf(1)
var nan = math.NaN()

var (
	// ErrDegenerateInput is returned when a sample has too few
	// distinct finite values to estimate a density.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrInvalidBins is returned for malformed bin specifications.
	ErrInvalidBins = errors.New("invalid bins")

	// ErrLengthMismatch is returned when paired samples differ in
	// length.
	ErrLengthMismatch = errors.New("sample lengths differ")
)
