// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot builds backend-neutral figures of MCMC output.
//
// The routines in this package compute densities, histograms and
// empirical CDFs of sampled variables and arrange them into a Figure:
// a grid of Panels, each holding typed layers such as Line and Bars
// with fully resolved styles. Figures carry no rendering state; a
// backend in package render turns them into SVG.
//
// Every routine is a method on *Config, which carries the color cycle,
// subplot limit and logger. A nil *Config uses DefaultConfig.
package plot // import "github.com/aclements/go-bayesplot/plot"

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for malformed options.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidKind is returned for an unrecognized plot kind.
	// It wraps ErrInvalidArgument.
	ErrInvalidKind = fmt.Errorf("invalid kind: %w", ErrInvalidArgument)

	// ErrInsufficientSamples is returned when more replicate
	// draws are requested than are available.
	ErrInsufficientSamples = errors.New("insufficient samples")
)
