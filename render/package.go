// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws plot.Figures as SVG.
//
// Two backends are available: "svg" lays out the figure directly
// with one panel per grid cell, legends and hover tooltips, and "gg"
// hands the figure's data to the go-gg grammar-of-graphics renderer,
// which picks its own scales and facet layout.
package render // import "github.com/aclements/go-bayesplot/render"

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/aclements/go-bayesplot/plot"
)

var (
	// ErrUnsupportedBackend is returned for an unknown backend name.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrEmptyFigure is returned when a figure has nothing to draw.
	ErrEmptyFigure = errors.New("empty figure")
)

// DefaultWidth is the default figure width in pixels.
const DefaultWidth = 800

// DefaultRowHeight is the default height of one row of panels in
// pixels.
const DefaultRowHeight = 220

// A Backend writes figures in some output format.
type Backend interface {
	// Name returns the name the backend is looked up by.
	Name() string

	// Render writes f to w. It draws the static panels of f; to
	// draw frame i of an animation, render f.Frame(i).
	Render(w io.Writer, f *plot.Figure) error
}

// Options configures a Backend.
type Options struct {
	// Width and Height are the size of the output in pixels. If
	// Width is zero, it is DefaultWidth. If Height is zero, it is
	// DefaultRowHeight per row of the figure.
	Width, Height int

	// Logger receives debug messages. If nil, nothing is logged.
	Logger *zap.Logger
}

func (o Options) size(f *plot.Figure) (width, height int) {
	width, height = o.Width, o.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultRowHeight * max(1, f.Rows)
	}
	return
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

var backends = map[string]func(Options) Backend{
	"gg":  func(o Options) Backend { return &ggBackend{o} },
	"svg": func(o Options) Backend { return &svgBackend{o} },
}

// Lookup returns the backend called name.
func Lookup(name string, opts Options) (Backend, error) {
	mk, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q: want one of %v", ErrUnsupportedBackend, name, Names())
	}
	return mk(opts), nil
}

// Names returns the names of the available backends, sorted.
func Names() []string {
	var names []string
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkFigure returns ErrEmptyFigure if f has no panels with layers.
func checkFigure(f *plot.Figure) error {
	if f == nil || !slices.ContainsFunc(f.Panels, func(p *plot.Panel) bool { return p != nil && len(p.Layers) > 0 }) {
		return ErrEmptyFigure
	}
	return nil
}
