// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aclements/go-bayesplot/dataset"
	"github.com/aclements/go-bayesplot/plot"
	"github.com/aclements/go-bayesplot/render"
)

// writeFigure renders f to --out, or to standard output. An animated
// figure is written as one file per frame, named like out-000.svg.
func writeFigure(cmd *cobra.Command, f *plot.Figure) error {
	backend, err := cfg.Backend(logger)
	if err != nil {
		return err
	}
	if f.NumFrames() == 0 {
		if outPath == "" || outPath == "-" {
			return backend.Render(cmd.OutOrStdout(), f)
		}
		return writeFile(outPath, backend, f)
	}

	if outPath == "" || outPath == "-" {
		return errors.New("animated figures need --out")
	}
	ext := filepath.Ext(outPath)
	base := strings.TrimSuffix(outPath, ext)
	for i := range f.NumFrames() {
		frame, err := f.Frame(i)
		if err != nil {
			return err
		}
		if err := writeFile(fmt.Sprintf("%s-%03d%s", base, i, ext), backend, frame); err != nil {
			return err
		}
	}
	logger.Info("wrote animation", zap.String("out", outPath), zap.Int("frames", f.NumFrames()))
	return nil
}

func writeFile(path string, backend render.Backend, f *plot.Figure) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := backend.Render(out, f); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("wrote figure", zap.String("path", path), zap.String("backend", backend.Name()))
	return out.Close()
}

// loadData reads inference data from a JSON or YAML document, or from
// one CmdStan CSV file per chain if stan is set. The path "-" is
// standard input.
func loadData(cmd *cobra.Command, args []string, stan bool) (*dataset.InferenceData, error) {
	if len(args) == 0 {
		return nil, errors.New("no input files")
	}
	var readers []io.Reader
	for _, arg := range args {
		if arg == "-" {
			readers = append(readers, cmd.InOrStdin())
			continue
		}
		f, err := os.Open(arg)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		readers = append(readers, f)
	}

	var id *dataset.InferenceData
	var err error
	if stan {
		id, err = dataset.LoadStanCSV(readers...)
	} else {
		if len(args) != 1 {
			return nil, fmt.Errorf("want one inference data file, have %d (use --stan for CSV chains)", len(args))
		}
		id, err = dataset.LoadJSON(readers[0])
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.Join(args, ", "), err)
	}
	logger.Debug("loaded inference data", zap.Strings("files", args), zap.Strings("groups", id.Groups()))
	return id, nil
}

// parseCoords parses dim=label flags. Labels of one dimension
// accumulate, and a comma separates several labels.
func parseCoords(flags []string) (map[string][]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	coords := make(map[string][]string)
	for _, f := range flags {
		dim, labels, ok := strings.Cut(f, "=")
		if !ok || dim == "" || labels == "" {
			return nil, fmt.Errorf("%w: coordinate %q: want dim=label[,label...]", plot.ErrInvalidArgument, f)
		}
		coords[dim] = append(coords[dim], strings.Split(labels, ",")...)
	}
	return coords, nil
}
