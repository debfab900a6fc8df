// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aclements/go-bayesplot/plot"
	"github.com/aclements/go-bayesplot/stats"
)

var distFlags struct {
	kind       string
	bins       int
	cumulative bool
	rug        bool
	truncate   bool
	quantiles  []float64
	discrete   bool
}

var distCmd = &cobra.Command{
	Use:   "dist",
	Short: "Describe and plot the distribution of numbers on stdin",
	Long: `dist reads newline-separated numbers from stdin and prints their
count, sum, mean, standard deviation and percentiles. With --out it
also plots their distribution.`,
	Args: cobra.NoArgs,
	RunE: runDist,
}

func init() {
	f := distCmd.Flags()
	f.StringVar(&distFlags.kind, "kind", plot.KindAuto, "plot `kind`: auto, hist or kde")
	f.IntVar(&distFlags.bins, "bins", 0, "number of histogram bins (default automatic)")
	f.BoolVar(&distFlags.cumulative, "cumulative", false, "plot the cumulative distribution")
	f.BoolVar(&distFlags.rug, "rug", false, "mark each value below the density")
	f.BoolVar(&distFlags.truncate, "truncate", false, "limit the density to the range of the values")
	f.Float64SliceVar(&distFlags.quantiles, "quantiles", nil, "mark these quantiles on the density")
	f.BoolVar(&distFlags.discrete, "discrete", false, "treat the values as integers (default: detect)")
}

func runDist(cmd *cobra.Command, args []string) error {
	s, err := readSample(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(s.Xs) == 0 {
		return fmt.Errorf("%w: no input values", stats.ErrDegenerateInput)
	}
	s.Sort()

	printSummary(cmd.OutOrStdout(), s)
	if outPath == "" {
		return nil
	}

	opts := plot.DistOptions{
		Kind:       distFlags.kind,
		Discrete:   distFlags.discrete || stats.IsIntegral(s.Xs),
		Cumulative: distFlags.cumulative,
		Rug:        distFlags.rug,
		Truncate:   distFlags.truncate,
		Quantiles:  distFlags.quantiles,
	}
	if distFlags.bins > 0 {
		opts.Bins = stats.BinCount(distFlags.bins)
	}
	f, err := cfg.PlotConfig(logger).Dist(s.Xs, opts)
	if err != nil {
		return err
	}
	f.Title = fmt.Sprintf("N = %d", len(s.Xs))
	return writeFigure(cmd, f)
}

// printSummary prints the moments and percentiles of the sorted
// sample s.
func printSummary(w io.Writer, s *stats.Sample) {
	fmt.Fprintf(w, "N %d  sum %.6g  mean %.6g", len(s.Xs), floats.Sum(s.Xs), s.Mean())
	if floats.Min(s.Xs) > 0 {
		if gmean := stat.GeometricMean(s.Xs, nil); !math.IsNaN(gmean) {
			fmt.Fprintf(w, "  gmean %.6g", gmean)
		}
	}
	sd := s.StdDev()
	fmt.Fprintf(w, "  std dev %.6g  variance %.6g\n", sd, sd*sd)
	fmt.Fprintln(w)

	// Quartiles and tails.
	labels := map[int]string{0: "min", 50: "median", 100: "max"}
	for _, p := range []int{0, 1, 5, 25, 50, 75, 95, 99, 100} {
		label, ok := labels[p]
		if !ok {
			label = fmt.Sprintf("%d%%ile", p)
		}
		fmt.Fprintf(w, "%8s %.6g\n", label, s.Percentile(float64(p)/100))
	}
}

func readSample(r io.Reader) (*stats.Sample, error) {
	var sample stats.Sample
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		l := strings.TrimSpace(scanner.Text())
		if l == "" {
			continue
		}
		value, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sample.Xs = append(sample.Xs, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &sample, nil
}
