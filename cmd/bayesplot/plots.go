// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math/rand/v2"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aclements/go-bayesplot/plot"
)

// dataFlags are the flags shared by the commands that read inference
// data.
type dataFlags struct {
	stan   bool
	vars   []string
	coords []string
}

// varNames returns the --var names, or nil for every variable.
func (d *dataFlags) varNames() []string {
	if len(d.vars) == 0 {
		return nil
	}
	return d.vars
}

func (d *dataFlags) register(f *pflag.FlagSet) {
	f.BoolVar(&d.stan, "stan", false, "read one CmdStan CSV file per chain")
	f.StringArrayVar(&d.vars, "var", nil, "plot variable `name` (repeatable; ~name excludes)")
	f.StringArrayVar(&d.coords, "coords", nil, "restrict dimension to labels, as `dim=label[,label]` (repeatable)")
}

var traceFlags struct {
	dataFlags
	combined    bool
	compact     bool
	divergences string
	legend      bool
}

var traceCmd = &cobra.Command{
	Use:   "trace [flags] file...",
	Short: "Plot the posterior density and trace of each variable",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := loadData(cmd, args, traceFlags.stan)
		if err != nil {
			return err
		}
		coords, err := parseCoords(traceFlags.coords)
		if err != nil {
			return err
		}
		f, err := cfg.PlotConfig(logger).Trace(id, plot.TraceOptions{
			VarNames:    traceFlags.varNames(),
			Coords:      coords,
			Combined:    traceFlags.combined,
			Compact:     traceFlags.compact,
			Divergences: traceFlags.divergences,
			Legend:      traceFlags.legend,
		})
		if err != nil {
			return err
		}
		return writeFigure(cmd, f)
	},
}

var jointFlags struct {
	dataFlags
	kind     string
	gridsize int
}

var jointCmd = &cobra.Command{
	Use:   "joint [flags] file...",
	Short: "Plot the joint distribution of two variables",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := loadData(cmd, args, jointFlags.stan)
		if err != nil {
			return err
		}
		coords, err := parseCoords(jointFlags.coords)
		if err != nil {
			return err
		}
		f, err := cfg.PlotConfig(logger).Joint(id, plot.JointOptions{
			VarNames: jointFlags.varNames(),
			Coords:   coords,
			Kind:     jointFlags.kind,
			GridSize: jointFlags.gridsize,
		})
		if err != nil {
			return err
		}
		return writeFigure(cmd, f)
	},
}

var ppcFlags struct {
	dataFlags
	kind      string
	alpha     float64
	noMean    bool
	flatten   []string
	flattenPP []string
	pairs     map[string]string
	samples   int
	seed      uint64
	jitter    float64
	animated  bool
}

var ppcCmd = &cobra.Command{
	Use:   "ppc [flags] file...",
	Short: "Plot a posterior predictive check",
	Long: `ppc overlays the observed data with draws from the posterior
predictive distribution and their mean.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := loadData(cmd, args, ppcFlags.stan)
		if err != nil {
			return err
		}
		coords, err := parseCoords(ppcFlags.coords)
		if err != nil {
			return err
		}
		opts := plot.PPCOptions{
			Kind:         ppcFlags.kind,
			Alpha:        ppcFlags.alpha,
			HideMean:     ppcFlags.noMean,
			VarNames:     ppcFlags.varNames(),
			Coords:       coords,
			DataPairs:    ppcFlags.pairs,
			NumPPSamples: ppcFlags.samples,
			Jitter:       ppcFlags.jitter,
			Animated:     ppcFlags.animated,
		}
		// An explicitly empty --flatten pools nothing.
		if cmd.Flags().Changed("flatten") {
			opts.Flatten = nonNil(ppcFlags.flatten)
		}
		if cmd.Flags().Changed("flatten-pp") {
			opts.FlattenPP = nonNil(ppcFlags.flattenPP)
		}
		if cmd.Flags().Changed("seed") {
			opts.Rand = rand.New(rand.NewPCG(ppcFlags.seed, ppcFlags.seed))
		}
		f, err := cfg.PlotConfig(logger).PPC(id, opts)
		if err != nil {
			return err
		}
		return writeFigure(cmd, f)
	},
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func init() {
	f := traceCmd.Flags()
	traceFlags.register(f)
	f.BoolVar(&traceFlags.combined, "combined", false, "plot one density of all chains")
	f.BoolVar(&traceFlags.compact, "compact", false, "plot all coordinates of a variable in one row")
	f.StringVar(&traceFlags.divergences, "divergences", plot.DivergencesBottom, "mark divergent draws at the `position` top, bottom or none")
	f.BoolVar(&traceFlags.legend, "legend", false, "label the chains")

	f = jointCmd.Flags()
	jointFlags.register(f)
	f.StringVar(&jointFlags.kind, "kind", plot.KindScatter, "joint plot `kind`: scatter, kde or hexbin")
	f.IntVar(&jointFlags.gridsize, "gridsize", 0, "hexagons across the x range (default n^0.35)")

	f = ppcCmd.Flags()
	ppcFlags.register(f)
	f.StringVar(&ppcFlags.kind, "kind", plot.KindKDE, "plot `kind`: kde, cumulative or scatter")
	f.Float64Var(&ppcFlags.alpha, "alpha", 0, "opacity of the replicate draws (default by kind)")
	f.BoolVar(&ppcFlags.noMean, "no-mean", false, "omit the posterior predictive mean")
	f.StringSliceVar(&ppcFlags.flatten, "flatten", nil, "observed `dims` pooled into each panel (default all)")
	f.StringSliceVar(&ppcFlags.flattenPP, "flatten-pp", nil, "posterior predictive `dims` pooled into each panel (default --flatten)")
	f.StringToStringVar(&ppcFlags.pairs, "pair", nil, "match observed to posterior predictive variables, as `obs=pp`")
	f.IntVar(&ppcFlags.samples, "num-pp-samples", 0, "number of replicate draws (default all, 5 for scatter)")
	f.Uint64Var(&ppcFlags.seed, "seed", 0, "random `seed` for subsampling and jitter")
	f.Float64Var(&ppcFlags.jitter, "jitter", 0, "vertical jitter of scatter markers, in rows")
	f.BoolVar(&ppcFlags.animated, "animated", false, "write one frame per replicate draw")
}
