// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bayesplot plots MCMC posterior samples as SVG.
//
// Inference data is read from a JSON (or YAML) document with one
// object per group, or from CmdStan output CSV files, one per chain,
// with --stan. For example:
//
//	bayesplot trace --var mu --var theta --out trace.svg posterior.json
//	bayesplot ppc --stan --kind cumulative --out ppc.svg chain-*.csv
//	seq 100 | bayesplot dist --out dist.svg
//
// Animated figures are written one SVG per frame, numbered after the
// --out file name.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aclements/go-bayesplot/config"
	"github.com/aclements/go-bayesplot/render"
)

var (
	// Global flags
	configPath  string
	backendName string
	outPath     string
	verbose     bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bayesplot",
	Short: "Plot MCMC posterior samples",
	Long: `bayesplot draws diagnostic plots of Bayesian inference results:
distributions, trace plots, joint plots and posterior predictive checks.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}
		if backendName != "" {
			cfg.Render.Backend = backendName
		}
		logger, err = cfg.Logger(verbose)
		if err != nil {
			return err
		}
		logger.Debug("configured",
			zap.String("config", configPath),
			zap.String("backend", cfg.Render.Backend))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the available render backends",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range render.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML or TOML configuration `file`")
	rootCmd.PersistentFlags().StringVarP(&backendName, "backend", "b", "", "render `backend` (overrides the configuration)")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "output SVG `file` (default stdout)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(backendsCmd, distCmd, traceCmd, jointCmd, ppcCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
