// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aclements/go-bayesplot/dataset"
)

const (
	nChains = 2
	nDraws  = 500
)

var schoolNames = []string{"A", "B", "C"}

func normals(rng *rand.Rand, n int, mu float64) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = mu + rng.NormFloat64()
	}
	return xs
}

func counts(rng *rand.Rand, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(rng.IntN(8))
	}
	return xs
}

func mustArray(t *testing.T, name string, dims []string, shape []int, coords [][]string, values []float64) *dataset.Array {
	t.Helper()
	a, err := dataset.NewArray(name, dims, shape, coords, values)
	require.NoError(t, err)
	return a
}

func mustDataset(t *testing.T, arrays ...*dataset.Array) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(arrays...)
	require.NoError(t, err)
	return ds
}

// posterior returns inference data with a posterior of 2 chains and
// 500 draws of mu, theta[school] and an integer-valued k, plus
// divergences at draws 3 and 10 of chain 0.
func posterior(t *testing.T) *dataset.InferenceData {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, 2))
	cd := []string{dataset.Chain, dataset.Draw}
	mu := mustArray(t, "mu", cd, []int{nChains, nDraws}, nil, normals(rng, nChains*nDraws, 0))
	theta := mustArray(t, "theta", append(cd, "school"), []int{nChains, nDraws, 3},
		[][]string{nil, nil, schoolNames}, normals(rng, nChains*nDraws*3, 2))
	k := mustArray(t, "k", cd, []int{nChains, nDraws}, nil, counts(rng, nChains*nDraws))
	k.Discrete = true

	div := make([]float64, nChains*nDraws)
	div[3], div[10] = 1, 1
	diverging := mustArray(t, "diverging", cd, []int{nChains, nDraws}, nil, div)
	diverging.Discrete = true

	id := dataset.NewInferenceData()
	id.SetGroup(dataset.Posterior, mustDataset(t, mu, theta, k))
	id.SetGroup(dataset.SampleStats, mustDataset(t, diverging))
	return id
}

const (
	ppChains = 2
	ppDraws  = 10
	nObs     = 20
)

// predictive returns inference data with observed y[school, obs_id]
// and a posterior predictive y of 2 chains and 10 draws. If discrete,
// both are integer-valued.
func predictive(t *testing.T, discrete bool) *dataset.InferenceData {
	t.Helper()
	rng := rand.New(rand.NewPCG(3, 4))
	gen := func(n int) []float64 {
		if discrete {
			return counts(rng, n)
		}
		return normals(rng, n, 0)
	}
	obsDims := []string{"school", "obs_id"}
	obsCoords := [][]string{schoolNames, nil}
	y := mustArray(t, "y", obsDims, []int{3, nObs}, obsCoords, gen(3*nObs))
	y.Discrete = discrete
	ppY := mustArray(t, "y", append([]string{dataset.Chain, dataset.Draw}, obsDims...),
		[]int{ppChains, ppDraws, 3, nObs}, append([][]string{nil, nil}, obsCoords...),
		gen(ppChains*ppDraws*3*nObs))
	ppY.Discrete = discrete

	id := dataset.NewInferenceData()
	id.SetGroup(dataset.ObservedData, mustDataset(t, y))
	id.SetGroup(dataset.PosteriorPredictive, mustDataset(t, ppY))
	return id
}

// layersOf returns the layers of p of type T.
func layersOf[T Layer](p *Panel) []T {
	var out []T
	for _, l := range p.Layers {
		if v, ok := l.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
