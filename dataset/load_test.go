// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schoolsJSON = `{
  "posterior": {
    "theta": {
      "dims": ["chain", "draw", "school"],
      "coords": {"school": ["Choate", "Deerfield"]},
      "values": [[[1.5, 2], [3, 4]], [[5, 6], [7, 8]]]
    },
    "mu": [[0.1, 0.2], [0.3, 0.4]]
  },
  "observed_data": {
    "y": {"dims": ["school"], "coords": {"school": ["Choate", "Deerfield"]}, "values": [28, 8]}
  },
  "sample_stats": {
    "diverging": {"values": [[true, false], [false, false]]},
    "lp": {"shape": [2, 2], "values": [1, 2, 3, 4], "dtype": "float64"}
  }
}`

func TestLoadJSON(t *testing.T) {
	id, err := LoadJSON(strings.NewReader(schoolsJSON))
	require.NoError(t, err)
	assert.Equal(t, []string{Posterior, ObservedData, SampleStats}, id.Groups())

	post, err := id.Group(Posterior)
	require.NoError(t, err)
	assert.Equal(t, []string{"theta", "mu"}, post.Names())

	theta, err := post.Var("theta")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2}, theta.Shape())
	assert.Equal(t, 7.0, theta.At(1, 1, 0))
	assert.False(t, theta.Discrete)

	mu, err := post.Var("mu")
	require.NoError(t, err)
	assert.Equal(t, []string{Chain, Draw}, mu.Dims)

	obs, err := id.Group(ObservedData)
	require.NoError(t, err)
	y, err := obs.Var("y")
	require.NoError(t, err)
	assert.True(t, y.Discrete)
	assert.Equal(t, []string{"Choate", "Deerfield"}, y.Coords[0])

	stats, err := id.Group(SampleStats)
	require.NoError(t, err)
	div, err := stats.Var("diverging")
	require.NoError(t, err)
	assert.True(t, div.Discrete)
	assert.Equal(t, []float64{1, 0, 0, 0}, div.Values)
	lp, err := stats.Var("lp")
	require.NoError(t, err)
	assert.False(t, lp.Discrete)
	assert.Equal(t, []int{2, 2}, lp.Shape())
}

func TestLoadYAML(t *testing.T) {
	id, err := LoadJSON(strings.NewReader(`
observed_data:
  y: [1.0, .nan, 3]
`))
	require.NoError(t, err)
	obs, err := id.Group(ObservedData)
	require.NoError(t, err)
	y, err := obs.Var("y")
	require.NoError(t, err)
	assert.Equal(t, []string{"y_dim_0"}, y.Dims)
	assert.True(t, math.IsNaN(y.Values[1]))
	assert.False(t, y.Discrete)
}

func TestLoadJSONErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"ragged":      `{"posterior": {"x": [[1, 2], [3]]}}`,
		"mixed":       `{"posterior": {"x": [[1, 2], 3]}}`,
		"no values":   `{"posterior": {"x": {"dims": ["a"]}}}`,
		"flat shape":  `{"posterior": {"x": {"dims": ["a", "b"], "values": [1, 2]}}}`,
		"bad count":   `{"posterior": {"x": {"shape": [3], "values": [1, 2]}}}`,
		"non-numeric": `{"posterior": {"x": ["a"]}}`,
		"top level":   `[1, 2]`,
	} {
		_, err := LoadJSON(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrShape, name)
	}

	_, err := LoadJSON(strings.NewReader(`{"posterior": {"x": {"coords": {"z": ["a"]}, "values": [1]}}}`))
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

const stanChain1 = `# model = eight_schools
lp__,accept_stat__,divergent__,mu,theta.1,theta.2
# Adaptation terminated
-4.5,0.9,0,1.25,2,3
-4.1,0.8,1,1.5,4,5
`

const stanChain2 = `lp__,accept_stat__,divergent__,mu,theta.1,theta.2
-4.0,0.7,0,2.5,6,7
-3.9,0.95,0,2.75,8,9
`

func TestLoadStanCSV(t *testing.T) {
	id, err := LoadStanCSV(strings.NewReader(stanChain1), strings.NewReader(stanChain2))
	require.NoError(t, err)

	post, err := id.Group(Posterior)
	require.NoError(t, err)
	assert.Equal(t, []string{"mu", "theta"}, post.Names())
	theta, err := post.Var("theta")
	require.NoError(t, err)
	assert.Equal(t, []string{Chain, Draw, "theta_dim_0"}, theta.Dims)
	assert.Equal(t, []float64{2, 3, 4, 5, 6, 7, 8, 9}, theta.Values)
	assert.True(t, theta.Discrete)
	mu, _ := post.Var("mu")
	assert.False(t, mu.Discrete)

	stats, err := id.Group(SampleStats)
	require.NoError(t, err)
	assert.Equal(t, []string{"lp", "acceptance_rate", "diverging"}, stats.Names())
	div, _ := stats.Var("diverging")
	assert.Equal(t, []float64{0, 1, 0, 0}, div.Values)
	assert.True(t, div.Discrete)
}

func TestLoadStanCSVMatrix(t *testing.T) {
	csv := "a.1.1,a.2.1,a.1.2,a.2.2\n1,2,3,4\n"
	id, err := LoadStanCSV(strings.NewReader(csv))
	require.NoError(t, err)
	post, _ := id.Group(Posterior)
	a, err := post.Var("a")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 2}, a.Shape())
	// Columns are reordered to row-major.
	assert.Equal(t, []float64{1, 3, 2, 4}, a.Values)
}

func TestLoadStanCSVErrors(t *testing.T) {
	_, err := LoadStanCSV()
	assert.ErrorIs(t, err, ErrShape)

	_, err = LoadStanCSV(strings.NewReader(stanChain1), strings.NewReader("lp__,mu\n1,2\n"))
	assert.ErrorIs(t, err, ErrShape)

	short := "lp__,accept_stat__,divergent__,mu,theta.1,theta.2\n-4,0.7,0,2.5,6,7\n"
	_, err = LoadStanCSV(strings.NewReader(stanChain1), strings.NewReader(short))
	assert.ErrorIs(t, err, ErrShape)

	_, err = LoadStanCSV(strings.NewReader("a.1,a.3\n1,2\n"))
	assert.ErrorIs(t, err, ErrShape)

	_, err = LoadStanCSV(strings.NewReader("a.x\n1\n"))
	assert.ErrorIs(t, err, ErrShape)
}
