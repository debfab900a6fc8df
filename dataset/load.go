// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// sampledGroups have leading chain and draw dimensions by default.
var sampledGroups = map[string]bool{
	Posterior:           true,
	PosteriorPredictive: true,
	SampleStats:         true,
	Prior:               true,
	"prior_predictive":  true,
	"log_likelihood":    true,
}

// arraySpec is the document form of one variable.
type arraySpec struct {
	Dims   []string            `yaml:"dims"`
	Coords map[string][]string `yaml:"coords"`
	Shape  []int               `yaml:"shape"`
	Values yaml.Node           `yaml:"values"`
	Dtype  string              `yaml:"dtype"`
}

// LoadJSON reads an inference data document of the form
//
//	{"posterior": {"theta": {"dims": ["chain", "draw", "school"],
//	                         "coords": {"school": ["Choate", ...]},
//	                         "values": [[[...]]]}}}
//
// Groups and variables keep their document order. "values" may be
// nested arrays, whose nesting gives the shape, or a flat array
// together with "shape" or with "coords" for every dimension. A
// variable may also be given as a bare array. Without "dims", sampled
// groups such as posterior get dimensions chain, draw, <name>_dim_0,
// ... and other groups get <name>_dim_0, .... Variables are Discrete
// if "dtype" is an integer or boolean type or, without "dtype", if
// every value is written as an integer.
//
// Since YAML is a superset of JSON, LoadJSON also accepts the same
// document written in YAML.
func LoadJSON(r io.Reader) (*InferenceData, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding inference data: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: inference data must be an object of groups", ErrShape)
	}

	id := NewInferenceData()
	for i := 0; i+1 < len(root.Content); i += 2 {
		group := root.Content[i].Value
		gnode := root.Content[i+1]
		if gnode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: group %q must be an object of variables", ErrShape, group)
		}
		ds := &Dataset{}
		for j := 0; j+1 < len(gnode.Content); j += 2 {
			name := gnode.Content[j].Value
			a, err := loadArray(group, name, gnode.Content[j+1])
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", group, name, err)
			}
			if err := ds.Add(a); err != nil {
				return nil, fmt.Errorf("group %s: %w", group, err)
			}
		}
		id.SetGroup(group, ds)
	}
	return id, nil
}

func loadArray(group, name string, node *yaml.Node) (*Array, error) {
	var spec arraySpec
	if node.Kind == yaml.SequenceNode {
		spec.Values = *node
	} else if err := node.Decode(&spec); err != nil {
		return nil, err
	}
	if spec.Values.Kind == 0 {
		return nil, fmt.Errorf("%w: missing values", ErrShape)
	}

	values, shape, integral, err := decodeValues(&spec.Values)
	if err != nil {
		return nil, err
	}

	flat := len(shape) == 1
	switch {
	case flat && spec.Shape != nil:
		shape = spec.Shape
	case flat && len(spec.Dims) > 1:
		// Take the shape from the coordinates.
		shape = make([]int, len(spec.Dims))
		for i, d := range spec.Dims {
			labels, ok := spec.Coords[d]
			if !ok {
				return nil, fmt.Errorf("%w: flat values need \"shape\" or coordinates for dimension %q", ErrShape, d)
			}
			shape[i] = len(labels)
		}
	}

	dims := spec.Dims
	if dims == nil {
		if sampledGroups[group] && len(shape) >= 2 {
			dims = []string{Chain, Draw}
		}
		lead := len(dims)
		for i := lead; i < len(shape); i++ {
			dims = append(dims, fmt.Sprintf("%s_dim_%d", name, i-lead))
		}
	}
	for d := range spec.Coords {
		if !slices.Contains(dims, d) {
			return nil, fmt.Errorf("%w: coordinates for unknown dimension %q", ErrUnknownDimension, d)
		}
	}
	coords := make([][]string, len(dims))
	for i, d := range dims {
		coords[i] = spec.Coords[d]
	}

	a, err := NewArray(name, dims, shape, coords, values)
	if err != nil {
		return nil, err
	}
	switch dt := strings.ToLower(spec.Dtype); {
	case dt == "":
		a.Discrete = integral
	case strings.HasPrefix(dt, "int"), strings.HasPrefix(dt, "uint"), dt == "bool":
		a.Discrete = true
	}
	return a, nil
}

// decodeValues flattens a (possibly nested) sequence node into
// row-major values and its shape. integral reports whether every
// value was written as an integer or boolean.
func decodeValues(node *yaml.Node) (values []float64, shape []int, integral bool, err error) {
	if node.Kind != yaml.SequenceNode {
		return nil, nil, false, fmt.Errorf("%w: values must be an array", ErrShape)
	}
	integral = true
	leaf := -1 // depth of the scalars
	var walk func(n *yaml.Node, depth int) error
	walk = func(n *yaml.Node, depth int) error {
		if depth == len(shape) {
			shape = append(shape, len(n.Content))
		} else if shape[depth] != len(n.Content) {
			return fmt.Errorf("%w: ragged values at depth %d", ErrShape, depth)
		}
		for _, c := range n.Content {
			if c.Kind == yaml.SequenceNode {
				if leaf >= 0 && leaf <= depth {
					return fmt.Errorf("%w: mixed scalars and arrays at depth %d", ErrShape, depth)
				}
				if err := walk(c, depth+1); err != nil {
					return err
				}
				continue
			}
			if leaf < 0 {
				leaf = depth
			} else if leaf != depth {
				return fmt.Errorf("%w: mixed scalars and arrays at depth %d", ErrShape, depth)
			}
			x, isInt, err := decodeScalar(c)
			if err != nil {
				return err
			}
			integral = integral && isInt
			values = append(values, x)
		}
		return nil
	}
	if err := walk(node, 0); err != nil {
		return nil, nil, false, err
	}
	if len(values) != product(shape) {
		return nil, nil, false, fmt.Errorf("%w: ragged values", ErrShape)
	}
	return values, shape, integral && len(values) > 0, nil
}

func decodeScalar(n *yaml.Node) (x float64, isInt bool, err error) {
	switch n.ShortTag() {
	case "!!null":
		return math.NaN(), false, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return 0, false, err
		}
		if b {
			return 1, true, nil
		}
		return 0, true, nil
	case "!!int", "!!float":
		if err := n.Decode(&x); err != nil {
			return 0, false, err
		}
		return x, n.ShortTag() == "!!int", nil
	}
	return 0, false, fmt.Errorf("%w: non-numeric value %q at line %d", ErrShape, n.Value, n.Line)
}

func product(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}
