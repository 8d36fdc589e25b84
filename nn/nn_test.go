// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pullback/autodiff"
	"github.com/born-ml/pullback/keypath"
	"github.com/born-ml/pullback/nn"
	"github.com/born-ml/pullback/tensor"
)

type f32 = autodiff.Float32

func scalarLayer(name string, f autodiff.Function[f32, f32]) nn.AnyLayer[f32, f32] {
	return nn.EraseLayer[nn.Lambda[f32], f32, f32, autodiff.Empty](nn.NewLambda(name, f))
}

// TestLayerInterface verifies that concrete types implement Layer.
func TestLayerInterface(t *testing.T) {
	var _ nn.Layer[nn.Dense, tensor.Vector, tensor.Vector, nn.DenseTangent] = nn.Dense{}
	var _ nn.Layer[nn.Lambda[f32], f32, f32, autodiff.Empty] = nn.Lambda[f32]{}
	var _ nn.Layer[nn.AnyLayer[f32, f32], f32, f32, autodiff.AnyLayerTangent] = nn.AnyLayer[f32, f32]{}
}

func TestSequential_ComposedGradient(t *testing.T) {
	square := scalarLayer("square", func(x f32) (f32, autodiff.Pullback[f32, f32]) {
		return x * x, func(v f32) f32 { return 2 * x * v }
	})
	double := scalarLayer("double", func(x f32) (f32, autodiff.Pullback[f32, f32]) {
		return x + x, func(v f32) f32 { return 2 * v }
	})

	model := nn.NewSequential[nn.AnyLayer[f32, f32], f32, autodiff.AnyLayerTangent](square, double)

	y, pb := model.ValueWithPullback(10)
	tangents, dx := pb(1)
	assert.Equal(t, f32(200), y)
	assert.Equal(t, f32(40), dx)
	assert.Len(t, tangents, 2)
}

func TestDense_Paths(t *testing.T) {
	layer := nn.NewDense(nn.DenseConfig{In: 2, Out: 2, Activation: nn.ReLU})

	matrices := keypath.RecursiveMatching[tensor.Matrix](layer)
	require.Len(t, matrices, 1)
	assert.Equal(t, "weight", matrices[0].Path.String())

	loss := nn.L1Loss(tensor.NewVector(0, 0))
	value, _ := loss(layer.Forward(tensor.NewVector(0, 0)))
	assert.Zero(t, value)
}
