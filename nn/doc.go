// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides differentiable layers and their composition.
//
// # Overview
//
// This package contains:
//   - Layer interface: Forward, ValueWithPullback, Moved
//   - Sequential: chains layers and their pullbacks
//   - AnyLayer: type-erased layer for heterogeneous compositions
//   - Layers: Dense, Lambda
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: L1Loss, MSELoss
//   - Initialization: Xavier
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/pullback/autodiff"
//	    "github.com/born-ml/pullback/nn"
//	    "github.com/born-ml/pullback/tensor"
//	)
//
//	type layer = nn.AnyLayer[tensor.Vector, tensor.Vector]
//
//	func main() {
//	    model := nn.NewSequential[layer, tensor.Vector, autodiff.AnyLayerTangent](
//	        nn.EraseLayer[nn.Dense, tensor.Vector, tensor.Vector, nn.DenseTangent](
//	            nn.NewDense(nn.DenseConfig{In: 2, Out: 8, Activation: nn.Tanh})),
//	        nn.EraseLayer[nn.Dense, tensor.Vector, tensor.Vector, nn.DenseTangent](
//	            nn.NewDense(nn.DenseConfig{In: 8, Out: 1})),
//	    )
//
//	    y, pb := model.ValueWithPullback(x)
//	    tangents, dx := pb(dy) // one tangent per layer, in layer order
//	}
//
// # Sequential Composition
//
// The pullback of a Sequential feeds the output tangent through each
// layer's pullback from last to first. A Sequential with no layers is the
// identity and its pullback returns no tangents.
package nn
