// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/pullback/internal/autodiff"
	"github.com/born-ml/pullback/internal/nn"
	"github.com/born-ml/pullback/internal/tensor"
	"github.com/born-ml/pullback/internal/vectorspace"
)

// Layer is a differentiable function from In to Out with parameter tangent P.
type Layer[L, In, Out, P any] = nn.Layer[L, In, Out, P]

// Sequential applies layers in order and chains their pullbacks.
type Sequential[L Layer[L, X, X, P], X any, P vectorspace.Vector[P]] = nn.Sequential[L, X, P]

// Tangents is the tangent of a Sequential, one entry per layer.
type Tangents[P vectorspace.Vector[P]] = nn.Tangents[P]

// NewSequential creates a Sequential over layers.
func NewSequential[L Layer[L, X, X, P], X any, P vectorspace.Vector[P]](layers ...L) Sequential[L, X, P] {
	return nn.NewSequential[L, X, P](layers...)
}

// AnyLayer is a type-erased layer from In to Out.
type AnyLayer[In, Out any] = nn.AnyLayer[In, Out]

// EraseLayer wraps l in an AnyLayer.
func EraseLayer[L Layer[L, In, Out, P], In, Out any, P vectorspace.Vector[P]](l L) AnyLayer[In, Out] {
	return nn.EraseLayer[L, In, Out, P](l)
}

// UnboxLayer returns the layer held by a if its concrete type is exactly L.
func UnboxLayer[L, In, Out any](a AnyLayer[In, Out]) (L, bool) {
	return nn.UnboxLayer[L](a)
}

// Layers

// Dense is a fully connected layer y = act(W·x + b).
type Dense = nn.Dense

// DenseTangent is the parameter tangent of Dense.
type DenseTangent = nn.DenseTangent

// DenseConfig configures NewDense.
type DenseConfig = nn.DenseConfig

// NewDense creates a Dense layer with Xavier-initialized weights.
//
// Example:
//
//	layer := nn.NewDense(nn.DenseConfig{In: 784, Out: 128, Activation: nn.ReLU})
func NewDense(cfg DenseConfig) Dense {
	return nn.NewDense(cfg)
}

// NewDenseFrom creates a Dense layer with the given parameters.
func NewDenseFrom(weight tensor.Matrix, bias tensor.Vector, activation Activation) Dense {
	return nn.NewDenseFrom(weight, bias, activation)
}

// Lambda is a parameter-free layer wrapping a differentiable function.
type Lambda[X any] = nn.Lambda[X]

// NewLambda creates a parameter-free layer from fn.
func NewLambda[X any](name string, fn autodiff.Function[X, X]) Lambda[X] {
	return nn.NewLambda(name, fn)
}

// Xavier returns a fanOut×fanIn matrix with Glorot uniform initialization.
func Xavier(fanIn, fanOut int, rng *rand.Rand) tensor.Matrix {
	return nn.Xavier(fanIn, fanOut, rng)
}

// Activations

// Activation is an element-wise differentiable function on vectors.
type Activation = nn.Activation

// ReLU applies max(0, x) element-wise.
func ReLU(x tensor.Vector) (tensor.Vector, autodiff.Pullback[tensor.Vector, tensor.Vector]) {
	return nn.ReLU(x)
}

// Sigmoid applies 1 / (1 + exp(-x)) element-wise.
func Sigmoid(x tensor.Vector) (tensor.Vector, autodiff.Pullback[tensor.Vector, tensor.Vector]) {
	return nn.Sigmoid(x)
}

// Tanh applies the hyperbolic tangent element-wise.
func Tanh(x tensor.Vector) (tensor.Vector, autodiff.Pullback[tensor.Vector, tensor.Vector]) {
	return nn.Tanh(x)
}

// NewReLU creates a ReLU activation layer.
func NewReLU() Lambda[tensor.Vector] {
	return nn.NewReLU()
}

// NewSigmoid creates a Sigmoid activation layer.
func NewSigmoid() Lambda[tensor.Vector] {
	return nn.NewSigmoid()
}

// NewTanh creates a Tanh activation layer.
func NewTanh() Lambda[tensor.Vector] {
	return nn.NewTanh()
}

// Loss Functions

// Loss is a differentiable function from a prediction to a scalar loss.
type Loss = nn.Loss

// L1Loss returns the sum of absolute differences against expected.
func L1Loss(expected tensor.Vector) Loss {
	return nn.L1Loss(expected)
}

// MSELoss returns the mean squared error against expected.
func MSELoss(expected tensor.Vector) Loss {
	return nn.MSELoss(expected)
}
