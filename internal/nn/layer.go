// Package nn implements differentiable layers and their sequential
// composition.
//
// This package provides:
//   - Layer interface: forward computation, pullback, and parameter update
//   - Sequential: pullback-chaining composition of same-typed layers
//   - AnyLayer: type-erased layer so heterogeneous layers can share a Sequential
//   - Dense: fully connected layer with a structured tangent
//   - Activations: Tanh, ReLU, Sigmoid (as parameter-free Lambda layers)
//   - Loss functions: L1, MSE
//
// A layer's pullback maps a tangent of its output to the tangent of its
// parameters and the tangent of its input. Parameters are updated by moving
// the layer along a parameter tangent:
//
//	y, pb := layer.ValueWithPullback(x)
//	dParams, dx := pb(dy)
//	layer = layer.Moved(dParams.Scale(-lr))
package nn

import (
	"github.com/born-ml/pullback/internal/autodiff"
	"github.com/born-ml/pullback/internal/vectorspace"
)

// Layer is a differentiable function from In to Out with parameters whose
// tangent type is P.
//
// L is the implementing type itself, so Moved returns a concrete layer.
type Layer[L, In, Out, P any] interface {
	// Forward computes the output of the layer.
	Forward(x In) Out

	// ValueWithPullback computes the output and the pullback at x.
	//
	// The pullback returns the parameter tangent and the input tangent.
	ValueWithPullback(x In) (Out, func(dy Out) (P, In))

	// Moved returns the layer with its parameters moved along direction.
	Moved(direction P) L
}

// Lambda is a parameter-free layer wrapping a differentiable function.
//
// Its parameter tangent is vectorspace.Empty.
type Lambda[X any] struct {
	name string
	fn   autodiff.Function[X, X]
}

// NewLambda creates a parameter-free layer from fn.
func NewLambda[X any](name string, fn autodiff.Function[X, X]) Lambda[X] {
	return Lambda[X]{name: name, fn: fn}
}

// Name returns the layer name.
func (l Lambda[X]) Name() string {
	return l.name
}

// Forward applies the wrapped function.
func (l Lambda[X]) Forward(x X) X {
	return autodiff.Apply(l.fn, x)
}

// ValueWithPullback applies the wrapped function and returns its pullback.
func (l Lambda[X]) ValueWithPullback(x X) (X, func(X) (vectorspace.Empty, X)) {
	y, pb := l.fn(x)
	return y, func(dy X) (vectorspace.Empty, X) {
		return vectorspace.Empty{}, pb(dy)
	}
}

// Moved returns l unchanged.
func (l Lambda[X]) Moved(vectorspace.Empty) Lambda[X] {
	return l
}

// String implements fmt.Stringer.
func (l Lambda[X]) String() string {
	return l.name
}
