// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation with
// explicit pullbacks.
//
// # Overview
//
// There is no computation graph. A differentiable function returns its value
// together with a pullback: a closure mapping a tangent of the output back to
// a tangent of the input. This package contains:
//   - Functions: Function, Pullback, Compose, Chain, Reduce, Gradient
//   - Vector-space protocol: Vector, Differentiable, Empty and the optional
//     capabilities Scalable, PointwiseMultiplicative, Unit
//   - Scalars: Float32, Float64 and the VJPs of scalar arithmetic
//   - Type erasure: AnyDerivative, AnyDifferentiable, AnyLayerTangent
//   - Errors: ErrTypeMismatch, ErrUnsupportedOperation, ErrDimensionMismatch
//
// # Basic Usage
//
//	import "github.com/born-ml/pullback/autodiff"
//
//	func square(x autodiff.Float32) (autodiff.Float32, autodiff.Pullback[autodiff.Float32, autodiff.Float32]) {
//	    y, pb := autodiff.MulVJP(x, x)
//	    return y, func(v autodiff.Float32) autodiff.Float32 {
//	        dx1, dx2 := pb(v)
//	        return dx1 + dx2
//	    }
//	}
//
//	func main() {
//	    autodiff.Gradient(square, 10) // 20
//	}
//
// # Type Erasure
//
// Tangents of different concrete types can be accumulated through an erased
// wrapper. The zero value is an opaque zero that adopts the type of the
// first value added to it:
//
//	var acc autodiff.AnyLayerTangent
//	acc = acc.Add(autodiff.NewLayerTangent(autodiff.Float32(2)))
//	v, ok := autodiff.Unbox[autodiff.Float32](acc) // 2, true
//
// Combining two different concrete types panics with ErrTypeMismatch. Use
// Recover at boundaries that must not crash:
//
//	err := autodiff.Recover(func() { a.Add(b) })
//	errors.Is(err, autodiff.ErrTypeMismatch)
package autodiff
