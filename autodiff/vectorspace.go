// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import "github.com/born-ml/pullback/internal/vectorspace"

// Vector is the additive vector-space contract of tangent types.
type Vector[V any] = vectorspace.Vector[V]

// Differentiable is a value with an associated tangent type T.
type Differentiable[D, T any] = vectorspace.Differentiable[D, T]

// Scalable is implemented by vectors supporting multiplication by a scalar.
type Scalable[V any] = vectorspace.Scalable[V]

// PointwiseMultiplicative is implemented by vectors supporting element-wise
// multiplication.
type PointwiseMultiplicative[V any] = vectorspace.PointwiseMultiplicative[V]

// Unit is implemented by vectors with a multiplicative identity.
type Unit[V any] = vectorspace.Unit[V]

// Empty is the zero-dimensional vector space.
type Empty = vectorspace.Empty

// Error taxonomy.
var (
	ErrTypeMismatch         = vectorspace.ErrTypeMismatch
	ErrUnsupportedOperation = vectorspace.ErrUnsupportedOperation
	ErrDimensionMismatch    = vectorspace.ErrDimensionMismatch
)

// TypeMismatchError reports two erased values with different concrete types.
type TypeMismatchError = vectorspace.TypeMismatchError

// UnsupportedOperationError reports an operation with no generic meaning.
type UnsupportedOperationError = vectorspace.UnsupportedOperationError

// DimensionMismatchError reports arithmetic on operands of different lengths.
type DimensionMismatchError = vectorspace.DimensionMismatchError

// Move moves d along direction in place.
func Move[D Differentiable[D, T], T any](d *D, direction T) {
	vectorspace.Move(d, direction)
}

// MoveVector moves a self-tangent vector along direction in place.
func MoveVector[V Vector[V]](v *V, direction V) {
	vectorspace.MoveVector(v, direction)
}

// ZeroOf returns the additive identity of V.
func ZeroOf[V Vector[V]]() V {
	return vectorspace.ZeroOf[V]()
}

// Sum adds all vectors in order.
func Sum[V Vector[V]](vs ...V) V {
	return vectorspace.Sum(vs...)
}

// Recover runs f and converts a fatal panic raised inside it into an error.
func Recover(f func()) error {
	return vectorspace.Recover(f)
}

// IsFatal reports whether err belongs to the fatal error taxonomy.
func IsFatal(err error) bool {
	return vectorspace.IsFatal(err)
}
