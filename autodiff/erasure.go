// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import "github.com/born-ml/pullback/internal/erasure"

// AnyDerivative is the erased tangent of AnyDifferentiable.
type AnyDerivative = erasure.AnyDerivative

// AnyDifferentiable is a type-erased differentiable value.
type AnyDifferentiable = erasure.AnyDifferentiable

// AnyLayerTangent is the erased tangent of erased layers.
type AnyLayerTangent = erasure.AnyLayerTangent

// Erased is the set of erased tangent types.
type Erased = erasure.Erased

// NewDerivative wraps v in an AnyDerivative.
func NewDerivative[V Vector[V]](v V) AnyDerivative {
	return erasure.NewDerivative(v)
}

// NewLayerTangent wraps v in an AnyLayerTangent.
func NewLayerTangent[V Vector[V]](v V) AnyLayerTangent {
	return erasure.NewLayerTangent(v)
}

// NewDifferentiable wraps d in an AnyDifferentiable.
func NewDifferentiable[D Differentiable[D, T], T Vector[T]](d D) AnyDifferentiable {
	return erasure.NewDifferentiable[D, T](d)
}

// Unbox returns the value held by e if its concrete type is exactly T.
func Unbox[T Vector[T], E Erased](e E) (T, bool) {
	return erasure.Unbox[T](e)
}

// UnboxDifferentiable returns the value held by a if its type is exactly D.
func UnboxDifferentiable[D any](a AnyDifferentiable) (D, bool) {
	return erasure.UnboxDifferentiable[D](a)
}

// DifferentiableVJP wraps d and returns the pullback of the wrapping.
func DifferentiableVJP[D Differentiable[D, T], T Vector[T]](d D) (AnyDifferentiable, func(AnyDerivative) T) {
	return erasure.DifferentiableVJP[D, T](d)
}

// DifferentiableJVP wraps d and returns the differential of the wrapping.
func DifferentiableJVP[D Differentiable[D, T], T Vector[T]](d D) (AnyDifferentiable, func(T) AnyDerivative) {
	return erasure.DifferentiableJVP[D, T](d)
}

// LayerTangentVJP wraps v and returns the pullback of the wrapping.
func LayerTangentVJP[V Vector[V]](v V) (AnyLayerTangent, func(AnyLayerTangent) V) {
	return erasure.LayerTangentVJP(v)
}

// LayerTangentJVP wraps v and returns the differential of the wrapping.
func LayerTangentJVP[V Vector[V]](v V) (AnyLayerTangent, func(V) AnyLayerTangent) {
	return erasure.LayerTangentJVP(v)
}
