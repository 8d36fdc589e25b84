// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense vector and matrix tangent spaces.
//
// # Basic Usage
//
//	v := tensor.NewVector(1, 2, 3)
//	m := tensor.NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
//	y := m.MulVec(v) // [14 32]
//
// The zero Vector and Matrix are the additive identity of every size.
package tensor

import "github.com/born-ml/pullback/internal/tensor"

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Vector is an immutable dense float64 vector.
type Vector = tensor.Vector

// Matrix is an immutable dense row-major float64 matrix.
type Matrix = tensor.Matrix

// NewVector creates a vector holding a copy of values.
func NewVector(values ...float64) Vector {
	return tensor.NewVector(values...)
}

// Full creates a vector of length n with every element set to value.
func Full(n int, value float64) Vector {
	return tensor.Full(n, value)
}

// NewMatrix creates a rows×cols matrix holding a copy of data (row-major).
func NewMatrix(rows, cols int, data []float64) Matrix {
	return tensor.NewMatrix(rows, cols, data)
}

// Zeros creates a rows×cols matrix of zeros.
func Zeros(rows, cols int) Matrix {
	return tensor.Zeros(rows, cols)
}

// Outer returns the outer product a·bᵀ.
func Outer(a, b Vector) Matrix {
	return tensor.Outer(a, b)
}
