// Package tensor provides dense vector and matrix tangent spaces.
//
// Vector and Matrix are immutable values backed by gonum. No operation
// writes to the storage of an existing value, so values can be shared freely
// between the forward pass and captured pullbacks. Adding or subtracting the
// empty value returns the other operand without copying it.
//
// The empty Vector / Matrix (the Go zero value) is the additive identity of
// every dimension, so a freshly zeroed accumulator can be added to a tensor
// of any size:
//
//	var acc tensor.Vector
//	acc = acc.Add(tensor.NewVector(1, 2, 3)) // [1 2 3]
//
// Element-wise operations on two non-empty operands of different sizes
// panic with vectorspace.ErrDimensionMismatch.
package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/pullback/internal/vectorspace"
)

// Vector is a dense float64 vector.
type Vector struct {
	data []float64
}

// NewVector creates a vector holding a copy of values.
func NewVector(values ...float64) Vector {
	return Vector{data: append([]float64(nil), values...)}
}

// Full creates a vector of length n with every element set to value.
func Full(n int, value float64) Vector {
	data := make([]float64, n)
	for i := range data {
		data[i] = value
	}
	return Vector{data: data}
}

// Len returns the number of elements.
func (v Vector) Len() int {
	return len(v.data)
}

// Shape returns [Len()], or the empty shape for the zero vector.
func (v Vector) Shape() Shape {
	if len(v.data) == 0 {
		return Shape{}
	}
	return Shape{len(v.data)}
}

// At returns the i-th element.
func (v Vector) At(i int) float64 {
	return v.data[i]
}

// Values returns a copy of the elements.
func (v Vector) Values() []float64 {
	return append([]float64(nil), v.data...)
}

// IsEmpty reports whether v is the empty (identity) vector.
func (v Vector) IsEmpty() bool {
	return len(v.data) == 0
}

// Zero returns the empty vector.
func (Vector) Zero() Vector {
	return Vector{}
}

// Ones returns a vector of ones with the length of v.
func (v Vector) Ones() Vector {
	return Full(len(v.data), 1)
}

// Add returns v + other. If either side is empty the other is returned
// as is.
func (v Vector) Add(other Vector) Vector {
	if other.IsEmpty() {
		return v
	}
	if v.IsEmpty() {
		return other
	}
	v.checkLen("add", other)
	dst := make([]float64, len(v.data))
	floats.AddTo(dst, v.data, other.data)
	return Vector{data: dst}
}

// Sub returns v - other.
func (v Vector) Sub(other Vector) Vector {
	if other.IsEmpty() {
		return v
	}
	if v.IsEmpty() {
		return other.Scale(-1)
	}
	v.checkLen("subtract", other)
	dst := make([]float64, len(v.data))
	floats.SubTo(dst, v.data, other.data)
	return Vector{data: dst}
}

// Scale returns v * factor.
func (v Vector) Scale(factor float64) Vector {
	if v.IsEmpty() {
		return v
	}
	dst := make([]float64, len(v.data))
	floats.ScaleTo(dst, factor, v.data)
	return Vector{data: dst}
}

// MulElem returns the element-wise product of v and other.
func (v Vector) MulElem(other Vector) Vector {
	if v.IsEmpty() || other.IsEmpty() {
		return Vector{}
	}
	v.checkLen("multiply", other)
	dst := make([]float64, len(v.data))
	floats.MulTo(dst, v.data, other.data)
	return Vector{data: dst}
}

// Equal reports whether v and other hold the same elements.
// The empty vector equals any all-zero vector.
func (v Vector) Equal(other Vector) bool {
	switch {
	case v.IsEmpty():
		return other.isAllZero()
	case other.IsEmpty():
		return v.isAllZero()
	case len(v.data) != len(other.data):
		return false
	default:
		return floats.Equal(v.data, other.data)
	}
}

// EqualApprox reports whether v and other are element-wise within tol.
// The empty vector is approximately equal to any vector of norm at most tol.
// Non-empty vectors of different lengths are never equal.
func (v Vector) EqualApprox(other Vector, tol float64) bool {
	if v.IsEmpty() || other.IsEmpty() {
		return v.Sub(other).Norm() <= tol
	}
	if len(v.data) != len(other.data) {
		return false
	}
	return floats.EqualApprox(v.data, other.data, tol)
}

// Moved returns v + direction.
func (v Vector) Moved(direction Vector) Vector {
	return v.Add(direction)
}

// Dot returns the inner product of v and other (0 if either is empty).
func (v Vector) Dot(other Vector) float64 {
	if v.IsEmpty() || other.IsEmpty() {
		return 0
	}
	v.checkLen("dot", other)
	return floats.Dot(v.data, other.data)
}

// Sum returns the sum of the elements.
func (v Vector) Sum() float64 {
	return floats.Sum(v.data)
}

// Norm returns the Euclidean norm.
func (v Vector) Norm() float64 {
	if v.IsEmpty() {
		return 0
	}
	return floats.Norm(v.data, 2)
}

// Map returns the vector with f applied to every element.
func (v Vector) Map(f func(float64) float64) Vector {
	dst := make([]float64, len(v.data))
	for i, x := range v.data {
		dst[i] = f(x)
	}
	return Vector{data: dst}
}

// String implements fmt.Stringer.
func (v Vector) String() string {
	return fmt.Sprint(v.data)
}

func (v Vector) isAllZero() bool {
	for _, x := range v.data {
		if x != 0 {
			return false
		}
	}
	return true
}

func (v Vector) checkLen(op string, other Vector) {
	if len(v.data) != len(other.data) {
		panic(vectorspace.DimensionMismatch(op, len(v.data), len(other.data)))
	}
}
