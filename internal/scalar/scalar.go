// Package scalar provides scalar tangent spaces and the vector-Jacobian
// products of scalar arithmetic.
//
// Float32 and Float64 are their own tangent types: Add/Sub form the vector
// space, One seeds gradients, and Moved is addition.
//
// Every differentiable operation is written as a pair: the value and a
// pullback closure capturing only what the backward pass needs.
//
//	y, pb := scalar.MulVJP(x, x) // y = x²
//	dx1, dx2 := pb(1)          // dy/dx = dx1 + dx2 = 2x
package scalar

import (
	"math"
	"strconv"

	"github.com/chewxy/math32"
)

// Float32 is a float32 scalar tangent space.
type Float32 float32

// Zero returns 0.
func (Float32) Zero() Float32 { return 0 }

// One returns 1.
func (Float32) One() Float32 { return 1 }

// Add returns x + y.
func (x Float32) Add(y Float32) Float32 { return x + y }

// Sub returns x - y.
func (x Float32) Sub(y Float32) Float32 { return x - y }

// Equal reports x == y.
func (x Float32) Equal(y Float32) bool { return x == y }

// Scale returns x * factor.
func (x Float32) Scale(factor float64) Float32 { return x * Float32(factor) }

// MulElem returns x * y.
func (x Float32) MulElem(y Float32) Float32 { return x * y }

// Moved returns x + direction.
func (x Float32) Moved(direction Float32) Float32 { return x + direction }

// Exp returns e**x.
func (x Float32) Exp() Float32 { return Float32(math32.Exp(float32(x))) }

// Log returns the natural logarithm of x.
func (x Float32) Log() Float32 { return Float32(math32.Log(float32(x))) }

// Sqrt returns the square root of x.
func (x Float32) Sqrt() Float32 { return Float32(math32.Sqrt(float32(x))) }

// Tanh returns the hyperbolic tangent of x.
func (x Float32) Tanh() Float32 { return Float32(math32.Tanh(float32(x))) }

// Sin returns the sine of x.
func (x Float32) Sin() Float32 { return Float32(math32.Sin(float32(x))) }

// Cos returns the cosine of x.
func (x Float32) Cos() Float32 { return Float32(math32.Cos(float32(x))) }

// Abs returns |x|.
func (x Float32) Abs() Float32 { return Float32(math32.Abs(float32(x))) }

// String implements fmt.Stringer.
func (x Float32) String() string {
	return strconv.FormatFloat(float64(x), 'g', -1, 32)
}

// Float64 is a float64 scalar tangent space.
type Float64 float64

// Zero returns 0.
func (Float64) Zero() Float64 { return 0 }

// One returns 1.
func (Float64) One() Float64 { return 1 }

// Add returns x + y.
func (x Float64) Add(y Float64) Float64 { return x + y }

// Sub returns x - y.
func (x Float64) Sub(y Float64) Float64 { return x - y }

// Equal reports x == y.
func (x Float64) Equal(y Float64) bool { return x == y }

// Scale returns x * factor.
func (x Float64) Scale(factor float64) Float64 { return x * Float64(factor) }

// MulElem returns x * y.
func (x Float64) MulElem(y Float64) Float64 { return x * y }

// Moved returns x + direction.
func (x Float64) Moved(direction Float64) Float64 { return x + direction }

// Exp returns e**x.
func (x Float64) Exp() Float64 { return Float64(math.Exp(float64(x))) }

// Log returns the natural logarithm of x.
func (x Float64) Log() Float64 { return Float64(math.Log(float64(x))) }

// Sqrt returns the square root of x.
func (x Float64) Sqrt() Float64 { return Float64(math.Sqrt(float64(x))) }

// Tanh returns the hyperbolic tangent of x.
func (x Float64) Tanh() Float64 { return Float64(math.Tanh(float64(x))) }

// Sin returns the sine of x.
func (x Float64) Sin() Float64 { return Float64(math.Sin(float64(x))) }

// Cos returns the cosine of x.
func (x Float64) Cos() Float64 { return Float64(math.Cos(float64(x))) }

// Abs returns |x|.
func (x Float64) Abs() Float64 { return Float64(math.Abs(float64(x))) }

// String implements fmt.Stringer.
func (x Float64) String() string {
	return strconv.FormatFloat(float64(x), 'g', -1, 64)
}
