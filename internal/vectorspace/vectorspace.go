// Package vectorspace defines the contract every tangent-vector type satisfies.
//
// A tangent vector is an element of an additive vector space:
//   - Zero: the additive identity, callable on any value (including the Go zero value)
//   - Add, Sub: closed over the space, associative and commutative up to the
//     rounding rules of the underlying scalar type
//   - Equal: value equality
//
// Values are immutable. Every operation returns a new value; the only
// mutation in the package is Move, which writes through a pointer the caller
// owns exclusively.
//
// Optional capabilities (Scalable, PointwiseMultiplicative, Unit) are
// discovered at runtime by generic consumers such as optimizers and the
// type-erased layer tangent.
package vectorspace

// Vector is the additive vector-space contract.
//
// The type parameter is the implementing type itself:
//
//	type Float32 float32
//	func (Float32) Zero() Float32 { return 0 }
//	func (x Float32) Add(y Float32) Float32 { return x + y }
//	...
//
//	func sum[V vectorspace.Vector[V]](xs ...V) V
type Vector[V any] interface {
	// Zero returns the additive identity of the receiver's space.
	// It must not depend on the receiver's value.
	Zero() V

	// Add returns the sum of the receiver and other.
	Add(other V) V

	// Sub returns the receiver minus other.
	Sub(other V) V

	// Equal reports whether the receiver and other are the same vector.
	Equal(other V) bool
}

// Differentiable is a value with an associated tangent-vector type T.
//
// Moved returns a copy of the value perturbed along direction. The receiver
// is never modified.
type Differentiable[D, T any] interface {
	Moved(direction T) D
}

// Scalable is implemented by vectors that support multiplication by a scalar.
type Scalable[V any] interface {
	Scale(factor float64) V
}

// PointwiseMultiplicative is implemented by vectors that support
// element-wise multiplication.
type PointwiseMultiplicative[V any] interface {
	MulElem(other V) V
}

// Unit is implemented by vectors with a multiplicative identity.
// Gradients are seeded with One() of the output's tangent space.
type Unit[V any] interface {
	One() V
}

// Move moves d along direction in place.
func Move[D Differentiable[D, T], T any](d *D, direction T) {
	*d = (*d).Moved(direction)
}

// MoveVector moves a self-tangent vector along direction in place (v += direction).
func MoveVector[V Vector[V]](v *V, direction V) {
	*v = (*v).Add(direction)
}

// ZeroOf returns the additive identity of V.
func ZeroOf[V Vector[V]]() V {
	var v V
	return v.Zero()
}

// Neg returns the additive inverse of v, computed as Zero() - v.
func Neg[V Vector[V]](v V) V {
	return v.Zero().Sub(v)
}

// Sum adds all vectors in order. Sum of no vectors is ZeroOf[V]().
func Sum[V Vector[V]](vs ...V) V {
	total := ZeroOf[V]()
	for _, v := range vs {
		total = total.Add(v)
	}
	return total
}

// Empty is the zero-dimensional vector space.
//
// It is the tangent type of values without differentiable state, such as
// parameter-free layers.
type Empty struct{}

// Zero returns Empty{}.
func (Empty) Zero() Empty { return Empty{} }

// Add returns Empty{}.
func (Empty) Add(Empty) Empty { return Empty{} }

// Sub returns Empty{}.
func (Empty) Sub(Empty) Empty { return Empty{} }

// Equal always reports true.
func (Empty) Equal(Empty) bool { return true }

// Scale returns Empty{}.
func (Empty) Scale(float64) Empty { return Empty{} }

// MulElem returns Empty{}.
func (Empty) MulElem(Empty) Empty { return Empty{} }

// Moved returns Empty{}.
func (Empty) Moved(Empty) Empty { return Empty{} }

// String implements fmt.Stringer.
func (Empty) String() string { return "()" }
