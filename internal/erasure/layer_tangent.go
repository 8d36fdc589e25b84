package erasure

import (
	"github.com/born-ml/pullback/internal/keypath"
	"github.com/born-ml/pullback/internal/vectorspace"
)

// AnyLayerTangent is the type-erased tangent vector of an erased layer.
//
// It is its own tangent type, so collections of erased layer tangents can be
// accumulated and moved uniformly. The zero value is the opaque zero.
//
// Besides the vector-space operations it offers the pointwise arithmetic
// generic optimizers need:
//   - Scale, MulElem: delegated to the concrete value when it implements
//     vectorspace.Scalable / vectorspace.PointwiseMultiplicative
//   - One, Reciprocal, Sqrt, Exp, Log, Pow, Sin, Cos, Tanh, AddScalar,
//     SubScalar: not representable over an erased space; they always panic
//     with vectorspace.ErrUnsupportedOperation
type AnyLayerTangent struct {
	box box
}

// NewLayerTangent boxes v.
func NewLayerTangent[V vectorspace.Vector[V]](v V) AnyLayerTangent {
	return AnyLayerTangent{box: concrete[V]{value: v}}
}

// Base returns the underlying concrete value, or nil for the opaque zero.
func (t AnyLayerTangent) Base() any {
	return baseOf(t.box)
}

// IsOpaqueZero reports whether t is the untyped opaque zero.
func (t AnyLayerTangent) IsOpaqueZero() bool {
	return t.box == nil
}

// Zero returns the opaque zero.
func (AnyLayerTangent) Zero() AnyLayerTangent {
	return AnyLayerTangent{}
}

// Add returns t + other.
//
// Panics with vectorspace.ErrTypeMismatch if both operands are concrete and
// of different types.
func (t AnyLayerTangent) Add(other AnyLayerTangent) AnyLayerTangent {
	return AnyLayerTangent{box: addBoxes(t.box, other.box)}
}

// Sub returns t - other.
//
// Panics with vectorspace.ErrTypeMismatch if both operands are concrete and
// of different types.
func (t AnyLayerTangent) Sub(other AnyLayerTangent) AnyLayerTangent {
	return AnyLayerTangent{box: subBoxes(t.box, other.box)}
}

// Equal reports whether t and other hold equal values of the same type.
// The opaque zero equals any value equal to its own type's zero.
func (t AnyLayerTangent) Equal(other AnyLayerTangent) bool {
	return equalBoxes(t.box, other.box)
}

// Moved returns t + direction.
func (t AnyLayerTangent) Moved(direction AnyLayerTangent) AnyLayerTangent {
	return t.Add(direction)
}

// Move moves t along direction in place. An opaque-zero receiver adopts
// the direction's concrete type.
func (t *AnyLayerTangent) Move(direction AnyLayerTangent) {
	t.box = addBoxes(t.box, direction.box)
}

// Scale returns t scaled by factor. The opaque zero stays the opaque zero.
func (t AnyLayerTangent) Scale(factor float64) AnyLayerTangent {
	if t.box == nil {
		return t
	}
	return AnyLayerTangent{box: t.box.scale(factor)}
}

// MulElem returns the element-wise product of t and other.
// The product with the opaque zero is the opaque zero.
func (t AnyLayerTangent) MulElem(other AnyLayerTangent) AnyLayerTangent {
	if t.box == nil || other.box == nil {
		return AnyLayerTangent{}
	}
	return AnyLayerTangent{box: t.box.mulElem(other.box)}
}

// One panics: an erased space has no type to build a multiplicative identity from.
func (t AnyLayerTangent) One() AnyLayerTangent {
	panic(t.unsupported("one"))
}

// Reciprocal panics with vectorspace.ErrUnsupportedOperation.
func (t AnyLayerTangent) Reciprocal() AnyLayerTangent {
	panic(t.unsupported("reciprocal"))
}

// AddScalar panics with vectorspace.ErrUnsupportedOperation.
func (t AnyLayerTangent) AddScalar(float64) AnyLayerTangent {
	panic(t.unsupported("add scalar"))
}

// SubScalar panics with vectorspace.ErrUnsupportedOperation.
func (t AnyLayerTangent) SubScalar(float64) AnyLayerTangent {
	panic(t.unsupported("subtract scalar"))
}

// Sqrt panics with vectorspace.ErrUnsupportedOperation.
func (t AnyLayerTangent) Sqrt() AnyLayerTangent {
	panic(t.unsupported("sqrt"))
}

// Exp panics with vectorspace.ErrUnsupportedOperation.
func (t AnyLayerTangent) Exp() AnyLayerTangent {
	panic(t.unsupported("exp"))
}

// Log panics with vectorspace.ErrUnsupportedOperation.
func (t AnyLayerTangent) Log() AnyLayerTangent {
	panic(t.unsupported("log"))
}

// Pow panics with vectorspace.ErrUnsupportedOperation.
func (t AnyLayerTangent) Pow(AnyLayerTangent) AnyLayerTangent {
	panic(t.unsupported("pow"))
}

// Sin panics with vectorspace.ErrUnsupportedOperation.
func (t AnyLayerTangent) Sin() AnyLayerTangent {
	panic(t.unsupported("sin"))
}

// Cos panics with vectorspace.ErrUnsupportedOperation.
func (t AnyLayerTangent) Cos() AnyLayerTangent {
	panic(t.unsupported("cos"))
}

// Tanh panics with vectorspace.ErrUnsupportedOperation.
func (t AnyLayerTangent) Tanh() AnyLayerTangent {
	panic(t.unsupported("tanh"))
}

func (t AnyLayerTangent) unsupported(op string) error {
	return vectorspace.Unsupported(op, vectorspace.TypeDescription(t.String()))
}

// Fields exposes the fields of the underlying value when it is
// keypath.Iterable. The opaque zero has no fields.
func (t AnyLayerTangent) Fields() []keypath.Field {
	if it, ok := t.Base().(keypath.Iterable); ok {
		return it.Fields()
	}
	return nil
}

// String implements fmt.Stringer.
func (t AnyLayerTangent) String() string {
	return "AnyLayerTangent(" + describe(t.box) + ")"
}

// LayerTangentVJP constructs an AnyLayerTangent and returns the pullback of
// the construction, which downcasts back to V (the opaque zero maps to V's
// zero; other types panic with vectorspace.ErrTypeMismatch).
func LayerTangentVJP[V vectorspace.Vector[V]](v V) (AnyLayerTangent, func(AnyLayerTangent) V) {
	return NewLayerTangent(v), func(dt AnyLayerTangent) V {
		return downcast[V]("pullback", dt.box)
	}
}

// LayerTangentJVP constructs an AnyLayerTangent and returns the differential
// of the construction, which lifts V into AnyLayerTangent.
func LayerTangentJVP[V vectorspace.Vector[V]](v V) (AnyLayerTangent, func(V) AnyLayerTangent) {
	return NewLayerTangent(v), NewLayerTangent[V]
}

// AddVJP computes lhs + rhs. The pullback routes v to both operands.
func AddVJP(lhs, rhs AnyLayerTangent) (AnyLayerTangent, func(AnyLayerTangent) (AnyLayerTangent, AnyLayerTangent)) {
	return lhs.Add(rhs), func(v AnyLayerTangent) (AnyLayerTangent, AnyLayerTangent) {
		return v, v
	}
}

// SubVJP computes lhs - rhs. The pullback is v -> (v, 0 - v).
func SubVJP(lhs, rhs AnyLayerTangent) (AnyLayerTangent, func(AnyLayerTangent) (AnyLayerTangent, AnyLayerTangent)) {
	return lhs.Sub(rhs), func(v AnyLayerTangent) (AnyLayerTangent, AnyLayerTangent) {
		return v, AnyLayerTangent{}.Sub(v)
	}
}
