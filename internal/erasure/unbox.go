package erasure

import "github.com/born-ml/pullback/internal/vectorspace"

// Erased is the set of erased tangent types.
type Erased interface {
	AnyDerivative | AnyLayerTangent
}

// Unbox returns the value held by e if its concrete type is exactly T.
//
// This is the only type check in the package: a miss (including the opaque
// zero) is the expected result of filtering heterogeneous values and returns
// false rather than failing.
//
//	d := erasure.NewDerivative(scalar.Float32(1))
//	erasure.Unbox[scalar.Float32](d) // 1, true
//	erasure.Unbox[scalar.Float64](d) // 0, false
func Unbox[T vectorspace.Vector[T], E Erased](e E) (T, bool) {
	switch v := any(e).(type) {
	case AnyDerivative:
		return unbox[T](v.box)
	case AnyLayerTangent:
		return unbox[T](v.box)
	default:
		var zero T
		return zero, false
	}
}

// Derivative converts an erased layer tangent to an AnyDerivative holding
// the same value.
func Derivative(t AnyLayerTangent) AnyDerivative {
	return AnyDerivative{box: t.box}
}

// LayerTangent converts an AnyDerivative to an AnyLayerTangent holding the
// same value.
func LayerTangent(d AnyDerivative) AnyLayerTangent {
	return AnyLayerTangent{box: d.box}
}

// Downcast returns the value held by e as a T for the operation op.
// The opaque zero yields T's zero; any other type panics with
// vectorspace.ErrTypeMismatch.
func Downcast[T vectorspace.Vector[T], E Erased](op string, e E) T {
	switch v := any(e).(type) {
	case AnyDerivative:
		return downcast[T](op, v.box)
	case AnyLayerTangent:
		return downcast[T](op, v.box)
	default:
		panic(vectorspace.TypeMismatch(op, vectorspace.ZeroOf[T](), e))
	}
}
