// Package erasure hides concrete tangent-vector types behind uniform value
// types so that heterogeneous collections can be combined generically.
//
// Architecture:
//   - box: a tagged union. A nil box is the opaque zero, which carries no
//     type; a non-nil box is a concrete[V] owning one value of a vector type V.
//   - Unbox: the single type check in the package. Every other operation is
//     built from it and fails with vectorspace.ErrTypeMismatch on a miss.
//   - AnyDerivative: erased tangent of AnyDifferentiable.
//   - AnyLayerTangent: erased tangent accumulated for erased layers, whose
//     own tangent type is itself.
//
// The opaque zero lets a fresh accumulator take part in additions before its
// concrete type is known:
//
//	var acc erasure.AnyLayerTangent // opaque zero
//	acc = acc.Add(erasure.NewLayerTangent(scalar.Float32(2)))
//	erasure.Unbox[scalar.Float32](acc) // 2, true
//
// Boxes are immutable, so copying a wrapper never shares mutable state.
package erasure

import (
	"fmt"

	"github.com/born-ml/pullback/internal/vectorspace"
)

// box is the type-erased interface over concrete[V].
type box interface {
	base() any
	add(other box) box
	sub(other box) box
	neg() box
	equal(other box) bool
	isZero() bool
	scale(factor float64) box
	mulElem(other box) box
}

// concrete owns one value of vector type V.
type concrete[V vectorspace.Vector[V]] struct {
	value V
}

func (c concrete[V]) base() any {
	return c.value
}

func (c concrete[V]) add(other box) box {
	o := c.operand("add", other)
	return concrete[V]{value: c.value.Add(o)}
}

func (c concrete[V]) sub(other box) box {
	o := c.operand("subtract", other)
	return concrete[V]{value: c.value.Sub(o)}
}

// neg computes Zero() - value, the left opaque-zero case of subtraction.
func (c concrete[V]) neg() box {
	return concrete[V]{value: vectorspace.Neg(c.value)}
}

func (c concrete[V]) equal(other box) bool {
	o, ok := other.(concrete[V])
	return ok && c.value.Equal(o.value)
}

func (c concrete[V]) isZero() bool {
	return c.value.Equal(c.value.Zero())
}

func (c concrete[V]) scale(factor float64) box {
	s, ok := any(c.value).(vectorspace.Scalable[V])
	if !ok {
		panic(vectorspace.Unsupported("scale", c.value))
	}
	return concrete[V]{value: s.Scale(factor)}
}

func (c concrete[V]) mulElem(other box) box {
	o := c.operand("multiply", other)
	m, ok := any(c.value).(vectorspace.PointwiseMultiplicative[V])
	if !ok {
		panic(vectorspace.Unsupported("multiply", c.value))
	}
	return concrete[V]{value: m.MulElem(o)}
}

// operand downcasts other to V or panics with a type mismatch.
func (c concrete[V]) operand(op string, other box) V {
	o, ok := other.(concrete[V])
	if !ok {
		panic(vectorspace.TypeMismatch(op, c.value, other.base()))
	}
	return o.value
}

// unbox returns the value held by b if it is a concrete[T].
// The opaque zero never unboxes.
func unbox[T vectorspace.Vector[T]](b box) (T, bool) {
	c, ok := b.(concrete[T])
	return c.value, ok
}

// downcast unboxes b as T for a pullback or move. The opaque zero maps to
// T's zero; any other type is a mismatch.
func downcast[T vectorspace.Vector[T]](op string, b box) T {
	if b == nil {
		return vectorspace.ZeroOf[T]()
	}
	t, ok := unbox[T](b)
	if !ok {
		panic(vectorspace.TypeMismatch(op, vectorspace.ZeroOf[T](), b.base()))
	}
	return t
}

// 0 + x = x, y + 0 = y.
func addBoxes(lhs, rhs box) box {
	if lhs == nil {
		return rhs
	}
	if rhs == nil {
		return lhs
	}
	return lhs.add(rhs)
}

// y - 0 = y, 0 - x = zero(typeof x) - x.
func subBoxes(lhs, rhs box) box {
	if rhs == nil {
		return lhs
	}
	if lhs == nil {
		return rhs.neg()
	}
	return lhs.sub(rhs)
}

// The opaque zero equals any concrete value equal to its own type's zero.
func equalBoxes(lhs, rhs box) bool {
	switch {
	case lhs == nil && rhs == nil:
		return true
	case lhs == nil:
		return rhs.isZero()
	case rhs == nil:
		return lhs.isZero()
	default:
		return lhs.equal(rhs)
	}
}

func baseOf(b box) any {
	if b == nil {
		return nil
	}
	return b.base()
}

func describe(b box) string {
	if b == nil {
		return "opaque zero"
	}
	return fmt.Sprint(b.base())
}
