package erasure

import "github.com/born-ml/pullback/internal/vectorspace"

// AnyDerivative is a type-erased tangent vector.
//
// The zero value is the opaque zero: the additive identity of every tangent
// space, which takes on the concrete type of the first operand it meets.
type AnyDerivative struct {
	box box
}

// NewDerivative boxes v.
func NewDerivative[V vectorspace.Vector[V]](v V) AnyDerivative {
	return AnyDerivative{box: concrete[V]{value: v}}
}

// Base returns the underlying concrete value, or nil for the opaque zero.
func (d AnyDerivative) Base() any {
	return baseOf(d.box)
}

// IsOpaqueZero reports whether d is the untyped opaque zero.
func (d AnyDerivative) IsOpaqueZero() bool {
	return d.box == nil
}

// Zero returns the opaque zero.
func (AnyDerivative) Zero() AnyDerivative {
	return AnyDerivative{}
}

// Add returns d + other.
//
// Panics with vectorspace.ErrTypeMismatch if both operands are concrete and
// of different types.
func (d AnyDerivative) Add(other AnyDerivative) AnyDerivative {
	return AnyDerivative{box: addBoxes(d.box, other.box)}
}

// Sub returns d - other.
//
// Panics with vectorspace.ErrTypeMismatch if both operands are concrete and
// of different types.
func (d AnyDerivative) Sub(other AnyDerivative) AnyDerivative {
	return AnyDerivative{box: subBoxes(d.box, other.box)}
}

// Equal reports whether d and other hold equal values of the same type.
// The opaque zero equals any value equal to its own type's zero.
func (d AnyDerivative) Equal(other AnyDerivative) bool {
	return equalBoxes(d.box, other.box)
}

// Moved returns d + direction.
func (d AnyDerivative) Moved(direction AnyDerivative) AnyDerivative {
	return d.Add(direction)
}

// Move moves d along direction in place.
func (d *AnyDerivative) Move(direction AnyDerivative) {
	d.box = addBoxes(d.box, direction.box)
}

// String implements fmt.Stringer.
func (d AnyDerivative) String() string {
	return "AnyDerivative(" + describe(d.box) + ")"
}

// differentiableBox is the type-erased interface over concreteDifferentiable.
type differentiableBox interface {
	base() any
	moved(direction box) differentiableBox
}

type concreteDifferentiable[D vectorspace.Differentiable[D, T], T vectorspace.Vector[T]] struct {
	value D
}

func (c concreteDifferentiable[D, T]) base() any {
	return c.value
}

func (c concreteDifferentiable[D, T]) moved(direction box) differentiableBox {
	if direction == nil {
		return c
	}
	return concreteDifferentiable[D, T]{value: c.value.Moved(downcast[T]("move", direction))}
}

// AnyDifferentiable is a type-erased differentiable value. Its tangent type
// is AnyDerivative.
//
// Example:
//
//	w := erasure.NewDifferentiable[nn.Dense, nn.DenseTangent](dense)
//	w.Move(erasure.NewDerivative(step))
//	dense, _ = erasure.UnboxDifferentiable[nn.Dense](w)
type AnyDifferentiable struct {
	box differentiableBox
}

// NewDifferentiable boxes a differentiable value whose tangent type is T.
func NewDifferentiable[D vectorspace.Differentiable[D, T], T vectorspace.Vector[T]](d D) AnyDifferentiable {
	return AnyDifferentiable{box: concreteDifferentiable[D, T]{value: d}}
}

// Base returns the underlying concrete value, or nil for the zero value.
func (a AnyDifferentiable) Base() any {
	if a.box == nil {
		return nil
	}
	return a.box.base()
}

// Moved returns a perturbed along direction.
//
// The opaque zero leaves a unchanged. Panics with vectorspace.ErrTypeMismatch
// if direction does not hold the wrapped value's tangent type.
func (a AnyDifferentiable) Moved(direction AnyDerivative) AnyDifferentiable {
	if direction.box == nil {
		return a
	}
	if a.box == nil {
		panic(vectorspace.Unsupported("move", vectorspace.TypeDescription("empty AnyDifferentiable")))
	}
	return AnyDifferentiable{box: a.box.moved(direction.box)}
}

// Move moves a along direction in place.
func (a *AnyDifferentiable) Move(direction AnyDerivative) {
	*a = a.Moved(direction)
}

// UnboxDifferentiable returns the wrapped value if it is a D.
func UnboxDifferentiable[D any](a AnyDifferentiable) (D, bool) {
	d, ok := a.Base().(D)
	return d, ok
}

// DifferentiableVJP constructs an AnyDifferentiable and returns the pullback
// of the construction.
//
// The pullback downcasts an erased tangent back to T. The opaque zero maps to
// T's zero; any other type panics with vectorspace.ErrTypeMismatch.
func DifferentiableVJP[D vectorspace.Differentiable[D, T], T vectorspace.Vector[T]](d D) (AnyDifferentiable, func(AnyDerivative) T) {
	return NewDifferentiable[D, T](d), func(v AnyDerivative) T {
		return downcast[T]("pullback", v.box)
	}
}

// DifferentiableJVP constructs an AnyDifferentiable and returns the
// differential of the construction, which lifts T into AnyDerivative.
func DifferentiableJVP[D vectorspace.Differentiable[D, T], T vectorspace.Vector[T]](d D) (AnyDifferentiable, func(T) AnyDerivative) {
	return NewDifferentiable[D, T](d), func(dt T) AnyDerivative {
		return NewDerivative(dt)
	}
}
