// Package autodiff implements reverse-mode automatic differentiation with
// explicit pullbacks.
//
// There is no computation graph. A differentiable function returns its value
// together with a pullback: a closure that maps a tangent of the output to
// the tangent of the input (the vector-Jacobian product). Composite functions
// chain the pullbacks of their parts in reverse application order.
//
// Architecture:
//   - Function[X, Y]: the forward computation paired with its pullback
//   - Compose / Chain: sequential composition with pullback chaining
//   - Tape: records per-step pullbacks of a chain and replays them in reverse
//   - Reduce: a differentiable left fold built on Tape
//   - Gradient: seeds the pullback with the output space's multiplicative identity
//
// Usage:
//
//	square := autodiff.Function[scalar.Float32, scalar.Float32](
//	    func(x scalar.Float32) (scalar.Float32, autodiff.Pullback[scalar.Float32, scalar.Float32]) {
//	        y, pb := scalar.MulVJP(x, x)
//	        return y, func(v scalar.Float32) scalar.Float32 {
//	            dx1, dx2 := pb(v)
//	            return dx1 + dx2
//	        }
//	    })
//
//	autodiff.Gradient(square, 10) // 20
//
// Pullbacks capture only immutable snapshots of forward values, so calling
// one again with the same tangent returns the same result.
package autodiff

import "github.com/born-ml/pullback/internal/vectorspace"

// Pullback maps a tangent of a function's output to the tangent of its input.
type Pullback[Y, X any] func(dy Y) X

// Function is a differentiable function from X to Y, authored explicitly as
// its forward computation and the pullback at the evaluated point.
type Function[X, Y any] func(x X) (Y, Pullback[Y, X])

// Apply evaluates f at x and discards the pullback.
func Apply[X, Y any](f Function[X, Y], x X) Y {
	y, _ := f(x)
	return y
}

// ValueWithPullback evaluates f at x and returns the value and pullback.
func ValueWithPullback[X, Y any](f Function[X, Y], x X) (Y, Pullback[Y, X]) {
	return f(x)
}

// ValueWithGradient evaluates f at x and returns the value and the input
// tangent obtained by seeding the pullback with One() of the output.
func ValueWithGradient[X any, Y vectorspace.Unit[Y]](f Function[X, Y], x X) (Y, X) {
	y, pb := f(x)
	return y, pb(y.One())
}

// Gradient returns the gradient of f at x.
//
//	autodiff.Gradient(autodiff.Identity[scalar.Float32](), 3) // 1
func Gradient[X any, Y vectorspace.Unit[Y]](f Function[X, Y], x X) X {
	_, grad := ValueWithGradient(f, x)
	return grad
}

// PullbackAt returns the pullback of f at x.
func PullbackAt[X, Y any](f Function[X, Y], x X) Pullback[Y, X] {
	_, pb := f(x)
	return pb
}

// Identity returns the identity function, whose pullback is the identity.
func Identity[X any]() Function[X, X] {
	return func(x X) (X, Pullback[X, X]) {
		return x, func(dx X) X { return dx }
	}
}

// Compose returns g∘f: f is applied first, and the composite pullback feeds
// g's pullback result into f's pullback.
func Compose[X, Y, Z any](f Function[X, Y], g Function[Y, Z]) Function[X, Z] {
	return func(x X) (Z, Pullback[Z, X]) {
		y, pbF := f(x)
		z, pbG := g(y)
		return z, func(dz Z) X {
			return pbF(pbG(dz))
		}
	}
}

// Chain composes endofunctions in application order: fs[0] is applied first.
// Chain of no functions is Identity.
func Chain[X any](fs ...Function[X, X]) Function[X, X] {
	return func(x X) (X, Pullback[X, X]) {
		var tape Tape[X, struct{}]
		for _, f := range fs {
			y, pb := f(x)
			x = y
			tape.Record(func(dy X) (X, struct{}) {
				return pb(dy), struct{}{}
			})
		}
		return x, func(dx X) X {
			dx, _ = tape.Backward(dx)
			return dx
		}
	}
}

// Reduce is a differentiable left fold of elems into initial.
//
// next returns the new partial result and a pullback mapping a tangent of
// that result to (tangent of the previous partial result, tangent of the
// element). The returned pullback walks the steps in reverse and returns the
// tangent of initial together with the element tangents in element order.
//
// With no elements the result is initial and the pullback returns the seed
// unchanged and no element tangents.
func Reduce[R, E, ET any](
	initial R,
	elems []E,
	next func(partial R, elem E) (R, func(R) (R, ET)),
) (R, func(R) (R, []ET)) {
	tape := NewTape[R, ET](len(elems))
	result := initial
	for _, elem := range elems {
		partial, pb := next(result, elem)
		result = partial
		tape.Record(pb)
	}
	return result, tape.Backward
}
