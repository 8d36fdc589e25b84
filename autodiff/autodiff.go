// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import "github.com/born-ml/pullback/internal/autodiff"

// Pullback maps a tangent of a function's output to the tangent of its input.
type Pullback[Y, X any] = autodiff.Pullback[Y, X]

// Function is a differentiable function returning its value and pullback.
type Function[X, Y any] = autodiff.Function[X, Y]

// Tape records per-step pullbacks and replays them in reverse.
type Tape[T, P any] = autodiff.Tape[T, P]

// NewTape creates a tape with room for capacity steps.
func NewTape[T, P any](capacity int) *Tape[T, P] {
	return autodiff.NewTape[T, P](capacity)
}

// Apply evaluates f at x and discards the pullback.
func Apply[X, Y any](f Function[X, Y], x X) Y {
	return autodiff.Apply(f, x)
}

// ValueWithPullback evaluates f at x and returns the value and pullback.
func ValueWithPullback[X, Y any](f Function[X, Y], x X) (Y, Pullback[Y, X]) {
	return autodiff.ValueWithPullback(f, x)
}

// ValueWithGradient evaluates f at x and returns the value and gradient.
func ValueWithGradient[X any, Y Unit[Y]](f Function[X, Y], x X) (Y, X) {
	return autodiff.ValueWithGradient(f, x)
}

// Gradient returns the gradient of f at x.
//
// Example:
//
//	autodiff.Gradient(autodiff.Identity[autodiff.Float32](), 3) // 1
func Gradient[X any, Y Unit[Y]](f Function[X, Y], x X) X {
	return autodiff.Gradient(f, x)
}

// PullbackAt returns the pullback of f at x.
func PullbackAt[X, Y any](f Function[X, Y], x X) Pullback[Y, X] {
	return autodiff.PullbackAt(f, x)
}

// Identity returns the identity function.
func Identity[X any]() Function[X, X] {
	return autodiff.Identity[X]()
}

// Compose returns g∘f (f is applied first).
func Compose[X, Y, Z any](f Function[X, Y], g Function[Y, Z]) Function[X, Z] {
	return autodiff.Compose(f, g)
}

// Chain composes endofunctions in application order.
func Chain[X any](fs ...Function[X, X]) Function[X, X] {
	return autodiff.Chain(fs...)
}

// Reduce is a differentiable left fold of elems into initial.
func Reduce[R, E, ET any](
	initial R,
	elems []E,
	next func(partial R, elem E) (R, func(R) (R, ET)),
) (R, func(R) (R, []ET)) {
	return autodiff.Reduce(initial, elems, next)
}
