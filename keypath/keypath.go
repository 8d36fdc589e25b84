// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package keypath enumerates the addressable fields of structured values.
//
// A type opts in by implementing Iterable. Paths are built from the field
// descriptors, so parameter containers can be walked generically:
//
//	for _, m := range keypath.RecursiveMatching[tensor.Matrix](model) {
//	    fmt.Println(m.Path, m.Value.Shape())
//	}
package keypath

import (
	"cmp"

	"github.com/born-ml/pullback/internal/keypath"
)

// MaxDepth bounds recursive descent.
const MaxDepth = keypath.MaxDepth

// Iterable is implemented by values that expose their stored fields.
type Iterable = keypath.Iterable

// Settable is implemented by Iterable values that can return a copy of
// themselves with one field replaced.
type Settable = keypath.Settable

// Field describes one stored field of a value.
type Field = keypath.Field

// Path addresses one stored field, possibly nested.
type Path = keypath.Path

// Match is a path paired with the value found at it.
type Match[T any] = keypath.Match[T]

// Elements adapts a slice to Iterable.
type Elements[E any] = keypath.Elements[E]

// Entries adapts a map to Iterable with fields in ascending key order.
type Entries[K cmp.Ordered, V any] = keypath.Entries[K, V]

// NewPath creates a path from its segments, outermost first.
func NewPath(segments ...string) Path {
	return keypath.NewPath(segments...)
}

// All returns the paths of the immediate fields of v.
func All(v Iterable) []Path {
	return keypath.All(v)
}

// Recursive returns the paths of all fields of v in depth-first pre-order.
func Recursive(v Iterable) []Path {
	return keypath.Recursive(v)
}

// Matching returns the immediate fields of v whose value is a T.
func Matching[T any](v Iterable) []Match[T] {
	return keypath.Matching[T](v)
}

// RecursiveMatching returns all fields of v whose value is a T.
func RecursiveMatching[T any](v Iterable) []Match[T] {
	return keypath.RecursiveMatching[T](v)
}

// Set returns a copy of root with the field at p replaced by value.
func Set[T Iterable](root T, p Path, value any) (T, bool) {
	return keypath.Set(root, p, value)
}

// Writable returns the paths of the immediate fields of v that Set can
// replace.
func Writable(v Iterable) []Path {
	return keypath.Writable(v)
}

// RecursiveWritable returns all paths of v that Set can replace.
func RecursiveWritable(v Iterable) []Path {
	return keypath.RecursiveWritable(v)
}
