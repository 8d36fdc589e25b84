// Package keypath enumerates the addressable fields of structured values.
//
// A type opts in by implementing Iterable, listing its immediate stored
// fields in declaration order. The walkers in this package compose those
// descriptors into paths without language-level reflection:
//
//	type Inner struct{ C scalar.Float32 }
//	func (v Inner) Fields() []keypath.Field {
//	    return []keypath.Field{{Name: "c", Value: v.C}}
//	}
//
//	type Outer struct {
//	    A scalar.Float32
//	    B Inner
//	}
//	func (v Outer) Fields() []keypath.Field {
//	    return []keypath.Field{{Name: "a", Value: v.A}, {Name: "b", Value: v.B}}
//	}
//
//	keypath.Recursive(Outer{})                  // a, b, b.c
//	keypath.Matching[scalar.Float32](Outer{})   // a
//
// Field order is significant: it is the order in which flattened-parameter
// consumers such as optimizers observe the fields.
package keypath

import (
	"reflect"
	"strings"
)

// MaxDepth bounds recursive descent. Deeper fields are still reachable with
// Get but are not enumerated.
const MaxDepth = 64

// Iterable is implemented by values that expose their stored fields.
type Iterable interface {
	// Fields returns the immediate fields of the value in declaration order.
	Fields() []Field
}

// Settable is implemented by Iterable values that can produce a copy of
// themselves with one immediate field replaced.
//
// WithField returns false if name is not a field of the value or if value
// has the wrong type for it. The receiver is never modified.
type Settable interface {
	Iterable
	WithField(name string, value any) (any, bool)
}

// Field describes one stored field of a value.
type Field struct {
	Name  string // Field name, unique within its parent
	Value any    // Current value of the field
}

// Path addresses one stored field, possibly nested. Paths are computed from
// a value's shape and resolved against any value with the same shape.
type Path struct {
	segments []string
}

// NewPath creates a path from its segments, outermost first.
func NewPath(segments ...string) Path {
	return Path{segments: append([]string(nil), segments...)}
}

// Segments returns a copy of the path's segments, outermost first.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Len returns the nesting depth of the path.
func (p Path) Len() int {
	return len(p.segments)
}

// Append returns p followed by nested.
func (p Path) Append(nested Path) Path {
	segments := make([]string, 0, len(p.segments)+len(nested.segments))
	segments = append(segments, p.segments...)
	segments = append(segments, nested.segments...)
	return Path{segments: segments}
}

// Equal reports whether p and other address the same field.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// String returns the dotted form of the path (e.g., "b.c").
func (p Path) String() string {
	return strings.Join(p.segments, ".")
}

// Get resolves p against root.
//
// Returns false if some segment does not name a field of the value it is
// applied to. The empty path resolves to root itself.
func (p Path) Get(root Iterable) (any, bool) {
	var current any = root
	for _, name := range p.segments {
		it, ok := current.(Iterable)
		if !ok {
			return nil, false
		}
		found := false
		for _, f := range it.Fields() {
			if f.Name == name {
				current = f.Value
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return current, true
}

// Match pairs a path with the field value it addressed, downcast to T.
type Match[T any] struct {
	Path  Path
	Value T
}

// All returns one path per immediate field of v, in declaration order.
func All(v Iterable) []Path {
	fields := v.Fields()
	paths := make([]Path, 0, len(fields))
	for _, f := range fields {
		paths = append(paths, NewPath(f.Name))
	}
	return paths
}

// Recursive returns the paths of all fields of v and of every field nested
// within an Iterable field, depth-first in pre-order.
//
// A value reached again through a pointer that is already being descended
// is emitted but not descended a second time, so self-referential values
// terminate.
func Recursive(v Iterable) []Path {
	var paths []Path
	walk(v, nil, newStack(), 0, func(p Path, _ any) {
		paths = append(paths, p)
	})
	return paths
}

// Matching returns the immediate fields of v whose current value is a T.
// Fields of other types are skipped.
func Matching[T any](v Iterable) []Match[T] {
	var matches []Match[T]
	for _, f := range v.Fields() {
		if value, ok := f.Value.(T); ok {
			matches = append(matches, Match[T]{Path: NewPath(f.Name), Value: value})
		}
	}
	return matches
}

// RecursiveMatching is Matching over the paths produced by Recursive.
func RecursiveMatching[T any](v Iterable) []Match[T] {
	var matches []Match[T]
	walk(v, nil, newStack(), 0, func(p Path, value any) {
		if typed, ok := value.(T); ok {
			matches = append(matches, Match[T]{Path: p, Value: typed})
		}
	})
	return matches
}

// Set returns a copy of root with the field at p replaced by value.
//
// Every value along the path is rebuilt through Settable; the original root
// and its fields are left unchanged. Returns false if some segment does not
// name a field, some value along the path is not Settable, or value has the
// wrong type for the target field. The empty path yields value itself.
func (p Path) Set(root Iterable, value any) (any, bool) {
	if len(p.segments) == 0 {
		return value, true
	}
	settable, ok := root.(Settable)
	if !ok {
		return nil, false
	}

	name := p.segments[0]
	if len(p.segments) > 1 {
		var child Iterable
		for _, f := range root.Fields() {
			if f.Name == name {
				child, ok = f.Value.(Iterable)
				break
			}
		}
		if child == nil || !ok {
			return nil, false
		}
		value, ok = Path{segments: p.segments[1:]}.Set(child, value)
		if !ok {
			return nil, false
		}
	}
	return settable.WithField(name, value)
}

// Set is Path.Set with the result typed as the root.
func Set[T Iterable](root T, p Path, value any) (T, bool) {
	updated, ok := p.Set(root, value)
	if !ok {
		return root, false
	}
	typed, ok := updated.(T)
	if !ok {
		return root, false
	}
	return typed, true
}

// Writable returns the paths of the immediate fields of v that can be
// replaced with Set: all of them if v is Settable, none otherwise.
func Writable(v Iterable) []Path {
	if _, ok := v.(Settable); !ok {
		return nil
	}
	return All(v)
}

// RecursiveWritable is Recursive restricted to paths whose every parent is
// Settable.
func RecursiveWritable(v Iterable) []Path {
	var paths []Path
	walkIf(v, nil, newStack(), 0, isSettable, func(p Path, _ any) {
		paths = append(paths, p)
	})
	return paths
}

func isSettable(v Iterable) bool {
	_, ok := v.(Settable)
	return ok
}

// walk visits every field of v under prefix in pre-order.
func walk(v Iterable, prefix []string, seen *stack, depth int, visit func(Path, any)) {
	walkIf(v, prefix, seen, depth, nil, visit)
}

// walkIf is walk that only enters values accepted by descend (all when nil).
func walkIf(v Iterable, prefix []string, seen *stack, depth int, descend func(Iterable) bool, visit func(Path, any)) {
	if depth >= MaxDepth {
		return
	}
	if descend != nil && !descend(v) {
		return
	}
	if !seen.push(v) {
		return
	}
	defer seen.pop(v)

	for _, f := range v.Fields() {
		segments := make([]string, len(prefix)+1)
		copy(segments, prefix)
		segments[len(prefix)] = f.Name
		visit(Path{segments: segments}, f.Value)

		if nested, ok := f.Value.(Iterable); ok {
			walkIf(nested, segments, seen, depth+1, descend, visit)
		}
	}
}

// stack tracks the pointer identities of values currently being descended.
type stack struct {
	active map[uintptr]bool
}

func newStack() *stack {
	return &stack{active: make(map[uintptr]bool)}
}

// push records v and reports false if it is already being descended.
// Values without reference identity are not tracked; MaxDepth bounds them.
func (s *stack) push(v Iterable) bool {
	addr, ok := identity(v)
	if !ok {
		return true
	}
	if s.active[addr] {
		return false
	}
	s.active[addr] = true
	return true
}

func (s *stack) pop(v Iterable) {
	if addr, ok := identity(v); ok {
		delete(s.active, addr)
	}
}

func identity(v Iterable) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}
