package vectorspace

import (
	"fmt"

	"github.com/pkg/errors"
)

// Fatal error conditions.
//
// They are raised with panic (wrapped with a stack trace) because they
// indicate a composition bug, not a runtime condition a caller can fix.
// Use Recover to turn them back into an error at a boundary that must not crash.
var (
	ErrTypeMismatch         = errors.New("derivative type mismatch")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrDimensionMismatch    = errors.New("dimension mismatch")
)

// TypeMismatchError reports two erased values with different concrete types.
type TypeMismatchError struct {
	Op   string // Operation that combined the values (e.g., "add", "move")
	Want string // Concrete type of the receiver
	Got  string // Concrete type of the operand
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %v: %s and %s", e.Op, ErrTypeMismatch, e.Want, e.Got)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnsupportedOperationError reports a numeric operation that has no generic
// meaning for the value it was invoked on.
type UnsupportedOperationError struct {
	Op   string // Operation name (e.g., "reciprocal")
	Type string // Concrete type, or a description of the erased value
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: %v on %s", e.Op, ErrUnsupportedOperation, e.Type)
}

// Is reports whether target is ErrUnsupportedOperation.
func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// DimensionMismatchError reports element-wise arithmetic on operands of
// different lengths.
type DimensionMismatchError struct {
	Op   string
	Want int
	Got  int
}

// Error implements the error interface.
func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: %v: %d and %d", e.Op, ErrDimensionMismatch, e.Want, e.Got)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// TypeMismatch returns a *TypeMismatchError, with a stack trace, describing
// the concrete types of want and got. Callers panic with it:
//
//	panic(vectorspace.TypeMismatch("add", x, y))
func TypeMismatch(op string, want, got any) error {
	return errors.WithStack(&TypeMismatchError{
		Op:   op,
		Want: typeName(want),
		Got:  typeName(got),
	})
}

// Unsupported returns an *UnsupportedOperationError, with a stack trace.
func Unsupported(op string, v any) error {
	return errors.WithStack(&UnsupportedOperationError{Op: op, Type: typeName(v)})
}

// DimensionMismatch returns a *DimensionMismatchError, with a stack trace.
func DimensionMismatch(op string, want, got int) error {
	return errors.WithStack(&DimensionMismatchError{Op: op, Want: want, Got: got})
}

// IsFatal reports whether err belongs to the fatal error taxonomy.
func IsFatal(err error) bool {
	return errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrUnsupportedOperation) ||
		errors.Is(err, ErrDimensionMismatch)
}

// Recover runs f and converts a fatal panic raised inside it into an error.
// Panics that are not part of the taxonomy are re-raised unchanged.
//
// Example:
//
//	err := vectorspace.Recover(func() {
//	    _ = a.Add(b) // a and b hold different concrete types
//	})
//	errors.Is(err, vectorspace.ErrTypeMismatch) // true
func Recover(f func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && IsFatal(e) {
			err = e
			return
		}
		panic(r)
	}()
	f()
	return nil
}

// TypeDescription is a precomputed type description accepted by
// TypeMismatch and Unsupported in place of a value.
type TypeDescription string

// typeName describes a value's concrete type.
func typeName(v any) string {
	switch v := v.(type) {
	case TypeDescription:
		return string(v)
	case nil:
		return "opaque zero"
	default:
		return fmt.Sprintf("%T", v)
	}
}
