package vectorspace_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pullback/internal/scalar"
	"github.com/born-ml/pullback/internal/vectorspace"
)

type f32 = scalar.Float32

// position is a point with a scalar tangent.
type position struct{ x f32 }

func (p position) Moved(d f32) position { return position{x: p.x + d} }

func TestSum(t *testing.T) {
	assert.Equal(t, f32(6), vectorspace.Sum[f32](1, 2, 3))
	assert.Equal(t, f32(0), vectorspace.Sum[f32]())
}

func TestNegAndZero(t *testing.T) {
	assert.Equal(t, f32(-3), vectorspace.Neg(f32(3)))
	assert.Equal(t, f32(0), vectorspace.ZeroOf[f32]())
	assert.Equal(t, vectorspace.Empty{}, vectorspace.ZeroOf[vectorspace.Empty]())
}

func TestMove(t *testing.T) {
	p := position{x: 1}
	vectorspace.Move(&p, f32(2))
	assert.Equal(t, position{x: 3}, p)

	v := f32(1)
	vectorspace.MoveVector(&v, 4)
	assert.Equal(t, f32(5), v)
}

func TestEmpty(t *testing.T) {
	var e vectorspace.Empty
	assert.True(t, e.Add(e).Equal(e.Zero()))
	assert.Equal(t, e, e.Sub(e).Scale(3).MulElem(e).Moved(e))
	assert.Equal(t, "()", e.String())
}

func TestErrors_IsAndAs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "type mismatch",
			err:      vectorspace.TypeMismatch("add", f32(1), scalar.Float64(1)),
			sentinel: vectorspace.ErrTypeMismatch,
			message:  "add: derivative type mismatch: scalar.Float32 and scalar.Float64",
		},
		{
			name:     "opaque zero operand",
			err:      vectorspace.TypeMismatch("move", f32(1), nil),
			sentinel: vectorspace.ErrTypeMismatch,
			message:  "move: derivative type mismatch: scalar.Float32 and opaque zero",
		},
		{
			name:     "unsupported",
			err:      vectorspace.Unsupported("reciprocal", vectorspace.TypeDescription("opaque zero")),
			sentinel: vectorspace.ErrUnsupportedOperation,
			message:  "reciprocal: unsupported operation on opaque zero",
		},
		{
			name:     "dimension mismatch",
			err:      vectorspace.DimensionMismatch("add", 2, 3),
			sentinel: vectorspace.ErrDimensionMismatch,
			message:  "add: dimension mismatch: 2 and 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.True(t, vectorspace.IsFatal(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}

	var mismatch *vectorspace.TypeMismatchError
	require.ErrorAs(t, vectorspace.TypeMismatch("add", f32(1), position{}), &mismatch)
	assert.Equal(t, "add", mismatch.Op)
	assert.Equal(t, "vectorspace_test.position", mismatch.Got)

	assert.False(t, vectorspace.IsFatal(errors.New("other")))
}

func TestErrors_StackTrace(t *testing.T) {
	err := vectorspace.DimensionMismatch("add", 1, 2)
	assert.Contains(t, fmt.Sprintf("%+v", err), "TestErrors_StackTrace")
}

func TestRecover(t *testing.T) {
	assert.NoError(t, vectorspace.Recover(func() {}))

	err := vectorspace.Recover(func() {
		panic(vectorspace.Unsupported("sqrt", f32(1)))
	})
	assert.ErrorIs(t, err, vectorspace.ErrUnsupportedOperation)

	assert.PanicsWithValue(t, "boom", func() {
		_ = vectorspace.Recover(func() { panic("boom") })
	})
}
