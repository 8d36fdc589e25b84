package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pullback/internal/tensor"
	"github.com/born-ml/pullback/internal/vectorspace"
)

func TestShape(t *testing.T) {
	s := tensor.Shape{2, 3}
	assert.Equal(t, 6, s.NumElements())
	assert.NoError(t, s.Validate())
	assert.True(t, s.Equal(s.Clone()))
	assert.Equal(t, "[2 3]", s.String())

	assert.Equal(t, 0, tensor.Shape{}.NumElements())
	assert.Error(t, tensor.Shape{2, 0}.Validate())
	assert.False(t, s.Equal(tensor.Shape{3, 2}))
}

func TestVector_Arithmetic(t *testing.T) {
	a := tensor.NewVector(1, 2, 3)
	b := tensor.NewVector(4, 5, 6)

	assert.Equal(t, []float64{5, 7, 9}, a.Add(b).Values())
	assert.Equal(t, []float64{-3, -3, -3}, a.Sub(b).Values())
	assert.Equal(t, []float64{2, 4, 6}, a.Scale(2).Values())
	assert.Equal(t, []float64{4, 10, 18}, a.MulElem(b).Values())
	assert.Equal(t, []float64{5, 7, 9}, a.Moved(b).Values())
	assert.InDelta(t, 32.0, a.Dot(b), 1e-12)
	assert.InDelta(t, 6.0, a.Sum(), 1e-12)
	assert.InDelta(t, 5.0, tensor.NewVector(3, 4).Norm(), 1e-12)
	assert.Equal(t, []float64{1, 4, 9}, a.Map(func(x float64) float64 { return x * x }).Values())
}

func TestVector_Immutable(t *testing.T) {
	values := []float64{1, 2}
	v := tensor.NewVector(values...)
	values[0] = 100

	assert.Equal(t, 1.0, v.At(0))

	out := v.Values()
	out[1] = 100
	assert.Equal(t, 2.0, v.At(1))

	_ = v.Add(tensor.NewVector(1, 1))
	assert.Equal(t, []float64{1, 2}, v.Values())
}

func TestVector_EmptyIsIdentity(t *testing.T) {
	var empty tensor.Vector
	v := tensor.NewVector(1, 2, 3)

	assert.True(t, empty.IsEmpty())
	assert.Equal(t, tensor.Shape{}, empty.Shape())
	assert.Equal(t, v.Values(), empty.Add(v).Values())
	assert.Equal(t, v.Values(), v.Add(empty).Values())
	assert.Equal(t, v.Values(), v.Sub(empty).Values())
	assert.Equal(t, []float64{-1, -2, -3}, empty.Sub(v).Values())
	assert.True(t, empty.MulElem(v).IsEmpty())
	assert.Zero(t, empty.Dot(v))
	assert.Zero(t, empty.Norm())

	assert.True(t, v.Zero().IsEmpty())
	assert.True(t, empty.Equal(tensor.Full(3, 0)))
	assert.True(t, tensor.Full(3, 0).Equal(empty))
	assert.False(t, empty.Equal(v))
}

func TestVector_Equal(t *testing.T) {
	a := tensor.NewVector(1, 2)
	assert.True(t, a.Equal(tensor.NewVector(1, 2)))
	assert.False(t, a.Equal(tensor.NewVector(1, 3)))
	assert.False(t, a.Equal(tensor.NewVector(1, 2, 0)))
	assert.True(t, a.EqualApprox(tensor.NewVector(1+1e-10, 2), 1e-9))
	assert.Equal(t, []float64{1, 1}, a.Ones().Values())
}

func TestVector_DimensionMismatch(t *testing.T) {
	a := tensor.NewVector(1, 2)
	b := tensor.NewVector(1, 2, 3)

	for name, op := range map[string]func(){
		"add": func() { a.Add(b) },
		"sub": func() { a.Sub(b) },
		"mul": func() { a.MulElem(b) },
		"dot": func() { a.Dot(b) },
	} {
		t.Run(name, func(t *testing.T) {
			err := vectorspace.Recover(op)
			require.ErrorIs(t, err, vectorspace.ErrDimensionMismatch)

			var dimErr *vectorspace.DimensionMismatchError
			require.ErrorAs(t, err, &dimErr)
			assert.Equal(t, 2, dimErr.Want)
			assert.Equal(t, 3, dimErr.Got)
		})
	}
}

func TestMatrix_Arithmetic(t *testing.T) {
	a := tensor.NewMatrix(2, 2, []float64{1, 2, 3, 4})
	b := tensor.NewMatrix(2, 2, []float64{5, 6, 7, 8})

	assert.Equal(t, []float64{6, 8, 10, 12}, a.Add(b).Values())
	assert.Equal(t, []float64{-4, -4, -4, -4}, a.Sub(b).Values())
	assert.Equal(t, []float64{2, 4, 6, 8}, a.Scale(2).Values())
	assert.Equal(t, []float64{5, 12, 21, 32}, a.MulElem(b).Values())
	assert.InDelta(t, 10.0, a.Sum(), 1e-12)
	assert.InDelta(t, 5.0, tensor.NewMatrix(1, 2, []float64{3, 4}).Norm(), 1e-12)

	rows, cols := a.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, tensor.Shape{2, 2}, a.Shape())
	assert.Equal(t, 3.0, a.At(1, 0))
}

func TestMatrix_Products(t *testing.T) {
	// [[1 2 3]
	//  [4 5 6]]
	m := tensor.NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})

	assert.Equal(t, []float64{14, 32}, m.MulVec(tensor.NewVector(1, 2, 3)).Values())
	assert.Equal(t, []float64{9, 12, 15}, m.TMulVec(tensor.NewVector(1, 2)).Values())

	outer := tensor.Outer(tensor.NewVector(1, 2), tensor.NewVector(3, 4, 5))
	assert.Equal(t, tensor.Shape{2, 3}, outer.Shape())
	assert.Equal(t, []float64{3, 4, 5, 6, 8, 10}, outer.Values())

	assert.True(t, m.MulVec(tensor.Vector{}).IsEmpty())
	assert.True(t, tensor.Outer(tensor.Vector{}, tensor.NewVector(1)).IsEmpty())

	err := vectorspace.Recover(func() { m.MulVec(tensor.NewVector(1, 2)) })
	assert.ErrorIs(t, err, vectorspace.ErrDimensionMismatch)
}

func TestMatrix_EmptyIsIdentity(t *testing.T) {
	var empty tensor.Matrix
	m := tensor.NewMatrix(1, 2, []float64{1, 2})

	assert.Equal(t, m.Values(), empty.Add(m).Values())
	assert.Equal(t, m.Values(), m.Add(empty).Values())
	assert.Equal(t, []float64{-1, -2}, empty.Sub(m).Values())
	assert.True(t, empty.Equal(tensor.Zeros(3, 3)))
	assert.True(t, empty.Equal(empty))
	assert.False(t, m.Equal(empty))
	assert.True(t, m.Zero().IsEmpty())
	assert.Equal(t, "[]", empty.String())
}

func TestMatrix_ShapeMismatch(t *testing.T) {
	a := tensor.Zeros(2, 2)
	b := tensor.Zeros(2, 3)

	err := vectorspace.Recover(func() { a.Add(b) })
	require.ErrorIs(t, err, vectorspace.ErrDimensionMismatch)
	assert.False(t, a.Equal(b))

	assert.Panics(t, func() { tensor.NewMatrix(2, 2, []float64{1}) })
	assert.Panics(t, func() { tensor.NewMatrix(0, 2, nil) })
}

func TestEqualApprox_SizeMismatch(t *testing.T) {
	a := tensor.NewVector(1, 2)
	b := tensor.NewVector(1, 2, 3)

	require.NotPanics(t, func() {
		assert.False(t, a.EqualApprox(b, 1e9))
		assert.False(t, b.EqualApprox(a, 1e9))
	})
	assert.True(t, a.EqualApprox(tensor.NewVector(1, 2+1e-12), 1e-9))
	assert.True(t, tensor.Vector{}.EqualApprox(tensor.NewVector(1e-12, 0), 1e-9))
	assert.False(t, tensor.Vector{}.EqualApprox(a, 1e-9))

	m := tensor.NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	n := tensor.NewMatrix(3, 2, []float64{1, 2, 3, 4, 5, 6})
	require.NotPanics(t, func() {
		assert.False(t, m.EqualApprox(n, 1e9))
	})
	assert.True(t, m.EqualApprox(m.Scale(1+1e-13), 1e-9))
}

func TestAdd_EmptyOperandSharesNoWritableState(t *testing.T) {
	g := tensor.NewVector(1, 2)
	sum := tensor.Vector{}.Add(g)

	values := sum.Values()
	values[0] = 100
	assert.Equal(t, 1.0, g.At(0))
	assert.Equal(t, 1.0, sum.At(0))

	moved := sum.Add(tensor.NewVector(1, 1))
	assert.Equal(t, []float64{2, 3}, moved.Values())
	assert.Equal(t, []float64{1, 2}, g.Values())
}
