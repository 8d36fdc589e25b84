// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pullback/autodiff"
)

type f32 = autodiff.Float32

func square(x f32) (f32, autodiff.Pullback[f32, f32]) {
	y, pb := autodiff.MulVJP(x, x)
	return y, func(v f32) f32 {
		dx1, dx2 := pb(v)
		return dx1 + dx2
	}
}

func TestGradient(t *testing.T) {
	assert.Equal(t, f32(1), autodiff.Gradient(autodiff.Identity[f32](), 5))
	assert.Equal(t, f32(20), autodiff.Gradient(square, 10))
}

func TestOpaqueZeroIdentity(t *testing.T) {
	x := autodiff.NewLayerTangent(f32(3))
	var zero autodiff.AnyLayerTangent

	for _, sum := range []autodiff.AnyLayerTangent{zero.Add(x), x.Add(zero)} {
		v, ok := autodiff.Unbox[f32](sum)
		require.True(t, ok)
		assert.Equal(t, f32(3), v)
	}
}

func TestTypeMismatchIsFatal(t *testing.T) {
	a := autodiff.NewDerivative(f32(1))
	b := autodiff.NewDerivative(autodiff.Float64(1))

	err := autodiff.Recover(func() { a.Add(b) })
	require.ErrorIs(t, err, autodiff.ErrTypeMismatch)
	assert.True(t, autodiff.IsFatal(err))

	var mismatch *autodiff.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestUnboxMissIsRecoverable(t *testing.T) {
	_, ok := autodiff.Unbox[autodiff.Float64](autodiff.NewDerivative(f32(1)))
	assert.False(t, ok)
}

func TestSumAndMove(t *testing.T) {
	assert.Equal(t, f32(6), autodiff.Sum[f32](1, 2, 3))

	v := f32(1)
	autodiff.MoveVector(&v, 2)
	assert.Equal(t, f32(3), v)
}
