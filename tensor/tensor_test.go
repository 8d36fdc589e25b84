// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/pullback/tensor"
)

func TestFacade(t *testing.T) {
	m := tensor.NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	v := tensor.NewVector(1, 2, 3)

	assert.Equal(t, []float64{14, 32}, m.MulVec(v).Values())
	assert.Equal(t, tensor.Shape{2, 3}, tensor.Outer(tensor.Full(2, 1), v).Shape())
	assert.True(t, tensor.Zeros(2, 3).Equal(tensor.Matrix{}))
}
