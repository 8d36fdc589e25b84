package scalar_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/pullback/internal/scalar"
)

func TestFloat32_VectorSpace(t *testing.T) {
	x := scalar.Float32(3)
	assert.Equal(t, scalar.Float32(0), x.Zero())
	assert.Equal(t, scalar.Float32(1), x.One())
	assert.Equal(t, scalar.Float32(5), x.Add(2))
	assert.Equal(t, scalar.Float32(1), x.Sub(2))
	assert.Equal(t, scalar.Float32(6), x.Scale(2))
	assert.Equal(t, scalar.Float32(6), x.MulElem(2))
	assert.Equal(t, scalar.Float32(4), x.Moved(1))
	assert.True(t, x.Equal(3))
	assert.Equal(t, "3", x.String())
}

func TestFloat64_VectorSpace(t *testing.T) {
	x := scalar.Float64(0.5)
	assert.Equal(t, scalar.Float64(0), x.Zero())
	assert.Equal(t, scalar.Float64(1), x.One())
	assert.Equal(t, scalar.Float64(1.5), x.Add(1))
	assert.Equal(t, scalar.Float64(-0.5), x.Sub(1))
	assert.Equal(t, scalar.Float64(2), x.Scale(4))
	assert.Equal(t, "0.5", x.String())
}

func TestElementaryFunctions(t *testing.T) {
	assert.InDelta(t, math.E, float64(scalar.Float32(1).Exp()), 1e-6)
	assert.InDelta(t, 0, float64(scalar.Float32(1).Log()), 1e-6)
	assert.InDelta(t, 2, float64(scalar.Float32(4).Sqrt()), 1e-6)
	assert.InDelta(t, math.Tanh(0.5), float64(scalar.Float32(0.5).Tanh()), 1e-6)
	assert.InDelta(t, 3, float64(scalar.Float64(-3).Abs()), 1e-12)
	assert.InDelta(t, 1, float64(scalar.Float64(0).Cos()), 1e-12)
	assert.InDelta(t, 0, float64(scalar.Float64(0).Sin()), 1e-12)
}

func TestBinaryVJPs(t *testing.T) {
	tests := []struct {
		name   string
		vjp    func(x, y scalar.Float64) (scalar.Float64, func(scalar.Float64) (scalar.Float64, scalar.Float64))
		value  float64
		dx, dy float64
	}{
		{"add", scalar.AddVJP[scalar.Float64], 5, 1, 1},
		{"sub", scalar.SubVJP[scalar.Float64], -1, 1, -1},
		{"mul", scalar.MulVJP[scalar.Float64], 6, 3, 2},
		{"div", scalar.DivVJP[scalar.Float64], 2.0 / 3.0, 1.0 / 3.0, -2.0 / 9.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, pb := tt.vjp(2, 3)
			dx, dy := pb(1)
			assert.InDelta(t, tt.value, float64(y), 1e-12)
			assert.InDelta(t, tt.dx, float64(dx), 1e-12)
			assert.InDelta(t, tt.dy, float64(dy), 1e-12)
		})
	}
}

// Unary VJPs are checked against central differences.
func TestUnaryVJPs(t *testing.T) {
	tests := []struct {
		name string
		vjp  func(x scalar.Float64) (scalar.Float64, func(scalar.Float64) scalar.Float64)
		x    float64
	}{
		{"exp", scalar.ExpVJP[scalar.Float64], 0.7},
		{"log", scalar.LogVJP[scalar.Float64], 1.3},
		{"sqrt", scalar.SqrtVJP[scalar.Float64], 2.5},
		{"tanh", scalar.TanhVJP[scalar.Float64], -0.4},
		{"sin", scalar.SinVJP[scalar.Float64], 1.1},
		{"cos", scalar.CosVJP[scalar.Float64], 0.3},
		{"abs", scalar.AbsVJP[scalar.Float64], -2},
	}

	const eps = 1e-6
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := func(x float64) float64 {
				y, _ := tt.vjp(scalar.Float64(x))
				return float64(y)
			}
			_, pb := tt.vjp(scalar.Float64(tt.x))
			numeric := (f(tt.x+eps) - f(tt.x-eps)) / (2 * eps)
			assert.InDelta(t, numeric, float64(pb(1)), 1e-6)
		})
	}
}

func TestVJP_Float32(t *testing.T) {
	y, pb := scalar.MulVJP(scalar.Float32(10), scalar.Float32(10))
	dx1, dx2 := pb(1)
	assert.Equal(t, scalar.Float32(100), y)
	assert.Equal(t, scalar.Float32(20), dx1+dx2)
}
