package nn

import (
	"math"

	"github.com/born-ml/pullback/internal/autodiff"
	"github.com/born-ml/pullback/internal/tensor"
)

// Activation is an element-wise differentiable function on vectors.
// A nil Activation is the identity.
type Activation = autodiff.Function[tensor.Vector, tensor.Vector]

// Tanh applies the hyperbolic tangent element-wise.
//
// Gradient: dx = dy * (1 - tanh²(x)).
func Tanh(x tensor.Vector) (tensor.Vector, autodiff.Pullback[tensor.Vector, tensor.Vector]) {
	y := x.Map(math.Tanh)
	return y, func(dy tensor.Vector) tensor.Vector {
		return dy.MulElem(y.Map(func(t float64) float64 { return 1 - t*t }))
	}
}

// ReLU applies f(x) = max(0, x) element-wise.
//
// Gradient: dx = dy where x > 0, else 0.
func ReLU(x tensor.Vector) (tensor.Vector, autodiff.Pullback[tensor.Vector, tensor.Vector]) {
	mask := x.Map(func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})
	return x.MulElem(mask), func(dy tensor.Vector) tensor.Vector {
		return dy.MulElem(mask)
	}
}

// Sigmoid applies σ(x) = 1 / (1 + exp(-x)) element-wise.
//
// Gradient: dx = dy * σ(x) * (1 - σ(x)).
func Sigmoid(x tensor.Vector) (tensor.Vector, autodiff.Pullback[tensor.Vector, tensor.Vector]) {
	y := x.Map(func(v float64) float64 { return 1 / (1 + math.Exp(-v)) })
	return y, func(dy tensor.Vector) tensor.Vector {
		return dy.MulElem(y.Map(func(s float64) float64 { return s * (1 - s) }))
	}
}

// NewTanh creates a Tanh activation layer.
func NewTanh() Lambda[tensor.Vector] {
	return NewLambda[tensor.Vector]("tanh", Tanh)
}

// NewReLU creates a ReLU activation layer.
func NewReLU() Lambda[tensor.Vector] {
	return NewLambda[tensor.Vector]("relu", ReLU)
}

// NewSigmoid creates a Sigmoid activation layer.
func NewSigmoid() Lambda[tensor.Vector] {
	return NewLambda[tensor.Vector]("sigmoid", Sigmoid)
}
