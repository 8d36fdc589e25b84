package nn

import (
	"math"

	"github.com/born-ml/pullback/internal/autodiff"
	"github.com/born-ml/pullback/internal/scalar"
	"github.com/born-ml/pullback/internal/tensor"
)

// Loss is a differentiable function from a prediction to a scalar loss.
type Loss = autodiff.Function[tensor.Vector, scalar.Float64]

// L1Loss returns the sum of absolute differences against expected.
//
// Formula: loss = Σ|predicted - expected|
//
// Gradient: d(loss)/d(predicted) = sign(predicted - expected).
// The subgradient at zero difference is 0.
func L1Loss(expected tensor.Vector) Loss {
	return func(predicted tensor.Vector) (scalar.Float64, autodiff.Pullback[scalar.Float64, tensor.Vector]) {
		diff := predicted.Sub(expected)
		loss := diff.Map(math.Abs).Sum()
		sign := diff.Map(func(v float64) float64 {
			switch {
			case v > 0:
				return 1
			case v < 0:
				return -1
			default:
				return 0
			}
		})
		return scalar.Float64(loss), func(dy scalar.Float64) tensor.Vector {
			return sign.Scale(float64(dy))
		}
	}
}

// MSELoss returns the mean squared error against expected.
//
// Formula: loss = (1/n) * Σ(predicted - expected)²
//
// Gradient: d(loss)/d(predicted) = (2/n) * (predicted - expected).
func MSELoss(expected tensor.Vector) Loss {
	return func(predicted tensor.Vector) (scalar.Float64, autodiff.Pullback[scalar.Float64, tensor.Vector]) {
		diff := predicted.Sub(expected)
		n := float64(diff.Len())
		if n == 0 {
			return 0, func(scalar.Float64) tensor.Vector { return tensor.Vector{} }
		}
		loss := diff.Dot(diff) / n
		return scalar.Float64(loss), func(dy scalar.Float64) tensor.Vector {
			return diff.Scale(2 * float64(dy) / n)
		}
	}
}
