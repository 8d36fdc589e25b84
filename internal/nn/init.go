package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/pullback/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// Parameters:
//   - fanIn: Number of input units
//   - fanOut: Number of output units
//   - rng: Source of randomness
//
// Returns a fanOut×fanIn matrix.
func Xavier(fanIn, fanOut int, rng *rand.Rand) tensor.Matrix {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	data := make([]float64, fanOut*fanIn)
	for i := range data {
		data[i] = (rng.Float64()*2.0 - 1.0) * bound
	}

	return tensor.NewMatrix(fanOut, fanIn, data)
}
