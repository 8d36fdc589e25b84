package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/pullback/internal/keypath"
	"github.com/born-ml/pullback/internal/tensor"
)

// DenseConfig configures NewDense.
type DenseConfig struct {
	In         int        // Number of input features
	Out        int        // Number of output features
	Activation Activation // Applied to W·x + b (nil = identity)
	Seed       int64      // Seed for weight initialization
}

// Dense implements a fully connected layer.
//
// Performs the transformation: y = act(W·x + b)
// where:
//   - x is the input vector with length In
//   - W is the weight matrix with shape [Out, In]
//   - b is the bias vector with length Out
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	layer := nn.NewDense(nn.DenseConfig{In: 4, Out: 2, Activation: nn.Tanh})
//	y, pb := layer.ValueWithPullback(x)
//	grads, dx := pb(dy) // grads.Weight: [2, 4], grads.Bias: [2]
type Dense struct {
	Weight     tensor.Matrix // [Out, In]
	Bias       tensor.Vector // [Out]
	activation Activation
}

// NewDense creates a new Dense layer.
//
// Panics if In or Out is not positive.
func NewDense(cfg DenseConfig) Dense {
	if cfg.In <= 0 || cfg.Out <= 0 {
		panic(fmt.Sprintf("NewDense: invalid features in=%d out=%d (must be > 0)", cfg.In, cfg.Out))
	}

	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	rng := rand.New(rand.NewSource(cfg.Seed))

	return Dense{
		Weight:     Xavier(cfg.In, cfg.Out, rng),
		Bias:       tensor.Full(cfg.Out, 0),
		activation: cfg.Activation,
	}
}

// NewDenseFrom creates a Dense layer with the given parameters.
func NewDenseFrom(weight tensor.Matrix, bias tensor.Vector, activation Activation) Dense {
	return Dense{Weight: weight, Bias: bias, activation: activation}
}

// Forward computes act(W·x + b).
func (d Dense) Forward(x tensor.Vector) tensor.Vector {
	y, _ := d.ValueWithPullback(x)
	return y
}

// ValueWithPullback computes act(W·x + b) and its pullback.
//
// Gradients, with dz = act'(z) ⊙ dy:
//   - dW = dz·xᵀ
//   - db = dz
//   - dx = Wᵀ·dz
func (d Dense) ValueWithPullback(x tensor.Vector) (tensor.Vector, func(tensor.Vector) (DenseTangent, tensor.Vector)) {
	z := d.Weight.MulVec(x).Add(d.Bias)

	y := z
	actPB := func(dy tensor.Vector) tensor.Vector { return dy }
	if d.activation != nil {
		y, actPB = d.activation(z)
	}

	return y, func(dy tensor.Vector) (DenseTangent, tensor.Vector) {
		dz := actPB(dy)
		return DenseTangent{Weight: tensor.Outer(dz, x), Bias: dz}, d.Weight.TMulVec(dz)
	}
}

// Moved returns the layer with its parameters moved along direction.
func (d Dense) Moved(direction DenseTangent) Dense {
	return Dense{
		Weight:     d.Weight.Add(direction.Weight),
		Bias:       d.Bias.Add(direction.Bias),
		activation: d.activation,
	}
}

// Fields implements keypath.Iterable.
func (d Dense) Fields() []keypath.Field {
	return []keypath.Field{
		{Name: "weight", Value: d.Weight},
		{Name: "bias", Value: d.Bias},
	}
}

// WithField implements keypath.Settable. "weight" takes a tensor.Matrix and
// "bias" a tensor.Vector.
func (d Dense) WithField(name string, value any) (any, bool) {
	switch name {
	case "weight":
		w, ok := value.(tensor.Matrix)
		if !ok {
			return nil, false
		}
		d.Weight = w
	case "bias":
		b, ok := value.(tensor.Vector)
		if !ok {
			return nil, false
		}
		d.Bias = b
	default:
		return nil, false
	}
	return d, true
}

// String implements fmt.Stringer.
func (d Dense) String() string {
	rows, cols := d.Weight.Dims()
	return fmt.Sprintf("Dense(%d -> %d)", cols, rows)
}

// DenseTangent is the parameter tangent of Dense.
//
// The zero value is the additive identity for a Dense layer of any size.
type DenseTangent struct {
	Weight tensor.Matrix
	Bias   tensor.Vector
}

// Zero returns the additive identity.
func (DenseTangent) Zero() DenseTangent {
	return DenseTangent{}
}

// Add returns t + other.
func (t DenseTangent) Add(other DenseTangent) DenseTangent {
	return DenseTangent{Weight: t.Weight.Add(other.Weight), Bias: t.Bias.Add(other.Bias)}
}

// Sub returns t - other.
func (t DenseTangent) Sub(other DenseTangent) DenseTangent {
	return DenseTangent{Weight: t.Weight.Sub(other.Weight), Bias: t.Bias.Sub(other.Bias)}
}

// Equal reports whether t and other are equal.
func (t DenseTangent) Equal(other DenseTangent) bool {
	return t.Weight.Equal(other.Weight) && t.Bias.Equal(other.Bias)
}

// Scale returns t * factor.
func (t DenseTangent) Scale(factor float64) DenseTangent {
	return DenseTangent{Weight: t.Weight.Scale(factor), Bias: t.Bias.Scale(factor)}
}

// MulElem returns the element-wise product of t and other.
func (t DenseTangent) MulElem(other DenseTangent) DenseTangent {
	return DenseTangent{Weight: t.Weight.MulElem(other.Weight), Bias: t.Bias.MulElem(other.Bias)}
}

// Fields implements keypath.Iterable.
func (t DenseTangent) Fields() []keypath.Field {
	return []keypath.Field{
		{Name: "weight", Value: t.Weight},
		{Name: "bias", Value: t.Bias},
	}
}

// WithField implements keypath.Settable.
func (t DenseTangent) WithField(name string, value any) (any, bool) {
	d, ok := Dense{Weight: t.Weight, Bias: t.Bias}.WithField(name, value)
	if !ok {
		return nil, false
	}
	return DenseTangent{Weight: d.(Dense).Weight, Bias: d.(Dense).Bias}, true
}

// String implements fmt.Stringer.
func (t DenseTangent) String() string {
	return fmt.Sprintf("DenseTangent(weight: %v, bias: %v)", t.Weight.Shape(), t.Bias.Shape())
}
