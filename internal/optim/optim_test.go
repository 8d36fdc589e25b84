package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pullback/internal/erasure"
	"github.com/born-ml/pullback/internal/nn"
	"github.com/born-ml/pullback/internal/optim"
	"github.com/born-ml/pullback/internal/scalar"
	"github.com/born-ml/pullback/internal/tensor"
	"github.com/born-ml/pullback/internal/vectorspace"
)

type f64 = scalar.Float64

// tally is a model whose tangent cannot be scaled.
type tally int

func (tally) Zero() tally { return 0 }
func (t tally) Add(o tally) tally { return t + o }
func (t tally) Sub(o tally) tally { return t - o }
func (t tally) Equal(o tally) bool { return t == o }
func (t tally) Moved(d tally) tally { return t + d }

func TestSGD_SimpleUpdate(t *testing.T) {
	optimizer := optim.NewSGD[f64, f64](optim.SGDConfig{LR: 0.1})

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	x := optimizer.Step(2, 1)
	assert.InDelta(t, 1.9, float64(x), 1e-12)
}

func TestSGD_WithMomentum(t *testing.T) {
	optimizer := optim.NewSGD[f64, f64](optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// velocity = 1, x = 1 - 0.1
	x := optimizer.Step(1, 1)
	assert.InDelta(t, 0.9, float64(x), 1e-12)

	// velocity = 0.9 + 1 = 1.9, x = 0.9 - 0.19
	x = optimizer.Step(x, 1)
	assert.InDelta(t, 0.71, float64(x), 1e-12)

	// Cleared velocity restarts at the gradient.
	optimizer.ZeroGrad()
	x = optimizer.Step(x, 1)
	assert.InDelta(t, 0.61, float64(x), 1e-12)
}

func TestSGD_GetSetLR(t *testing.T) {
	optimizer := optim.NewSGD[f64, f64](optim.SGDConfig{})
	assert.Equal(t, 0.01, optimizer.GetLR())

	optimizer.SetLR(0.5)
	assert.Equal(t, 0.5, optimizer.GetLR())

	var _ optim.Optimizer[f64, f64] = optimizer
}

func TestSGD_UnscalableTangent(t *testing.T) {
	optimizer := optim.NewSGD[tally, tally](optim.SGDConfig{LR: 1})
	err := vectorspace.Recover(func() { optimizer.Step(1, 1) })
	assert.ErrorIs(t, err, vectorspace.ErrUnsupportedOperation)
}

func TestSGD_ClipNorm(t *testing.T) {
	optimizer := optim.NewSGD[nn.Dense, nn.DenseTangent](optim.SGDConfig{LR: 1, ClipNorm: 1})
	model := nn.NewDenseFrom(tensor.Zeros(1, 1), tensor.NewVector(0, 0), nil)

	grad := nn.DenseTangent{Bias: tensor.NewVector(3, 4)}
	moved := optimizer.Step(model, grad)

	assert.InDelta(t, -0.6, moved.Bias.At(0), 1e-12)
	assert.InDelta(t, -0.8, moved.Bias.At(1), 1e-12)
}

func TestGlobalNorm(t *testing.T) {
	dense := nn.DenseTangent{
		Weight: tensor.NewMatrix(1, 2, []float64{1, 2}),
		Bias:   tensor.NewVector(2),
	}
	assert.InDelta(t, 3.0, optim.GlobalNorm(dense), 1e-12)
	assert.InDelta(t, 4.0, optim.GlobalNorm(f64(-4)), 1e-12)
	assert.Zero(t, optim.GlobalNorm(erasure.AnyLayerTangent{}))

	tangents := nn.Tangents[erasure.AnyLayerTangent]{
		erasure.NewLayerTangent(dense),
		erasure.NewLayerTangent(scalar.Float32(4)),
		{},
	}
	assert.InDelta(t, 5.0, optim.GlobalNorm(tangents), 1e-6)
}

func TestClipByGlobalNorm(t *testing.T) {
	small := tensor.NewVector(0.3, 0.4)
	assert.Equal(t, small.Values(), optim.ClipByGlobalNorm(small, 1).Values())

	clipped := optim.ClipByGlobalNorm(tensor.NewVector(6, 8), 1)
	assert.InDelta(t, 1.0, clipped.Norm(), 1e-12)
	assert.InDelta(t, 0.6, clipped.At(0), 1e-12)
}

func TestConvergence_LinearRegression(t *testing.T) {
	// Fit y = 2x + 1.
	xs := []float64{-1, 0, 1, 2}

	model := nn.NewDense(nn.DenseConfig{In: 1, Out: 1, Seed: 3})
	optimizer := optim.NewSGD[nn.Dense, nn.DenseTangent](optim.SGDConfig{LR: 0.05})

	loss := func(m nn.Dense) float64 {
		var total float64
		for _, x := range xs {
			d := m.Forward(tensor.NewVector(x)).At(0) - (2*x + 1)
			total += d * d
		}
		return total / float64(len(xs))
	}
	initial := loss(model)

	for range 500 {
		for _, x := range xs {
			lossFn := nn.MSELoss(tensor.NewVector(2*x + 1))
			y, pb := model.ValueWithPullback(tensor.NewVector(x))
			_, lossPB := lossFn(y)
			grads, _ := pb(lossPB(1))
			model = optimizer.Step(model, grads)
		}
	}

	require.Less(t, loss(model), initial)
	assert.Less(t, loss(model), 1e-6)
	assert.InDelta(t, 2.0, model.Weight.At(0, 0), 1e-3)
	assert.InDelta(t, 1.0, model.Bias.At(0), 1e-3)
	assert.False(t, math.IsNaN(model.Weight.At(0, 0)))
}

func TestConvergence_ErasedSequential(t *testing.T) {
	type vec = tensor.Vector
	type layer = nn.AnyLayer[vec, vec]
	type tangents = nn.Tangents[erasure.AnyLayerTangent]
	type model = nn.Sequential[layer, vec, erasure.AnyLayerTangent]

	m := nn.NewSequential[layer, vec, erasure.AnyLayerTangent](
		nn.EraseLayer[nn.Dense, vec, vec, nn.DenseTangent](nn.NewDense(nn.DenseConfig{In: 2, Out: 8, Activation: nn.Tanh, Seed: 1})),
		nn.EraseLayer[nn.Dense, vec, vec, nn.DenseTangent](nn.NewDense(nn.DenseConfig{In: 8, Out: 1, Seed: 2})),
	)
	optimizer := optim.NewSGD[model, tangents](optim.SGDConfig{LR: 0.05, Momentum: 0.5, ClipNorm: 5})

	inputs := []vec{tensor.NewVector(0, 0), tensor.NewVector(0, 1), tensor.NewVector(1, 0), tensor.NewVector(1, 1)}
	targets := []float64{0, 0.5, 0.5, 1}

	epochLoss := func(m model) float64 {
		var total float64
		for i, x := range inputs {
			v, _ := nn.MSELoss(tensor.NewVector(targets[i]))(m.Forward(x))
			total += float64(v)
		}
		return total
	}
	initial := epochLoss(m)

	for range 200 {
		for i, x := range inputs {
			y, pb := m.ValueWithPullback(x)
			_, lossPB := nn.MSELoss(tensor.NewVector(targets[i]))(y)
			grads, _ := pb(lossPB(1))
			m = optimizer.Step(m, grads)
		}
	}

	assert.Less(t, epochLoss(m), initial)
}

// spread is a tangent that reports its own norm.
type spread struct{ x, y float64 }

func (spread) Zero() spread { return spread{} }
func (s spread) Add(o spread) spread { return spread{s.x + o.x, s.y + o.y} }
func (s spread) Sub(o spread) spread { return spread{s.x - o.x, s.y - o.y} }
func (s spread) Equal(o spread) bool { return s == o }
func (s spread) Scale(f float64) spread { return spread{s.x * f, s.y * f} }
func (s spread) Norm() float64 { return math.Hypot(s.x, s.y) }
func (s spread) Moved(d spread) spread { return s.Add(d) }

func TestGlobalNorm_CustomLeaves(t *testing.T) {
	assert.InDelta(t, 5.0, optim.GlobalNorm(spread{3, 4}), 1e-12)
	assert.InDelta(t, 5.0, optim.GlobalNorm(erasure.NewLayerTangent(spread{3, 4})), 1e-12)
	assert.Zero(t, optim.GlobalNorm(tally(7)), "leaves without Norm count as zero")

	clipped := optim.ClipByGlobalNorm(spread{3, 4}, 1)
	assert.InDelta(t, 0.6, clipped.x, 1e-12)
	assert.InDelta(t, 0.8, clipped.y, 1e-12)

	optimizer := optim.NewSGD[spread, spread](optim.SGDConfig{LR: 1, ClipNorm: 1})
	moved := optimizer.Step(spread{}, spread{6, 8})
	assert.InDelta(t, -0.6, moved.x, 1e-12)
	assert.InDelta(t, -0.8, moved.y, 1e-12)
}
