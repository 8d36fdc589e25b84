package optim

import "github.com/born-ml/pullback/internal/vectorspace"

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	model = model.Moved(-lr * gradient)
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	model = model.Moved(-lr * velocity)
//
// If ClipNorm is positive, gradients are first rescaled so that their global
// norm does not exceed it. The norm is computed by GlobalNorm: custom tangent
// leaves need a Norm method (see Normed) or they count as zero.
//
// Example:
//
//	optimizer := optim.NewSGD[nn.Dense, nn.DenseTangent](optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//	model = optimizer.Step(model, grads)
type SGD[M vectorspace.Differentiable[M, P], P vectorspace.Vector[P]] struct {
	lr       float64
	momentum float64
	clipNorm float64
	velocity P
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
	ClipNorm float64 // Maximum global gradient norm (default: 0, no clipping)
}

// NewSGD creates a new SGD optimizer.
//
// P must support Scale (vectorspace.Scalable); Step panics with
// vectorspace.ErrUnsupportedOperation otherwise.
func NewSGD[M vectorspace.Differentiable[M, P], P vectorspace.Vector[P]](config SGDConfig) *SGD[M, P] {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[M, P]{
		lr:       config.LR,
		momentum: config.Momentum,
		clipNorm: config.ClipNorm,
		velocity: vectorspace.ZeroOf[P](),
	}
}

// Step performs a single optimization step and returns the updated model.
func (s *SGD[M, P]) Step(model M, grad P) M {
	if s.clipNorm > 0 {
		grad = ClipByGlobalNorm(grad, s.clipNorm)
	}

	update := grad
	if s.momentum != 0 {
		// velocity = momentum * velocity + grad
		s.velocity = scale(s.velocity, s.momentum).Add(grad)
		update = s.velocity
	}

	return model.Moved(scale(update, -s.lr))
}

// ZeroGrad clears the momentum buffer.
func (s *SGD[M, P]) ZeroGrad() {
	s.velocity = vectorspace.ZeroOf[P]()
}

// GetLR returns the current learning rate.
func (s *SGD[M, P]) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD[M, P]) SetLR(lr float64) {
	s.lr = lr
}
