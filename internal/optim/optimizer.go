// Package optim implements optimization algorithms over tangent vectors.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum and gradient clipping
//   - GlobalNorm / ClipByGlobalNorm: norms over nested parameter tangents
//
// Optimizers are generic over the model type M and its tangent P. A step
// returns the model moved along the scaled update; the model is never
// modified in place.
//
// Example usage:
//
//	optimizer := optim.NewSGD[nn.Dense, nn.DenseTangent](optim.SGDConfig{
//	    LR: 0.01,
//	})
//
//	for epoch := range epochs {
//	    y, pb := model.ValueWithPullback(x)
//	    _, lossPB := lossFn(y)
//	    grads, _ := pb(lossPB(1))
//	    model = optimizer.Step(model, grads)
//	}
package optim

import "github.com/born-ml/pullback/internal/vectorspace"

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply a gradient update to the model
//   - ZeroGrad: Clear accumulated optimizer state
//   - GetLR: Get current learning rate (for monitoring/scheduling)
type Optimizer[M vectorspace.Differentiable[M, P], P vectorspace.Vector[P]] interface {
	// Step returns model moved against grad.
	Step(model M, grad P) M

	// ZeroGrad clears accumulated state such as momentum buffers.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// scale multiplies v by factor.
// Panics with vectorspace.ErrUnsupportedOperation if P cannot be scaled.
func scale[P vectorspace.Vector[P]](v P, factor float64) P {
	s, ok := any(v).(vectorspace.Scalable[P])
	if !ok {
		panic(vectorspace.Unsupported("scale", v))
	}
	return s.Scale(factor)
}
