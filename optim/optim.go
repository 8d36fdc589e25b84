// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms over tangent vectors.
//
// # Basic Usage
//
//	optimizer := optim.NewSGD[nn.Dense, nn.DenseTangent](optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	    ClipNorm: 1,
//	})
//
//	y, pb := model.ValueWithPullback(x)
//	_, lossPB := nn.MSELoss(target)(y)
//	grads, _ := pb(lossPB(1))
//	model = optimizer.Step(model, grads)
package optim

import (
	"github.com/born-ml/pullback/internal/optim"
	"github.com/born-ml/pullback/internal/vectorspace"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer[M vectorspace.Differentiable[M, P], P vectorspace.Vector[P]] = optim.Optimizer[M, P]

// SGD implements Stochastic Gradient Descent with momentum and clipping.
type SGD[M vectorspace.Differentiable[M, P], P vectorspace.Vector[P]] = optim.SGD[M, P]

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD[M vectorspace.Differentiable[M, P], P vectorspace.Vector[P]](config SGDConfig) *SGD[M, P] {
	return optim.NewSGD[M, P](config)
}

// Normed is implemented by tangent types that know their Euclidean norm.
type Normed = optim.Normed

// GlobalNorm returns the Euclidean norm of all numeric leaves of v.
// Leaves that are neither numeric, Normed nor keypath.Iterable count as zero.
func GlobalNorm(v any) float64 {
	return optim.GlobalNorm(v)
}

// ClipByGlobalNorm rescales grad so that its global norm is at most maxNorm.
func ClipByGlobalNorm[P vectorspace.Vector[P]](grad P, maxNorm float64) P {
	return optim.ClipByGlobalNorm(grad, maxNorm)
}
