// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import "github.com/born-ml/pullback/internal/scalar"

// Float32 is a float32 scalar tangent space.
type Float32 = scalar.Float32

// Float64 is a float64 scalar tangent space.
type Float64 = scalar.Float64

// Real is the constraint satisfied by Float32 and Float64.
type Real[F any] = scalar.Real[F]

// AddVJP computes x + y and its pullback.
func AddVJP[F Real[F]](x, y F) (F, func(F) (F, F)) { return scalar.AddVJP(x, y) }

// SubVJP computes x - y and its pullback.
func SubVJP[F Real[F]](x, y F) (F, func(F) (F, F)) { return scalar.SubVJP(x, y) }

// MulVJP computes x * y and its pullback.
func MulVJP[F Real[F]](x, y F) (F, func(F) (F, F)) { return scalar.MulVJP(x, y) }

// DivVJP computes x / y and its pullback.
func DivVJP[F Real[F]](x, y F) (F, func(F) (F, F)) { return scalar.DivVJP(x, y) }

// ExpVJP computes e**x and its pullback.
func ExpVJP[F Real[F]](x F) (F, func(F) F) { return scalar.ExpVJP(x) }

// LogVJP computes ln(x) and its pullback.
func LogVJP[F Real[F]](x F) (F, func(F) F) { return scalar.LogVJP(x) }

// SqrtVJP computes √x and its pullback.
func SqrtVJP[F Real[F]](x F) (F, func(F) F) { return scalar.SqrtVJP(x) }

// TanhVJP computes tanh(x) and its pullback.
func TanhVJP[F Real[F]](x F) (F, func(F) F) { return scalar.TanhVJP(x) }

// SinVJP computes sin(x) and its pullback.
func SinVJP[F Real[F]](x F) (F, func(F) F) { return scalar.SinVJP(x) }

// CosVJP computes cos(x) and its pullback.
func CosVJP[F Real[F]](x F) (F, func(F) F) { return scalar.CosVJP(x) }

// AbsVJP computes |x| and its pullback.
func AbsVJP[F Real[F]](x F) (F, func(F) F) { return scalar.AbsVJP(x) }
