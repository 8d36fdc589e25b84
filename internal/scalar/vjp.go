package scalar

// Real is the constraint satisfied by Float32 and Float64.
type Real[F any] interface {
	~float32 | ~float64

	Exp() F
	Log() F
	Sqrt() F
	Tanh() F
	Sin() F
	Cos() F
	Abs() F
}

// AddVJP computes x + y.
//
// Backward pass:
//   - d(x+y)/dx = 1, so dx = v
//   - d(x+y)/dy = 1, so dy = v
func AddVJP[F Real[F]](x, y F) (F, func(v F) (F, F)) {
	return x + y, func(v F) (F, F) {
		return v, v
	}
}

// SubVJP computes x - y.
//
// Backward pass:
//   - d(x-y)/dx = 1, so dx = v
//   - d(x-y)/dy = -1, so dy = -v
func SubVJP[F Real[F]](x, y F) (F, func(v F) (F, F)) {
	return x - y, func(v F) (F, F) {
		return v, -v
	}
}

// MulVJP computes x * y.
//
// Backward pass:
//   - d(x*y)/dx = y, so dx = v * y
//   - d(x*y)/dy = x, so dy = v * x
func MulVJP[F Real[F]](x, y F) (F, func(v F) (F, F)) {
	return x * y, func(v F) (F, F) {
		return v * y, v * x
	}
}

// DivVJP computes x / y.
//
// Backward pass:
//   - d(x/y)/dx = 1/y
//   - d(x/y)/dy = -x/y²
func DivVJP[F Real[F]](x, y F) (F, func(v F) (F, F)) {
	return x / y, func(v F) (F, F) {
		return v / y, -v * x / (y * y)
	}
}

// ExpVJP computes e**x. d(e**x)/dx = e**x.
func ExpVJP[F Real[F]](x F) (F, func(v F) F) {
	y := x.Exp()
	return y, func(v F) F {
		return v * y
	}
}

// LogVJP computes ln(x). d(ln x)/dx = 1/x.
func LogVJP[F Real[F]](x F) (F, func(v F) F) {
	return x.Log(), func(v F) F {
		return v / x
	}
}

// SqrtVJP computes √x. d(√x)/dx = 1/(2√x).
func SqrtVJP[F Real[F]](x F) (F, func(v F) F) {
	y := x.Sqrt()
	return y, func(v F) F {
		return v / (2 * y)
	}
}

// TanhVJP computes tanh(x). d(tanh x)/dx = 1 - tanh²(x).
func TanhVJP[F Real[F]](x F) (F, func(v F) F) {
	y := x.Tanh()
	return y, func(v F) F {
		return v * (1 - y*y)
	}
}

// SinVJP computes sin(x). d(sin x)/dx = cos(x).
func SinVJP[F Real[F]](x F) (F, func(v F) F) {
	return x.Sin(), func(v F) F {
		return v * x.Cos()
	}
}

// CosVJP computes cos(x). d(cos x)/dx = -sin(x).
func CosVJP[F Real[F]](x F) (F, func(v F) F) {
	return x.Cos(), func(v F) F {
		return -v * x.Sin()
	}
}

// AbsVJP computes |x|. The derivative at 0 is taken as 0.
func AbsVJP[F Real[F]](x F) (F, func(v F) F) {
	return x.Abs(), func(v F) F {
		switch {
		case x > 0:
			return v
		case x < 0:
			return -v
		default:
			return 0
		}
	}
}
