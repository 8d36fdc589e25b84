package optim

import (
	"math"

	"github.com/born-ml/pullback/internal/erasure"
	"github.com/born-ml/pullback/internal/keypath"
	"github.com/born-ml/pullback/internal/scalar"
	"github.com/born-ml/pullback/internal/vectorspace"
)

// Normed is implemented by tangent types that know their Euclidean norm.
type Normed interface {
	Norm() float64
}

// GlobalNorm returns the Euclidean norm of all numeric leaves of v.
//
// scalar.Float32, scalar.Float64 and Normed values (which include
// tensor.Vector and tensor.Matrix) contribute their norm and are not
// descended further. Erased tangents contribute the norm of the value they
// hold. Any other keypath.Iterable value contributes the norms of its
// fields. Values matching none of these, such as a tangent without Norm
// and without fields, count as zero; give such types a Norm method to have
// them clipped.
func GlobalNorm(v any) float64 {
	var sumSq float64
	var visit func(x any, depth int)
	visit = func(x any, depth int) {
		if depth >= keypath.MaxDepth {
			return
		}
		switch x := x.(type) {
		case scalar.Float32:
			sumSq += float64(x) * float64(x)
		case scalar.Float64:
			sumSq += float64(x) * float64(x)
		case erasure.AnyLayerTangent:
			visit(x.Base(), depth+1)
		case erasure.AnyDerivative:
			visit(x.Base(), depth+1)
		case Normed:
			n := x.Norm()
			sumSq += n * n
		case keypath.Iterable:
			for _, f := range x.Fields() {
				visit(f.Value, depth+1)
			}
		}
	}

	visit(v, 0)
	return math.Sqrt(sumSq)
}

// ClipByGlobalNorm rescales grad so that its global norm is at most
// maxNorm. Gradients already within the bound are returned unchanged.
func ClipByGlobalNorm[P vectorspace.Vector[P]](grad P, maxNorm float64) P {
	norm := GlobalNorm(grad)
	if norm <= maxNorm || norm == 0 {
		return grad
	}
	return scale(grad, maxNorm/norm)
}
