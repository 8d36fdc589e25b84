package nn

import (
	"fmt"
	"slices"
	"strings"

	"github.com/born-ml/pullback/internal/autodiff"
	"github.com/born-ml/pullback/internal/keypath"
	"github.com/born-ml/pullback/internal/vectorspace"
)

// Tangents is the tangent of a Sequential: one parameter tangent per layer,
// in layer order.
//
// The empty list is the additive identity of every length, so a zero value
// can accumulate tangents of any Sequential.
type Tangents[P vectorspace.Vector[P]] []P

// Zero returns the empty list.
func (Tangents[P]) Zero() Tangents[P] {
	return nil
}

// Add returns the element-wise sum of t and other. The result never shares
// its backing array with either operand.
func (t Tangents[P]) Add(other Tangents[P]) Tangents[P] {
	if len(other) == 0 {
		return slices.Clone(t)
	}
	if len(t) == 0 {
		return slices.Clone(other)
	}
	t.checkLen("add", other)
	out := make(Tangents[P], len(t))
	for i := range t {
		out[i] = t[i].Add(other[i])
	}
	return out
}

// Sub returns the element-wise difference of t and other.
func (t Tangents[P]) Sub(other Tangents[P]) Tangents[P] {
	if len(other) == 0 {
		return slices.Clone(t)
	}
	if len(t) == 0 {
		out := make(Tangents[P], len(other))
		for i, p := range other {
			out[i] = vectorspace.Neg(p)
		}
		return out
	}
	t.checkLen("subtract", other)
	out := make(Tangents[P], len(t))
	for i := range t {
		out[i] = t[i].Sub(other[i])
	}
	return out
}

// Equal reports whether t and other are element-wise equal.
// The empty list equals any list of zeros.
func (t Tangents[P]) Equal(other Tangents[P]) bool {
	switch {
	case len(t) == 0:
		return other.isZero()
	case len(other) == 0:
		return t.isZero()
	case len(t) != len(other):
		return false
	}
	for i := range t {
		if !t[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Scale multiplies every element by factor.
// Panics with vectorspace.ErrUnsupportedOperation if P cannot be scaled.
func (t Tangents[P]) Scale(factor float64) Tangents[P] {
	if len(t) == 0 {
		return t
	}
	out := make(Tangents[P], len(t))
	for i, p := range t {
		s, ok := any(p).(vectorspace.Scalable[P])
		if !ok {
			panic(vectorspace.Unsupported("scale", p))
		}
		out[i] = s.Scale(factor)
	}
	return out
}

// Fields implements keypath.Iterable with one field "[i]" per element.
func (t Tangents[P]) Fields() []keypath.Field {
	return keypath.Elements[P](t).Fields()
}

// WithField implements keypath.Settable.
func (t Tangents[P]) WithField(name string, value any) (any, bool) {
	out, ok := keypath.Elements[P](t).WithField(name, value)
	if !ok {
		return nil, false
	}
	return Tangents[P](out.(keypath.Elements[P])), true
}

func (t Tangents[P]) isZero() bool {
	for _, p := range t {
		if !p.Equal(p.Zero()) {
			return false
		}
	}
	return true
}

func (t Tangents[P]) checkLen(op string, other Tangents[P]) {
	if len(t) != len(other) {
		panic(vectorspace.DimensionMismatch(op, len(t), len(other)))
	}
}

// Sequential applies layers in order, each layer's output becoming the next
// layer's input.
//
// Its pullback chains the per-layer pullbacks in reverse order and returns
// the parameter tangents in layer order:
//
//	model := nn.NewSequential[nn.AnyLayer[tensor.Vector, tensor.Vector], tensor.Vector, erasure.AnyLayerTangent](
//	    nn.EraseLayer[nn.Dense, tensor.Vector, tensor.Vector, nn.DenseTangent](dense),
//	    nn.EraseLayer[nn.Lambda[tensor.Vector], tensor.Vector, tensor.Vector, vectorspace.Empty](nn.NewTanh()),
//	)
//	y, pb := model.ValueWithPullback(x)
//	tangents, dx := pb(dy)
//
// A Sequential with no layers is the identity: its pullback returns no
// tangents and the seed unchanged.
//
// Sequential is itself a Layer, so compositions nest.
type Sequential[L Layer[L, X, X, P], X any, P vectorspace.Vector[P]] struct {
	layers []L
}

// NewSequential creates a Sequential over a copy of layers.
func NewSequential[L Layer[L, X, X, P], X any, P vectorspace.Vector[P]](layers ...L) Sequential[L, X, P] {
	return Sequential[L, X, P]{layers: append([]L(nil), layers...)}
}

// Forward applies all layers in sequence.
func (s Sequential[L, X, P]) Forward(x X) X {
	for _, l := range s.layers {
		x = l.Forward(x)
	}
	return x
}

// ValueWithPullback applies all layers in sequence, capturing each layer's
// pullback at its input.
func (s Sequential[L, X, P]) ValueWithPullback(x X) (X, func(X) (Tangents[P], X)) {
	y, pb := autodiff.Reduce(x, s.layers, func(partial X, l L) (X, func(X) (X, P)) {
		out, layerPB := l.ValueWithPullback(partial)
		return out, func(dy X) (X, P) {
			dp, dx := layerPB(dy)
			return dx, dp
		}
	})
	return y, func(dy X) (Tangents[P], X) {
		dx, tangents := pb(dy)
		if len(tangents) == 0 {
			return nil, dx
		}
		return Tangents[P](tangents), dx
	}
}

// Moved moves each layer along its element of direction.
// The empty direction leaves s unchanged.
func (s Sequential[L, X, P]) Moved(direction Tangents[P]) Sequential[L, X, P] {
	if len(direction) == 0 {
		return s
	}
	if len(direction) != len(s.layers) {
		panic(vectorspace.DimensionMismatch("move sequential", len(s.layers), len(direction)))
	}
	moved := make([]L, len(s.layers))
	for i, l := range s.layers {
		moved[i] = l.Moved(direction[i])
	}
	return Sequential[L, X, P]{layers: moved}
}

// Len returns the number of layers.
func (s Sequential[L, X, P]) Len() int {
	return len(s.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (s Sequential[L, X, P]) Layer(index int) L {
	if index < 0 || index >= len(s.layers) {
		panic(fmt.Sprintf("Sequential.Layer: index %d out of bounds [0, %d)", index, len(s.layers)))
	}
	return s.layers[index]
}

// Append returns a Sequential with layers added at the end.
func (s Sequential[L, X, P]) Append(layers ...L) Sequential[L, X, P] {
	out := make([]L, 0, len(s.layers)+len(layers))
	out = append(out, s.layers...)
	return Sequential[L, X, P]{layers: append(out, layers...)}
}

// Fields implements keypath.Iterable with one field "[i]" per layer.
func (s Sequential[L, X, P]) Fields() []keypath.Field {
	return keypath.Elements[L](s.layers).Fields()
}

// WithField implements keypath.Settable. value must be an L.
func (s Sequential[L, X, P]) WithField(name string, value any) (any, bool) {
	out, ok := keypath.Elements[L](s.layers).WithField(name, value)
	if !ok {
		return nil, false
	}
	return Sequential[L, X, P]{layers: out.(keypath.Elements[L])}, true
}

// String implements fmt.Stringer.
func (s Sequential[L, X, P]) String() string {
	parts := make([]string, len(s.layers))
	for i, l := range s.layers {
		parts[i] = fmt.Sprint(l)
	}
	return "Sequential(" + strings.Join(parts, " -> ") + ")"
}
