package nn

import (
	"fmt"

	"github.com/born-ml/pullback/internal/erasure"
	"github.com/born-ml/pullback/internal/keypath"
	"github.com/born-ml/pullback/internal/vectorspace"
)

// layerBox is the type-erased interface over concreteLayer.
type layerBox[In, Out any] interface {
	base() any
	forward(x In) Out
	valueWithPullback(x In) (Out, func(Out) (erasure.AnyLayerTangent, In))
	moved(direction erasure.AnyLayerTangent) layerBox[In, Out]
	withField(name string, value any) (layerBox[In, Out], bool)
}

type concreteLayer[L Layer[L, In, Out, P], In, Out any, P vectorspace.Vector[P]] struct {
	layer L
}

func (c concreteLayer[L, In, Out, P]) base() any {
	return c.layer
}

func (c concreteLayer[L, In, Out, P]) forward(x In) Out {
	return c.layer.Forward(x)
}

func (c concreteLayer[L, In, Out, P]) valueWithPullback(x In) (Out, func(Out) (erasure.AnyLayerTangent, In)) {
	y, pb := c.layer.ValueWithPullback(x)
	return y, func(dy Out) (erasure.AnyLayerTangent, In) {
		dp, dx := pb(dy)
		return erasure.NewLayerTangent(dp), dx
	}
}

func (c concreteLayer[L, In, Out, P]) moved(direction erasure.AnyLayerTangent) layerBox[In, Out] {
	if direction.IsOpaqueZero() {
		return c
	}
	p := erasure.Downcast[P]("move layer", direction)
	return concreteLayer[L, In, Out, P]{layer: c.layer.Moved(p)}
}

func (c concreteLayer[L, In, Out, P]) withField(name string, value any) (layerBox[In, Out], bool) {
	settable, ok := any(c.layer).(keypath.Settable)
	if !ok {
		return nil, false
	}
	updated, ok := settable.WithField(name, value)
	if !ok {
		return nil, false
	}
	l, ok := updated.(L)
	if !ok {
		return nil, false
	}
	return concreteLayer[L, In, Out, P]{layer: l}, true
}

// AnyLayer is a type-erased layer from In to Out. Its parameter tangent is
// erasure.AnyLayerTangent, so layers with different parameter types can be
// composed in one Sequential.
//
// The zero value holds no layer; calling it panics with
// vectorspace.ErrUnsupportedOperation.
type AnyLayer[In, Out any] struct {
	box layerBox[In, Out]
}

// EraseLayer wraps l in an AnyLayer.
//
// The type arguments cannot be inferred from l and must be given:
//
//	nn.EraseLayer[nn.Dense, tensor.Vector, tensor.Vector, nn.DenseTangent](dense)
func EraseLayer[L Layer[L, In, Out, P], In, Out any, P vectorspace.Vector[P]](l L) AnyLayer[In, Out] {
	return AnyLayer[In, Out]{box: concreteLayer[L, In, Out, P]{layer: l}}
}

// UnboxLayer returns the layer held by a if its concrete type is exactly L.
func UnboxLayer[L, In, Out any](a AnyLayer[In, Out]) (L, bool) {
	l, ok := a.Base().(L)
	return l, ok
}

// Base returns the wrapped layer, or nil for the zero value.
func (a AnyLayer[In, Out]) Base() any {
	if a.box == nil {
		return nil
	}
	return a.box.base()
}

// Forward applies the wrapped layer.
func (a AnyLayer[In, Out]) Forward(x In) Out {
	return a.mustBox("forward").forward(x)
}

// ValueWithPullback applies the wrapped layer. The pullback returns the
// layer's parameter tangent boxed in an AnyLayerTangent.
func (a AnyLayer[In, Out]) ValueWithPullback(x In) (Out, func(Out) (erasure.AnyLayerTangent, In)) {
	return a.mustBox("value with pullback").valueWithPullback(x)
}

// Moved moves the wrapped layer along direction.
//
// The opaque zero leaves the layer unchanged; a direction holding a type
// other than the layer's parameter tangent panics with
// vectorspace.ErrTypeMismatch.
func (a AnyLayer[In, Out]) Moved(direction erasure.AnyLayerTangent) AnyLayer[In, Out] {
	if direction.IsOpaqueZero() {
		return a
	}
	return AnyLayer[In, Out]{box: a.mustBox("move layer").moved(direction)}
}

// Fields exposes the fields of the wrapped layer if it is keypath.Iterable.
func (a AnyLayer[In, Out]) Fields() []keypath.Field {
	if it, ok := a.Base().(keypath.Iterable); ok {
		return it.Fields()
	}
	return nil
}

// WithField implements keypath.Settable by replacing a field of the wrapped
// layer. It fails if the wrapped layer is not keypath.Settable.
func (a AnyLayer[In, Out]) WithField(name string, value any) (any, bool) {
	if a.box == nil {
		return nil, false
	}
	box, ok := a.box.withField(name, value)
	if !ok {
		return nil, false
	}
	return AnyLayer[In, Out]{box: box}, true
}

// String implements fmt.Stringer.
func (a AnyLayer[In, Out]) String() string {
	if a.box == nil {
		return "AnyLayer(<nil>)"
	}
	return fmt.Sprintf("AnyLayer(%v)", a.box.base())
}

func (a AnyLayer[In, Out]) mustBox(op string) layerBox[In, Out] {
	if a.box == nil {
		panic(vectorspace.Unsupported(op, vectorspace.TypeDescription("empty AnyLayer")))
	}
	return a.box
}
