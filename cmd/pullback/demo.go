package main

import (
	"fmt"

	"github.com/born-ml/pullback/autodiff"
	"github.com/born-ml/pullback/keypath"
	"github.com/born-ml/pullback/nn"
	"github.com/born-ml/pullback/tensor"
)

type f32 = autodiff.Float32

// inner and outer form the nested parameter container {a, b: {c}}.
type inner struct{ c f32 }

func (v inner) Fields() []keypath.Field {
	return []keypath.Field{{Name: "c", Value: v.c}}
}

type outer struct {
	a f32
	b inner
}

func (v outer) Fields() []keypath.Field {
	return []keypath.Field{{Name: "a", Value: v.a}, {Name: "b", Value: v.b}}
}

func runDemo() {
	fmt.Println("== Composition ==")
	var squareFn autodiff.Function[f32, f32] = func(x f32) (f32, autodiff.Pullback[f32, f32]) {
		y, pb := autodiff.MulVJP(x, x)
		return y, func(v f32) f32 {
			dx1, dx2 := pb(v)
			return dx1 + dx2
		}
	}
	square := nn.NewLambda("square", squareFn)
	double := nn.NewLambda[f32]("double", func(x f32) (f32, autodiff.Pullback[f32, f32]) {
		y, pb := autodiff.AddVJP(x, x)
		return y, func(v f32) f32 {
			dx1, dx2 := pb(v)
			return dx1 + dx2
		}
	})

	type scalarLayer = nn.AnyLayer[f32, f32]
	model := nn.NewSequential[scalarLayer, f32, autodiff.AnyLayerTangent](
		nn.EraseLayer[nn.Lambda[f32], f32, f32, autodiff.Empty](square),
		nn.EraseLayer[nn.Lambda[f32], f32, f32, autodiff.Empty](double),
	)
	y, pb := model.ValueWithPullback(10)
	grads, dx := pb(1)
	fmt.Printf("%v at 10 = %v, input tangent %v, %d parameter tangents\n", model, y, dx, len(grads))

	empty := nn.NewSequential[scalarLayer, f32, autodiff.AnyLayerTangent]()
	y, pb = empty.ValueWithPullback(10)
	grads, dx = pb(1)
	fmt.Printf("empty composition at 10 = %v, input tangent %v, %d parameter tangents\n", y, dx, len(grads))

	fmt.Println("\n== Gradients ==")
	fmt.Printf("gradient(x -> x) at 3 = %v\n", autodiff.Gradient(autodiff.Identity[f32](), 3))
	fmt.Printf("gradient(x -> x*x) at 10 = %v\n", autodiff.Gradient(squareFn, 10))

	fmt.Println("\n== Reflection ==")
	value := outer{a: 1, b: inner{c: 2}}
	for _, p := range keypath.Recursive(value) {
		v, _ := p.Get(value)
		fmt.Printf("  %-4s %v\n", p, v)
	}
	for _, m := range keypath.Matching[f32](value) {
		fmt.Printf("  Float32 field: %s = %v\n", m.Path, m.Value)
	}

	dense := nn.NewDense(nn.DenseConfig{In: 3, Out: 2, Activation: nn.Tanh})
	for _, m := range keypath.RecursiveMatching[tensor.Matrix](dense) {
		fmt.Printf("  matrix %s with shape %v\n", m.Path, m.Value.Shape())
	}

	fmt.Println("\n== Type erasure ==")
	var acc autodiff.AnyLayerTangent
	fmt.Printf("opaque zero: %v\n", acc)
	acc = acc.Add(autodiff.NewLayerTangent(f32(2)))
	fmt.Printf("after adding Float32(2): %v\n", acc)

	err := autodiff.Recover(func() {
		acc.Add(autodiff.NewLayerTangent(autodiff.Float64(1)))
	})
	fmt.Printf("adding Float64(1): %v\n", err)
}
