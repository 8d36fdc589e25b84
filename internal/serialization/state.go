package serialization

import (
	"fmt"

	"github.com/born-ml/pullback/internal/keypath"
	"github.com/born-ml/pullback/internal/scalar"
	"github.com/born-ml/pullback/internal/tensor"
)

// Tensor is a named parameter in row-major float64 layout.
type Tensor struct {
	Shape tensor.Shape
	Data  []float64
}

// Vector returns t as a tensor.Vector. t must be one-dimensional.
func (t Tensor) Vector() (tensor.Vector, error) {
	if len(t.Shape) != 1 {
		return tensor.Vector{}, &ValidationError{Kind: ErrShapeMismatch, Details: fmt.Sprintf("want 1 dimension, got %v", t.Shape)}
	}
	return tensor.NewVector(t.Data...), nil
}

// Matrix returns t as a tensor.Matrix. t must be two-dimensional.
func (t Tensor) Matrix() (tensor.Matrix, error) {
	if len(t.Shape) != 2 {
		return tensor.Matrix{}, &ValidationError{Kind: ErrShapeMismatch, Details: fmt.Sprintf("want 2 dimensions, got %v", t.Shape)}
	}
	if t.Shape[0] == 0 || t.Shape[1] == 0 {
		return tensor.Matrix{}, nil
	}
	return tensor.NewMatrix(t.Shape[0], t.Shape[1], t.Data), nil
}

// StateDict collects the numeric parameters of model, keyed by key path.
//
// Leaves are tensor.Vector, tensor.Matrix, scalar.Float64 and
// scalar.Float32 values. Scalars are stored with an empty shape.
func StateDict(model keypath.Iterable) map[string]Tensor {
	dict := make(map[string]Tensor)
	for _, m := range keypath.RecursiveMatching[any](model) {
		name := m.Path.String()
		switch v := m.Value.(type) {
		case tensor.Vector:
			dict[name] = Tensor{Shape: tensor.Shape{v.Len()}, Data: v.Values()}
		case tensor.Matrix:
			rows, cols := v.Dims()
			dict[name] = Tensor{Shape: tensor.Shape{rows, cols}, Data: v.Values()}
		case scalar.Float64:
			dict[name] = Tensor{Shape: tensor.Shape{}, Data: []float64{float64(v)}}
		case scalar.Float32:
			dict[name] = Tensor{Shape: tensor.Shape{}, Data: []float64{float64(v)}}
		}
	}
	return dict
}

// LoadStateDict returns a copy of model with every parameter StateDict
// would report replaced by the tensor of the same name in dict.
//
// Shapes must match the model's current parameters. Every parameter must
// be present in dict and every tensor in dict must name a parameter. The
// model must be writable along each parameter path (see keypath.Settable).
// model itself is not modified.
func LoadStateDict[M keypath.Iterable](model M, dict map[string]Tensor) (M, error) {
	used := make(map[string]bool, len(dict))
	out := model
	for _, m := range keypath.RecursiveMatching[any](model) {
		name := m.Path.String()
		value, ok, err := restore(name, m.Value, dict)
		if err != nil {
			return model, err
		}
		if !ok {
			continue
		}
		used[name] = true

		out, ok = keypath.Set(out, m.Path, value)
		if !ok {
			return model, &ValidationError{Kind: ErrParameterMismatch, Tensor: name, Details: "path is not writable"}
		}
	}

	for name := range dict {
		if !used[name] {
			return model, &ValidationError{Kind: ErrUnexpectedParameter, Tensor: name, Details: "no such parameter in model"}
		}
	}
	return out, nil
}

// restore converts the tensor named name to the type of current. It reports
// false for values that are not parameters.
func restore(name string, current any, dict map[string]Tensor) (any, bool, error) {
	var want tensor.Shape
	switch v := current.(type) {
	case tensor.Vector:
		want = tensor.Shape{v.Len()}
	case tensor.Matrix:
		rows, cols := v.Dims()
		want = tensor.Shape{rows, cols}
	case scalar.Float64, scalar.Float32:
		want = tensor.Shape{}
	default:
		return nil, false, nil
	}

	t, ok := dict[name]
	if !ok {
		return nil, false, &ValidationError{Kind: ErrMissingParameter, Tensor: name, Details: fmt.Sprintf("want shape %v", want)}
	}
	if !want.Equal(t.Shape) || elements(t.Shape) != len(t.Data) {
		return nil, false, &ValidationError{
			Kind:    ErrParameterMismatch,
			Tensor:  name,
			Details: fmt.Sprintf("want shape %v, got %v with %d values", want, t.Shape, len(t.Data)),
		}
	}

	switch current.(type) {
	case tensor.Vector:
		v, err := t.Vector()
		return v, true, err
	case tensor.Matrix:
		m, err := t.Matrix()
		return m, true, err
	case scalar.Float64:
		return scalar.Float64(t.Data[0]), true, nil
	default:
		return scalar.Float32(t.Data[0]), true, nil
	}
}

// elements returns the number of values in shape. A scalar has one.
func elements(shape []int) int {
	n := 1
	for _, dim := range shape {
		n *= dim
	}
	return n
}
