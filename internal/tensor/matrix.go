package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/pullback/internal/vectorspace"
)

// Matrix is a dense row-major float64 matrix.
//
// The zero value is the empty matrix, the additive identity of every shape.
type Matrix struct {
	dense *mat.Dense
}

// NewMatrix creates a rows×cols matrix holding a copy of data (row-major).
// Panics if len(data) != rows*cols or either dimension is not positive.
func NewMatrix(rows, cols int, data []float64) Matrix {
	if err := (Shape{rows, cols}).Validate(); err != nil {
		panic(err)
	}
	if len(data) != rows*cols {
		panic(vectorspace.DimensionMismatch("new matrix", rows*cols, len(data)))
	}
	return Matrix{dense: mat.NewDense(rows, cols, append([]float64(nil), data...))}
}

// Zeros creates a rows×cols matrix of zeros.
func Zeros(rows, cols int) Matrix {
	return NewMatrix(rows, cols, make([]float64, rows*cols))
}

// Outer returns the outer product a·bᵀ.
// The result is empty if either operand is empty.
func Outer(a, b Vector) Matrix {
	if a.IsEmpty() || b.IsEmpty() {
		return Matrix{}
	}
	dst := mat.NewDense(a.Len(), b.Len(), nil)
	dst.Outer(1, mat.NewVecDense(a.Len(), a.data), mat.NewVecDense(b.Len(), b.data))
	return Matrix{dense: dst}
}

// IsEmpty reports whether m is the empty (identity) matrix.
func (m Matrix) IsEmpty() bool {
	return m.dense == nil
}

// Dims returns the number of rows and columns (0, 0 when empty).
func (m Matrix) Dims() (rows, cols int) {
	if m.IsEmpty() {
		return 0, 0
	}
	return m.dense.Dims()
}

// Shape returns [rows, cols], or the empty shape.
func (m Matrix) Shape() Shape {
	if m.IsEmpty() {
		return Shape{}
	}
	r, c := m.dense.Dims()
	return Shape{r, c}
}

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) float64 {
	return m.dense.At(i, j)
}

// Values returns a row-major copy of the elements.
func (m Matrix) Values() []float64 {
	if m.IsEmpty() {
		return nil
	}
	r, c := m.dense.Dims()
	out := make([]float64, 0, r*c)
	for i := range r {
		out = append(out, m.dense.RawRowView(i)...)
	}
	return out
}

// Zero returns the empty matrix.
func (Matrix) Zero() Matrix {
	return Matrix{}
}

// Add returns m + other. If either side is empty the other is returned
// as is.
func (m Matrix) Add(other Matrix) Matrix {
	if other.IsEmpty() {
		return m
	}
	if m.IsEmpty() {
		return other
	}
	m.checkShape("add", other)
	var dst mat.Dense
	dst.Add(m.dense, other.dense)
	return Matrix{dense: &dst}
}

// Sub returns m - other.
func (m Matrix) Sub(other Matrix) Matrix {
	if other.IsEmpty() {
		return m
	}
	if m.IsEmpty() {
		return other.Scale(-1)
	}
	m.checkShape("subtract", other)
	var dst mat.Dense
	dst.Sub(m.dense, other.dense)
	return Matrix{dense: &dst}
}

// Scale returns m * factor.
func (m Matrix) Scale(factor float64) Matrix {
	if m.IsEmpty() {
		return m
	}
	var dst mat.Dense
	dst.Scale(factor, m.dense)
	return Matrix{dense: &dst}
}

// MulElem returns the element-wise product of m and other.
func (m Matrix) MulElem(other Matrix) Matrix {
	if m.IsEmpty() || other.IsEmpty() {
		return Matrix{}
	}
	m.checkShape("multiply", other)
	var dst mat.Dense
	dst.MulElem(m.dense, other.dense)
	return Matrix{dense: &dst}
}

// Equal reports whether m and other hold the same elements.
// The empty matrix equals any all-zero matrix.
func (m Matrix) Equal(other Matrix) bool {
	switch {
	case m.IsEmpty() && other.IsEmpty():
		return true
	case m.IsEmpty():
		return other.isAllZero()
	case other.IsEmpty():
		return m.isAllZero()
	default:
		return mat.Equal(m.dense, other.dense)
	}
}

// EqualApprox reports whether m and other are element-wise within tol.
// Non-empty matrices of different shapes are never equal.
func (m Matrix) EqualApprox(other Matrix, tol float64) bool {
	if m.IsEmpty() || other.IsEmpty() {
		return m.Sub(other).Norm() <= tol
	}
	if r, c := m.Dims(); !other.Shape().Equal(Shape{r, c}) {
		return false
	}
	return mat.EqualApprox(m.dense, other.dense, tol)
}

// Moved returns m + direction.
func (m Matrix) Moved(direction Matrix) Matrix {
	return m.Add(direction)
}

// MulVec returns m·v. Returns the empty vector if m or v is empty.
func (m Matrix) MulVec(v Vector) Vector {
	if m.IsEmpty() || v.IsEmpty() {
		return Vector{}
	}
	r, c := m.dense.Dims()
	if c != v.Len() {
		panic(vectorspace.DimensionMismatch("matrix-vector product", c, v.Len()))
	}
	dst := mat.NewVecDense(r, nil)
	dst.MulVec(m.dense, mat.NewVecDense(v.Len(), v.data))
	return Vector{data: dst.RawVector().Data}
}

// TMulVec returns mᵀ·v. Returns the empty vector if m or v is empty.
func (m Matrix) TMulVec(v Vector) Vector {
	if m.IsEmpty() || v.IsEmpty() {
		return Vector{}
	}
	r, c := m.dense.Dims()
	if r != v.Len() {
		panic(vectorspace.DimensionMismatch("transposed matrix-vector product", r, v.Len()))
	}
	dst := mat.NewVecDense(c, nil)
	dst.MulVec(m.dense.T(), mat.NewVecDense(v.Len(), v.data))
	return Vector{data: dst.RawVector().Data}
}

// Norm returns the Frobenius norm.
func (m Matrix) Norm() float64 {
	if m.IsEmpty() {
		return 0
	}
	return mat.Norm(m.dense, 2)
}

// Sum returns the sum of the elements.
func (m Matrix) Sum() float64 {
	if m.IsEmpty() {
		return 0
	}
	return mat.Sum(m.dense)
}

// String implements fmt.Stringer.
func (m Matrix) String() string {
	if m.IsEmpty() {
		return "[]"
	}
	return fmt.Sprintf("%v", mat.Formatted(m.dense, mat.Squeeze()))
}

func (m Matrix) isAllZero() bool {
	for _, x := range m.Values() {
		if x != 0 {
			return false
		}
	}
	return true
}

func (m Matrix) checkShape(op string, other Matrix) {
	r1, c1 := m.dense.Dims()
	r2, c2 := other.dense.Dims()
	if r1 != r2 || c1 != c2 {
		panic(vectorspace.DimensionMismatch(op, r1*c1, r2*c2))
	}
}
