package exchange

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Add returns t + other.
func (t *Tensor) Add(other *Tensor) (*Tensor, error) {
	if other == nil {
		return nil, &OperandError{Op: "+", Left: "Tensor", Right: "nil"}
	}
	var d mat.Dense
	d.Add(t.raw(), other.raw())
	return fromDense(&d), nil
}

// Sub returns t − other.
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) {
	if other == nil {
		return nil, &OperandError{Op: "-", Left: "Tensor", Right: "nil"}
	}
	var d mat.Dense
	d.Sub(t.raw(), other.raw())
	return fromDense(&d), nil
}

// Scale returns f·t.
func (t *Tensor) Scale(f float64) *Tensor {
	var d mat.Dense
	d.Scale(f, t.raw())
	return fromDense(&d)
}

// ScaleRatio returns t·num/den, computed per entry as (x·num)/den so that a
// ratio and its inverse cancel as exactly as floating point allows.
func (t *Tensor) ScaleRatio(num, den float64) *Tensor {
	var d mat.Dense
	d.Apply(func(_, _ int, v float64) float64 { return v * num / den }, t.raw())
	return fromDense(&d)
}

// Mul multiplies element-wise by a scalar or a 3×3 operand (array, mat.Matrix
// or Tensor), operand on the right.
func (t *Tensor) Mul(operand any) (*Tensor, error) {
	return t.elementwise("*", operand, false, func(a, b float64) float64 { return a * b })
}

// RMul is Mul with the operand on the left.
func (t *Tensor) RMul(operand any) (*Tensor, error) {
	return t.elementwise("*", operand, true, func(a, b float64) float64 { return a * b })
}

// Div divides element-wise by a scalar or a 3×3 operand. Division by zero
// follows IEEE-754 (±Inf or NaN).
func (t *Tensor) Div(operand any) (*Tensor, error) {
	return t.elementwise("/", operand, false, func(a, b float64) float64 { return a / b })
}

// FloorDiv divides element-wise and rounds toward negative infinity.
func (t *Tensor) FloorDiv(operand any) (*Tensor, error) {
	return t.elementwise("//", operand, false, func(a, b float64) float64 { return math.Floor(a / b) })
}

// Mod returns the element-wise floored remainder; the result has the sign of
// the divisor.
func (t *Tensor) Mod(operand any) (*Tensor, error) {
	return t.elementwise("%", operand, false, flooredMod)
}

func flooredMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func (t *Tensor) elementwise(op string, operand any, left bool, fn func(a, b float64) float64) (*Tensor, error) {
	scalar, elems, ok := asOperand(operand)
	if !ok {
		if left {
			return nil, &OperandError{Op: op, Left: typeName(operand), Right: "Tensor"}
		}
		return nil, &OperandError{Op: op, Left: "Tensor", Right: typeName(operand)}
	}

	src := t.raw()
	out := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			b := scalar
			if elems != nil {
				b = elems.At(i, j)
			}
			if left {
				out.Set(i, j, fn(b, src.At(i, j)))
			} else {
				out.Set(i, j, fn(src.At(i, j), b))
			}
		}
	}
	return fromDense(out), nil
}

// asOperand accepts scalars and 3×3 matrices. For a scalar, elems is nil.
func asOperand(x any) (scalar float64, elems mat.Matrix, ok bool) {
	switch v := x.(type) {
	case float64:
		return v, nil, true
	case float32:
		return float64(v), nil, true
	case int:
		return float64(v), nil, true
	case int32:
		return float64(v), nil, true
	case int64:
		return float64(v), nil, true
	case [3][3]float64:
		return 0, denseOf(v), true
	case [][]float64:
		if d, err := denseOfSlices(v); err == nil {
			return 0, d, true
		}
	case *Tensor:
		if v != nil {
			return 0, v.raw(), true
		}
	case mat.Matrix:
		if r, c := v.Dims(); r == dim && c == dim {
			return 0, v, true
		}
	}
	return 0, nil, false
}

func denseOfSlices(rows [][]float64) (*mat.Dense, error) {
	if len(rows) != dim {
		return nil, shapeErrorf("expected 3 rows, got %d", len(rows))
	}
	d := mat.NewDense(dim, dim, nil)
	for i, row := range rows {
		if len(row) != dim {
			return nil, shapeErrorf("row %d has %d columns, expected 3", i, len(row))
		}
		d.SetRow(i, row)
	}
	return d, nil
}

// MatMul returns J·x for a 3-vector ([3]float64, []float64 or mat.Vector)
// or a 3×3 operand. The result is a plain matrix, not a Tensor.
func (t *Tensor) MatMul(operand any) (mat.Matrix, error) {
	if v, ok := asVector(operand); ok {
		var out mat.VecDense
		out.MulVec(t.raw(), v)
		return &out, nil
	}
	if _, m, ok := asOperand(operand); ok && m != nil {
		var out mat.Dense
		out.Mul(t.raw(), m)
		return &out, nil
	}
	return nil, &OperandError{Op: "@", Left: "Tensor", Right: typeName(operand)}
}

// RMatMul returns x·J for a 3-vector (treated as a row) or a 3×3 operand.
func (t *Tensor) RMatMul(operand any) (mat.Matrix, error) {
	if v, ok := asVector(operand); ok {
		var out mat.VecDense
		out.MulVec(t.raw().T(), v)
		return &out, nil
	}
	if _, m, ok := asOperand(operand); ok && m != nil {
		var out mat.Dense
		out.Mul(m, t.raw())
		return &out, nil
	}
	return nil, &OperandError{Op: "@", Left: typeName(operand), Right: "Tensor"}
}

func asVector(x any) (mat.Vector, bool) {
	switch v := x.(type) {
	case [3]float64:
		return mat.NewVecDense(dim, []float64{v[0], v[1], v[2]}), true
	case []float64:
		if len(v) == dim {
			return mat.NewVecDense(dim, append([]float64(nil), v...)), true
		}
	case mat.Vector:
		if v.Len() == dim {
			return v, true
		}
	}
	return nil, false
}

// Neg returns −t.
func (t *Tensor) Neg() *Tensor {
	return t.Scale(-1)
}

// Pos returns a copy of t.
func (t *Tensor) Pos() *Tensor {
	return t.Clone()
}

// Abs returns the element-wise absolute value.
func (t *Tensor) Abs() *Tensor {
	var d mat.Dense
	d.Apply(func(_, _ int, v float64) float64 { return math.Abs(v) }, t.raw())
	return fromDense(&d)
}

// Transpose returns Jᵀ. Iso and Aniso are preserved, DMI changes sign.
func (t *Tensor) Transpose() *Tensor {
	return fromDense(mat.DenseCopyOf(t.raw().T()))
}

// Equal reports exact element-wise equality. Use EqualApprox for results of
// floating-point arithmetic.
func (t *Tensor) Equal(other *Tensor) bool {
	if other == nil {
		return false
	}
	return mat.Equal(t.raw(), other.raw())
}

// EqualApprox reports element-wise equality within tol.
func (t *Tensor) EqualApprox(other *Tensor, tol float64) bool {
	if other == nil {
		return false
	}
	return mat.EqualApprox(t.raw(), other.raw(), tol)
}

// EqualMatrix compares the matrix with a 3×3 array-like operand exactly.
func (t *Tensor) EqualMatrix(other any) (bool, error) {
	if _, m, ok := asOperand(other); ok && m != nil {
		return mat.Equal(t.raw(), m), nil
	}
	return false, shapeErrorf("cannot compare Tensor with %s", typeName(other))
}

// String renders the matrix as three rows with four decimals.
func (t *Tensor) String() string {
	return t.Text("%.4f")
}

// Text renders the matrix as three rows, formatting each entry with format.
func (t *Tensor) Text(format string) string {
	m := t.raw()
	rows := make([]string, dim)
	for i := 0; i < dim; i++ {
		cells := make([]string, dim)
		for j := 0; j < dim; j++ {
			cells[j] = fmt.Sprintf(format, m.At(i, j))
		}
		rows[i] = strings.Join(cells, " ")
	}
	return strings.Join(rows, "\n")
}
