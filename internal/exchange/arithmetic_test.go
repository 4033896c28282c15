package exchange

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAddSub(t *testing.T) {
	a := FromArray(sample)
	b := Isotropic(1)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, sum.Iso(), tol)
	assertVecNear(t, a.DMI(), sum.DMI())

	diff, err := sum.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(a))

	assert.InDelta(t, 5.0, a.Iso(), tol, "operands are not mutated")
}

func TestAddRejectsNil(t *testing.T) {
	_, err := Zero().Add(nil)
	var opErr *OperandError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "+", opErr.Op)
	assert.ErrorIs(t, err, ErrOperandType)

	_, err = Zero().Sub(nil)
	assert.ErrorIs(t, err, ErrOperandType)
}

func TestElementwiseScalars(t *testing.T) {
	a := FromArray(sample)

	tests := []struct {
		name string
		fn   func(any) (*Tensor, error)
		arg  any
		want [3][3]float64
	}{
		{"mul float", a.Mul, 2.0, [3][3]float64{{2, 4, 6}, {8, 10, 12}, {14, 16, 18}}},
		{"mul int", a.Mul, 2, [3][3]float64{{2, 4, 6}, {8, 10, 12}, {14, 16, 18}}},
		{"rmul", a.RMul, float32(-1), [3][3]float64{{-1, -2, -3}, {-4, -5, -6}, {-7, -8, -9}}},
		{"div", a.Div, 2.0, [3][3]float64{{0.5, 1, 1.5}, {2, 2.5, 3}, {3.5, 4, 4.5}}},
		{"floordiv", a.FloorDiv, 2, [3][3]float64{{0, 1, 1}, {2, 2, 3}, {3, 4, 4}}},
		{"floordiv negative", a.FloorDiv, -2, [3][3]float64{{-1, -1, -2}, {-2, -3, -3}, {-4, -4, -5}}},
		{"mod", a.Mod, 4, [3][3]float64{{1, 2, 3}, {0, 1, 2}, {3, 0, 1}}},
		{"mod negative", a.Mod, int64(-4), [3][3]float64{{-3, -2, -1}, {0, -3, -2}, {-1, 0, -3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.arg)
			require.NoError(t, err)
			assertArrayNear(t, tt.want, got.Matrix())
		})
	}
}

func TestElementwiseArrays(t *testing.T) {
	a := FromArray(sample)
	ones := [3][3]float64{{1, 1, 1}, {2, 2, 2}, {1, 1, 1}}
	want := [3][3]float64{{1, 2, 3}, {8, 10, 12}, {7, 8, 9}}

	for name, operand := range map[string]any{
		"array":  ones,
		"slices": [][]float64{{1, 1, 1}, {2, 2, 2}, {1, 1, 1}},
		"dense":  denseOf(ones),
		"tensor": FromArray(ones),
	} {
		got, err := a.Mul(operand)
		require.NoError(t, err, name)
		assert.Equal(t, want, got.Matrix(), name)
	}
}

func TestElementwiseRejectsUnsupported(t *testing.T) {
	a := Zero()

	_, err := a.Mul("two")
	var opErr *OperandError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "exchange: unsupported operand type(s) for *: 'Tensor' and 'string'", err.Error())

	_, err = a.RMul([]int{1})
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "[]int", opErr.Left)
	assert.Equal(t, "Tensor", opErr.Right)

	_, err = a.Div([][]float64{{1, 2}})
	assert.ErrorIs(t, err, ErrOperandType)

	_, err = a.Mod(mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, ErrOperandType)

	var nilTensor *Tensor
	_, err = a.FloorDiv(nilTensor)
	assert.ErrorIs(t, err, ErrOperandType)
}

func TestDivByZeroFollowsIEEE(t *testing.T) {
	got, err := Isotropic(1).Div(0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.At(0, 0), 1))
	assert.True(t, math.IsNaN(got.At(0, 1)))
}

func TestUnaryOps(t *testing.T) {
	a := FromArray([3][3]float64{{-1, 2, -3}, {4, -5, 6}, {-7, 8, -9}})

	assert.Equal(t, [3][3]float64{{1, -2, 3}, {-4, 5, -6}, {7, -8, 9}}, a.Neg().Matrix())
	assert.Equal(t, [3][3]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, a.Abs().Matrix())
	assert.True(t, a.Pos().Equal(a))
	assert.NotSame(t, a, a.Pos())
	assert.Equal(t, [3][3]float64{{-1, 4, -7}, {2, -5, 8}, {-3, 6, -9}}, a.Transpose().Matrix())
	assert.Equal(t, [3][3]float64{{-0.5, 1, -1.5}, {2, -2.5, 3}, {-3.5, 4, -4.5}}, a.Scale(0.5).Matrix())
}

func TestMatMul(t *testing.T) {
	a := FromArray(sample)

	v, err := a.MatMul([3]float64{1, 0, -1})
	require.NoError(t, err)
	vec := v.(*mat.VecDense)
	assert.Equal(t, []float64{-2, -2, -2}, vec.RawVector().Data)

	v, err = a.RMatMul([]float64{1, 0, -1})
	require.NoError(t, err)
	vec = v.(*mat.VecDense)
	assert.Equal(t, []float64{-6, -6, -6}, vec.RawVector().Data)

	id := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	m, err := a.MatMul(id)
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, denseOf(sample)))

	m, err = a.RMatMul(a)
	require.NoError(t, err)
	assert.Equal(t, 30.0, m.At(0, 0))

	_, err = a.MatMul([]float64{1, 2})
	assert.ErrorIs(t, err, ErrOperandType)
	_, err = a.RMatMul(3.0)
	assert.ErrorIs(t, err, ErrOperandType)
}

func TestEquality(t *testing.T) {
	a := FromArray(sample)

	assert.True(t, a.Equal(FromArray(sample)))
	assert.False(t, a.Equal(Isotropic(5)))
	assert.False(t, a.Equal(nil))

	ok, err := a.EqualMatrix(sample)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.EqualMatrix([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 0}})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = a.EqualMatrix([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidShape)

	b := a.Scale(1 + 1e-15)
	assert.True(t, a.EqualApprox(b, 1e-12))
}
