package crystal

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type Vector [3]float64

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	return floats.Norm(v[:], 2)
}

func (v Vector) Add(other Vector) Vector {
	return Vector{v[0] + other[0], v[1] + other[1], v[2] + other[2]}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{v[0] - other[0], v[1] - other[1], v[2] - other[2]}
}

func (v Vector) Scale(factor float64) Vector {
	return Vector{v[0] * factor, v[1] * factor, v[2] * factor}
}

func (v Vector) Dot(other Vector) float64 {
	return floats.Dot(v[:], other[:])
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}

// Translation is a lattice translation in units of the lattice vectors.
type Translation [3]int

func (r Translation) Neg() Translation {
	return Translation{-r[0], -r[1], -r[2]}
}

func (r Translation) IsZero() bool {
	return r == Translation{}
}

func (r Translation) Vector() Vector {
	return Vector{float64(r[0]), float64(r[1]), float64(r[2])}
}

func (r Translation) String() string {
	return fmt.Sprintf("(%d, %d, %d)", r[0], r[1], r[2])
}

// Cell holds the lattice vectors a, b, c as rows.
type Cell [3]Vector

// IdentityCell returns the unit cube.
func IdentityCell() Cell {
	return Cell{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func (c Cell) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		c[0][0], c[0][1], c[0][2],
		c[1][0], c[1][1], c[1][2],
		c[2][0], c[2][1], c[2][2],
	})
}

// Volume returns the signed cell volume a·(b×c).
func (c Cell) Volume() float64 {
	return mat.Det(c.dense())
}

// Validate checks that every entry is finite and the cell has non-zero volume.
func (c Cell) Validate() error {
	for i, row := range c {
		if !row.IsValid() {
			return fmt.Errorf("lattice vector %d: %w", i, ErrInvalidValue)
		}
	}
	if c.Volume() == 0 {
		return ErrDegenerateCell
	}
	return nil
}

// Absolute converts relative coordinates to absolute ones: rel·Cell.
func (c Cell) Absolute(rel Vector) Vector {
	var out Vector
	for j := 0; j < 3; j++ {
		out[j] = rel[0]*c[0][j] + rel[1]*c[1][j] + rel[2]*c[2][j]
	}
	return out
}

// Relative converts absolute coordinates to relative ones by solving
// rel·Cell = abs.
func (c Cell) Relative(abs Vector) (Vector, error) {
	if err := c.Validate(); err != nil {
		return Vector{}, err
	}
	var x mat.VecDense
	err := x.SolveVec(c.dense().T(), mat.NewVecDense(3, []float64{abs[0], abs[1], abs[2]}))
	var cond mat.Condition
	if err != nil && !errors.As(err, &cond) {
		return Vector{}, fmt.Errorf("%w: %v", ErrDegenerateCell, err)
	}
	return Vector{x.AtVec(0), x.AtVec(1), x.AtVec(2)}, nil
}
