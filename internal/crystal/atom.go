package crystal

import (
	"fmt"
	"math"
)

// Atom is a site of the unit cell. Position is relative to the lattice
// vectors. Spin is nil for an atom without spin information.
type Atom struct {
	Name     string
	Position Vector
	Spin     *Vector
}

func NewAtom(name string, position Vector) Atom {
	return Atom{Name: name, Position: position}
}

// WithSpin returns a copy of a carrying the given spin vector.
func (a Atom) WithSpin(spin Vector) Atom {
	a.Spin = &spin
	return a
}

// HasSpin reports whether spin information is present.
func (a Atom) HasSpin() bool {
	return a.Spin != nil
}

// SpinValue returns the spin magnitude |S|.
func (a Atom) SpinValue() (float64, bool) {
	if a.Spin == nil {
		return 0, false
	}
	return a.Spin.Norm(), true
}

// Clone returns a copy that shares no memory with a.
func (a Atom) Clone() Atom {
	if a.Spin != nil {
		s := *a.Spin
		a.Spin = &s
	}
	return a
}

func (a Atom) String() string {
	if a.Spin == nil {
		return fmt.Sprintf("%s %v", a.Name, a.Position)
	}
	return fmt.Sprintf("%s %v S=%v", a.Name, a.Position, *a.Spin)
}

// SpinFromValue returns a spin of magnitude s along z.
func SpinFromValue(s float64) Vector {
	return Vector{0, 0, s}
}

// SpinFromAngles returns a spin of magnitude s with polar angle theta and
// azimuthal angle phi, both in degrees.
func SpinFromAngles(s, theta, phi float64) Vector {
	t := theta * math.Pi / 180
	p := phi * math.Pi / 180
	return Vector{
		s * math.Cos(p) * math.Sin(t),
		s * math.Sin(p) * math.Sin(t),
		s * math.Cos(t),
	}
}

// SpinAlong returns a spin of magnitude s along direction.
func SpinAlong(direction Vector, s float64) (Vector, error) {
	n := direction.Norm()
	if n == 0 {
		return Vector{}, ErrZeroDirection
	}
	if !direction.IsValid() {
		return Vector{}, ErrInvalidValue
	}
	return direction.Scale(s / n), nil
}
