package spinham

import (
	"fmt"
	"math"

	"github.com/san-kum/spinlab/internal/crystal"
)

// AtomCoordinates returns the position of the named atom in the cell
// translated by r, relative or absolute.
func (h *Hamiltonian) AtomCoordinates(name string, r crystal.Translation, relative bool) (crystal.Vector, error) {
	i, ok := h.atomIndex[name]
	if !ok {
		return crystal.Vector{}, fmt.Errorf("%w: %q", ErrAtomNotFound, name)
	}
	pos := h.atoms[i].Position.Add(r.Vector())
	if relative {
		return pos, nil
	}
	return h.cell.Absolute(pos), nil
}

// Vector returns the absolute bond vector from atom1 in the origin cell to
// atom2 in the cell translated by r.
func (h *Hamiltonian) Vector(atom1, atom2 string, r crystal.Translation) (crystal.Vector, error) {
	from, err := h.AtomCoordinates(atom1, crystal.Translation{}, false)
	if err != nil {
		return crystal.Vector{}, err
	}
	to, err := h.AtomCoordinates(atom2, r, false)
	if err != nil {
		return crystal.Vector{}, err
	}
	return to.Sub(from), nil
}

// Distance returns the length of Vector.
func (h *Hamiltonian) Distance(atom1, atom2 string, r crystal.Translation) (float64, error) {
	v, err := h.Vector(atom1, atom2, r)
	if err != nil {
		return 0, err
	}
	return v.Norm(), nil
}

type filterOptions struct {
	min float64
	max float64
}

type FilterOption func(*filterOptions)

// WithMinDistance drops bonds shorter than d.
func WithMinDistance(d float64) FilterOption {
	return func(o *filterOptions) { o.min = d }
}

// WithMaxDistance drops bonds longer than d.
func WithMaxDistance(d float64) FilterOption {
	return func(o *filterOptions) { o.max = d }
}

// Filtered returns a copy holding only the bonds with min ≤ length ≤ max.
// Atoms, cell and notation are copied unchanged.
func (h *Hamiltonian) Filtered(opts ...FilterOption) (*Hamiltonian, error) {
	o := filterOptions{min: math.Inf(-1), max: math.Inf(1)}
	for _, opt := range opts {
		opt(&o)
	}
	if math.IsNaN(o.min) || math.IsNaN(o.max) {
		return nil, fmt.Errorf("%w: NaN distance bound", ErrValidation)
	}
	if o.min > o.max {
		return nil, fmt.Errorf("%w: min distance %g exceeds max distance %g", ErrValidation, o.min, o.max)
	}

	out := h.Clone()
	var err error
	out.deleteWhere(func(k BondKey) bool {
		d, derr := h.Distance(k.Atom1, k.Atom2, k.R)
		if derr != nil {
			err = derr
			return true
		}
		return d < o.min || d > o.max
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
