package spinham

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/spinlab/internal/crystal"
	"github.com/san-kum/spinlab/internal/exchange"
)

// Hamiltonian is a spin Hamiltonian: cell, atoms, bonds and the notation
// the bond values are written in.
type Hamiltonian struct {
	cell crystal.Cell

	atoms     []crystal.Atom
	atomIndex map[string]int

	bonds map[BondKey]*exchange.Tensor
	order []BondKey

	notation Notation
	set      field

	logger *slog.Logger
}

type Option func(*Hamiltonian)

// WithLogger sets the logger notation conversions are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hamiltonian) {
		if l != nil {
			h.logger = l
		}
	}
}

// New returns an empty Hamiltonian with the identity cell and no notation.
func New(opts ...Option) *Hamiltonian {
	h := &Hamiltonian{
		cell:      crystal.IdentityCell(),
		atomIndex: make(map[string]int),
		bonds:     make(map[BondKey]*exchange.Tensor),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Clone returns a deep copy.
func (h *Hamiltonian) Clone() *Hamiltonian {
	c := &Hamiltonian{
		cell:      h.cell,
		atoms:     make([]crystal.Atom, len(h.atoms)),
		atomIndex: make(map[string]int, len(h.atomIndex)),
		bonds:     make(map[BondKey]*exchange.Tensor, len(h.bonds)),
		order:     make([]BondKey, len(h.order)),
		notation:  h.notation,
		set:       h.set,
		logger:    h.logger,
	}
	for i, a := range h.atoms {
		c.atoms[i] = a.Clone()
	}
	for name, i := range h.atomIndex {
		c.atomIndex[name] = i
	}
	copy(c.order, h.order)
	for k, j := range h.bonds {
		c.bonds[k] = j.Clone()
	}
	return c
}

func (h *Hamiltonian) Cell() crystal.Cell {
	return h.cell
}

// SetCell replaces the unit cell. Atom positions are relative and are kept.
func (h *Hamiltonian) SetCell(c crystal.Cell) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	h.cell = c
	return nil
}

// AddAtom registers an atom. With relative=false the position is taken as
// absolute and converted with the current cell.
func (h *Hamiltonian) AddAtom(atom crystal.Atom, relative bool) error {
	if atom.Name == "" {
		return fmt.Errorf("%w: atom name is empty", ErrValidation)
	}
	if _, ok := h.atomIndex[atom.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, atom.Name)
	}
	if !atom.Position.IsValid() {
		return fmt.Errorf("%w: position of %q is not finite", ErrValidation, atom.Name)
	}
	if atom.Spin != nil && !atom.Spin.IsValid() {
		return fmt.Errorf("%w: spin of %q is not finite", ErrValidation, atom.Name)
	}

	atom = atom.Clone()
	if !relative {
		pos, err := h.cell.Relative(atom.Position)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
		atom.Position = pos
	}

	h.atomIndex[atom.Name] = len(h.atoms)
	h.atoms = append(h.atoms, atom)
	return nil
}

// GetAtom returns a copy of the named atom.
func (h *Hamiltonian) GetAtom(name string) (crystal.Atom, error) {
	i, ok := h.atomIndex[name]
	if !ok {
		return crystal.Atom{}, fmt.Errorf("%w: %q", ErrAtomNotFound, name)
	}
	return h.atoms[i].Clone(), nil
}

// HasAtom reports whether an atom with the given name is registered.
func (h *Hamiltonian) HasAtom(name string) bool {
	_, ok := h.atomIndex[name]
	return ok
}

// RemoveAtom removes the atom and every bond it takes part in.
func (h *Hamiltonian) RemoveAtom(name string) error {
	i, ok := h.atomIndex[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAtomNotFound, name)
	}

	h.atoms = append(h.atoms[:i], h.atoms[i+1:]...)
	delete(h.atomIndex, name)
	for j := i; j < len(h.atoms); j++ {
		h.atomIndex[h.atoms[j].Name] = j
	}

	removed := h.deleteWhere(func(k BondKey) bool {
		return k.Atom1 == name || k.Atom2 == name
	})
	h.logger.Debug("atom removed", "atom", name, "bonds_removed", removed)
	return nil
}

// Atoms returns copies of all atoms in insertion order.
func (h *Hamiltonian) Atoms() []crystal.Atom {
	out := make([]crystal.Atom, len(h.atoms))
	for i, a := range h.atoms {
		out[i] = a.Clone()
	}
	return out
}

// MagneticAtoms returns the atoms taking part in at least one bond, in
// insertion order.
func (h *Hamiltonian) MagneticAtoms() []crystal.Atom {
	used := make(map[string]bool, len(h.atoms))
	for _, k := range h.order {
		used[k.Atom1] = true
		used[k.Atom2] = true
	}
	var out []crystal.Atom
	for _, a := range h.atoms {
		if used[a.Name] {
			out = append(out, a.Clone())
		}
	}
	return out
}

// I returns the number of magnetic atoms in the unit cell.
func (h *Hamiltonian) I() int {
	return len(h.MagneticAtoms())
}
