package config

import (
	"fmt"
	"log/slog"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/spinlab/internal/crystal"
	"github.com/san-kum/spinlab/internal/exchange"
	"github.com/san-kum/spinlab/internal/spinham"
	"github.com/san-kum/spinlab/internal/units"
)

func isRelative(u string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(u)), "r")
}

// ToHamiltonian builds the model in the order cell, atoms, bonds, notation.
// Bonds are stored as written and the notation is applied last, so a
// document saved from a model with double counting loads unchanged.
func (d *Document) ToHamiltonian(opts ...spinham.Option) (*spinham.Hamiltonian, error) {
	h := spinham.New(opts...)

	cell, err := d.Cell.cell()
	if err != nil {
		return nil, err
	}
	if err := h.SetCell(cell); err != nil {
		return nil, err
	}

	relative := d.Atoms.Units == "" || isRelative(d.Atoms.Units)
	factor := 1.0
	if !relative {
		if factor, err = units.LengthFactor(d.Atoms.Units); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
	}
	for _, e := range d.Atoms.List {
		atom, err := e.atom(factor)
		if err != nil {
			return nil, err
		}
		if err := h.AddAtom(atom, relative); err != nil {
			return nil, err
		}
	}

	energy, err := units.EnergyFactor(d.Parameters.Units)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	for i, b := range d.Parameters.Bonds {
		j, err := b.tensor()
		if err != nil {
			return nil, fmt.Errorf("bond %d (%s-%s): %w", i, b.Atom1, b.Atom2, err)
		}
		r := crystal.Translation{b.R[0], b.R[1], b.R[2]}
		if err := h.AddBond(b.Atom1, b.Atom2, r, j.Scale(energy)); err != nil {
			return nil, fmt.Errorf("bond %d: %w", i, err)
		}
	}

	if d.Notation != nil {
		if err := d.Notation.apply(h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (c CellSection) cell() (crystal.Cell, error) {
	factor, err := units.LengthFactor(c.Units)
	if err != nil {
		return crystal.Cell{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if len(c.Vectors) != 3 {
		return crystal.Cell{}, fmt.Errorf("%w: cell needs three vectors", ErrInvalidDocument)
	}

	var cell crystal.Cell
	for i, v := range c.Vectors {
		if len(v) != 3 {
			return crystal.Cell{}, fmt.Errorf("%w: cell vector %d needs three components", ErrInvalidDocument, i)
		}
		s := factor
		switch len(c.Scale) {
		case 1:
			s *= c.Scale[0]
		case 3:
			s *= c.Scale[i]
		}
		cell[i] = crystal.Vector{v[0], v[1], v[2]}.Scale(s)
	}
	return cell, nil
}

func (e AtomEntry) atom(factor float64) (crystal.Atom, error) {
	if len(e.Position) != 3 {
		return crystal.Atom{}, fmt.Errorf("%w: atom %q needs three coordinates", ErrInvalidDocument, e.Name)
	}
	atom := crystal.NewAtom(e.Name, crystal.Vector{e.Position[0], e.Position[1], e.Position[2]}.Scale(factor))
	if e.Spin == nil {
		return atom, nil
	}
	spin, err := e.Spin.vector()
	if err != nil {
		return crystal.Atom{}, fmt.Errorf("atom %q: %w", e.Name, err)
	}
	return atom.WithSpin(spin), nil
}

func (s SpinEntry) vector() (crystal.Vector, error) {
	switch {
	case s.Vector != nil:
		return crystal.Vector{s.Vector[0], s.Vector[1], s.Vector[2]}, nil
	case s.Value == nil:
		return crystal.Vector{}, fmt.Errorf("%w: spin needs a vector or a value", ErrInvalidDocument)
	case s.Direction != nil:
		v, err := crystal.SpinAlong(crystal.Vector{s.Direction[0], s.Direction[1], s.Direction[2]}, *s.Value)
		if err != nil {
			return crystal.Vector{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		return v, nil
	case s.Theta != nil || s.Phi != nil:
		var theta, phi float64
		if s.Theta != nil {
			theta = *s.Theta
		}
		if s.Phi != nil {
			phi = *s.Phi
		}
		return crystal.SpinFromAngles(*s.Value, theta, phi), nil
	}
	return crystal.SpinFromValue(*s.Value), nil
}

func (b BondEntry) tensor() (*exchange.Tensor, error) {
	var opts []exchange.Option
	if b.Matrix != nil {
		m, err := dense(b.Matrix)
		if err != nil {
			return nil, err
		}
		opts = append(opts, exchange.WithMatrix(m))
	}
	if b.Iso != nil {
		opts = append(opts, exchange.WithIso(*b.Iso))
	}
	if b.Aniso != nil {
		m, err := dense(b.Aniso)
		if err != nil {
			return nil, err
		}
		opts = append(opts, exchange.WithAniso(m))
	}
	if b.DMI != nil {
		opts = append(opts, exchange.WithDMI(b.DMI...))
	}
	return exchange.NewTensor(opts...)
}

func dense(rows [][]float64) (*mat.Dense, error) {
	if len(rows) != 3 {
		return nil, fmt.Errorf("%w: expected 3x3 matrix", ErrInvalidDocument)
	}
	m := mat.NewDense(3, 3, nil)
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: expected 3x3 matrix", ErrInvalidDocument)
		}
		m.SetRow(i, row)
	}
	return m, nil
}

func (n NotationSection) apply(h *spinham.Hamiltonian) error {
	if n.Preset != "" {
		p := spinham.GetPreset(n.Preset)
		if p == nil {
			return fmt.Errorf("%w: %q", spinham.ErrUnknownNotation, n.Preset)
		}
		full := *p
		if n.DoubleCounting != nil {
			full.DoubleCounting = *n.DoubleCounting
		}
		if n.SpinNormalized != nil {
			full.SpinNormalized = *n.SpinNormalized
		}
		if n.ExchangeFactor != nil {
			full.ExchangeFactor = *n.ExchangeFactor
		}
		if n.OnSiteFactor != nil {
			full.OnSiteFactor = *n.OnSiteFactor
		}
		return h.SetNotation(full)
	}

	if n.DoubleCounting != nil {
		h.SetDoubleCounting(*n.DoubleCounting)
	}
	if n.SpinNormalized != nil {
		if err := h.SetSpinNormalized(*n.SpinNormalized); err != nil {
			return err
		}
	}
	if n.ExchangeFactor != nil {
		if err := h.SetExchangeFactor(*n.ExchangeFactor); err != nil {
			return err
		}
	}
	if n.OnSiteFactor != nil {
		if err := h.SetOnSiteFactor(*n.OnSiteFactor); err != nil {
			return err
		}
	}
	return nil
}

// FromHamiltonian writes the model with the cell in Å, atoms in relative
// coordinates, spins as vectors and every stored bond as a full matrix in
// meV. Notation fields that are not set are omitted.
func FromHamiltonian(h *spinham.Hamiltonian) *Document {
	doc := DefaultDocument()

	cell := h.Cell()
	doc.Cell.Vectors = make([][]float64, 3)
	for i, v := range cell {
		doc.Cell.Vectors[i] = []float64{v[0], v[1], v[2]}
	}

	for _, a := range h.Atoms() {
		e := AtomEntry{Name: a.Name, Position: []float64{a.Position[0], a.Position[1], a.Position[2]}}
		if a.Spin != nil {
			e.Spin = &SpinEntry{Vector: []float64{a.Spin[0], a.Spin[1], a.Spin[2]}}
		}
		doc.Atoms.List = append(doc.Atoms.List, e)
	}

	for b := range h.Bonds() {
		m := b.J.Matrix()
		doc.Parameters.Bonds = append(doc.Parameters.Bonds, BondEntry{
			Atom1: b.Atom1,
			Atom2: b.Atom2,
			R:     []int{b.R[0], b.R[1], b.R[2]},
			Matrix: [][]float64{
				m[0][:], m[1][:], m[2][:],
			},
		})
	}

	doc.Notation = notationSection(h)
	return doc
}

func notationSection(h *spinham.Hamiltonian) *NotationSection {
	if n, err := h.Notation(); err == nil {
		if name, ok := spinham.PresetName(n); ok {
			return &NotationSection{Preset: name}
		}
	}

	var s NotationSection
	set := false
	if v, err := h.DoubleCounting(); err == nil {
		s.DoubleCounting, set = &v, true
	}
	if v, err := h.SpinNormalized(); err == nil {
		s.SpinNormalized, set = &v, true
	}
	if v, err := h.ExchangeFactor(); err == nil {
		s.ExchangeFactor, set = &v, true
	}
	if v, err := h.OnSiteFactor(); err == nil {
		s.OnSiteFactor, set = &v, true
	}
	if !set {
		return nil
	}
	return &s
}

// LoadHamiltonian reads a document and builds the model from it.
func LoadHamiltonian(path string, logger *slog.Logger) (*spinham.Hamiltonian, error) {
	if logger == nil {
		logger = slog.Default()
	}
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	h, err := doc.ToHamiltonian(spinham.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Debug("model loaded", "path", path, "atoms", len(h.Atoms()), "bonds", h.Len())
	return h, nil
}

// SaveHamiltonian writes the model as a document.
func SaveHamiltonian(path string, h *spinham.Hamiltonian) error {
	return Save(path, FromHamiltonian(h))
}
