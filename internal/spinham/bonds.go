package spinham

import (
	"fmt"
	"iter"

	"github.com/san-kum/spinlab/internal/crystal"
	"github.com/san-kum/spinlab/internal/exchange"
)

// BondKey identifies one direction of a bond: Atom1 in the origin cell and
// Atom2 in the cell translated by R.
type BondKey struct {
	Atom1 string
	Atom2 string
	R     crystal.Translation
}

// Mirror returns the key of the opposite direction, (Atom2, Atom1, −R).
func (k BondKey) Mirror() BondKey {
	return BondKey{Atom1: k.Atom2, Atom2: k.Atom1, R: k.R.Neg()}
}

// OnSite reports whether the key couples an atom with itself in the same
// cell. Such a key is its own mirror.
func (k BondKey) OnSite() bool {
	return k.Atom1 == k.Atom2 && k.R.IsZero()
}

func (k BondKey) String() string {
	return fmt.Sprintf("%s-%s %v", k.Atom1, k.Atom2, k.R)
}

// Bond is a stored directional record.
type Bond struct {
	BondKey
	J *exchange.Tensor
}

// AddBond stores j under (atom1, atom2, R), replacing any previous value.
// With double counting on, the mirror key receives jᵀ; with it off, an
// existing mirror is removed. Without notation the key alone is written.
func (h *Hamiltonian) AddBond(atom1, atom2 string, r crystal.Translation, j *exchange.Tensor) error {
	if j == nil {
		return fmt.Errorf("%w: nil exchange tensor", ErrValidation)
	}
	for _, name := range []string{atom1, atom2} {
		if !h.HasAtom(name) {
			return fmt.Errorf("%w: %q", ErrAtomNotFound, name)
		}
	}

	key := BondKey{Atom1: atom1, Atom2: atom2, R: r}
	h.put(key, j.Clone())

	if h.set&fieldDoubleCounting == 0 || key.OnSite() {
		return nil
	}
	mirror := key.Mirror()
	if h.notation.DoubleCounting {
		h.put(mirror, j.Transpose())
	} else if _, ok := h.bonds[mirror]; ok {
		h.deleteWhere(func(k BondKey) bool { return k == mirror })
	}
	return nil
}

// RemoveBond removes the bond at the exact key and, with double counting on,
// its mirror.
func (h *Hamiltonian) RemoveBond(atom1, atom2 string, r crystal.Translation) error {
	key := BondKey{Atom1: atom1, Atom2: atom2, R: r}
	if _, ok := h.bonds[key]; !ok {
		return fmt.Errorf("%w: %v", ErrBondNotFound, key)
	}
	mirror := key.Mirror()
	both := h.set&fieldDoubleCounting != 0 && h.notation.DoubleCounting
	h.deleteWhere(func(k BondKey) bool {
		return k == key || (both && k == mirror)
	})
	return nil
}

// Contains reports whether the exact directional key is stored.
func (h *Hamiltonian) Contains(atom1, atom2 string, r crystal.Translation) bool {
	_, ok := h.bonds[BondKey{Atom1: atom1, Atom2: atom2, R: r}]
	return ok
}

// Bond returns a copy of the tensor stored at the exact key.
func (h *Hamiltonian) Bond(atom1, atom2 string, r crystal.Translation) (*exchange.Tensor, error) {
	key := BondKey{Atom1: atom1, Atom2: atom2, R: r}
	j, ok := h.bonds[key]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBondNotFound, key)
	}
	return j.Clone(), nil
}

// Len returns the number of stored directional records.
func (h *Hamiltonian) Len() int {
	return len(h.order)
}

// Bonds yields every stored record in insertion order. Each call starts a
// new pass over a snapshot of the keys; tensors are copies.
func (h *Hamiltonian) Bonds() iter.Seq[Bond] {
	keys := make([]BondKey, len(h.order))
	copy(keys, h.order)
	return func(yield func(Bond) bool) {
		for _, k := range keys {
			j, ok := h.bonds[k]
			if !ok {
				continue
			}
			if !yield(Bond{BondKey: k, J: j.Clone()}) {
				return
			}
		}
	}
}

// TotalIso returns the sum of the isotropic parts of all stored records.
func (h *Hamiltonian) TotalIso() float64 {
	var sum float64
	for _, k := range h.order {
		sum += h.bonds[k].Iso()
	}
	return sum
}

func (h *Hamiltonian) put(k BondKey, j *exchange.Tensor) {
	if _, ok := h.bonds[k]; !ok {
		h.order = append(h.order, k)
	}
	h.bonds[k] = j
}

// deleteWhere drops every record whose key matches and returns the count.
func (h *Hamiltonian) deleteWhere(match func(BondKey) bool) int {
	kept := h.order[:0]
	removed := 0
	for _, k := range h.order {
		if match(k) {
			delete(h.bonds, k)
			removed++
			continue
		}
		kept = append(kept, k)
	}
	h.order = kept
	return removed
}
