package spinham

import (
	"fmt"
	"strings"

	"github.com/san-kum/spinlab/internal/exchange"
)

// Notation returns the full notation. It fails with ErrNotation unless all
// four fields have been set.
func (h *Hamiltonian) Notation() (Notation, error) {
	if h.set != allFields {
		for _, f := range []field{fieldDoubleCounting, fieldSpinNormalized, fieldExchangeFactor, fieldOnSiteFactor} {
			if h.set&f == 0 {
				return Notation{}, fmt.Errorf("%w: %s", ErrNotation, f)
			}
		}
	}
	return h.notation, nil
}

// NotationDefined reports whether every notation field is set.
func (h *Hamiltonian) NotationDefined() bool {
	return h.set == allFields
}

func (h *Hamiltonian) require(f field) error {
	if h.set&f == 0 {
		return fmt.Errorf("%w: %s", ErrNotation, f)
	}
	return nil
}

func (h *Hamiltonian) DoubleCounting() (bool, error) {
	if err := h.require(fieldDoubleCounting); err != nil {
		return false, err
	}
	return h.notation.DoubleCounting, nil
}

func (h *Hamiltonian) SpinNormalized() (bool, error) {
	if err := h.require(fieldSpinNormalized); err != nil {
		return false, err
	}
	return h.notation.SpinNormalized, nil
}

func (h *Hamiltonian) ExchangeFactor() (float64, error) {
	if err := h.require(fieldExchangeFactor); err != nil {
		return 0, err
	}
	return h.notation.ExchangeFactor, nil
}

func (h *Hamiltonian) OnSiteFactor() (float64, error) {
	if err := h.require(fieldOnSiteFactor); err != nil {
		return 0, err
	}
	return h.notation.OnSiteFactor, nil
}

// SetNotationPreset applies the named preset (see Presets).
func (h *Hamiltonian) SetNotationPreset(name string) error {
	n := GetPreset(name)
	if n == nil {
		return fmt.Errorf("%w: %q (available: %s)", ErrUnknownNotation, name, strings.Join(ListPresets(), ", "))
	}
	return h.SetNotation(*n)
}

// SetNotation converts the stored values to n. Fields are applied in the
// order double counting, spin normalization, exchange factor, on-site
// factor. All preconditions are checked first; on error nothing changes.
func (h *Hamiltonian) SetNotation(n Notation) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if h.set&fieldSpinNormalized != 0 && h.notation.SpinNormalized != n.SpinNormalized {
		if err := h.checkSpins(); err != nil {
			return err
		}
	}

	h.SetDoubleCounting(n.DoubleCounting)
	// preconditions hold, the setters below cannot fail
	_ = h.SetSpinNormalized(n.SpinNormalized)
	_ = h.SetExchangeFactor(n.ExchangeFactor)
	_ = h.SetOnSiteFactor(n.OnSiteFactor)
	return nil
}

// SetDoubleCounting switches between storing one or both directions of
// every bond. Turning it on halves each two-body tensor and adds the
// transposed mirror; turning it off keeps the first stored direction of
// each pair and doubles it. On the first assignment the bonds are only
// mirrored or deduplicated, never rescaled.
func (h *Hamiltonian) SetDoubleCounting(v bool) {
	if h.set&fieldDoubleCounting != 0 {
		if h.notation.DoubleCounting == v {
			return
		}
		if v {
			h.forEachTwoBody(func(_ BondKey, j *exchange.Tensor) *exchange.Tensor {
				return j.ScaleRatio(1, 2)
			})
			h.addMirrors()
		} else {
			for _, k := range h.dropMirrors() {
				h.bonds[k] = h.bonds[k].Scale(2)
			}
		}
	} else if v {
		h.addMirrors()
	} else {
		h.dropMirrors()
	}

	h.logger.Debug("double counting set", "value", v, "bonds", len(h.order))
	h.notation.DoubleCounting = v
	h.set |= fieldDoubleCounting
}

// SetSpinNormalized switches between values that include the product of
// spin magnitudes and values per unit spin. Every atom in a bond must
// carry a non-zero spin. The first assignment only records the value.
func (h *Hamiltonian) SetSpinNormalized(v bool) error {
	if h.set&fieldSpinNormalized != 0 {
		if h.notation.SpinNormalized == v {
			return nil
		}
		if err := h.checkSpins(); err != nil {
			return err
		}
		for _, k := range h.order {
			s1, s2 := h.spin(k.Atom1), h.spin(k.Atom2)
			if v {
				h.bonds[k] = h.bonds[k].ScaleRatio(s1*s2, 1)
			} else {
				h.bonds[k] = h.bonds[k].ScaleRatio(1, s1*s2)
			}
		}
	}

	h.logger.Debug("spin normalization set", "value", v)
	h.notation.SpinNormalized = v
	h.set |= fieldSpinNormalized
	return nil
}

// SetExchangeFactor rebases every two-body tensor to the new prefactor so
// that factor·J stays the same. The first assignment only records it.
func (h *Hamiltonian) SetExchangeFactor(f float64) error {
	if err := checkFactor("exchange", f); err != nil {
		return err
	}
	if h.set&fieldExchangeFactor != 0 && h.notation.ExchangeFactor != f {
		old := h.notation.ExchangeFactor
		h.forEachTwoBody(func(_ BondKey, j *exchange.Tensor) *exchange.Tensor {
			return j.ScaleRatio(old, f)
		})
		h.logger.Debug("exchange factor rebased", "from", old, "to", f)
	}
	h.notation.ExchangeFactor = f
	h.set |= fieldExchangeFactor
	return nil
}

// SetOnSiteFactor is SetExchangeFactor for on-site bonds.
func (h *Hamiltonian) SetOnSiteFactor(f float64) error {
	if err := checkFactor("on-site", f); err != nil {
		return err
	}
	if h.set&fieldOnSiteFactor != 0 && h.notation.OnSiteFactor != f {
		old := h.notation.OnSiteFactor
		for _, k := range h.order {
			if k.OnSite() {
				h.bonds[k] = h.bonds[k].ScaleRatio(old, f)
			}
		}
		h.logger.Debug("on-site factor rebased", "from", old, "to", f)
	}
	h.notation.OnSiteFactor = f
	h.set |= fieldOnSiteFactor
	return nil
}

func (h *Hamiltonian) forEachTwoBody(fn func(BondKey, *exchange.Tensor) *exchange.Tensor) {
	for _, k := range h.order {
		if !k.OnSite() {
			h.bonds[k] = fn(k, h.bonds[k])
		}
	}
}

// addMirrors stores Jᵀ under every missing mirror key. Existing mirrors are
// left as they are.
func (h *Hamiltonian) addMirrors() {
	keys := make([]BondKey, len(h.order))
	copy(keys, h.order)
	for _, k := range keys {
		if k.OnSite() {
			continue
		}
		m := k.Mirror()
		if existing, ok := h.bonds[m]; ok {
			if !existing.EqualApprox(h.bonds[k].Transpose(), 1e-12) {
				h.logger.Debug("mirror bond is not the transpose", "bond", k.String())
			}
			continue
		}
		h.put(m, h.bonds[k].Transpose())
	}
}

// dropMirrors removes the later-inserted direction of every pair and
// returns the keys that lost their mirror.
func (h *Hamiltonian) dropMirrors() []BondKey {
	kept := make(map[BondKey]bool, len(h.order))
	var paired []BondKey
	h.deleteWhere(func(k BondKey) bool {
		if !k.OnSite() && kept[k.Mirror()] {
			paired = append(paired, k.Mirror())
			return true
		}
		kept[k] = true
		return false
	})
	return paired
}

// checkSpins verifies every atom taking part in a bond has a non-zero spin.
func (h *Hamiltonian) checkSpins() error {
	for _, a := range h.MagneticAtoms() {
		s, ok := a.SpinValue()
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingSpin, a.Name)
		}
		if s == 0 {
			return fmt.Errorf("%w: %q has zero spin", ErrMissingSpin, a.Name)
		}
	}
	return nil
}

func (h *Hamiltonian) spin(name string) float64 {
	s, _ := h.atoms[h.atomIndex[name]].SpinValue()
	return s
}
