// Package spinham provides the spin Hamiltonian container.
//
// A [Hamiltonian] owns a unit cell, an ordered set of atoms and a set of
// bonds. A bond is keyed by ([BondKey]) the two atom names and the lattice
// translation R of the second atom, and carries an [exchange.Tensor]. Keys
// are directional: (A, B, R) and (B, A, −R) are the two directions of the
// same physical bond.
//
// # Notation
//
// The numbers stored in a Hamiltonian only mean something together with the
// [Notation] they are written in:
//
//   - DoubleCounting: both directions of each bond are stored
//   - SpinNormalized: values include the product of spin magnitudes
//   - ExchangeFactor: numeric prefactor of the two-body sum
//   - OnSiteFactor: numeric prefactor of the on-site sum
//
// A fresh Hamiltonian has no notation. Bonds are then stored verbatim and
// reading a notation field fails with [ErrNotation]. Once a field is set,
// changing it rewrites the stored tensors so that the physical model stays
// the same:
//
//	h := spinham.New()
//	_ = h.AddAtom(crystal.NewAtom("Cr", crystal.Vector{}).WithSpin(crystal.SpinFromValue(1.5)), true)
//	_ = h.AddBond("Cr", "Cr", crystal.Translation{1, 0, 0}, exchange.Isotropic(1))
//	_ = h.SetNotationPreset("magnopy") // adds the mirror bond, values unchanged
//	_ = h.SetNotationPreset("TB2J")    // iso becomes -9/8
//
// Conversions validate every precondition before touching a tensor, so a
// failed conversion leaves the Hamiltonian unchanged.
//
// A Hamiltonian is NOT safe for concurrent use.
package spinham
