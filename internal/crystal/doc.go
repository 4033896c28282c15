// Package crystal provides the geometry a spin Hamiltonian is built on:
//
//   - [Vector]: Cartesian or lattice-relative 3-vector
//   - [Translation]: integer lattice translation R selecting a periodic image
//   - [Cell]: unit cell, rows are the lattice vectors a, b, c
//   - [Atom]: named site with a relative position and an optional spin
//
// Coordinates follow the row-vector convention: an atom at relative
// position p in the image R sits at (p + R)·Cell in absolute coordinates.
package crystal
