package crystal

import "errors"

// Domain errors for geometry operations.
var (
	// ErrDegenerateCell indicates lattice vectors spanning zero volume.
	ErrDegenerateCell = errors.New("crystal: degenerate cell (zero volume)")

	// ErrInvalidValue indicates a NaN or Inf coordinate.
	ErrInvalidValue = errors.New("crystal: invalid value (NaN or Inf detected)")

	// ErrZeroDirection indicates a spin direction of zero length.
	ErrZeroDirection = errors.New("crystal: direction has zero length")
)
