package spinham

import "errors"

// Error kinds. Every error returned by this package matches one of them
// with errors.Is.
var (
	// ErrValidation indicates malformed input: bad factors, cells, positions.
	ErrValidation = errors.New("spinham: invalid value")

	// ErrNotFound indicates an unknown atom name or an unstored bond key.
	ErrNotFound = errors.New("spinham: not found")

	// ErrNotation indicates a notation field was read before it was set.
	ErrNotation = errors.New("spinham: notation is not defined")

	// ErrDuplicateName indicates an atom name that is already registered.
	ErrDuplicateName = errors.New("spinham: duplicate atom name")
)

// Specific errors, each wrapping one of the kinds above.
var (
	ErrAtomNotFound    error = &kindError{msg: "spinham: atom not found", kind: ErrNotFound}
	ErrBondNotFound    error = &kindError{msg: "spinham: bond not found", kind: ErrNotFound}
	ErrMissingSpin     error = &kindError{msg: "spinham: atom has no spin", kind: ErrValidation}
	ErrUnknownNotation error = &kindError{msg: "spinham: unknown notation", kind: ErrValidation}
	ErrInvalidFactor   error = &kindError{msg: "spinham: factor must be finite and non-zero", kind: ErrValidation}
)

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() error {
	return e.kind
}
