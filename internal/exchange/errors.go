package exchange

import (
	"errors"
	"fmt"
)

// Domain errors for tensor operations.
var (
	// ErrInvalidShape indicates a matrix or vector operand of the wrong size or
	// structure (e.g. a non-symmetric anisotropy).
	ErrInvalidShape = errors.New("exchange: invalid shape")

	// ErrOperandType indicates an arithmetic operand of an unsupported type.
	ErrOperandType = errors.New("exchange: unsupported operand type")

	// ErrZeroIsotropic indicates a relative quantity was requested for a tensor
	// with zero isotropic exchange.
	ErrZeroIsotropic = errors.New("exchange: isotropic exchange is zero")
)

// OperandError reports an arithmetic operation applied to operands it does
// not support.
type OperandError struct {
	Op    string
	Left  string
	Right string
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("exchange: unsupported operand type(s) for %s: '%s' and '%s'", e.Op, e.Left, e.Right)
}

func (e *OperandError) Unwrap() error {
	return ErrOperandType
}

func typeName(x any) string {
	switch x.(type) {
	case nil:
		return "nil"
	case *Tensor:
		return "Tensor"
	}
	return fmt.Sprintf("%T", x)
}

func shapeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidShape}, args...)...)
}
