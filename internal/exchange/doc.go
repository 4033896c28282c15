// Package exchange provides the exchange-coupling tensor of a spin bond.
//
// A [Tensor] owns one 3×3 real matrix J. Every other view is derived from it:
//
//   - Iso: isotropic part, Tr(J)/3
//   - Aniso: traceless symmetric part, (J+Jᵀ)/2 − Iso·I
//   - DMI: Dzyaloshinskii–Moriya vector taken from the antisymmetric part (J−Jᵀ)/2
//
// so that J == Iso·I + Aniso + DMIMatrix at all times.
//
// The three parts are independent degrees of freedom. [Tensor.SetIso],
// [Tensor.SetAniso] and [Tensor.SetDMI] replace one part and leave the other
// two untouched:
//
//	j := exchange.Isotropic(1)
//	_ = j.SetDMI([]float64{0, 0, 0.2}) // iso is still 1
//
// # Arithmetic
//
// Arithmetic is exposed as named operations ([Tensor.Add], [Tensor.Mul],
// [Tensor.MatMul], ...). Each returns a new Tensor and never shares storage
// with its operands. Operands of an unsupported type are reported with an
// [*OperandError] naming both operand types.
//
// Tensor implements [mat.Matrix], so gonum routines accept it directly.
package exchange
