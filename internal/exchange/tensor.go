package exchange

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const dim = 3

// Tensor is a 3×3 exchange-coupling tensor.
//
// The zero value is a zero tensor ready for use. A Tensor is not safe for
// concurrent mutation.
type Tensor struct {
	m *mat.Dense
}

// Option configures a Tensor built by NewTensor.
type Option func(*options)

type options struct {
	matrix mat.Matrix
	iso    *float64
	aniso  mat.Matrix
	dmi    []float64
}

// WithMatrix sets the full exchange matrix.
func WithMatrix(m mat.Matrix) Option {
	return func(o *options) { o.matrix = m }
}

// WithArray sets the full exchange matrix from a plain array.
func WithArray(a [3][3]float64) Option {
	return WithMatrix(denseOf(a))
}

// WithIso replaces the isotropic part.
func WithIso(iso float64) Option {
	return func(o *options) { o.iso = &iso }
}

// WithAniso replaces the symmetric anisotropic part.
func WithAniso(a mat.Matrix) Option {
	return func(o *options) { o.aniso = a }
}

// WithDMI replaces the Dzyaloshinskii–Moriya vector.
func WithDMI(d ...float64) Option {
	return func(o *options) { o.dmi = d }
}

// NewTensor builds a tensor starting from zero. The matrix is applied first,
// then iso, aniso and dmi, independent of the order the options are given in;
// each later part replaces only its own component of the matrix.
func NewTensor(opts ...Option) (*Tensor, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	t := Zero()
	if o.matrix != nil {
		if err := t.SetMatrix(o.matrix); err != nil {
			return nil, err
		}
	}
	if o.iso != nil {
		t.SetIso(*o.iso)
	}
	if o.aniso != nil {
		if err := t.SetAniso(o.aniso); err != nil {
			return nil, err
		}
	}
	if o.dmi != nil {
		if err := t.SetDMI(o.dmi); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Zero returns a zero tensor.
func Zero() *Tensor {
	return &Tensor{m: mat.NewDense(dim, dim, nil)}
}

// Isotropic returns iso·I.
func Isotropic(iso float64) *Tensor {
	t := Zero()
	t.SetIso(iso)
	return t
}

// FromArray returns a tensor with the given matrix.
func FromArray(a [3][3]float64) *Tensor {
	return &Tensor{m: denseOf(a)}
}

func fromDense(d *mat.Dense) *Tensor {
	return &Tensor{m: d}
}

func denseOf(a [3][3]float64) *mat.Dense {
	d := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		d.SetRow(i, a[i][:])
	}
	return d
}

func arrayOf(m mat.Matrix) [3][3]float64 {
	var a [3][3]float64
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			a[i][j] = m.At(i, j)
		}
	}
	return a
}

func (t *Tensor) raw() *mat.Dense {
	if t.m == nil {
		t.m = mat.NewDense(dim, dim, nil)
	}
	return t.m
}

// Dims, At and T make Tensor a mat.Matrix.

func (t *Tensor) Dims() (r, c int) { return dim, dim }

func (t *Tensor) At(i, j int) float64 { return t.raw().At(i, j) }

func (t *Tensor) T() mat.Matrix { return mat.Transpose{Matrix: t} }

// SetAt overwrites a single matrix entry, e.g. SetAt(0, 1, v) sets Jxy.
func (t *Tensor) SetAt(i, j int, v float64) {
	t.raw().Set(i, j, v)
}

// Clone returns an independent copy.
func (t *Tensor) Clone() *Tensor {
	return fromDense(mat.DenseCopyOf(t.raw()))
}

// Matrix returns the full exchange matrix.
func (t *Tensor) Matrix() [3][3]float64 {
	return arrayOf(t.raw())
}

// Dense returns a copy of the full exchange matrix.
func (t *Tensor) Dense() *mat.Dense {
	return mat.DenseCopyOf(t.raw())
}

// SetMatrix replaces the full matrix; all three parts change together.
func (t *Tensor) SetMatrix(m mat.Matrix) error {
	if m == nil {
		return shapeErrorf("matrix is nil")
	}
	if r, c := m.Dims(); r != dim || c != dim {
		return shapeErrorf("matrix has to be 3x3, got %dx%d", r, c)
	}
	t.m = mat.DenseCopyOf(m)
	return nil
}

// Symmetric returns (J+Jᵀ)/2.
func (t *Tensor) Symmetric() [3][3]float64 {
	return arrayOf(t.symmetric())
}

func (t *Tensor) symmetric() *mat.Dense {
	var s mat.Dense
	s.Add(t.raw(), t.raw().T())
	s.Scale(0.5, &s)
	return &s
}

// Antisymmetric returns (J−Jᵀ)/2, which equals DMIMatrix.
func (t *Tensor) Antisymmetric() [3][3]float64 {
	return arrayOf(t.antisymmetric())
}

func (t *Tensor) antisymmetric() *mat.Dense {
	var a mat.Dense
	a.Sub(t.raw(), t.raw().T())
	a.Scale(0.5, &a)
	return &a
}

// Iso returns the isotropic exchange Tr(J)/3.
func (t *Tensor) Iso() float64 {
	return mat.Trace(t.symmetric()) / dim
}

// IsoMatrix returns Iso·I.
func (t *Tensor) IsoMatrix() [3][3]float64 {
	iso := t.Iso()
	return [3][3]float64{{iso, 0, 0}, {0, iso, 0}, {0, 0, iso}}
}

// SetIso replaces the isotropic part: J ← J + (iso − Iso)·I.
func (t *Tensor) SetIso(iso float64) {
	delta := iso - t.Iso()
	m := t.raw()
	for i := 0; i < dim; i++ {
		m.Set(i, i, m.At(i, i)+delta)
	}
}

// Aniso returns the traceless symmetric anisotropic part.
func (t *Tensor) Aniso() [3][3]float64 {
	return arrayOf(t.aniso())
}

func (t *Tensor) aniso() *mat.Dense {
	s := t.symmetric()
	iso := mat.Trace(s) / dim
	for i := 0; i < dim; i++ {
		s.Set(i, i, s.At(i, i)-iso)
	}
	return s
}

// AnisoDiagonal returns the diagonal of Aniso.
func (t *Tensor) AnisoDiagonal() [3]float64 {
	a := t.aniso()
	return [3]float64{a.At(0, 0), a.At(1, 1), a.At(2, 2)}
}

// AnisoDiagonalMatrix returns Aniso with off-diagonal entries zeroed.
func (t *Tensor) AnisoDiagonalMatrix() [3][3]float64 {
	d := t.AnisoDiagonal()
	return [3][3]float64{{d[0], 0, 0}, {0, d[1], 0}, {0, 0, d[2]}}
}

// SetAniso replaces the symmetric anisotropic part: J ← J + (a − Aniso).
//
// a must be 3×3, symmetric and traceless; otherwise the replacement would
// leak into the isotropic or DMI part and ErrInvalidShape is returned.
func (t *Tensor) SetAniso(a mat.Matrix) error {
	if a == nil {
		return shapeErrorf("aniso is nil")
	}
	if r, c := a.Dims(); r != dim || c != dim {
		return shapeErrorf("aniso has to be 3x3, got %dx%d", r, c)
	}
	tol := anisoTolerance(a)
	for i := 0; i < dim; i++ {
		for j := i + 1; j < dim; j++ {
			if math.Abs(a.At(i, j)-a.At(j, i)) > tol {
				return shapeErrorf("aniso is not symmetric at (%d,%d)", i, j)
			}
		}
	}
	if tr := a.At(0, 0) + a.At(1, 1) + a.At(2, 2); math.Abs(tr) > tol {
		return shapeErrorf("aniso is not traceless (trace %g)", tr)
	}

	var delta mat.Dense
	delta.Sub(a, t.aniso())
	t.raw().Add(t.raw(), &delta)
	return nil
}

func anisoTolerance(a mat.Matrix) float64 {
	scale := 1.0
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			scale = math.Max(scale, math.Abs(a.At(i, j)))
		}
	}
	return 1e-10 * scale
}

// DMI returns the Dzyaloshinskii–Moriya vector (Dx, Dy, Dz).
func (t *Tensor) DMI() [3]float64 {
	a := t.antisymmetric()
	return [3]float64{a.At(1, 2), a.At(2, 0), a.At(0, 1)}
}

// DMIMatrix returns the antisymmetric part in matrix form:
//
//	[[0, Dz, -Dy],
//	 [-Dz, 0, Dx],
//	 [Dy, -Dx, 0]]
func (t *Tensor) DMIMatrix() [3][3]float64 {
	return arrayOf(t.antisymmetric())
}

// SetDMI replaces the DMI part. d must have exactly three components.
func (t *Tensor) SetDMI(d []float64) error {
	if len(d) != dim {
		return shapeErrorf("dmi has to be a 3 component vector, got %d", len(d))
	}
	cur := t.DMI()
	dx, dy, dz := d[0]-cur[0], d[1]-cur[1], d[2]-cur[2]
	t.raw().Add(t.raw(), dmiDense(dx, dy, dz))
	return nil
}

func dmiDense(dx, dy, dz float64) *mat.Dense {
	return mat.NewDense(dim, dim, []float64{
		0, dz, -dy,
		-dz, 0, dx,
		dy, -dx, 0,
	})
}

// DMIModule returns the length of the DMI vector.
func (t *Tensor) DMIModule() float64 {
	d := t.DMI()
	return floats.Norm(d[:], 2)
}

// RelDMI returns |DMI| / |Iso|. It fails with ErrZeroIsotropic when Iso is 0.
func (t *Tensor) RelDMI() (float64, error) {
	iso := t.Iso()
	if iso == 0 {
		return 0, ErrZeroIsotropic
	}
	return t.DMIModule() / math.Abs(iso), nil
}
