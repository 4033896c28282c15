package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/spinlab/internal/units"
)

var ErrInvalidDocument = errors.New("config: invalid model document")

// Document is the YAML form of a spin Hamiltonian.
type Document struct {
	Cell       CellSection       `yaml:"cell"`
	Atoms      AtomsSection      `yaml:"atoms"`
	Notation   *NotationSection  `yaml:"notation,omitempty"`
	Parameters ParametersSection `yaml:"parameters"`
}

type CellSection struct {
	Units   string      `yaml:"units,omitempty" validate:"omitempty,lengthunit"`
	Scale   []float64   `yaml:"scale,omitempty,flow" validate:"omitempty,max=3,dive,gt=0"`
	Vectors [][]float64 `yaml:"vectors" validate:"required,len=3,dive,len=3"`
}

type AtomsSection struct {
	// relative, or a length unit for absolute positions
	Units string      `yaml:"units,omitempty" validate:"omitempty,positionunit"`
	List  []AtomEntry `yaml:"list" validate:"dive"`
}

type AtomEntry struct {
	Name     string     `yaml:"name" validate:"required"`
	Position []float64  `yaml:"position,flow" validate:"len=3"`
	Spin     *SpinEntry `yaml:"spin,omitempty"`
}

// SpinEntry accepts one of: a vector; a value (along z); a value with theta
// and phi in degrees; a value with a direction.
type SpinEntry struct {
	Vector    []float64 `yaml:"vector,omitempty,flow" validate:"omitempty,len=3"`
	Value     *float64  `yaml:"value,omitempty" validate:"omitempty,gte=0"`
	Theta     *float64  `yaml:"theta,omitempty"`
	Phi       *float64  `yaml:"phi,omitempty"`
	Direction []float64 `yaml:"direction,omitempty,flow" validate:"omitempty,len=3"`
}

// NotationSection names a preset, sets fields explicitly, or both; explicit
// fields override the preset.
type NotationSection struct {
	Preset         string   `yaml:"preset,omitempty"`
	DoubleCounting *bool    `yaml:"double_counting,omitempty"`
	SpinNormalized *bool    `yaml:"spin_normalized,omitempty"`
	ExchangeFactor *float64 `yaml:"exchange_factor,omitempty" validate:"omitempty,ne=0"`
	OnSiteFactor   *float64 `yaml:"on_site_factor,omitempty" validate:"omitempty,ne=0"`
}

type ParametersSection struct {
	Units string      `yaml:"units,omitempty" validate:"omitempty,energyunit"`
	Bonds []BondEntry `yaml:"bonds" validate:"dive"`
}

// BondEntry builds a tensor the way exchange.NewTensor does: matrix first,
// then iso, aniso and dmi.
type BondEntry struct {
	Atom1  string      `yaml:"atom1" validate:"required"`
	Atom2  string      `yaml:"atom2" validate:"required"`
	R      []int       `yaml:"R,flow" validate:"len=3"`
	Iso    *float64    `yaml:"iso,omitempty"`
	Matrix [][]float64 `yaml:"matrix,omitempty" validate:"omitempty,len=3,dive,len=3"`
	Aniso  [][]float64 `yaml:"aniso,omitempty" validate:"omitempty,len=3,dive,len=3"`
	DMI    []float64   `yaml:"dmi,omitempty,flow" validate:"omitempty,len=3"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("lengthunit", func(fl validator.FieldLevel) bool {
		_, err := units.LengthFactor(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("positionunit", func(fl validator.FieldLevel) bool {
		if isRelative(fl.Field().String()) {
			return true
		}
		_, err := units.LengthFactor(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("energyunit", func(fl validator.FieldLevel) bool {
		_, err := units.EnergyFactor(fl.Field().String())
		return err == nil
	})
}

// DefaultDocument returns an empty model in the identity cell.
func DefaultDocument() *Document {
	return &Document{
		Cell: CellSection{
			Units:   "angstrom",
			Vectors: [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		},
		Atoms:      AtomsSection{Units: "relative"},
		Parameters: ParametersSection{Units: "meV"},
	}
}

// Validate checks the struct tags and the constraints they cannot express.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if len(d.Cell.Scale) == 2 {
		return fmt.Errorf("%w: cell scale needs one or three values", ErrInvalidDocument)
	}
	seen := make(map[string]bool, len(d.Atoms.List))
	for _, a := range d.Atoms.List {
		if seen[a.Name] {
			return fmt.Errorf("%w: duplicate atom %q", ErrInvalidDocument, a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

// Parse decodes and validates a document.
func Parse(data []byte) (*Document, error) {
	doc := DefaultDocument()
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Save(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Encode writes doc to w as YAML.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
