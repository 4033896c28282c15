package config

import "sort"

func ptr[T any](v T) *T { return &v }

// Presets are example models, one constructor per name so every call gets
// an independent document.
var Presets = map[string]func() *Document{
	"cr-chain": func() *Document {
		return &Document{
			Cell: CellSection{Units: "angstrom", Vectors: [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}},
			Atoms: AtomsSection{Units: "relative", List: []AtomEntry{
				{Name: "Cr", Position: []float64{0, 0, 0}, Spin: &SpinEntry{Value: ptr(1.5)}},
			}},
			Notation: &NotationSection{Preset: "magnopy"},
			Parameters: ParametersSection{Units: "meV", Bonds: []BondEntry{
				{Atom1: "Cr", Atom2: "Cr", R: []int{1, 0, 0}, Iso: ptr(1.0)},
				{Atom1: "Cr", Atom2: "Cr", R: []int{-1, 0, 0}, Iso: ptr(1.0)},
			}},
		}
	},
	"square-afm": func() *Document {
		return &Document{
			Cell: CellSection{Units: "angstrom", Scale: []float64{3.5}, Vectors: [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 4}}},
			Atoms: AtomsSection{Units: "relative", List: []AtomEntry{
				{Name: "Cr1", Position: []float64{0.25, 0.25, 0}, Spin: &SpinEntry{Value: ptr(1.5), Theta: ptr(0.0)}},
				{Name: "Cr2", Position: []float64{0.75, 0.75, 0}, Spin: &SpinEntry{Value: ptr(1.5), Theta: ptr(180.0)}},
			}},
			Notation: &NotationSection{Preset: "SpinW"},
			Parameters: ParametersSection{Units: "meV", Bonds: []BondEntry{
				{Atom1: "Cr1", Atom2: "Cr2", R: []int{0, 0, 0}, Iso: ptr(2.0), DMI: []float64{0, 0, 0.1}},
				{Atom1: "Cr1", Atom2: "Cr1", R: []int{1, 0, 0}, Iso: ptr(-0.5)},
				{Atom1: "Cr2", Atom2: "Cr2", R: []int{1, 0, 0}, Iso: ptr(-0.5)},
				{Atom1: "Cr1", Atom2: "Cr1", R: []int{0, 1, 0}, Iso: ptr(-0.5)},
				{Atom1: "Cr2", Atom2: "Cr2", R: []int{0, 1, 0}, Iso: ptr(-0.5)},
			}},
		}
	},
	"fe-cubic": func() *Document {
		return &Document{
			Cell: CellSection{Units: "angstrom", Scale: []float64{2.87}, Vectors: [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}},
			Atoms: AtomsSection{Units: "relative", List: []AtomEntry{
				{Name: "Fe", Position: []float64{0, 0, 0}, Spin: &SpinEntry{Direction: []float64{0, 0, 1}, Value: ptr(1.1)}},
			}},
			Notation: &NotationSection{Preset: "TB2J"},
			Parameters: ParametersSection{Units: "meV", Bonds: []BondEntry{
				{Atom1: "Fe", Atom2: "Fe", R: []int{0, 0, 0}, Aniso: [][]float64{{-0.01, 0, 0}, {0, -0.01, 0}, {0, 0, 0.02}}},
				{Atom1: "Fe", Atom2: "Fe", R: []int{1, 0, 0}, Iso: ptr(19.5)},
				{Atom1: "Fe", Atom2: "Fe", R: []int{0, 1, 0}, Iso: ptr(19.5)},
				{Atom1: "Fe", Atom2: "Fe", R: []int{0, 0, 1}, Iso: ptr(19.5)},
			}},
		}
	},
}

// GetPreset returns a fresh copy of the named example, or nil.
func GetPreset(name string) *Document {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
