package spinham

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Notation is the convention stored exchange values are expressed in.
type Notation struct {
	DoubleCounting bool    `yaml:"double_counting" json:"double_counting"`
	SpinNormalized bool    `yaml:"spin_normalized" json:"spin_normalized"`
	ExchangeFactor float64 `yaml:"exchange_factor" json:"exchange_factor"`
	OnSiteFactor   float64 `yaml:"on_site_factor" json:"on_site_factor"`
}

// Validate checks both factors are finite and non-zero.
func (n Notation) Validate() error {
	if err := checkFactor("exchange", n.ExchangeFactor); err != nil {
		return err
	}
	return checkFactor("on-site", n.OnSiteFactor)
}

func checkFactor(name string, f float64) error {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%s factor %g: %w", name, f, ErrInvalidFactor)
	}
	return nil
}

func (n Notation) String() string {
	return fmt.Sprintf("double counting: %t, spin normalized: %t, exchange factor: %g, on-site factor: %g",
		n.DoubleCounting, n.SpinNormalized, n.ExchangeFactor, n.OnSiteFactor)
}

// Formula renders the Hamiltonian the notation describes, e.g.
//
//	H = 0.5 Σ_{i,j} S_i·J_ij·S_j + 1 Σ_i S_i·A_i·S_i
func (n Notation) Formula() string {
	spin := "S"
	if n.SpinNormalized {
		spin = "ŝ"
	}
	pairs := "Σ_{i<j}"
	if n.DoubleCounting {
		pairs = "Σ_{i,j}"
	}
	return fmt.Sprintf("H = %g %s %s_i·J_ij·%s_j + %g Σ_i %s_i·A_i·%s_i",
		n.ExchangeFactor, pairs, spin, spin, n.OnSiteFactor, spin, spin)
}

// field is a bit in the set-mask of notation fields.
type field uint8

const (
	fieldDoubleCounting field = 1 << iota
	fieldSpinNormalized
	fieldExchangeFactor
	fieldOnSiteFactor

	allFields = fieldDoubleCounting | fieldSpinNormalized | fieldExchangeFactor | fieldOnSiteFactor
)

func (f field) String() string {
	switch f {
	case fieldDoubleCounting:
		return "double counting"
	case fieldSpinNormalized:
		return "spin normalization"
	case fieldExchangeFactor:
		return "exchange factor"
	case fieldOnSiteFactor:
		return "on-site factor"
	}
	return "notation"
}

// Presets are the notations of common codes.
var Presets = map[string]Notation{
	"magnopy": {DoubleCounting: true, SpinNormalized: false, ExchangeFactor: 0.5, OnSiteFactor: 1},
	"TB2J":    {DoubleCounting: true, SpinNormalized: true, ExchangeFactor: -1, OnSiteFactor: -1},
	"SpinW":   {DoubleCounting: true, SpinNormalized: false, ExchangeFactor: 1, OnSiteFactor: 1},
	"Vampire": {DoubleCounting: true, SpinNormalized: true, ExchangeFactor: -0.5, OnSiteFactor: -1},
}

// GetPreset returns the preset with the given name (case-insensitive), or
// nil if there is none.
func GetPreset(name string) *Notation {
	for key, n := range Presets {
		if strings.EqualFold(key, name) {
			return &n
		}
	}
	return nil
}

// ListPresets returns the preset names in alphabetical order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// PresetName returns the name of the preset equal to n, if any.
func PresetName(n Notation) (string, bool) {
	for _, name := range ListPresets() {
		if Presets[name] == n {
			return name, true
		}
	}
	return "", false
}
