// Package units holds the conversion factors to the internal units:
// Ångström for lengths and meV for energies.
package units

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Angstrom = 1.0
	Bohr     = 0.529177210903

	MilliElectronVolt = 1.0
	ElectronVolt      = 1e3
	Kelvin            = 0.08617333262
	Joule             = 6.241509074e21
	Rydberg           = 13605.693122994
)

var ErrUnknownUnit = errors.New("units: unknown unit")

// LengthFactor returns the factor converting the named length unit to Å.
// Only the first letter counts: "a…" is Ångström, "b…" is Bohr. An empty
// name means Ångström.
func LengthFactor(name string) (float64, error) {
	switch key(name) {
	case "", "a":
		return Angstrom, nil
	case "b":
		return Bohr, nil
	}
	return 0, fmt.Errorf("%w: length %q", ErrUnknownUnit, name)
}

// EnergyFactor returns the factor converting the named energy unit to meV.
// Matching is by first letter: m(eV), e(V), k(elvin), j(oule), r(ydberg).
// An empty name means meV.
func EnergyFactor(name string) (float64, error) {
	switch key(name) {
	case "", "m":
		return MilliElectronVolt, nil
	case "e":
		return ElectronVolt, nil
	case "k":
		return Kelvin, nil
	case "j":
		return Joule, nil
	case "r":
		return Rydberg, nil
	}
	return 0, fmt.Errorf("%w: energy %q", ErrUnknownUnit, name)
}

func key(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	return name[:1]
}
