package config

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/spinlab/internal/spinham"
)

type ExportData struct {
	Notation *spinham.Notation `json:"notation,omitempty"`
	Atoms    []ExportAtom      `json:"atoms"`
	Bonds    []ExportBond      `json:"bonds"`
	TotalIso float64           `json:"total_iso"`
}

type ExportAtom struct {
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
	Spin     *float64   `json:"spin,omitempty"`
}

type ExportBond struct {
	Atom1    string        `json:"atom1"`
	Atom2    string        `json:"atom2"`
	R        [3]int        `json:"R"`
	Distance float64       `json:"distance"`
	Iso      float64       `json:"iso"`
	DMI      [3]float64    `json:"dmi"`
	Matrix   [3][3]float64 `json:"matrix"`
}

// NewExportData collects the bond table of h.
func NewExportData(h *spinham.Hamiltonian) (*ExportData, error) {
	data := &ExportData{TotalIso: h.TotalIso()}
	if n, err := h.Notation(); err == nil {
		data.Notation = &n
	}

	for _, a := range h.Atoms() {
		e := ExportAtom{Name: a.Name, Position: a.Position}
		if s, ok := a.SpinValue(); ok {
			e.Spin = &s
		}
		data.Atoms = append(data.Atoms, e)
	}

	for b := range h.Bonds() {
		d, err := h.Distance(b.Atom1, b.Atom2, b.R)
		if err != nil {
			return nil, err
		}
		data.Bonds = append(data.Bonds, ExportBond{
			Atom1:    b.Atom1,
			Atom2:    b.Atom2,
			R:        b.R,
			Distance: d,
			Iso:      b.J.Iso(),
			DMI:      b.J.DMI(),
			Matrix:   b.J.Matrix(),
		})
	}
	return data, nil
}

// WriteJSON writes the bond table of h to w as indented JSON.
func WriteJSON(w io.Writer, h *spinham.Hamiltonian) error {
	data, err := NewExportData(h)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, h *spinham.Hamiltonian) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, h)
}

// WriteCSV writes one row per stored bond: names, R, distance, iso, DMI and
// the nine matrix entries in row-major order.
func WriteCSV(w io.Writer, h *spinham.Hamiltonian) error {
	data, err := NewExportData(h)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"atom1", "atom2", "r1", "r2", "r3", "distance", "iso", "dmi_x", "dmi_y", "dmi_z"}
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			header = append(header, "j"+strconv.Itoa(i)+strconv.Itoa(j))
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, b := range data.Bonds {
		row := []string{b.Atom1, b.Atom2,
			strconv.Itoa(b.R[0]), strconv.Itoa(b.R[1]), strconv.Itoa(b.R[2]),
			f(b.Distance), f(b.Iso), f(b.DMI[0]), f(b.DMI[1]), f(b.DMI[2])}
		for _, line := range b.Matrix {
			for _, v := range line {
				row = append(row, f(v))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, h *spinham.Hamiltonian) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, h)
}
