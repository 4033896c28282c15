package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/spinlab/internal/spinham"
)

// Summary renders the cell, atoms, notation and bonds of h.
func Summary(h *spinham.Hamiltonian, s Styles) string {
	sections := []string{
		s.Header.Render("spin Hamiltonian"),
		s.BoxWithTitle("cell (Å)", cellText(h, s)),
		s.BoxWithTitle("atoms", atomTable(h, s)),
		s.BoxWithTitle("notation", notationText(h, s)),
		s.BoxWithTitle(fmt.Sprintf("bonds (%d)", h.Len()), bondTable(h, s)),
		stats(h, s),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func cellText(h *spinham.Hamiltonian, s Styles) string {
	cell := h.Cell()
	lines := make([]string, 0, 4)
	for i, name := range []string{"a", "b", "c"} {
		lines = append(lines, s.Label.Render(name+" ")+
			s.Value.Render(fmt.Sprintf("%10.5f %10.5f %10.5f", cell[i][0], cell[i][1], cell[i][2])))
	}
	lines = append(lines, s.Label.Render("V ")+s.Value.Render(fmt.Sprintf("%.5f Å³", cell.Volume())))
	return strings.Join(lines, "\n")
}

func atomTable(h *spinham.Hamiltonian, s Styles) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("name", "position (rel)", "|S|").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Label.Bold(true)
			}
			return lipgloss.NewStyle()
		})

	for _, a := range h.Atoms() {
		spin := "-"
		if v, ok := a.SpinValue(); ok {
			spin = fmt.Sprintf("%.4f", v)
		}
		t.Row(a.Name, fmt.Sprintf("%.4f %.4f %.4f", a.Position[0], a.Position[1], a.Position[2]), spin)
	}
	return t.Render()
}

func notationText(h *spinham.Hamiltonian, s Styles) string {
	n, err := h.Notation()
	if err != nil {
		return s.Subtle.Render("not defined")
	}
	name, ok := spinham.PresetName(n)
	if !ok {
		name = "custom"
	}
	return strings.Join([]string{
		s.Label.Render("preset ") + s.Value.Render(name),
		s.Label.Render(n.String()),
		s.Value.Render(n.Formula()),
	}, "\n")
}

type bondRow struct {
	bond     spinham.Bond
	distance float64
}

func sortedBonds(h *spinham.Hamiltonian) []bondRow {
	var rows []bondRow
	for b := range h.Bonds() {
		d, err := h.Distance(b.Atom1, b.Atom2, b.R)
		if err != nil {
			continue
		}
		rows = append(rows, bondRow{bond: b, distance: d})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].distance < rows[j].distance })
	return rows
}

func bondTable(h *spinham.Hamiltonian, s Styles) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("atom1", "atom2", "R", "d (Å)", "iso", "|DMI|").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Label.Bold(true)
			}
			return lipgloss.NewStyle()
		})

	for _, r := range sortedBonds(h) {
		b := r.bond
		t.Row(b.Atom1, b.Atom2, b.R.String(),
			fmt.Sprintf("%.4f", r.distance),
			s.Signed("%.4f", b.J.Iso()),
			fmt.Sprintf("%.4f", b.J.DMIModule()))
	}
	return t.Render()
}

func stats(h *spinham.Hamiltonian, s Styles) string {
	return s.Label.Render("magnetic atoms ") + s.Value.Render(fmt.Sprint(h.I())) +
		s.Label.Render("   Σ iso ") + s.Signed("%.4f", h.TotalIso())
}
