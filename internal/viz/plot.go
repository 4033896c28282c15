package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/spinlab/internal/spinham"
)

// PlotExchange draws the isotropic exchange of every stored bond against
// bond length, bonds sorted by length.
func PlotExchange(h *spinham.Hamiltonian, width, height int) (string, error) {
	rows := sortedBonds(h)
	if len(rows) == 0 {
		return "", fmt.Errorf("viz: no bonds to plot")
	}

	data := make([]float64, len(rows))
	for i, r := range rows {
		data[i] = r.bond.J.Iso()
	}
	caption := fmt.Sprintf("iso exchange vs bond length (%.3f to %.3f Å)", rows[0].distance, rows[len(rows)-1].distance)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}
