package viz

import (
	"errors"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/spinlab/internal/crystal"
	"github.com/san-kum/spinlab/internal/spinham"
)

var errNothingToDraw = errors.New("viz: model has no atoms")

type svgPoint struct{ X, Y float64 }

type svgBond struct {
	from, to svgPoint
	iso      float64
}

// BondsSVG draws the model projected on the xy plane: atoms of the home
// cell as labelled dots and every two-body bond as a line. Ferromagnetic
// (negative) couplings are blue, antiferromagnetic ones red, and the line
// width follows |iso|.
func BondsSVG(h *spinham.Hamiltonian, width, height int) (string, error) {
	atoms := h.Atoms()
	if len(atoms) == 0 {
		return "", errNothingToDraw
	}

	points := make([]svgPoint, 0, len(atoms))
	for _, a := range atoms {
		p, err := h.AtomCoordinates(a.Name, crystal.Translation{}, false)
		if err != nil {
			return "", err
		}
		points = append(points, svgPoint{p[0], p[1]})
	}
	all := append([]svgPoint(nil), points...)

	var bonds []svgBond
	maxIso := 0.0
	for b := range h.Bonds() {
		if b.OnSite() {
			continue
		}
		p1, err := h.AtomCoordinates(b.Atom1, crystal.Translation{}, false)
		if err != nil {
			return "", err
		}
		p2, err := h.AtomCoordinates(b.Atom2, b.R, false)
		if err != nil {
			return "", err
		}
		bond := svgBond{svgPoint{p1[0], p1[1]}, svgPoint{p2[0], p2[1]}, b.J.Iso()}
		bonds = append(bonds, bond)
		all = append(all, bond.from, bond.to)
		maxIso = math.Max(maxIso, math.Abs(bond.iso))
	}

	// bounds with 10% padding
	minX, maxX := all[0].X, all[0].X
	minY, maxY := all[0].Y, all[0].Y
	for _, p := range all {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	project := func(p svgPoint) (float64, float64) {
		return (p.X - minX) / rangeX * float64(width),
			float64(height) - (p.Y-minY)/rangeY*float64(height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString("<g stroke-linecap=\"round\">\n")
	for _, b := range bonds {
		x1, y1 := project(b.from)
		x2, y2 := project(b.to)
		color := "#ff5f87"
		if b.iso < 0 {
			color = "#5fd7ff"
		}
		w := 1.0
		if maxIso > 0 {
			w += 3 * math.Abs(b.iso) / maxIso
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>
`, x1, y1, x2, y2, color, w))
	}
	sb.WriteString("</g>\n")

	sb.WriteString("<g fill=\"#ffffff\" font-family=\"monospace\" font-size=\"12\">\n")
	for i, a := range atoms {
		x, y := project(points[i])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="5"/>
<text x="%.1f" y="%.1f">%s</text>
`, x, y, x+7, y-7, html.EscapeString(a.Name)))
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String(), nil
}
