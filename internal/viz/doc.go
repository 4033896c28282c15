// Package viz renders spin Hamiltonians for the terminal.
//
// [Summary] lays out the cell, atoms, notation and bond table with lipgloss;
// [PlotExchange] draws the isotropic exchange against bond length with
// asciigraph. Colours come from a [Theme]; pass color=false to [NewStyles]
// for plain output. [Browser] is a bubbletea program for paging through
// the bonds while switching between predefined notations, and [BondsSVG]
// draws the bond graph as an SVG image.
package viz
