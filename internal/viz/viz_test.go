package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/spinlab/internal/crystal"
	"github.com/san-kum/spinlab/internal/exchange"
	"github.com/san-kum/spinlab/internal/spinham"
)

func model(t *testing.T) *spinham.Hamiltonian {
	t.Helper()
	h := spinham.New()
	require.NoError(t, h.AddAtom(crystal.NewAtom("Cr1", crystal.Vector{}).WithSpin(crystal.SpinFromValue(1.5)), true))
	require.NoError(t, h.AddAtom(crystal.NewAtom("Cr2", crystal.Vector{0.5, 0, 0}), true))
	require.NoError(t, h.AddBond("Cr1", "Cr2", crystal.Translation{}, exchange.Isotropic(-2)))
	require.NoError(t, h.AddBond("Cr1", "Cr1", crystal.Translation{1, 0, 0}, exchange.Isotropic(1)))
	return h
}

func TestSummary(t *testing.T) {
	h := model(t)
	out := Summary(h, NewStyles(GetTheme("minimal"), false))

	for _, want := range []string{"Cr1", "Cr2", "1.5000", "not defined", "bonds (2)", "-2.0000", "magnetic atoms"} {
		assert.Contains(t, out, want)
	}

	require.NoError(t, h.SetNotationPreset("SpinW"))
	out = Summary(h, NewStyles(ThemeOcean, false))
	assert.Contains(t, out, "SpinW")
	assert.Contains(t, out, "Σ_{i,j}")
}

func TestBondsSortedByDistance(t *testing.T) {
	rows := sortedBonds(model(t))
	require.Len(t, rows, 2)
	assert.Equal(t, "Cr2", rows[0].bond.Atom2)
	assert.InDelta(t, 0.5, rows[0].distance, 1e-12)
	assert.InDelta(t, 1.0, rows[1].distance, 1e-12)
}

func TestPlotExchange(t *testing.T) {
	out, err := PlotExchange(model(t), 40, 5)
	require.NoError(t, err)
	assert.Contains(t, out, "iso exchange vs bond length")

	_, err = PlotExchange(spinham.New(), 40, 5)
	assert.Error(t, err)
}

func TestThemes(t *testing.T) {
	assert.Equal(t, "ocean", GetTheme("ocean").Name)
	assert.Equal(t, ThemeCyberpunk, GetTheme("unknown"))
	assert.Len(t, ThemeNames(), len(Themes))
}

func TestSeparator(t *testing.T) {
	s := NewStyles(ThemeMinimal, false)
	assert.Contains(t, s.Separator(20), "◆")
	assert.NotContains(t, s.Separator(4), "◆")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowserCursor(t *testing.T) {
	b := NewBrowser(model(t), NewStyles(ThemeMinimal, false))

	sel, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "Cr2", sel.Atom2)

	b.Update(key("down"))
	b.Update(key("down"))
	sel, _ = b.Selected()
	assert.Equal(t, "Cr1", sel.Atom2)

	b.Update(key("up"))
	sel, _ = b.Selected()
	assert.Equal(t, "Cr2", sel.Atom2)

	_, cmd := b.Update(key("q"))
	assert.NotNil(t, cmd)
}

func TestBrowserNotations(t *testing.T) {
	h := model(t)
	b := NewBrowser(h, NewStyles(ThemeMinimal, false))
	assert.Contains(t, b.View(), "source (not defined)")

	b.Update(key("n"))
	assert.Contains(t, b.View(), spinham.ListPresets()[0])
	n, err := b.Current().Notation()
	require.NoError(t, err)
	assert.Equal(t, spinham.Presets[spinham.ListPresets()[0]], n)
	assert.Equal(t, 4, b.Current().Len())

	// source is untouched
	assert.Equal(t, 2, h.Len())
	_, err = h.Notation()
	assert.Error(t, err)

	b.Update(key("o"))
	assert.Equal(t, 2, b.Current().Len())

	b.Update(key("p"))
	assert.Contains(t, b.View(), spinham.ListPresets()[len(spinham.ListPresets())-1])
}

func TestBrowserConversionError(t *testing.T) {
	h := model(t)
	require.NoError(t, h.SetNotationPreset("SpinW"))
	b := NewBrowser(h, NewStyles(ThemeMinimal, false))

	// Cr2 has no spin, so a spin normalized notation cannot be reached
	for b.notation < 0 || b.notations[b.notation] != "TB2J" {
		b.Update(key("n"))
	}
	assert.ErrorIs(t, b.err, spinham.ErrMissingSpin)
	assert.Contains(t, b.View(), "spin")
	n, err := b.Current().Notation()
	require.NoError(t, err)
	assert.Equal(t, spinham.Presets["SpinW"], n)
}

func TestBondsSVG(t *testing.T) {
	out, err := BondsSVG(model(t), 200, 100)
	require.NoError(t, err)
	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100"`)
	assert.Equal(t, 2, strings.Count(out, "<line "))
	assert.Equal(t, 2, strings.Count(out, "<circle "))
	assert.Contains(t, out, "#5fd7ff")
	assert.Contains(t, out, "#ff5f87")
	assert.Contains(t, out, ">Cr2</text>")

	_, err = BondsSVG(spinham.New(), 200, 100)
	assert.Error(t, err)
}
