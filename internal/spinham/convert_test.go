package spinham

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/spinlab/internal/crystal"
	"github.com/san-kum/spinlab/internal/exchange"
)

var r100 = crystal.Translation{1, 0, 0}

// chain returns one Cr atom with spin 3/2 and the bond (Cr, Cr, (1,0,0)).
func chain(t *testing.T) *Hamiltonian {
	t.Helper()
	h := New()
	addAtoms(t, h, crystal.NewAtom("Cr", crystal.Vector{}).WithSpin(crystal.SpinFromValue(1.5)))
	addIso(t, h, "Cr", "Cr", r100, 1)
	return h
}

func TestNotationUndefined(t *testing.T) {
	h := chain(t)
	assert.InDelta(t, 1, iso(t, h, "Cr", "Cr", r100), tol)
	assert.False(t, h.NotationDefined())

	_, err := h.DoubleCounting()
	assert.ErrorIs(t, err, ErrNotation)
	_, err = h.SpinNormalized()
	assert.ErrorIs(t, err, ErrNotation)
	_, err = h.ExchangeFactor()
	assert.ErrorIs(t, err, ErrNotation)
	_, err = h.OnSiteFactor()
	assert.ErrorIs(t, err, ErrNotation)
	_, err = h.Notation()
	assert.ErrorIs(t, err, ErrNotation)
}

func TestNotationManipulation(t *testing.T) {
	h := chain(t)

	require.NoError(t, h.SetNotationPreset("magnopy"))
	assert.InDelta(t, 1, iso(t, h, "Cr", "Cr", r100), tol)
	assert.Equal(t, 2, h.Len())
	assert.True(t, h.NotationDefined())

	require.NoError(t, h.SetNotationPreset("magnopy"))
	assert.InDelta(t, 1, iso(t, h, "Cr", "Cr", r100), tol)
	assert.Equal(t, 2, h.Len())

	dc, err := h.DoubleCounting()
	require.NoError(t, err)
	assert.True(t, dc)

	h.SetDoubleCounting(false)
	assert.InDelta(t, 2, iso(t, h, "Cr", "Cr", r100), tol)
	assert.Equal(t, 1, h.Len())
	h.SetDoubleCounting(true)
	assert.InDelta(t, 1, iso(t, h, "Cr", "Cr", r100), tol)
	assert.Equal(t, 2, h.Len())

	sn, err := h.SpinNormalized()
	require.NoError(t, err)
	assert.False(t, sn)
	require.NoError(t, h.SetSpinNormalized(true))
	assert.InDelta(t, 9.0/4, iso(t, h, "Cr", "Cr", r100), tol)
	require.NoError(t, h.SetSpinNormalized(false))
	assert.InDelta(t, 1, iso(t, h, "Cr", "Cr", r100), tol)

	ef, err := h.ExchangeFactor()
	require.NoError(t, err)
	assert.Equal(t, 0.5, ef)

	steps := []struct {
		factor float64
		want   float64
	}{
		{-0.5, -1},
		{-1, -0.5},
		{-2, -0.25},
		{-0.5, -1},
		{-2, -0.25},
		{-1, -0.5},
		{1, 0.5},
		{-1, -0.5},
	}
	for _, s := range steps {
		require.NoError(t, h.SetExchangeFactor(s.factor))
		assert.InDelta(t, s.want, iso(t, h, "Cr", "Cr", r100), tol, "factor %g", s.factor)
	}

	presets := []struct {
		name string
		want float64
	}{
		{"SpinW", 0.5},
		{"TB2J", -9.0 / 8},
		{"Vampire", -9.0 / 4},
	}
	for _, p := range presets {
		require.NoError(t, h.SetNotationPreset(p.name))
		assert.InDelta(t, p.want, iso(t, h, "Cr", "Cr", r100), tol, p.name)
		n, err := h.Notation()
		require.NoError(t, err)
		assert.Equal(t, Presets[p.name], n)
	}
}

func TestPredefinedNotations(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"magnopy", 1},
		{"TB2J", -9.0 / 8},
		{"SpinW", 0.5},
		{"Vampire", -9.0 / 4},
	}

	h := chain(t)
	for _, tt := range tests {
		require.NoError(t, h.SetNotationPreset(tt.name))
		assert.InDelta(t, tt.want, iso(t, h, "Cr", "Cr", r100), tol, tt.name)
	}
}

func TestPresetNamesAreCaseInsensitive(t *testing.T) {
	h := chain(t)
	require.NoError(t, h.SetNotationPreset("MAGNOPY"))
	require.NoError(t, h.SetNotationPreset("tb2j"))
	assert.InDelta(t, -9.0/8, iso(t, h, "Cr", "Cr", r100), tol)

	err := h.SetNotationPreset("wannier")
	assert.ErrorIs(t, err, ErrUnknownNotation)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "magnopy")
}

func TestAddRemoveBondWithNotation(t *testing.T) {
	h := New()
	addAtoms(t, h,
		crystal.NewAtom("Cr1", crystal.Vector{2, 5, 1}),
		crystal.NewAtom("Cr2", crystal.Vector{4, 2, 1}),
	)

	h.SetDoubleCounting(false)
	addIso(t, h, "Cr1", "Cr2", crystal.Translation{}, 1)
	assert.True(t, h.Contains("Cr1", "Cr2", crystal.Translation{}))
	assert.False(t, h.Contains("Cr2", "Cr1", crystal.Translation{}))
	require.NoError(t, h.RemoveBond("Cr1", "Cr2", crystal.Translation{}))
	assert.Equal(t, 0, h.Len())

	h.SetDoubleCounting(true)
	addIso(t, h, "Cr1", "Cr2", crystal.Translation{}, 1)
	assert.True(t, h.Contains("Cr1", "Cr2", crystal.Translation{}))
	assert.True(t, h.Contains("Cr2", "Cr1", crystal.Translation{}))
	require.NoError(t, h.RemoveBond("Cr2", "Cr1", crystal.Translation{}))
	assert.Equal(t, 0, h.Len())
}

func TestMirrorIsTranspose(t *testing.T) {
	h := New()
	addAtoms(t, h,
		crystal.NewAtom("Cr1", crystal.Vector{}),
		crystal.NewAtom("Cr2", crystal.Vector{0.5, 0.5, 0}),
	)
	h.SetDoubleCounting(true)

	j, err := exchange.NewTensor(exchange.WithIso(1), exchange.WithDMI(0.1, 0.2, 0.3))
	require.NoError(t, err)
	require.NoError(t, h.AddBond("Cr1", "Cr2", crystal.Translation{0, 1, 0}, j))

	m, err := h.Bond("Cr2", "Cr1", crystal.Translation{0, -1, 0})
	require.NoError(t, err)
	assert.True(t, m.EqualApprox(j.Transpose(), tol))
	assert.InDelta(t, -0.1, m.DMI()[0], tol)

	// with double counting off, adding a key removes its stored mirror
	h.SetDoubleCounting(false)
	require.Equal(t, 1, h.Len())
	require.NoError(t, h.AddBond("Cr2", "Cr1", crystal.Translation{0, -1, 0}, j))
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.Contains("Cr1", "Cr2", crystal.Translation{0, 1, 0}))
}

func TestDoubleCountingFirstAssignment(t *testing.T) {
	h := chain(t)
	h.SetDoubleCounting(true)
	assert.Equal(t, 2, h.Len())
	assert.InDelta(t, 1, iso(t, h, "Cr", "Cr", r100.Neg()), tol)

	g := chain(t)
	addIso(t, g, "Cr", "Cr", r100.Neg(), 1)
	g.SetDoubleCounting(false)
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Contains("Cr", "Cr", r100))
	assert.InDelta(t, 1, iso(t, g, "Cr", "Cr", r100), tol)
}

func TestOnSiteBonds(t *testing.T) {
	h := chain(t)
	addIso(t, h, "Cr", "Cr", crystal.Translation{}, 3)
	require.NoError(t, h.SetNotationPreset("magnopy"))
	assert.Equal(t, 3, h.Len())

	// double counting leaves on-site values alone
	h.SetDoubleCounting(false)
	assert.Equal(t, 2, h.Len())
	assert.InDelta(t, 3, iso(t, h, "Cr", "Cr", crystal.Translation{}), tol)

	// the exchange factor does too
	require.NoError(t, h.SetExchangeFactor(1))
	assert.InDelta(t, 3, iso(t, h, "Cr", "Cr", crystal.Translation{}), tol)
	assert.InDelta(t, 1, iso(t, h, "Cr", "Cr", r100), tol)

	require.NoError(t, h.SetOnSiteFactor(-2))
	assert.InDelta(t, -1.5, iso(t, h, "Cr", "Cr", crystal.Translation{}), tol)
	assert.InDelta(t, 1, iso(t, h, "Cr", "Cr", r100), tol)
}

func snapshot(h *Hamiltonian) map[BondKey][3][3]float64 {
	out := make(map[BondKey][3][3]float64)
	for b := range h.Bonds() {
		out[b.BondKey] = b.J.Matrix()
	}
	return out
}

func TestPresetIdempotence(t *testing.T) {
	for _, name := range ListPresets() {
		h := chain(t)
		require.NoError(t, h.SetNotationPreset("magnopy"))
		require.NoError(t, h.SetNotationPreset(name))
		first := snapshot(h)
		require.NoError(t, h.SetNotationPreset(name))
		assert.Equal(t, first, snapshot(h), name)
	}
}

func TestNotationRoundTrip(t *testing.T) {
	for _, from := range ListPresets() {
		for _, to := range ListPresets() {
			h := New()
			addAtoms(t, h,
				crystal.NewAtom("Fe", crystal.Vector{}).WithSpin(crystal.SpinFromValue(2.5)),
				crystal.NewAtom("Ni", crystal.Vector{0.5, 0.5, 0.5}).WithSpin(crystal.SpinFromAngles(1, 30, 60)),
			)
			require.NoError(t, h.SetNotationPreset(from))
			j, err := exchange.NewTensor(
				exchange.WithArray([3][3]float64{{1, 0.2, 0}, {0.4, -1, 0.3}, {0, 0.1, 2}}),
			)
			require.NoError(t, err)
			require.NoError(t, h.AddBond("Fe", "Ni", crystal.Translation{0, 0, 1}, j))
			addIso(t, h, "Fe", "Fe", crystal.Translation{}, 0.7)
			want := snapshot(h)

			require.NoError(t, h.SetNotationPreset(to))
			require.NoError(t, h.SetNotationPreset(from))

			got := snapshot(h)
			require.Len(t, got, len(want), "%s -> %s", from, to)
			for k, m := range want {
				g, ok := got[k]
				require.True(t, ok, "%s -> %s lost %v", from, to, k)
				for r := 0; r < 3; r++ {
					for c := 0; c < 3; c++ {
						assert.InDelta(t, m[r][c], g[r][c], tol, "%s -> %s %v", from, to, k)
					}
				}
			}
		}
	}
}

func TestMissingSpinLeavesModelUnchanged(t *testing.T) {
	h := New()
	addAtoms(t, h,
		crystal.NewAtom("Cr1", crystal.Vector{}).WithSpin(crystal.SpinFromValue(1.5)),
		crystal.NewAtom("Cr2", crystal.Vector{0.5, 0, 0}),
	)
	addIso(t, h, "Cr1", "Cr2", crystal.Translation{}, 1)
	require.NoError(t, h.SetNotationPreset("magnopy"))
	before := snapshot(h)

	err := h.SetNotationPreset("TB2J")
	assert.ErrorIs(t, err, ErrMissingSpin)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, snapshot(h))
	n, err := h.Notation()
	require.NoError(t, err)
	assert.Equal(t, Presets["magnopy"], n)

	err = h.SetSpinNormalized(true)
	assert.ErrorIs(t, err, ErrMissingSpin)
	assert.Equal(t, before, snapshot(h))
}

func TestZeroSpinIsRejected(t *testing.T) {
	h := New()
	addAtoms(t, h, crystal.NewAtom("Cr", crystal.Vector{}).WithSpin(crystal.Vector{}))
	addIso(t, h, "Cr", "Cr", r100, 1)
	require.NoError(t, h.SetNotationPreset("SpinW"))

	assert.ErrorIs(t, h.SetSpinNormalized(true), ErrMissingSpin)
}

func TestInvalidFactors(t *testing.T) {
	h := chain(t)
	require.NoError(t, h.SetNotationPreset("magnopy"))
	before := snapshot(h)

	assert.ErrorIs(t, h.SetExchangeFactor(0), ErrInvalidFactor)
	assert.ErrorIs(t, h.SetOnSiteFactor(0), ErrInvalidFactor)

	n := Presets["SpinW"]
	n.OnSiteFactor = 0
	err := h.SetNotation(n)
	assert.ErrorIs(t, err, ErrInvalidFactor)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, snapshot(h))
}

func TestFirstAssignmentDoesNotRescale(t *testing.T) {
	h := chain(t)
	require.NoError(t, h.SetExchangeFactor(-1))
	require.NoError(t, h.SetOnSiteFactor(2))
	require.NoError(t, h.SetSpinNormalized(true))
	assert.InDelta(t, 1, iso(t, h, "Cr", "Cr", r100), tol)
	assert.False(t, h.NotationDefined())
}
