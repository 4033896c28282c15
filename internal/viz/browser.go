package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/spinlab/internal/spinham"
)

// Browser is an interactive bond list that re-renders the model in any
// predefined notation. The source model is never modified.
type Browser struct {
	source    *spinham.Hamiltonian
	current   *spinham.Hamiltonian
	rows      []bondRow
	notations []string
	notation  int // index into notations, -1 for the source notation
	cursor    int
	offset    int
	err       error
	styles    Styles
	width     int
	height    int
}

func NewBrowser(h *spinham.Hamiltonian, s Styles) *Browser {
	b := &Browser{
		source:    h,
		notations: spinham.ListPresets(),
		notation:  -1,
		styles:    s,
		width:     80,
		height:    24,
	}
	b.convert()
	return b
}

// convert rebuilds the current view from the source in the selected notation.
func (b *Browser) convert() {
	h := b.source.Clone()
	b.err = nil
	if b.notation >= 0 {
		if err := h.SetNotationPreset(b.notations[b.notation]); err != nil {
			b.err = err
			h = b.source.Clone()
		}
	}
	b.current = h
	b.rows = sortedBonds(h)
	if b.cursor >= len(b.rows) {
		b.cursor = max(len(b.rows)-1, 0)
	}
	b.scroll()
}

func (b *Browser) visible() int {
	return max(b.height-12, 3)
}

func (b *Browser) scroll() {
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if n := b.visible(); b.cursor >= b.offset+n {
		b.offset = b.cursor - n + 1
	}
}

// Current is the model as currently displayed.
func (b *Browser) Current() *spinham.Hamiltonian { return b.current }

// Selected is the bond under the cursor.
func (b *Browser) Selected() (spinham.Bond, bool) {
	if len(b.rows) == 0 {
		return spinham.Bond{}, false
	}
	return b.rows[b.cursor].bond, true
}

func (b *Browser) Init() tea.Cmd { return nil }

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.scroll()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
			b.scroll()
		case "down", "j":
			if b.cursor < len(b.rows)-1 {
				b.cursor++
			}
			b.scroll()
		case "n", "tab":
			b.notation++
			if b.notation >= len(b.notations) {
				b.notation = -1
			}
			b.convert()
		case "p", "shift+tab":
			b.notation--
			if b.notation < -1 {
				b.notation = len(b.notations) - 1
			}
			b.convert()
		case "o":
			b.notation = -1
			b.convert()
		}
	}
	return b, nil
}

func (b *Browser) notationName() string {
	if b.notation >= 0 {
		return b.notations[b.notation]
	}
	n, err := b.current.Notation()
	if err != nil {
		return "source (not defined)"
	}
	if name, ok := spinham.PresetName(n); ok {
		return "source (" + name + ")"
	}
	return "source (custom)"
}

func (b *Browser) View() string {
	s := b.styles
	var sb strings.Builder

	sb.WriteString("\n  " + s.Title.Render("SPINLAB") + "  " + s.Label.Render("notation ") + s.Value.Render(b.notationName()) + "\n")
	if n, err := b.current.Notation(); err == nil {
		sb.WriteString("  " + s.Subtle.Render(n.Formula()) + "\n")
	}
	sb.WriteString("  " + s.Separator(min(b.width-4, 60)) + "\n\n")

	if b.err != nil {
		sb.WriteString("  " + s.Negative.Render(b.err.Error()) + "\n\n")
	}

	if len(b.rows) == 0 {
		sb.WriteString("  " + s.Subtle.Render("no bonds") + "\n")
	}
	end := min(b.offset+b.visible(), len(b.rows))
	for i := b.offset; i < end; i++ {
		r := b.rows[i]
		line := fmt.Sprintf("%-6s %-6s %-12s %8.4f ", r.bond.Atom1, r.bond.Atom2, r.bond.R.String(), r.distance)
		if i == b.cursor {
			sb.WriteString("  " + s.Value.Render("▸ "+line) + s.Signed("%10.4f", r.bond.J.Iso()) + "\n")
		} else {
			sb.WriteString("    " + s.Label.Render(line) + s.Signed("%10.4f", r.bond.J.Iso()) + "\n")
		}
	}

	if bond, ok := b.Selected(); ok {
		sb.WriteString("\n" + s.Panel.Render(tensorText(bond, s)) + "\n")
	}

	sb.WriteString("\n  " + s.Value.Render("j/k") + s.Subtle.Render(" move  ") +
		s.Value.Render("n/p") + s.Subtle.Render(" notation  ") +
		s.Value.Render("o") + s.Subtle.Render(" source  ") +
		s.Value.Render("q") + s.Subtle.Render(" quit") + "\n")
	return sb.String()
}

func tensorText(bond spinham.Bond, s Styles) string {
	m := bond.J.Matrix()
	d := bond.J.DMI()
	lines := []string{s.Label.Render(bond.BondKey.String())}
	for i := range 3 {
		lines = append(lines, fmt.Sprintf("%10.4f %10.4f %10.4f", m[i][0], m[i][1], m[i][2]))
	}
	lines = append(lines,
		s.Label.Render("iso ")+s.Signed("%.4f", bond.J.Iso())+
			s.Label.Render("  DMI ")+fmt.Sprintf("(%.4f, %.4f, %.4f)", d[0], d[1], d[2]))
	return strings.Join(lines, "\n")
}

// RunBrowser starts the browser on the terminal.
func RunBrowser(h *spinham.Hamiltonian, s Styles) error {
	_, err := tea.NewProgram(NewBrowser(h, s), tea.WithAltScreen()).Run()
	return err
}
