package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/pot"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PickerModel - Interactive genome and stage selection
// =============================================================================

// Picker rows, top to bottom.
const (
	pickStems = iota
	pickLeaves
	pickPetioles
	pickFlags
	pickStage
	pickPot
	pickRows
)

// PickerSelection holds the confirmed choice.
type PickerSelection struct {
	Genome   plant.Genome
	Stage    int
	PotStyle pot.Style
}

// PickerModel is the bubbletea model for choosing genome values, growth
// stage and pot style.
type PickerModel struct {
	// Values indexed by picker row. The pot row holds an index into pot.Styles.
	Values   [pickRows]int
	Cursor   int
	Selected *PickerSelection
}

// pickRange returns the inclusive bounds of a row.
func pickRange(row int) (lo, hi int) {
	switch row {
	case pickStems:
		return plant.MinStems, plant.MaxStems
	case pickLeaves:
		return plant.MinLeaves, plant.MaxLeaves
	case pickPetioles:
		return plant.MinPetioles, plant.MaxPetioles
	case pickFlags:
		return 0, 1
	case pickStage:
		return plant.MinStage, plant.MaxStage
	default:
		return 0, len(pot.Styles()) - 1
	}
}

// NewPickerModel starts from the given genome, stage and style.
func NewPickerModel(g plant.Genome, stage int, style pot.Style) PickerModel {
	m := PickerModel{}
	v := g.Values()
	copy(m.Values[:4], v[:])
	if m.Values[pickFlags] > 1 {
		m.Values[pickFlags] = 1
	}
	m.Values[pickStage] = stage
	for i, s := range pot.Styles() {
		if s == style {
			m.Values[pickPot] = i
		}
	}
	return m
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < pickRows-1 {
				m.Cursor++
			}
		case "left", "h", "-":
			m.step(-1)
		case "right", "l", "+":
			m.step(1)
		case "enter":
			m.Selected = m.selection()
			return m, tea.Quit
		}
	}
	return m, nil
}

// step moves the current row's value by d, wrapping at the ends.
func (m *PickerModel) step(d int) {
	lo, hi := pickRange(m.Cursor)
	v := m.Values[m.Cursor] + d
	switch {
	case v < lo:
		v = hi
	case v > hi:
		v = lo
	}
	m.Values[m.Cursor] = v
}

func (m PickerModel) selection() *PickerSelection {
	g, err := plant.NewGenome(m.Values[pickStems], m.Values[pickLeaves], m.Values[pickPetioles], m.Values[pickFlags])
	if err != nil {
		return nil
	}
	return &PickerSelection{
		Genome:   g,
		Stage:    m.Values[pickStage],
		PotStyle: pot.Styles()[m.Values[pickPot]],
	}
}

// label returns the display text for a row's value.
func (m PickerModel) label(row int) string {
	v := m.Values[row]
	switch row {
	case pickFlags:
		if v == 1 {
			return "flowers"
		}
		return "none"
	case pickStage:
		s, _ := plant.StageByID(v)
		return fmt.Sprintf("%d · %s", v, s.Name)
	case pickPot:
		return pot.Styles()[v].String()
	}
	return strconv.Itoa(v)
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Grow a Plant"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ choose  ←/→ change  ⏎ render  q quit"))
	b.WriteString("\n\n")

	names := [pickRows]string{"Stems", "Leaves", "Petioles", "Flags", "Stage", "Pot"}
	rows := make([][]string, pickRows)
	for i := range rows {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = []string{cursor, names[i], "‹ " + m.label(i) + " ›"}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == m.Cursor {
				return listSelectedStyle
			}
			if col == 1 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	if s, err := plant.StageByID(m.Values[pickStage]); err == nil {
		b.WriteString(listNormalStyle.Render(s.Description))
		b.WriteString("\n")
		for _, c := range s.Characteristics {
			b.WriteString(listDimStyle.Render("  · " + c))
			b.WriteString("\n")
		}
	}
	g := fmt.Sprintf("%d,%d,%d,%d", m.Values[pickStems], m.Values[pickLeaves], m.Values[pickPetioles], m.Values[pickFlags])
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("  genome " + g))

	return b.String()
}
