package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/clevacompass/pkg/compass"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// errNoSelection is returned when the picker is closed without a choice.
var errNoSelection = errors.New("no entry selected")

// =============================================================================
// EntryListModel - Interactive entry selection
// =============================================================================

// EntryListModel is the bubbletea model for picking one entry.
type EntryListModel struct {
	Title    string
	Entries  []compass.Entry
	Cursor   int
	Selected int // -1 until enter is pressed
	Height   int
	Offset   int
}

// NewEntryListModel creates a new entry list model.
func NewEntryListModel(entries []compass.Entry, title string) EntryListModel {
	return EntryListModel{
		Title:    title,
		Entries:  entries,
		Selected: -1,
		Height:   15,
	}
}

func (m EntryListModel) Init() tea.Cmd {
	return nil
}

func (m EntryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entries) > 0 {
				m.Selected = m.Cursor
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m EntryListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))
	b.WriteString(renderEntryTable(m.Entries, m.Offset, end, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// pickEntry runs the picker and returns the chosen index.
func pickEntry(entries []compass.Entry, title string) (int, error) {
	final, err := tea.NewProgram(NewEntryListModel(entries, title)).Run()
	if err != nil {
		return 0, err
	}
	m, ok := final.(EntryListModel)
	if !ok || m.Selected < 0 {
		return 0, errNoSelection
	}
	return m.Selected, nil
}

// =============================================================================
// Entry Table
// =============================================================================

// entryTable renders all entries; cursor highlights a row (or noIndex).
func entryTable(entries []compass.Entry, cursor int) string {
	return renderEntryTable(entries, 0, len(entries), cursor)
}

func renderEntryTable(entries []compass.Entry, from, to, cursor int) string {
	rows := make([][]string, 0, to-from)
	for i := from; i < to; i++ {
		e := entries[i]
		rows = append(rows, []string{
			strconv.Itoa(i),
			e.Label,
			e.Color,
			innerSummary(e.Inner),
			fmt.Sprintf("%d/%d", e.Outer.Count(), compass.NumOuter),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Label", "Color", "Inner D1..D11", "Outer").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := from + row
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 && idx < len(entries) {
				if hex := colorHex(entries[idx].Color); hex != "" {
					base = base.Foreground(lipgloss.Color(hex))
				}
			}
			if idx == cursor {
				return base.Bold(true).Foreground(colorCyan)
			}
			if col == 0 || col == 3 {
				return base.Foreground(colorGray)
			}
			return base
		})

	return t.Render()
}

// innerSummary renders the inner level as one digit per axis, D1 first.
func innerSummary(l compass.InnerLevel) string {
	var b strings.Builder
	for _, v := range l.Values() {
		b.WriteString(strconv.Itoa(int(v)))
	}
	return b.String()
}

// colorHex returns the display colour of a known compass colour name.
func colorHex(name string) string {
	for _, set := range [][]compass.Color{compass.BaseColors, compass.ExtraColors} {
		for _, c := range set {
			if c.Name == name {
				return c.Hex
			}
		}
	}
	return ""
}
