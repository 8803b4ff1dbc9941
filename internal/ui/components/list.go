package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/spinup/internal/browser"
)

// HighlightSymbol marks the selected row
const HighlightSymbol = ">> "

// EntryList renders the combined directory and file list inside a border.
// Selection and scroll position are owned by the caller; the list only
// keeps the selected row visible.
type EntryList struct {
	Items    []string
	Selected int // -1 for none
	Height   int
	Width    int
	Offset   int
	Title    string

	SelectedStyle lipgloss.Style
	NormalStyle   lipgloss.Style
	DirStyle      lipgloss.Style
	BorderStyle   lipgloss.Style
}

// NewEntryList creates an empty list of the given size
func NewEntryList(width, height int) EntryList {
	return EntryList{
		Selected: -1,
		Height:   height,
		Width:    width,
		SelectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("10")).
			Foreground(lipgloss.Color("0")).
			Bold(true),
		NormalStyle: lipgloss.NewStyle(),
		DirStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()),
	}
}

// SetItems replaces the rows and the selected index, adjusting the scroll
// offset so the selection stays on screen.
func (l *EntryList) SetItems(items []string, selected int) {
	l.Items = items
	l.Selected = selected
	if l.Offset > len(items) {
		l.Offset = 0
	}
	l.ensureVisible()
}

// visibleRows is the number of item rows inside the border and title
func (l EntryList) visibleRows() int {
	rows := l.Height - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ensureVisible ensures the selected item is visible
func (l *EntryList) ensureVisible() {
	if l.Selected < 0 {
		return
	}
	visible := l.visibleRows()
	if l.Selected < l.Offset {
		l.Offset = l.Selected
	} else if l.Selected >= l.Offset+visible {
		l.Offset = l.Selected - visible + 1
	}
}

// View renders the list
func (l EntryList) View() string {
	inner := l.Width - 2
	if inner < 1 {
		inner = 1
	}

	var sb strings.Builder
	sb.WriteString(truncate(l.Title, inner))

	end := l.Offset + l.visibleRows()
	if end > len(l.Items) {
		end = len(l.Items)
	}

	for i := l.Offset; i < end; i++ {
		sb.WriteString("\n")
		name := l.Items[i]

		if i == l.Selected {
			line := truncate(HighlightSymbol+name, inner)
			sb.WriteString(l.SelectedStyle.Render(line))
			continue
		}

		line := truncate(strings.Repeat(" ", len(HighlightSymbol))+name, inner)
		if strings.HasPrefix(name, browser.DirPrefix) {
			sb.WriteString(l.DirStyle.Render(line))
		} else {
			sb.WriteString(l.NormalStyle.Render(line))
		}
	}

	height := l.Height - 2
	if height < 1 {
		height = 1
	}
	return l.BorderStyle.
		Width(inner).
		Height(height).
		MaxHeight(l.Height).
		Render(sb.String())
}

// truncate shortens s to maxLen runes, marking the cut with "..."
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
