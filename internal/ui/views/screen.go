// Package views lays out the application state as terminal panes.
package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/spinup/internal/app"
	"github.com/jscyril/spinup/internal/selection"
	"github.com/jscyril/spinup/internal/ui/components"
)

const (
	// InfoPaneWidth is the fixed width of the codec info pane
	InfoPaneWidth = 25
	// infoPaneMinScreen is the screen width the info pane needs to appear
	infoPaneMinScreen = 50
)

// PaneKind selects how a Pane is drawn
type PaneKind int

const (
	PaneTitle PaneKind = iota
	PaneList
	PaneError
	PaneProgress
	PaneInfo
)

func (k PaneKind) String() string {
	switch k {
	case PaneTitle:
		return "title"
	case PaneList:
		return "list"
	case PaneError:
		return "error"
	case PaneProgress:
		return "progress"
	case PaneInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Pane is one region of the screen. Only the fields matching Kind are set.
type Pane struct {
	Kind   PaneKind
	Width  int
	Height int

	Text     string // title and error panes
	List     components.EntryList
	Progress components.ProgressBar
	Info     []string
}

// Screen turns an app.State into panes and panes into a frame
type Screen struct {
	Width  int
	Height int

	offset int

	TitleStyle lipgloss.Style
	ErrorStyle lipgloss.Style
	InfoStyle  lipgloss.Style
}

// NewScreen creates a screen of the given size
func NewScreen(width, height int) Screen {
	return Screen{
		Width:  width,
		Height: height,
		TitleStyle: lipgloss.NewStyle().
			Bold(true),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		InfoStyle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()),
	}
}

// Layout decides which panes to draw. The error line replaces the progress
// bar, and the info pane needs both room and a selected file.
func (s *Screen) Layout(st *app.State, help string) []Pane {
	bodyHeight := s.Height - 2
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	panes := []Pane{{
		Kind:   PaneTitle,
		Width:  s.Width,
		Height: 1,
		Text:   "spinup:  " + help,
	}}

	showInfo := s.Width > infoPaneMinScreen && st.SelectedKind() == selection.KindFile
	listWidth := s.Width
	if showInfo {
		listWidth -= InfoPaneWidth
	}

	selected := -1
	if idx, ok := st.Selection.Index(); ok {
		selected = idx
	}
	list := components.NewEntryList(listWidth, bodyHeight)
	list.Title = "Dir: " + st.Dir
	list.Offset = s.offset
	list.SetItems(st.Listing.Combined(), selected)
	s.offset = list.Offset
	panes = append(panes, Pane{Kind: PaneList, Width: listWidth, Height: bodyHeight, List: list})

	if showInfo {
		var lines []string
		if st.Info != nil {
			lines = st.Info.Lines()
		}
		// border, heading and one row per line
		height := len(lines) + 3
		if height < 3 {
			height = 3
		}
		if height > bodyHeight {
			height = bodyHeight
		}
		panes = append(panes, Pane{Kind: PaneInfo, Width: InfoPaneWidth, Height: height, Info: lines})
	}

	switch session := st.Session(); {
	case st.LastError != "":
		panes = append(panes, Pane{Kind: PaneError, Width: s.Width, Height: 1, Text: st.LastError})
	case session != nil && st.IsPlaying():
		bar := components.NewProgressBar(s.Width)
		bar.SetProgress(session.Elapsed(), session.Duration())
		panes = append(panes, Pane{Kind: PaneProgress, Width: s.Width, Height: 1, Progress: bar})
	}

	return panes
}

// Render draws panes into a single frame
func (s Screen) Render(panes []Pane) string {
	var title, list, info, bottom string

	for _, p := range panes {
		switch p.Kind {
		case PaneTitle:
			title = s.TitleStyle.MaxWidth(p.Width).Render(p.Text)
		case PaneList:
			list = p.List.View()
		case PaneInfo:
			body := "File Information"
			if len(p.Info) > 0 {
				body += "\n" + strings.Join(p.Info, "\n")
			}
			info = s.InfoStyle.
				Width(p.Width - 2).
				MaxHeight(p.Height).
				Render(body)
		case PaneError:
			bottom = s.ErrorStyle.MaxWidth(p.Width).Render(p.Text)
		case PaneProgress:
			bottom = p.Progress.View()
		}
	}

	body := list
	if info != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, info)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body, bottom)
}
