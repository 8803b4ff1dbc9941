// Package ui drives the app loop from a bubbletea program.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jscyril/spinup/api"
	"github.com/jscyril/spinup/internal/app"
	"github.com/jscyril/spinup/internal/ui/views"
	"github.com/jscyril/spinup/pkg/events"
	zlog "github.com/rs/zerolog/log"
)

// Model is the main bubbletea model
type Model struct {
	loop   *app.Loop
	events <-chan api.AudioEvent

	keys   keyMap
	help   help.Model
	screen *views.Screen

	// gen identifies the pending tick; older ticks are dropped
	gen int
	now func() time.Time
}

// tickMsg is sent when a poll timeout expires
type tickMsg struct {
	gen int
	at  time.Time
}

// engineEventMsg wraps an event published by the audio engine
type engineEventMsg api.AudioEvent

// NewModel creates a model around loop. events may be nil.
func NewModel(loop *app.Loop, events <-chan api.AudioEvent) Model {
	screen := views.NewScreen(80, 24)
	return Model{
		loop:   loop,
		events: events,
		keys:   defaultKeyMap(),
		help:   help.New(),
		screen: &screen,
		now:    time.Now,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	m.loop.Tick(m.now())
	return tea.Batch(m.tick(), m.listenForEvents())
}

// tick waits for the loop's current poll timeout
func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.loop.PollTimeout(), func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// listenForEvents returns a command that waits for the next engine event
func (m Model) listenForEvents() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return engineEventMsg(ev)
	}
}

// restart begins a new tick generation so the wait uses the current timeout
func (m *Model) restart() tea.Cmd {
	m.gen++
	return m.tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screen.Width = msg.Width
		m.screen.Height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loop.Tick(msg.at)
		return m, m.tick()

	case engineEventMsg:
		ev := api.AudioEvent(msg)
		zlog.Debug().Str("event", ev.Type.String()).Str("path", ev.Path).Err(ev.Err).Msg("engine event")
		m.loop.Tick(m.now())
		return m, tea.Batch(m.restart(), m.listenForEvents())

	case tea.KeyMsg:
		m.loop.Tick(m.now())
		if m.loop.Dispatch(m.keys.command(msg)) {
			return m, tea.Quit
		}
		return m, m.restart()
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	panes := m.screen.Layout(m.loop.State(), m.help.View(m.keys))
	return m.screen.Render(panes)
}

// subscribe listens only for events that can end playback. The model
// redraws on its own tick otherwise.
func subscribe(bus *events.Bus) <-chan api.AudioEvent {
	return bus.Subscribe(api.EventTrackEnded, api.EventError, api.EventTrackStopped)
}

// Run starts the bubbletea program on the alternate screen and blocks until
// the user quits. bus may be nil.
func Run(loop *app.Loop, bus *events.Bus, opts ...tea.ProgramOption) error {
	var ch <-chan api.AudioEvent
	if bus != nil {
		ch = subscribe(bus)
		defer bus.Unsubscribe(ch)
	}

	model := NewModel(loop, ch)
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	_, err := p.Run()
	return err
}
