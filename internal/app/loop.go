package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jscyril/spinup/internal/browser"
	"github.com/jscyril/spinup/internal/playback"
	"github.com/jscyril/spinup/internal/probe"
	"github.com/jscyril/spinup/internal/selection"
	playerrors "github.com/jscyril/spinup/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

// Command is an input the loop reacts to
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdNext
	CmdPrevious
	CmdStop
	CmdActivate
	CmdRefresh
)

const (
	// DefaultTickRate gives roughly 15 redraws per second during playback
	DefaultTickRate = 66 * time.Millisecond
	// DefaultIdleTimeout bounds wakeups when nothing is playing
	DefaultIdleTimeout = time.Second
)

// Options tune the loop timing
type Options struct {
	TickRate    time.Duration
	IdleTimeout time.Duration
}

// Loop owns the State and applies ticks and commands to it
type Loop struct {
	state  State
	player *playback.Controller
	prober probe.Prober
	opts   Options
	last   time.Time

	list func(string) (browser.Listing, error)
}

// NewLoop creates a loop with an empty state. Call Open before the first tick.
func NewLoop(player *playback.Controller, prober probe.Prober, opts Options) *Loop {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	return &Loop{
		state:  State{player: player},
		player: player,
		prober: prober,
		opts:   opts,
		list:   browser.List,
	}
}

// State returns the state for rendering. Callers must not keep it past
// the current frame.
func (l *Loop) State() *State {
	return &l.state
}

// Open sets the starting directory and selects its first entry. The path is
// canonicalized when possible so ".." leads to the real parent. A listing
// failure is reported through LastError, never returned.
func (l *Loop) Open(dir string) {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	l.state.Dir = dir

	listing, err := l.list(dir)
	if err != nil {
		l.state.Listing = browser.Listing{}
		l.state.LastError = fmt.Sprintf("Failed to update directory list: %v", err)
	} else {
		l.state.Listing = listing
	}

	errMsg := l.state.LastError
	l.selectEntry(selection.At(0).Clamp(l.state.Listing.Len()))
	if errMsg != "" {
		l.state.LastError = errMsg
	}
}

// Tick advances playback time by the wall-clock delta since the previous tick
func (l *Loop) Tick(now time.Time) {
	if l.last.IsZero() {
		l.last = now
		return
	}
	delta := now.Sub(l.last)
	l.last = now

	if l.player.IsPlaying() {
		l.player.Advance(delta)
	}
}

// PollTimeout is how long to wait for input before the next tick
func (l *Loop) PollTimeout() time.Duration {
	if l.player.IsPlaying() {
		return l.opts.TickRate
	}
	return l.opts.IdleTimeout
}

// Dispatch applies cmd and reports whether the loop should terminate
func (l *Loop) Dispatch(cmd Command) bool {
	l.state.ClearError()

	switch cmd {
	case CmdQuit:
		return true
	case CmdNext:
		l.selectEntry(l.state.Selection.Next(l.state.Listing.Len()))
	case CmdPrevious:
		l.selectEntry(l.state.Selection.Previous(l.state.Listing.Len()))
	case CmdStop:
		if err := l.player.Stop(); err != nil {
			l.state.LastError = fmt.Sprintf("Playback Stop Error: %v", err)
		}
	case CmdActivate:
		l.activate()
	case CmdRefresh:
		l.refresh()
	}
	return false
}

// Shutdown stops any active playback
func (l *Loop) Shutdown() error {
	return l.player.Stop()
}

func (l *Loop) activate() {
	name, ok := l.state.SelectedName()
	if !ok {
		return
	}
	target := filepath.Join(l.state.Dir, name)

	switch l.state.SelectedKind() {
	case selection.KindFile:
		if err := l.player.Start(target); err != nil {
			l.state.LastError = fmt.Sprintf("Playback Error: %v", err)
		}

	case selection.KindDirectory:
		dir, err := canonicalize(target)
		if err != nil {
			l.state.LastError = fmt.Sprintf("Couldn't build path to selection: %v", err)
			return
		}

		listing, err := l.list(dir)
		if err != nil {
			// Keep the previous directory and its listing
			l.state.LastError = fmt.Sprintf("Failed to update directory list: %v", err)
			return
		}

		zlog.Debug().Str("dir", dir).Int("entries", listing.Len()).Msg("changed directory")
		l.state.Dir = dir
		l.state.Listing = listing
		l.selectEntry(selection.At(0).Clamp(listing.Len()))
	}
}

func (l *Loop) refresh() {
	listing, err := l.list(l.state.Dir)
	if err != nil {
		l.state.LastError = fmt.Sprintf("Failed to update directory list: %v", err)
		return
	}
	l.state.Listing = listing
	l.selectEntry(l.state.Selection.Clamp(listing.Len()))
}

// selectEntry moves the selection and refreshes the codec info for it
func (l *Loop) selectEntry(sel selection.Selection) {
	l.state.Selection = sel
	l.state.Info = nil

	if l.state.SelectedKind() != selection.KindFile {
		return
	}
	name, _ := l.state.SelectedName()

	info, err := l.prober.Probe(filepath.Join(l.state.Dir, name))
	if err != nil {
		l.state.LastError = fmt.Sprintf("Codec Info Error: %v", err)
		return
	}
	l.state.Info = &info
}

// canonicalize returns the absolute path of p with symlinks resolved
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", playerrors.NewPathResolutionError("absolute path", p, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", playerrors.NewPathResolutionError("canonicalize", p, err)
	}
	return resolved, nil
}
