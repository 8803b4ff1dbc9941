// Package audiotest provides an in-memory audio.Engine for tests.
package audiotest

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/jscyril/spinup/api"
	"github.com/jscyril/spinup/internal/audio"
)

// ErrCorrupt is returned by Open for paths registered with Corrupt
var ErrCorrupt = errors.New("corrupt audio data")

// Resource is a fake decoded file
type Resource struct {
	path     string
	duration time.Duration
	Closed   bool
}

func (r *Resource) Path() string            { return r.path }
func (r *Resource) Duration() time.Duration { return r.duration }

func (r *Resource) Close() error {
	r.Closed = true
	return nil
}

// Handle is a fake playback whose state tests can change
type Handle struct {
	Resource *Resource
	Current  api.TransportState
}

func (h *Handle) State() api.TransportState { return h.Current }

// Engine records calls and fails on demand
type Engine struct {
	Durations map[string]time.Duration
	Corrupt   map[string]bool

	PlayErr error
	StopErr error

	Opened  []*Resource
	Handles []*Handle
	Stopped []*Handle
}

var _ audio.Engine = (*Engine)(nil)

// NewEngine creates a fake engine where every file lasts one minute
func NewEngine() *Engine {
	return &Engine{
		Durations: make(map[string]time.Duration),
		Corrupt:   make(map[string]bool),
	}
}

// Open fails for corrupt paths, otherwise returns a fake resource
func (e *Engine) Open(path string) (audio.Resource, error) {
	if e.Corrupt[path] || e.Corrupt[filepath.Base(path)] {
		return nil, ErrCorrupt
	}
	d, ok := e.Durations[path]
	if !ok {
		d = time.Minute
	}
	r := &Resource{path: path, duration: d}
	e.Opened = append(e.Opened, r)
	return r, nil
}

// Play returns a playing handle unless PlayErr is set
func (e *Engine) Play(r audio.Resource) (audio.Handle, error) {
	if e.PlayErr != nil {
		return nil, e.PlayErr
	}
	h := &Handle{Resource: r.(*Resource), Current: api.StatePlaying}
	e.Handles = append(e.Handles, h)
	return h, nil
}

// Stop marks h stopped unless StopErr is set
func (e *Engine) Stop(h audio.Handle) error {
	if e.StopErr != nil {
		return e.StopErr
	}
	fh := h.(*Handle)
	fh.Current = api.StateStopped
	e.Stopped = append(e.Stopped, fh)
	return nil
}

// Playing returns the handles still in the playing state
func (e *Engine) Playing() []*Handle {
	var playing []*Handle
	for _, h := range e.Handles {
		if h.Current == api.StatePlaying {
			playing = append(playing, h)
		}
	}
	return playing
}
