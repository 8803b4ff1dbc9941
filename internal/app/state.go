// Package app holds the application state and the tick/dispatch loop that
// drives navigation, playback and codec info refreshes.
package app

import (
	"github.com/jscyril/spinup/api"
	"github.com/jscyril/spinup/internal/browser"
	"github.com/jscyril/spinup/internal/playback"
	"github.com/jscyril/spinup/internal/selection"
)

// State is everything the renderer needs for one frame
type State struct {
	Dir       string
	Listing   browser.Listing
	Selection selection.Selection
	// Info is nil unless a file is selected and could be probed
	Info      *api.CodecInfo
	LastError string

	player *playback.Controller
}

// Session returns the active playback session, or nil
func (s *State) Session() *playback.Session {
	if s.player == nil {
		return nil
	}
	return s.player.Session()
}

// IsPlaying reports whether the active session is playing
func (s *State) IsPlaying() bool {
	return s.player != nil && s.player.IsPlaying()
}

// SelectedKind classifies the current selection
func (s *State) SelectedKind() selection.Kind {
	return s.Selection.Kind(s.Listing)
}

// SelectedName returns the real name behind the current selection
func (s *State) SelectedName() (string, bool) {
	return selection.ResolveName(s.Listing, s.Selection)
}

// ClearError resets the last error message
func (s *State) ClearError() {
	s.LastError = ""
}
