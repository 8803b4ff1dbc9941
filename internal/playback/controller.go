// Package playback owns the single active playback session.
package playback

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jscyril/spinup/api"
	"github.com/jscyril/spinup/internal/audio"
	playerrors "github.com/jscyril/spinup/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

// Session binds a loaded resource to its playback handle
type Session struct {
	id       string
	path     string
	resource audio.Resource
	handle   audio.Handle
	duration time.Duration
	elapsed  time.Duration
}

// ID identifies the session in logs
func (s *Session) ID() string { return s.id }

// Path is the file being played
func (s *Session) Path() string { return s.path }

// Duration is the total length reported by the engine
func (s *Session) Duration() time.Duration { return s.duration }

// Elapsed is the accumulated playtime
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Progress returns elapsed/duration clamped to [0, 1]
func (s *Session) Progress() float64 {
	if s.duration <= 0 {
		return 0
	}
	ratio := float64(s.elapsed) / float64(s.duration)
	switch {
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	default:
		return ratio
	}
}

// Controller starts and stops playback through an audio.Engine, keeping
// at most one session alive.
type Controller struct {
	engine  audio.Engine
	session *Session
}

// NewController creates a controller with no active session
func NewController(engine audio.Engine) *Controller {
	return &Controller{engine: engine}
}

// Session returns the active session, or nil
func (c *Controller) Session() *Session {
	return c.session
}

// Start loads path and plays it, replacing any active session. A file
// that cannot be decoded leaves the current session untouched; a failure
// after the old session was torn down leaves no session.
func (c *Controller) Start(path string) error {
	res, err := c.engine.Open(path)
	if err != nil {
		zlog.Warn().Err(err).Str("path", path).Msg("decode failed")
		return asPlaybackError("decode", path, err)
	}

	if err := c.Stop(); err != nil {
		res.Close()
		return err
	}

	handle, err := c.engine.Play(res)
	if err != nil {
		res.Close()
		zlog.Warn().Err(err).Str("path", path).Msg("play failed")
		return asPlaybackError("play", path, err)
	}

	c.session = &Session{
		id:       uuid.NewString(),
		path:     path,
		resource: res,
		handle:   handle,
		duration: res.Duration(),
	}
	zlog.Info().
		Str("session", c.session.id).
		Str("path", path).
		Dur("duration", c.session.duration).
		Msg("playback started")

	return nil
}

// Stop halts the active session immediately and releases it. Stopping
// with nothing active succeeds.
func (c *Controller) Stop() error {
	s := c.session
	if s == nil {
		return nil
	}

	if err := c.engine.Stop(s.handle); err != nil {
		zlog.Error().Err(err).Str("session", s.id).Msg("stop failed")
		return asPlaybackError("stop", s.path, err)
	}

	if err := s.resource.Close(); err != nil {
		zlog.Debug().Err(err).Str("session", s.id).Msg("close resource")
	}
	s.elapsed = 0
	c.session = nil

	zlog.Info().Str("session", s.id).Msg("playback stopped")
	return nil
}

// IsPlaying reports whether a session exists and the engine is playing it
func (c *Controller) IsPlaying() bool {
	return c.session != nil && c.session.handle.State() == api.StatePlaying
}

// Advance adds d to the elapsed time while playing, saturating at the
// largest representable duration.
func (c *Controller) Advance(d time.Duration) {
	if d <= 0 || !c.IsPlaying() {
		return
	}
	s := c.session
	if s.elapsed > math.MaxInt64-d {
		s.elapsed = math.MaxInt64
		return
	}
	s.elapsed += d
}

// asPlaybackError keeps engine errors that are already typed
func asPlaybackError(op, path string, err error) error {
	var pe *playerrors.Error
	if playerrors.As(err, &pe) && pe.Kind == playerrors.KindPlayback {
		return err
	}
	return playerrors.NewPlaybackError(op, path, err)
}
