package audio

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/jscyril/spinup/api"
	playerrors "github.com/jscyril/spinup/pkg/errors"
	"github.com/jscyril/spinup/pkg/events"
	zlog "github.com/rs/zerolog/log"
)

const resampleQuality = 4

// Resource is a decoded audio file ready to play
type Resource interface {
	Path() string
	Duration() time.Duration
	Close() error
}

// Handle is a live playback of a Resource
type Handle interface {
	State() api.TransportState
}

// Engine decodes files and drives the output device
type Engine interface {
	Open(path string) (Resource, error)
	Play(r Resource) (Handle, error)
	Stop(h Handle) error
}

// Ensure BeepEngine implements Engine at compile time
var _ Engine = (*BeepEngine)(nil)

// BeepEngine plays decoded files through the beep speaker. The speaker
// mixes on its own goroutine; handles are polled for their state.
type BeepEngine struct {
	sampleRate beep.SampleRate
	bus        *events.Bus
}

// NewBeepEngine initializes the output device. It fails when no output
// stream can be allocated.
func NewBeepEngine(sampleRate int, buffer time.Duration, bus *events.Bus) (*BeepEngine, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(buffer)); err != nil {
		return nil, playerrors.NewPlaybackError("speaker_init", "", err)
	}
	if bus == nil {
		bus = events.NewBus()
	}

	zlog.Debug().Int("sample_rate", sampleRate).Dur("buffer", buffer).Msg("audio output initialized")

	return &BeepEngine{sampleRate: sr, bus: bus}, nil
}

// Decoded is a file opened and decoded by DecodeAudio
type Decoded struct {
	path     string
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// Open decodes path without touching the output device
func Open(path string) (*Decoded, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, playerrors.NewPlaybackError("open", path, err)
	}

	streamer, format, err := DecodeAudio(file, path)
	if err != nil {
		file.Close()
		return nil, playerrors.NewPlaybackError("decode", path, err)
	}

	return &Decoded{path: path, streamer: streamer, format: format}, nil
}

func (d *Decoded) Path() string { return d.path }

// Format returns the decoded stream format
func (d *Decoded) Format() beep.Format { return d.format }

// Duration returns the total length of the decoded stream
func (d *Decoded) Duration() time.Duration {
	return d.format.SampleRate.D(d.streamer.Len())
}

// Close releases the decoder and the underlying file
func (d *Decoded) Close() error {
	return d.streamer.Close()
}

type playback struct {
	path  string
	ctrl  *beep.Ctrl
	state atomic.Int32
}

func (p *playback) State() api.TransportState {
	return api.TransportState(p.state.Load())
}

// Open decodes the file at path
func (e *BeepEngine) Open(path string) (Resource, error) {
	d, err := Open(path)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Play starts r on the speaker, resampling to the device rate when needed
func (e *BeepEngine) Play(r Resource) (Handle, error) {
	d, ok := r.(*Decoded)
	if !ok {
		return nil, playerrors.NewPlaybackError("play", r.Path(), playerrors.ErrInvalidHandle)
	}

	var s beep.Streamer = d.streamer
	if d.format.SampleRate != e.sampleRate {
		s = beep.Resample(resampleQuality, d.format.SampleRate, e.sampleRate, s)
	}

	p := &playback{path: d.path, ctrl: &beep.Ctrl{Streamer: s}}
	p.state.Store(int32(api.StatePlaying))

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// Runs on the speaker goroutine
		if !p.state.CompareAndSwap(int32(api.StatePlaying), int32(api.StateFinished)) {
			return
		}
		if err := d.streamer.Err(); err != nil {
			e.bus.Publish(api.AudioEvent{Type: api.EventError, Path: p.path, Err: err})
		}
		e.bus.Publish(api.AudioEvent{Type: api.EventTrackEnded, Path: p.path})
	})))

	e.bus.Publish(api.AudioEvent{Type: api.EventTrackStarted, Path: p.path})
	return p, nil
}

// Stop halts h immediately. The speaker no longer reads from its
// resource once Stop returns.
func (e *BeepEngine) Stop(h Handle) error {
	p, ok := h.(*playback)
	if !ok {
		return playerrors.NewPlaybackError("stop", "", playerrors.ErrInvalidHandle)
	}

	p.state.Store(int32(api.StateStopped))
	speaker.Lock()
	p.ctrl.Streamer = nil
	speaker.Unlock()

	e.bus.Publish(api.AudioEvent{Type: api.EventTrackStopped, Path: p.path})
	return nil
}

// Close silences the speaker
func (e *BeepEngine) Close() {
	speaker.Clear()
}
