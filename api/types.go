package api

import "fmt"

// TransportState is the state an audio engine reports for a playback handle
type TransportState int

const (
	StateStopped TransportState = iota
	StatePlaying
	StatePaused
	StateFinished
)

func (s TransportState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ChannelLayout categorizes the channel arrangement of an audio track
type ChannelLayout int

const (
	LayoutUnknown ChannelLayout = iota
	LayoutMono
	LayoutStereo
	LayoutTwoPointOne
	LayoutFivePointOne
)

// LayoutFromChannels maps a channel count to a known layout
func LayoutFromChannels(n int) ChannelLayout {
	switch n {
	case 1:
		return LayoutMono
	case 2:
		return LayoutStereo
	case 3:
		return LayoutTwoPointOne
	case 6:
		return LayoutFivePointOne
	default:
		return LayoutUnknown
	}
}

func (l ChannelLayout) String() string {
	switch l {
	case LayoutMono:
		return "Mono"
	case LayoutStereo:
		return "Stereo"
	case LayoutTwoPointOne:
		return "2.1"
	case LayoutFivePointOne:
		return "5.1"
	default:
		return ""
	}
}

// CodecInfo describes the default track of an audio file.
// Zero values mean the field is unavailable.
type CodecInfo struct {
	Format     string        `json:"format"`
	SampleRate uint32        `json:"sample_rate"`
	BitDepth   uint16        `json:"bit_depth"`
	Layout     ChannelLayout `json:"layout"`
	Title      string        `json:"title"`
	Artist     string        `json:"artist"`
	Album      string        `json:"album"`
}

// Lines returns the human readable fields that are present
func (c CodecInfo) Lines() []string {
	var lines []string
	if c.Format != "" {
		lines = append(lines, fmt.Sprintf("Format: %s", c.Format))
	}
	if c.SampleRate > 0 {
		lines = append(lines, fmt.Sprintf("Sample Rate: %d", c.SampleRate))
	}
	if c.BitDepth > 0 {
		lines = append(lines, fmt.Sprintf("Bit Depth: %d", c.BitDepth))
	}
	if c.Layout != LayoutUnknown {
		lines = append(lines, fmt.Sprintf("Layout: %s", c.Layout))
	}
	if c.Title != "" {
		lines = append(lines, fmt.Sprintf("Title: %s", c.Title))
	}
	if c.Artist != "" {
		lines = append(lines, fmt.Sprintf("Artist: %s", c.Artist))
	}
	if c.Album != "" {
		lines = append(lines, fmt.Sprintf("Album: %s", c.Album))
	}
	return lines
}

// EventType identifies an audio engine event
type EventType int

const (
	EventTrackStarted EventType = iota
	EventTrackStopped
	EventTrackEnded
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventTrackStarted:
		return "track_started"
	case EventTrackStopped:
		return "track_stopped"
	case EventTrackEnded:
		return "track_ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// AudioEvent is published by the audio engine
type AudioEvent struct {
	Type EventType
	Path string
	Err  error
}
