package errors

import (
	"errors"
	"fmt"
)

// As is re-exported so callers only need one errors import
var As = errors.As

// Sentinel errors for common conditions
var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidHandle     = errors.New("handle does not belong to this engine")
	ErrNoAudioTrack      = errors.New("no audio track found")
)

// Kind classifies an Error
type Kind int

const (
	KindUnknown Kind = iota
	KindFilesystem
	KindPlayback
	KindProbe
	KindPathResolution
)

func (k Kind) String() string {
	switch k {
	case KindFilesystem:
		return "filesystem"
	case KindPlayback:
		return "playback"
	case KindProbe:
		return "probe"
	case KindPathResolution:
		return "path resolution"
	default:
		return "unknown"
	}
}

// Error wraps errors with the operation and path that failed
type Error struct {
	Kind Kind
	Op   string // Operation that failed
	Path string // File or directory if applicable
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewFilesystemError reports an unreadable directory or entry
func NewFilesystemError(op, path string, err error) *Error {
	return &Error{Kind: KindFilesystem, Op: op, Path: path, Err: err}
}

// NewPlaybackError reports a decode, start or stop failure
func NewPlaybackError(op, path string, err error) *Error {
	return &Error{Kind: KindPlayback, Op: op, Path: path, Err: err}
}

// NewProbeError reports an unreadable or unsupported codec
func NewProbeError(op, path string, err error) *Error {
	return &Error{Kind: KindProbe, Op: op, Path: path, Err: err}
}

// NewPathResolutionError reports a canonicalization failure
func NewPathResolutionError(op, path string, err error) *Error {
	return &Error{Kind: KindPathResolution, Op: op, Path: path, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
