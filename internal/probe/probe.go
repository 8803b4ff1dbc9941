// Package probe reads codec parameters and tags from audio files without
// decoding the audio itself.
package probe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/jscyril/spinup/api"
	playerrors "github.com/jscyril/spinup/pkg/errors"
	"github.com/mewkiz/flac"
)

// Prober retrieves CodecInfo for a file
type Prober interface {
	Probe(path string) (api.CodecInfo, error)
}

// Ensure FileProber implements Prober at compile time
var _ Prober = (*FileProber)(nil)

// FileProber inspects the header of each supported container
type FileProber struct {
	tags *TagReader
}

// NewFileProber creates a prober that also reads title/artist/album tags
func NewFileProber() *FileProber {
	return &FileProber{tags: NewTagReader()}
}

// Probe opens path and reads the parameters of its default track
func (p *FileProber) Probe(path string) (api.CodecInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return api.CodecInfo{}, playerrors.NewProbeError("open", path, err)
	}
	defer file.Close()

	var info api.CodecInfo
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".wav":
		info, err = probeWAV(file)
	case ".flac":
		info, err = probeFLAC(file)
	case ".ogg":
		info, err = probeOgg(file)
	case ".mp3":
		info, err = probeMP3(file)
	default:
		err = fmt.Errorf("%w: %s", playerrors.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return api.CodecInfo{}, playerrors.NewProbeError("probe", path, err)
	}

	if p.tags != nil {
		p.tags.Fill(file, &info)
	}

	return info, nil
}

func probeWAV(f *os.File) (api.CodecInfo, error) {
	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return api.CodecInfo{}, err
	}
	if !d.IsValidFile() {
		return api.CodecInfo{}, playerrors.ErrNoAudioTrack
	}

	return api.CodecInfo{
		Format:     "WAV",
		SampleRate: d.SampleRate,
		BitDepth:   d.BitDepth,
		Layout:     api.LayoutFromChannels(int(d.NumChans)),
	}, nil
}

func probeFLAC(f *os.File) (api.CodecInfo, error) {
	// flac.New parses only the signature and StreamInfo block
	stream, err := flac.New(f)
	if err != nil {
		return api.CodecInfo{}, err
	}
	si := stream.Info
	if si == nil {
		return api.CodecInfo{}, playerrors.ErrNoAudioTrack
	}

	return api.CodecInfo{
		Format:     "FLAC",
		SampleRate: si.SampleRate,
		BitDepth:   uint16(si.BitsPerSample),
		Layout:     api.LayoutFromChannels(int(si.NChannels)),
	}, nil
}

func probeOgg(f *os.File) (api.CodecInfo, error) {
	r, err := oggvorbis.NewReader(f)
	if err != nil {
		return api.CodecInfo{}, err
	}
	if r.SampleRate() <= 0 {
		return api.CodecInfo{}, playerrors.ErrNoAudioTrack
	}

	// Vorbis is a floating point codec and has no bit depth
	return api.CodecInfo{
		Format:     "Vorbis",
		SampleRate: uint32(r.SampleRate()),
		Layout:     api.LayoutFromChannels(r.Channels()),
	}, nil
}

// mp3FrameWindow bounds how far past any ID3v2 tag the first frame may start
const mp3FrameWindow = 64 << 10

func probeMP3(f *os.File) (api.CodecInfo, error) {
	limit := int64(mp3FrameWindow)
	var hdr [10]byte
	if n, _ := io.ReadFull(f, hdr[:]); n == len(hdr) && string(hdr[:3]) == "ID3" {
		// Tag size is a 28-bit syncsafe integer
		size := int64(hdr[6]&0x7f)<<21 | int64(hdr[7]&0x7f)<<14 | int64(hdr[8]&0x7f)<<7 | int64(hdr[9]&0x7f)
		limit += int64(len(hdr)) + size
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return api.CodecInfo{}, err
	}

	// go-mp3 walks every frame to compute the length when it can seek, so
	// hand it a plain reader over the leading bytes only.
	d, err := mp3.NewDecoder(bufio.NewReader(io.LimitReader(f, limit)))
	if err != nil {
		return api.CodecInfo{}, err
	}
	if d.SampleRate() <= 0 {
		return api.CodecInfo{}, playerrors.ErrNoAudioTrack
	}

	// go-mp3 always decodes to 16-bit stereo, so the source layout is unknown
	return api.CodecInfo{
		Format:     "MP3",
		SampleRate: uint32(d.SampleRate()),
	}, nil
}
