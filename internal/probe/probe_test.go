package probe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jscyril/spinup/api"
	playerrors "github.com/jscyril/spinup/pkg/errors"
	"github.com/jscyril/spinup/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeWAV(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		sampleRate int
		bitDepth   int
		channels   int
		layout     api.ChannelLayout
	}{
		{"stereo cd", 44100, 16, 2, api.LayoutStereo},
		{"mono 24bit", 48000, 24, 1, api.LayoutMono},
		{"quad", 22050, 16, 4, api.LayoutUnknown},
	}

	p := NewFileProber()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutils.WriteWAV(t, dir, tt.name+".wav", tt.sampleRate, tt.bitDepth, tt.channels, 100)

			info, err := p.Probe(path)
			require.NoError(t, err)

			assert.Equal(t, "WAV", info.Format)
			assert.Equal(t, uint32(tt.sampleRate), info.SampleRate)
			assert.Equal(t, uint16(tt.bitDepth), info.BitDepth)
			assert.Equal(t, tt.layout, info.Layout)
			assert.Empty(t, info.Title)
		})
	}
}

func TestFLACStreamInfo(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		sampleRate uint32
		bitDepth   uint8
		channels   uint8
		layout     api.ChannelLayout
	}{
		{"hires stereo", 48000, 24, 2, api.LayoutStereo},
		{"mono", 44100, 16, 1, api.LayoutMono},
		{"surround", 96000, 24, 6, api.LayoutFivePointOne},
	}

	p := NewFileProber()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutils.WriteFLAC(t, dir, tt.name+".flac", tt.sampleRate, tt.bitDepth, tt.channels)

			info, err := p.Probe(path)
			require.NoError(t, err)

			assert.Equal(t, "FLAC", info.Format)
			assert.Equal(t, tt.sampleRate, info.SampleRate)
			assert.Equal(t, uint16(tt.bitDepth), info.BitDepth)
			assert.Equal(t, tt.layout, info.Layout)
		})
	}
}

func TestVorbisWithTags(t *testing.T) {
	info, err := NewFileProber().Probe(filepath.Join("testdata", "sample.ogg"))
	require.NoError(t, err)

	assert.Equal(t, "Vorbis", info.Format)
	assert.Equal(t, uint32(44100), info.SampleRate)
	assert.Equal(t, api.LayoutStereo, info.Layout)
	assert.Zero(t, info.BitDepth)
	assert.Equal(t, "Test Title", info.Title)
	assert.Equal(t, "Test Artist", info.Artist)
	assert.Equal(t, "Test Album", info.Album)
}

func TestMP3WithTags(t *testing.T) {
	info, err := NewFileProber().Probe(filepath.Join("testdata", "sample.mp3"))
	require.NoError(t, err)

	assert.Equal(t, "MP3", info.Format)
	assert.Equal(t, uint32(44100), info.SampleRate)
	// The decoder does not expose the source channel mode
	assert.Equal(t, api.LayoutUnknown, info.Layout)
	assert.Equal(t, "Test Title", info.Title)
	assert.Equal(t, "Test Artist", info.Artist)
	assert.Equal(t, "Test Album", info.Album)
}

func TestLargeInvalidMP3FailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.mp3")
	require.NoError(t, os.WriteFile(path, make([]byte, 4<<20), 0644))

	start := time.Now()
	_, err := NewFileProber().Probe(path)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestProbeUppercaseExtension(t *testing.T) {
	path := testutils.WriteWAV(t, t.TempDir(), "LOUD.WAV", 44100, 16, 2, 10)

	info, err := NewFileProber().Probe(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(44100), info.SampleRate)
}

func TestProbeErrors(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"garbage.wav":  "definitely not audio",
		"garbage.flac": "definitely not audio",
		"garbage.ogg":  "definitely not audio",
		"readme.txt":   "text",
	})

	tests := []struct {
		name string
		file string
	}{
		{"missing", "missing.wav"},
		{"bad wav", "garbage.wav"},
		{"bad flac", "garbage.flac"},
		{"bad ogg", "garbage.ogg"},
		{"unsupported", "readme.txt"},
	}

	p := NewFileProber()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := p.Probe(filepath.Join(dir, tt.file))
			require.Error(t, err)
			assert.Equal(t, playerrors.KindProbe, playerrors.KindOf(err))
			assert.Equal(t, api.CodecInfo{}, info)
		})
	}
}

func TestCodecInfoLines(t *testing.T) {
	info := api.CodecInfo{SampleRate: 44100, Layout: api.LayoutFivePointOne, Artist: "Someone"}

	assert.Equal(t, []string{"Sample Rate: 44100", "Layout: 5.1", "Artist: Someone"}, info.Lines())
	assert.Empty(t, api.CodecInfo{}.Lines())
}
