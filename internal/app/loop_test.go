package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jscyril/spinup/api"
	"github.com/jscyril/spinup/internal/audio/audiotest"
	"github.com/jscyril/spinup/internal/browser"
	"github.com/jscyril/spinup/internal/playback"
	"github.com/jscyril/spinup/internal/selection"
	"github.com/jscyril/spinup/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProber returns a fixed CodecInfo, failing for names in bad
type fakeProber struct {
	bad   map[string]bool
	calls []string
}

func (p *fakeProber) Probe(path string) (api.CodecInfo, error) {
	p.calls = append(p.calls, path)
	if p.bad[filepath.Base(path)] {
		return api.CodecInfo{}, errors.New("unreadable header")
	}
	return api.CodecInfo{Format: "WAV", SampleRate: 44100, BitDepth: 16, Layout: api.LayoutStereo}, nil
}

type fixture struct {
	root   string
	engine *audiotest.Engine
	prober *fakeProber
	loop   *Loop
}

// newFixture builds root/{music/{a.wav,bad.mp3}, notes.txt, song.flac}
func newFixture(t *testing.T) *fixture {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(root, "music"), 0755))
	testutils.CreateTestFilesWithContent(t, root, map[string]string{
		"notes.txt":     "not audio",
		"song.flac":     "x",
		"music/a.wav":   "x",
		"music/bad.mp3": "x",
	})

	f := &fixture{
		root:   root,
		engine: audiotest.NewEngine(),
		prober: &fakeProber{bad: map[string]bool{"bad.mp3": true}},
	}
	f.loop = NewLoop(playback.NewController(f.engine), f.prober, Options{
		TickRate:    50 * time.Millisecond,
		IdleTimeout: time.Second,
	})
	return f
}

func TestOpenSelectsFirstEntry(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)

	st := f.loop.State()
	assert.Equal(t, f.root, st.Dir)
	assert.Equal(t, []string{"<DIR> ..", "<DIR> music"}, st.Listing.Directories)
	assert.Equal(t, []string{"song.flac"}, st.Listing.Files)

	idx, ok := st.Selection.Index()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, selection.KindDirectory, st.SelectedKind())
	assert.Nil(t, st.Info)
	assert.Empty(t, st.LastError)
}

func TestOpenMissingDirectory(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(filepath.Join(f.root, "nope"))

	st := f.loop.State()
	assert.True(t, st.Listing.IsEmpty())
	assert.True(t, st.Selection.IsNone())
	assert.Contains(t, st.LastError, "Failed to update directory list:")
}

func TestOpenSymlinkedDirectoryUsesRealParent(t *testing.T) {
	f := newFixture(t)
	inner := filepath.Join(f.root, "real", "inner")
	require.NoError(t, os.MkdirAll(inner, 0755))
	link := filepath.Join(f.root, "link")
	require.NoError(t, os.Symlink(inner, link))

	f.loop.Open(link)
	st := f.loop.State()
	assert.Equal(t, inner, st.Dir)
	assert.Empty(t, st.LastError)

	// ".." is entry 0
	f.loop.Dispatch(CmdActivate)
	assert.Equal(t, filepath.Join(f.root, "real"), st.Dir)
	assert.Empty(t, st.LastError)
}

func TestNavigationRefreshesInfo(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)
	st := f.loop.State()

	assert.False(t, f.loop.Dispatch(CmdNext))
	assert.False(t, f.loop.Dispatch(CmdNext))
	assert.Equal(t, selection.KindFile, st.SelectedKind())
	require.NotNil(t, st.Info)
	assert.Equal(t, uint32(44100), st.Info.SampleRate)
	assert.Equal(t, filepath.Join(f.root, "song.flac"), f.prober.calls[len(f.prober.calls)-1])

	// Wraps back to ".."
	f.loop.Dispatch(CmdNext)
	idx, _ := st.Selection.Index()
	assert.Equal(t, 0, idx)
	assert.Nil(t, st.Info)

	f.loop.Dispatch(CmdPrevious)
	idx, _ = st.Selection.Index()
	assert.Equal(t, 2, idx)
	assert.NotNil(t, st.Info)
}

func TestActivateDirectoryResetsSelection(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)
	st := f.loop.State()

	f.loop.Dispatch(CmdNext)
	f.loop.Dispatch(CmdActivate)

	assert.Equal(t, filepath.Join(f.root, "music"), st.Dir)
	assert.Equal(t, []string{"<DIR> .."}, st.Listing.Directories)
	assert.Equal(t, []string{"a.wav", "bad.mp3"}, st.Listing.Files)
	idx, ok := st.Selection.Index()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Empty(t, st.LastError)

	// ".." leads back up
	f.loop.Dispatch(CmdActivate)
	assert.Equal(t, f.root, st.Dir)
}

func TestActivateVanishedDirectoryKeepsState(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)
	st := f.loop.State()
	f.loop.Dispatch(CmdNext)

	require.NoError(t, os.RemoveAll(filepath.Join(f.root, "music")))
	before := st.Listing

	f.loop.Dispatch(CmdActivate)
	assert.Contains(t, st.LastError, "Couldn't build path to selection:")
	assert.Equal(t, f.root, st.Dir)
	assert.Equal(t, before, st.Listing)
	idx, _ := st.Selection.Index()
	assert.Equal(t, 1, idx)
}

func TestActivateUnreadableDirectoryKeepsState(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)
	st := f.loop.State()
	f.loop.Dispatch(CmdNext)

	f.loop.list = func(dir string) (browser.Listing, error) {
		return browser.Listing{}, errors.New("permission denied")
	}
	f.loop.Dispatch(CmdActivate)

	assert.Equal(t, "Failed to update directory list: permission denied", st.LastError)
	assert.Equal(t, f.root, st.Dir)
	assert.Len(t, st.Listing.Directories, 2)
}

func TestActivateFileStartsPlayback(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)
	st := f.loop.State()

	f.loop.Dispatch(CmdNext)
	f.loop.Dispatch(CmdActivate) // into music
	f.loop.Dispatch(CmdNext)     // a.wav
	f.loop.Dispatch(CmdActivate)

	require.NotNil(t, st.Session())
	assert.Equal(t, filepath.Join(f.root, "music", "a.wav"), st.Session().Path())
	assert.True(t, st.IsPlaying())
	assert.Empty(t, st.LastError)
}

func TestCorruptFileKeepsSession(t *testing.T) {
	f := newFixture(t)
	f.engine.Corrupt["bad.mp3"] = true
	f.loop.Open(f.root)
	st := f.loop.State()

	f.loop.Dispatch(CmdNext)
	f.loop.Dispatch(CmdActivate)
	f.loop.Dispatch(CmdNext)
	f.loop.Dispatch(CmdActivate)
	playing := st.Session()
	require.NotNil(t, playing)

	f.loop.Dispatch(CmdNext) // bad.mp3, probe fails too
	assert.Contains(t, st.LastError, "Codec Info Error:")
	assert.Nil(t, st.Info)

	f.loop.Dispatch(CmdActivate)
	assert.Contains(t, st.LastError, "Playback Error:")
	assert.Same(t, playing, st.Session())
	assert.True(t, st.IsPlaying())

	// Any further command clears the message
	f.loop.Dispatch(CmdPrevious)
	assert.Empty(t, st.LastError)
}

func TestStopCommand(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)
	st := f.loop.State()

	// Nothing to stop
	f.loop.Dispatch(CmdStop)
	assert.Empty(t, st.LastError)

	f.loop.Dispatch(CmdPrevious)
	f.loop.Dispatch(CmdActivate)
	require.True(t, st.IsPlaying())

	f.engine.StopErr = errors.New("device busy")
	f.loop.Dispatch(CmdStop)
	assert.Equal(t, "Playback Stop Error: stop failed for "+filepath.Join(f.root, "song.flac")+": device busy", st.LastError)
	assert.NotNil(t, st.Session())

	f.engine.StopErr = nil
	f.loop.Dispatch(CmdStop)
	assert.Empty(t, st.LastError)
	assert.Nil(t, st.Session())
	assert.False(t, st.IsPlaying())
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)
	assert.True(t, f.loop.Dispatch(CmdQuit))
	assert.False(t, f.loop.Dispatch(CmdNone))
}

func TestTickAdvancesWhilePlaying(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)
	st := f.loop.State()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	f.loop.Tick(start)
	assert.Equal(t, time.Second, f.loop.PollTimeout())

	f.loop.Dispatch(CmdPrevious)
	f.loop.Dispatch(CmdActivate)
	assert.Equal(t, 50*time.Millisecond, f.loop.PollTimeout())

	f.loop.Tick(start.Add(200 * time.Millisecond))
	f.loop.Tick(start.Add(300 * time.Millisecond))
	assert.Equal(t, 300*time.Millisecond, st.Session().Elapsed())

	f.engine.Handles[0].Current = api.StateFinished
	f.loop.Tick(start.Add(time.Second))
	assert.Equal(t, 300*time.Millisecond, st.Session().Elapsed())
	assert.Equal(t, time.Second, f.loop.PollTimeout())
}

func TestRefreshClampsSelection(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)
	st := f.loop.State()

	f.loop.Dispatch(CmdPrevious) // song.flac
	require.NoError(t, os.Remove(filepath.Join(f.root, "song.flac")))

	f.loop.Dispatch(CmdRefresh)
	assert.Empty(t, st.Listing.Files)
	idx, ok := st.Selection.Index()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Nil(t, st.Info)
}

func TestShutdownStopsPlayback(t *testing.T) {
	f := newFixture(t)
	f.loop.Open(f.root)
	f.loop.Dispatch(CmdPrevious)
	f.loop.Dispatch(CmdActivate)

	require.NoError(t, f.loop.Shutdown())
	assert.Empty(t, f.engine.Playing())
	assert.Nil(t, f.loop.State().Session())
}
