package components

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jscyril/spinup/pkg/testutils"
	"github.com/stretchr/testify/assert"
)

func TestProgressRatioClamps(t *testing.T) {
	p := NewProgressBar(40)
	assert.Zero(t, p.Ratio())

	p.SetProgress(30*time.Second, time.Minute)
	assert.InDelta(t, 0.5, p.Ratio(), 1e-9)

	p.SetProgress(2*time.Minute, time.Minute)
	assert.Equal(t, 1.0, p.Ratio())

	p.SetProgress(-time.Second, time.Minute)
	assert.Zero(t, p.Ratio())
}

func TestProgressView(t *testing.T) {
	p := NewProgressBar(32)
	p.SetProgress(90*time.Second, 3*time.Minute)

	out := testutils.StripANSI(p.View())
	assert.True(t, strings.HasSuffix(out, " 01:30/03:00"), out)
	assert.Equal(t, 10, strings.Count(out, "█"))
	assert.Equal(t, 10, strings.Count(out, "░"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", formatDuration(0))
	assert.Equal(t, "01:05", formatDuration(65*time.Second))
	assert.Equal(t, "00:00", formatDuration(-time.Second))
	assert.Equal(t, "61:01", formatDuration(time.Hour+time.Minute+time.Second))
}

func TestEntryListKeepsSelectionVisible(t *testing.T) {
	var items []string
	for i := 0; i < 20; i++ {
		items = append(items, fmt.Sprintf("track%02d.wav", i))
	}

	l := NewEntryList(30, 8)
	l.SetItems(items, 10)
	assert.Equal(t, 6, l.Offset)

	out := testutils.StripANSI(l.View())
	assert.Contains(t, out, ">> track10.wav")
	assert.Contains(t, out, "track06.wav")
	assert.NotContains(t, out, "track05.wav")
	assert.NotContains(t, out, "track11.wav")

	l.SetItems(items, 2)
	assert.Equal(t, 2, l.Offset)
}

func TestEntryListNoSelection(t *testing.T) {
	l := NewEntryList(30, 8)
	l.Title = "Dir: /music"
	l.SetItems(nil, -1)

	out := testutils.StripANSI(l.View())
	assert.Contains(t, out, "Dir: /music")
	assert.NotContains(t, out, HighlightSymbol)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
