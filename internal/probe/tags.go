package probe

import (
	"io"

	"github.com/dhowden/tag"
	"github.com/jscyril/spinup/api"
	zlog "github.com/rs/zerolog/log"
)

// TagReader extracts title/artist/album from embedded tags
type TagReader struct{}

// NewTagReader creates a new tag reader
func NewTagReader() *TagReader {
	return &TagReader{}
}

// Fill copies any tags found in r into info. Missing or unreadable tags
// are not an error; the fields simply stay empty.
func (t *TagReader) Fill(r io.ReadSeeker, info *api.CodecInfo) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return
	}

	metadata, err := tag.ReadFrom(r)
	if err != nil {
		zlog.Debug().Err(err).Msg("no tags")
		return
	}

	info.Title = metadata.Title()
	info.Artist = metadata.Artist()
	info.Album = metadata.Album()
}
