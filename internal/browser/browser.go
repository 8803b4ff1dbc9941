// Package browser lists one directory level as parent and subdirectory
// entries followed by playable audio files.
package browser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	playerrors "github.com/jscyril/spinup/pkg/errors"
)

const (
	// DirPrefix marks directory entries in the combined list
	DirPrefix = "<DIR> "
	// ParentName is the token for the parent directory entry
	ParentName = ".."
)

var supportedFormats = []string{".wav", ".ogg", ".mp3", ".flac"}

// IsSupported checks if a file name carries a playable extension
func IsSupported(name string) bool {
	ext := filepath.Ext(name)
	for _, format := range supportedFormats {
		if strings.EqualFold(ext, format) {
			return true
		}
	}
	return false
}

// Listing is one level of a directory: decorated directory names first,
// then plain audio file names.
type Listing struct {
	Directories []string
	Files       []string
}

// Len returns the size of the combined list
func (l Listing) Len() int {
	return len(l.Directories) + len(l.Files)
}

// IsEmpty reports whether there is nothing to select
func (l Listing) IsEmpty() bool {
	return l.Len() == 0
}

// Combined returns directories followed by files
func (l Listing) Combined() []string {
	combined := make([]string, 0, l.Len())
	combined = append(combined, l.Directories...)
	return append(combined, l.Files...)
}

// HasParent reports whether path has a parent directory to navigate to
func HasParent(path string) bool {
	clean := filepath.Clean(path)
	return filepath.Dir(clean) != clean
}

// List reads the immediate children of path. It returns a complete listing
// or an error, never a partial result.
func List(path string) (Listing, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return Listing{}, playerrors.NewFilesystemError("read directory", path, err)
	}

	var dirs, files []string

	for _, entry := range entries {
		name := entry.Name()
		// Skip hidden files
		if strings.HasPrefix(name, ".") {
			continue
		}

		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(path, name))
			if err != nil {
				// Dangling link
				continue
			}
			mode = info.Mode()
		}

		switch {
		case mode.IsDir():
			dirs = append(dirs, name)
		case mode.IsRegular() && IsSupported(name):
			files = append(files, name)
		}
	}

	sortFold(dirs)
	sortFold(files)

	listing := Listing{
		Directories: make([]string, 0, len(dirs)+1),
		Files:       files,
	}
	if HasParent(path) {
		listing.Directories = append(listing.Directories, DirPrefix+ParentName)
	}
	for _, d := range dirs {
		listing.Directories = append(listing.Directories, DirPrefix+d)
	}
	if listing.Files == nil {
		listing.Files = []string{}
	}

	return listing, nil
}

// sortFold sorts case-insensitively, breaking ties by the raw name
func sortFold(names []string) {
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}
