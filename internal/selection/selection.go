// Package selection tracks the highlighted entry of the combined
// directory and file list.
package selection

import (
	"strings"

	"github.com/jscyril/spinup/internal/browser"
)

// Kind is what a selection points at
type Kind int

const (
	KindNone Kind = iota
	KindDirectory
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "none"
	}
}

// KindOf classifies index within a combined list of dirCount directories
// followed by fileCount files.
func KindOf(index, dirCount, fileCount int) Kind {
	switch {
	case index < 0:
		return KindNone
	case index < dirCount:
		return KindDirectory
	case index < dirCount+fileCount:
		return KindFile
	default:
		return KindNone
	}
}

// Selection is an optional index into the combined list
type Selection struct {
	index int
	valid bool
}

// None returns an empty selection
func None() Selection {
	return Selection{}
}

// At returns a selection of index i
func At(i int) Selection {
	if i < 0 {
		return None()
	}
	return Selection{index: i, valid: true}
}

// Index returns the selected index and whether one is set
func (s Selection) Index() (int, bool) {
	return s.index, s.valid
}

// IsNone reports whether nothing is selected
func (s Selection) IsNone() bool {
	return !s.valid
}

// Kind classifies the selection against a listing
func (s Selection) Kind(l browser.Listing) Kind {
	if !s.valid {
		return KindNone
	}
	return KindOf(s.index, len(l.Directories), len(l.Files))
}

// Next moves forward with wraparound. From no selection it selects 0.
// An empty list always yields no selection.
func (s Selection) Next(total int) Selection {
	if total <= 0 {
		return None()
	}
	if !s.valid || s.index >= total-1 {
		return At(0)
	}
	return At(s.index + 1)
}

// Previous moves backward with wraparound. From no selection it selects 0,
// not the last entry.
func (s Selection) Previous(total int) Selection {
	if total <= 0 {
		return None()
	}
	if !s.valid {
		return At(0)
	}
	if s.index == 0 || s.index > total-1 {
		return At(total - 1)
	}
	return At(s.index - 1)
}

// Clamp keeps the selection inside a list of total entries
func (s Selection) Clamp(total int) Selection {
	if !s.valid || total <= 0 {
		return None()
	}
	if s.index >= total {
		return At(total - 1)
	}
	return s
}

// ResolveName returns the real filesystem name behind the selected entry.
// Directory entries have their display prefix stripped.
func ResolveName(l browser.Listing, s Selection) (string, bool) {
	switch s.Kind(l) {
	case KindDirectory:
		return strings.TrimPrefix(l.Directories[s.index], browser.DirPrefix), true
	case KindFile:
		return l.Files[s.index-len(l.Directories)], true
	default:
		return "", false
	}
}
