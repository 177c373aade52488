package library

import (
	"sort"

	"github.com/handiism/baran-dl/internal/model"
)

// Snapshot is the set of album and track names already present in the local
// library for one artist.
//
// A Snapshot is built once by Scanner.Scan and never modified afterwards, so
// it is safe to share between goroutines.
type Snapshot struct {
	albums     map[string]struct{}
	tracks     map[string]struct{}
	artistDirs []string
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		albums: make(map[string]struct{}),
		tracks: make(map[string]struct{}),
	}
}

// NewSnapshot builds a Snapshot from explicit name lists. Names are used as
// given; callers are expected to pass normalized names.
func NewSnapshot(albums, tracks []string) *Snapshot {
	s := newSnapshot()
	for _, name := range albums {
		s.albums[name] = struct{}{}
	}
	for _, name := range tracks {
		s.tracks[name] = struct{}{}
	}
	return s
}

// Exists reports whether name is already in the library for the given kind.
//
// The check is an exact membership test with no side effects.
func (s *Snapshot) Exists(name string, kind model.MediaKind) bool {
	_, ok := s.set(kind)[name]
	return ok
}

// Names returns the names of the given kind, sorted.
func (s *Snapshot) Names(kind model.MediaKind) []string {
	set := s.set(kind)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct names of the given kind.
func (s *Snapshot) Len(kind model.MediaKind) int {
	return len(s.set(kind))
}

// ArtistDirs returns the library directories that matched the artist, in
// directory listing order.
func (s *Snapshot) ArtistDirs() []string {
	dirs := make([]string, len(s.artistDirs))
	copy(dirs, s.artistDirs)
	return dirs
}

func (s *Snapshot) set(kind model.MediaKind) map[string]struct{} {
	if kind == model.KindAlbum {
		return s.albums
	}
	return s.tracks
}
