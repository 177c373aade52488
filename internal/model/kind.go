package model

// MediaKind identifies one of the two kinds of items the site lists for an
// artist: single tracks and whole albums.
//
// Track and album handling only differ in the values returned here, so the
// rest of the application works on a MediaKind instead of duplicating logic.
type MediaKind int

const (
	// KindTrack is a single track, downloaded as an .mp3 file.
	KindTrack MediaKind = iota

	// KindAlbum is a full album, downloaded as a .zip archive.
	KindAlbum
)

// Kinds lists every kind in the order a run processes them.
var Kinds = []MediaKind{KindAlbum, KindTrack}

// Extension returns the download file extension for the kind, including the dot.
//
// Returns:
//   - ".mp3" for KindTrack
//   - ".zip" for KindAlbum
func (k MediaKind) Extension() string {
	switch k {
	case KindAlbum:
		return ".zip"
	default:
		return ".mp3"
	}
}

// Section returns the value of the artist page's "section" query parameter
// that lists items of this kind.
func (k MediaKind) Section() string {
	switch k {
	case KindAlbum:
		return "album"
	default:
		return "music"
	}
}

// String returns "track" or "album".
func (k MediaKind) String() string {
	switch k {
	case KindAlbum:
		return "album"
	default:
		return "track"
	}
}
