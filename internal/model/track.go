package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Track represents a single track to download or to tag.
//
// A scraped single lives in the singles pseudo-album; a track extracted from
// an album archive belongs to that album and has no URLs.
//
// Example:
//
//	cfg := &TrackConfig{FileNameFormat: "{title}.mp3"}
//	track := NewTrack(singles, 1, "blinding lights", pageURL, mp3URL, cfg)
//	// track.Path = "/music/The Weeknd/Singles/blinding lights.mp3"
type Track struct {
	// Album is a reference to the parent album.
	Album *Album

	// Number is the track number (1-indexed).
	Number int

	// Title is the track title.
	Title string

	// Duration is the track length in seconds, zero when unknown.
	Duration float64

	// PageURL is the track detail page on the site.
	PageURL string

	// Mp3URL is the URL to download the MP3 file from.
	Mp3URL string

	// ArtworkURL is the cover art found on the track page, if any.
	ArtworkURL string

	// Path is the local file path of the track.
	Path string
}

// TrackConfig holds track path formatting settings.
//
// The FileNameFormat supports placeholders:
//   - {tracknum} - Track number (2 digits, zero-padded)
//   - {title} - Track title
//   - {artist} - Artist name (from album)
//   - {album} - Album title
type TrackConfig struct {
	// FileNameFormat is the template for track filenames, including extension.
	FileNameFormat string
}

// NewTrack creates a new Track with computed path.
func NewTrack(album *Album, number int, title, pageURL, mp3URL string, cfg *TrackConfig) *Track {
	track := &Track{
		Album:   album,
		Number:  number,
		Title:   title,
		PageURL: pageURL,
		Mp3URL:  mp3URL,
	}

	track.Path = track.parseFilePath(cfg)

	return track
}

// TrackFromFile creates a Track for a file that already exists on disk, such
// as one extracted from an album archive. The title is the file name without
// extension.
func TrackFromFile(album *Album, number int, path string) *Track {
	base := filepath.Base(path)
	return &Track{
		Album:  album,
		Number: number,
		Title:  strings.TrimSuffix(base, filepath.Ext(base)),
		Path:   path,
	}
}

// parseFilePath computes the full file path for this track.
func (t *Track) parseFilePath(cfg *TrackConfig) string {
	fileName := t.parseFileName(cfg)
	filePath := filepath.Join(t.Album.Path, fileName)

	// Limit total path length for Windows compatibility (MAX_PATH = 260)
	if len(filePath) >= 260 {
		ext := filepath.Ext(filePath)
		maxLen := 11 - len(ext)
		if maxLen > 0 && maxLen < len(fileName) {
			filePath = filepath.Join(t.Album.Path, fileName[:maxLen]+ext)
		}
	}

	return filePath
}

// parseFileName computes the filename from the config template.
func (t *Track) parseFileName(cfg *TrackConfig) string {
	fileName := cfg.FileNameFormat
	fileName = strings.ReplaceAll(fileName, "{album}", t.Album.Title)
	fileName = strings.ReplaceAll(fileName, "{artist}", t.Album.Artist)
	fileName = strings.ReplaceAll(fileName, "{title}", t.Title)
	fileName = strings.ReplaceAll(fileName, "{tracknum}", fmt.Sprintf("%02d", t.Number))
	return sanitizeFileName(fileName)
}
