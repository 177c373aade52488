package model

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Album represents an album scheduled for download, or the pseudo-album
// that collects single tracks.
//
// Album contains the information needed to place files in the library:
//   - Artist is the artist folder name inside the library
//   - Title is the album folder name (the normalized name for scraped albums)
//   - PageURL and DownloadURL come from the scraper
//   - Computed paths for saving files locally
//
// Paths are computed when creating an album via NewAlbum, using the
// placeholders {music}, {artist} and {album}.
//
// Example:
//
//	cfg := &PathConfig{
//	    MusicDir:               "/music",
//	    DownloadsPath:          "{music}/{artist}/{album}",
//	    PlaylistFileNameFormat: "{album}",
//	    PlaylistFormat:         PlaylistFormatM3U,
//	}
//	album := NewAlbum("The Weeknd", "after hours", pageURL, zipURL, cfg)
//	// album.Path = "/music/The Weeknd/after hours"
//	// album.ArchivePath = "/music/The Weeknd/after hours.zip"
type Album struct {
	// Artist is the artist folder name.
	Artist string

	// Title is the album title.
	Title string

	// PageURL is the album detail page on the site.
	PageURL string

	// DownloadURL is the archive to download. Empty for the singles album.
	DownloadURL string

	// ArtworkURL is the URL to download the album cover art from.
	// Empty string means no artwork is available.
	ArtworkURL string

	// Tracks contains the tracks of this album once they are known.
	Tracks []*Track

	// Path is the computed local directory path where album files will be saved.
	Path string

	// ArchivePath is where the downloaded archive is stored before extraction.
	ArchivePath string

	// PlaylistPath is the computed local file path for the playlist file.
	PlaylistPath string
}

// NewAlbum creates a new Album with computed paths based on cfg.
//
// Invalid filename characters in artist and title are replaced with
// underscores. Paths are truncated if they exceed Windows path length limits
// (248 for folders, 260 for files).
func NewAlbum(artist, title, pageURL, downloadURL string, cfg *PathConfig) *Album {
	album := &Album{
		Artist:      artist,
		Title:       title,
		PageURL:     pageURL,
		DownloadURL: downloadURL,
	}

	album.Path = album.parseFolderPath(cfg)
	album.ArchivePath = album.Path + KindAlbum.Extension()
	album.PlaylistPath = album.parsePlaylistPath(cfg)

	return album
}

// HasArtwork returns true if the album has cover art available for download.
func (a *Album) HasArtwork() bool {
	return a.ArtworkURL != ""
}

// PathConfig holds path formatting settings for albums and tracks.
//
// DownloadsPath and PlaylistFileNameFormat support placeholders:
//   - {music} - the library root (DownloadsPath only)
//   - {artist} - artist folder name
//   - {album} - album title
type PathConfig struct {
	// MusicDir is the library root substituted for {music}.
	MusicDir string

	// DownloadsPath is the path template for album folders.
	// Example: "{music}/{artist}/{album}"
	DownloadsPath string

	// PlaylistFileNameFormat is the filename template for playlists (without extension).
	PlaylistFileNameFormat string

	// PlaylistFormat determines the playlist file type and extension.
	PlaylistFormat PlaylistFormat
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS
)

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	default:
		return ".m3u"
	}
}

// parseFolderPath computes the album folder path from the config template.
func (a *Album) parseFolderPath(cfg *PathConfig) string {
	path := cfg.DownloadsPath
	path = strings.ReplaceAll(path, "{music}", cfg.MusicDir)
	path = strings.ReplaceAll(path, "{artist}", sanitizeFileName(a.Artist))
	path = strings.ReplaceAll(path, "{album}", sanitizeFileName(a.Title))
	path = filepath.Clean(path)

	// Limit path length for cross-platform compatibility (Windows MAX_PATH)
	if len(path) >= 248 {
		path = path[:247]
	}

	return path
}

// parsePlaylistPath computes the full playlist file path.
func (a *Album) parsePlaylistPath(cfg *PathConfig) string {
	fileName := cfg.PlaylistFileNameFormat
	fileName = strings.ReplaceAll(fileName, "{album}", a.Title)
	fileName = strings.ReplaceAll(fileName, "{artist}", a.Artist)
	fileName = sanitizeFileName(fileName)

	ext := cfg.PlaylistFormat.Extension()
	filePath := filepath.Join(a.Path, fileName+ext)

	if len(filePath) >= 260 {
		maxLen := 11 - len(ext)
		if maxLen > 0 && maxLen < len(fileName) {
			filePath = filepath.Join(a.Path, fileName[:maxLen]+ext)
		}
	}

	return filePath
}

var (
	invalidFileChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots       = regexp.MustCompile(`\.+$`)
	repeatedWhitespace = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedWhitespace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
