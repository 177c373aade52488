package model

import "strings"

// separators are replaced with spaces before names are compared.
var separators = strings.NewReplacer("-", " ", "_", " ")

// NormalizeDirName normalizes a directory or artist name for comparison.
//
// Hyphens and underscores become spaces, the result is lowercased and
// surrounding whitespace is trimmed:
//
//	NormalizeDirName("The-Weeknd")  // "the weeknd"
//	NormalizeDirName("the_weeknd")  // "the weeknd"
//	NormalizeDirName(" THE WEEKND") // "the weeknd"
func NormalizeDirName(name string) string {
	return strings.TrimSpace(strings.ToLower(separators.Replace(name)))
}

// NormalizeTitle turns a file name or URL path segment into the name used to
// decide whether an item already exists locally.
//
// The transformation:
//  1. Strips ext from the end (case-insensitive), if present
//  2. Replaces hyphens and underscores with spaces
//  3. Lowercases
//  4. Removes every occurrence of artist (expected already normalized with
//     NormalizeDirName), repeating until none is left
//  5. Trims surrounding whitespace
//
// Inner whitespace is kept as is, so "Song - Live" and "song-live" do not
// compare equal. The result may be empty, for example when the file is named
// after the artist; empty names are still valid.
//
// Example:
//
//	NormalizeTitle("the-weeknd-blinding-lights", "the weeknd", "") // "blinding lights"
//	NormalizeTitle("The Weeknd_Save Your Tears.mp3", "the weeknd", ".mp3") // "save your tears"
func NormalizeTitle(raw, artist, ext string) string {
	name := raw
	if ext != "" && len(name) >= len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
		name = name[:len(name)-len(ext)]
	}

	name = strings.ToLower(separators.Replace(name))

	if artist != "" {
		for strings.Contains(name, artist) {
			name = strings.ReplaceAll(name, artist, "")
		}
	}

	return strings.TrimSpace(name)
}
