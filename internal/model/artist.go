package model

import "strings"

// Artist is the per-run context shared by the scanner and the scraper.
//
// It is created once from the command line argument and passed by value
// everywhere; nothing mutates it afterwards.
type Artist struct {
	// Query is the artist name as typed by the user, trimmed.
	// It is used to build the artist page URL.
	Query string

	// Name is the normalized artist name (see NormalizeDirName).
	// It is used to match library folders and to strip the artist from titles.
	Name string
}

// NewArtist creates the run context for the given artist argument.
func NewArtist(query string) Artist {
	query = strings.TrimSpace(query)
	return Artist{
		Query: query,
		Name:  NormalizeDirName(query),
	}
}

// Title normalizes a raw file name or URL segment for this artist.
func (a Artist) Title(raw string, kind MediaKind) string {
	return NormalizeTitle(raw, a.Name, kind.Extension())
}

// OutputFileName returns the name of the result file for this artist.
func (a Artist) OutputFileName() string {
	return sanitizeFileName(a.Name) + ".json"
}
