package scrape

import (
	"errors"
	"strings"
)

// LowBitrateMarker is the substring that marks a low quality download link.
const LowBitrateMarker = "128"

var (
	// ErrNoCandidates is returned when a detail page has no link ending in
	// the expected extension.
	ErrNoCandidates = errors.New("no download candidates")

	// ErrOnlyLowBitrate is returned when every candidate is a low bitrate link.
	ErrOnlyLowBitrate = errors.New("only low bitrate candidates")
)

// Candidates filters hrefs down to those ending in ext, keeping order.
func Candidates(hrefs []string, ext string) []string {
	var out []string
	for _, href := range hrefs {
		if strings.HasSuffix(href, ext) {
			out = append(out, href)
		}
	}
	return out
}

// SelectURL picks the download URL from the links found on a detail page.
//
// Only links ending in ext are considered:
//   - none: ErrNoCandidates
//   - one: that link, whatever its bitrate
//   - several: the first link not containing LowBitrateMarker, or
//     ErrOnlyLowBitrate if all of them contain it
//
// Example:
//
//	SelectURL([]string{"a-128.mp3", "a-320.mp3"}, ".mp3") // "a-320.mp3", nil
//	SelectURL(nil, ".mp3")                              // "", ErrNoCandidates
func SelectURL(hrefs []string, ext string) (string, error) {
	candidates := Candidates(hrefs, ext)

	switch len(candidates) {
	case 0:
		return "", ErrNoCandidates
	case 1:
		return candidates[0], nil
	}

	for _, c := range candidates {
		if !strings.Contains(c, LowBitrateMarker) {
			return c, nil
		}
	}
	return "", ErrOnlyLowBitrate
}
