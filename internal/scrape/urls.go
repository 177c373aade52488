package scrape

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/handiism/baran-dl/internal/model"
)

// ErrMalformedHref is returned when a link has no usable path segment to
// derive a name from.
var ErrMalformedHref = errors.New("malformed href")

// ArtistURL returns the artist page for artist on the site at baseURL.
//
//	ArtistURL("https://mymusicbaran1.ir", model.NewArtist("the-weeknd"))
//	// "https://mymusicbaran1.ir/artists/the-weeknd"
func ArtistURL(baseURL string, artist model.Artist) string {
	return strings.TrimRight(baseURL, "/") + "/artists/" + url.PathEscape(artist.Query)
}

// ListingURL returns the page listing items of kind on an artist page.
func ListingURL(artistURL string, kind model.MediaKind) string {
	return artistURL + "/?section=" + kind.Section()
}

// NameFromHref derives the normalized name of the item behind a detail link.
//
// The name is the last non-empty path segment of href, normalized for
// artist:
//
//	NameFromHref("https://site/music/the-weeknd-blinding-lights/", artist, model.KindTrack)
//	// "blinding lights"
func NameFromHref(href string, artist model.Artist, kind model.MediaKind) (string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedHref, href, err)
	}

	segment := path.Base(strings.TrimRight(u.Path, "/"))
	if segment == "" || segment == "." || segment == "/" {
		return "", fmt.Errorf("%w: %s", ErrMalformedHref, href)
	}

	return artist.Title(segment, kind), nil
}

// resolveHref makes href absolute relative to base. Unparsable input is
// returned unchanged.
func resolveHref(base, href string) string {
	b, err := url.Parse(base)
	if err != nil || base == "" {
		return href
	}
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
