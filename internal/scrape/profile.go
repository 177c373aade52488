package scrape

import "github.com/handiism/baran-dl/internal/model"

// profile holds the page structure the scraper relies on for one kind.
type profile struct {
	// listing matches the detail links on the artist listing page.
	listing string

	// downloads are tried in order on the detail page; the first selector
	// that matches anything supplies the candidate links.
	downloads []string
}

const (
	listingSelector = "section.artist > div.row > div.col-sm-3 > a:nth-child(1)"
	coverSelector   = `meta[property="og:image"]`
)

var profiles = map[model.MediaKind]profile{
	model.KindTrack: {
		listing:   listingSelector,
		downloads: []string{"div.dl > div.link_dl > a.button--wayra"},
	},
	model.KindAlbum: {
		listing:   listingSelector,
		downloads: []string{"a.button--wayra", ".details > p > a:nth-child(1)"},
	},
}

func profileFor(kind model.MediaKind) profile {
	return profiles[kind]
}
