// Package scrape finds an artist's albums and tracks on the site and resolves
// the download link for each one.
//
// The process has two steps per media kind:
//
//  1. Load the artist listing (/artists/<name>/?section=album|music) and
//     collect the detail links
//  2. For every link, derive its normalized name; if the library already has
//     it, record an empty URL, otherwise open the detail page in its own tab
//     and pick the best download link with SelectURL
//
// Detail pages are processed concurrently, bounded by
// Config.MaxConcurrentPages. A link that fails is retried according to
// Config.Retry and then reported as a Failure; it never aborts the run.
//
// # Choosing a link
//
// SelectURL prefers links without the "128" low bitrate marker:
//
//	url, err := scrape.SelectURL(hrefs, ".mp3")
//	switch {
//	case errors.Is(err, scrape.ErrNoCandidates):
//	    // nothing downloadable on the page
//	case errors.Is(err, scrape.ErrOnlyLowBitrate):
//	    // only 128 kbps links
//	}
package scrape
