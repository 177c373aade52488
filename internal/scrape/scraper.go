package scrape

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/baran-dl/internal/browser"
	"github.com/handiism/baran-dl/internal/library"
	"github.com/handiism/baran-dl/internal/model"
)

// Config holds the scraper settings.
type Config struct {
	// BaseURL is the site root, e.g. "https://mymusicbaran1.ir".
	BaseURL string

	// MaxConcurrentPages bounds how many detail pages are open at once.
	MaxConcurrentPages int

	// Retry applies to page loads that fail for transient reasons.
	Retry RetryPolicy

	// AllowLowBitrate falls back to the first candidate when every link on a
	// detail page is a low bitrate one.
	AllowLowBitrate bool

	// FetchArtwork records the cover image advertised by detail pages.
	FetchArtwork bool
}

// Hooks receives notifications while a scrape runs. Any field may be nil.
// Callbacks are invoked from worker goroutines and must be safe for
// concurrent use.
type Hooks struct {
	OnListing  func(kind model.MediaKind, links int)
	OnExisting func(item Item)
	OnResolved func(item Item)
	OnFailed   func(f Failure)
	OnRetry    func(pageURL string, attempt int, err error)
}

// Scraper discovers an artist's albums and tracks on the site and resolves a
// download URL for each one missing from the library.
//
// Example:
//
//	s := scrape.New(driver, scrape.Config{
//	    BaseURL:            "https://mymusicbaran1.ir",
//	    MaxConcurrentPages: 4,
//	}, scrape.Hooks{})
//	report, err := s.Scrape(ctx, artist, snapshot)
//	if err != nil {
//	    return err
//	}
//	data, _ := report.Result().Marshal()
type Scraper struct {
	driver browser.Driver
	cfg    Config
	hooks  Hooks
}

// New creates a Scraper using driver for every page load.
func New(driver browser.Driver, cfg Config, hooks Hooks) *Scraper {
	if cfg.MaxConcurrentPages < 1 {
		cfg.MaxConcurrentPages = 1
	}
	return &Scraper{driver: driver, cfg: cfg, hooks: hooks}
}

// Scrape processes albums, then tracks.
//
// Items already in snap are recorded with an empty download URL without
// loading their page. Items whose page cannot be resolved are reported as
// failures and left out of the result. An error is returned only when a
// listing page cannot be loaded or ctx is cancelled.
func (s *Scraper) Scrape(ctx context.Context, artist model.Artist, snap *library.Snapshot) (*Report, error) {
	artistURL := ArtistURL(s.cfg.BaseURL, artist)
	col := &collector{}

	for _, kind := range model.Kinds {
		links, err := s.Discover(ctx, artistURL, kind)
		if err != nil {
			return nil, fmt.Errorf("discover %s links: %w", kind, err)
		}
		if s.hooks.OnListing != nil {
			s.hooks.OnListing(kind, len(links))
		}

		if err := s.resolveAll(ctx, artist, snap, kind, links, col); err != nil {
			return nil, err
		}
	}

	return col.report(), nil
}

// Discover returns the absolute, de-duplicated detail links listed for kind
// on the artist page. A listing without any link yields an empty slice.
func (s *Scraper) Discover(ctx context.Context, artistURL string, kind model.MediaKind) ([]string, error) {
	listing := ListingURL(artistURL, kind)

	var links []string
	err := s.withRetry(ctx, listing, func() error {
		var err error
		links, err = s.readListing(ctx, listing, kind)
		return err
	})
	return links, err
}

func (s *Scraper) readListing(ctx context.Context, listing string, kind model.MediaKind) ([]string, error) {
	tab, err := s.driver.OpenTab(ctx)
	if err != nil {
		return nil, err
	}
	defer tab.Close()

	if err := tab.Navigate(listing); err != nil {
		return nil, err
	}

	elements, err := tab.Elements(profileFor(kind).listing)
	if errors.Is(err, browser.ErrElementNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	base := pageBase(tab, listing)
	seen := make(map[string]struct{}, len(elements))
	var links []string
	for _, el := range elements {
		href, ok := el.Attribute("href")
		if !ok || href == "" {
			continue
		}
		link := resolveHref(base, href)
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links, nil
}

func (s *Scraper) resolveAll(ctx context.Context, artist model.Artist, snap *library.Snapshot, kind model.MediaKind, links []string, col *collector) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentPages)

	for _, link := range links {
		g.Go(func() error {
			s.resolve(gctx, artist, snap, kind, link, col)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// resolve handles one detail link. Failures are recorded, never returned.
func (s *Scraper) resolve(ctx context.Context, artist model.Artist, snap *library.Snapshot, kind model.MediaKind, link string, col *collector) {
	name, err := NameFromHref(link, artist, kind)
	if err != nil {
		s.failed(col, Failure{Kind: kind, PageURL: link, Err: err})
		return
	}

	if snap.Exists(name, kind) {
		item := Item{Kind: kind, Name: name, PageURL: link, Existing: true}
		col.add(item)
		if s.hooks.OnExisting != nil {
			s.hooks.OnExisting(item)
		}
		return
	}

	var item Item
	err = s.withRetry(ctx, link, func() error {
		var err error
		item, err = s.fetchItem(ctx, link, kind)
		return err
	})
	if err != nil {
		s.failed(col, Failure{Kind: kind, PageURL: link, Err: err})
		return
	}

	item.Name = name
	col.add(item)
	if s.hooks.OnResolved != nil {
		s.hooks.OnResolved(item)
	}
}

// fetchItem loads a detail page in its own tab and picks the download link.
func (s *Scraper) fetchItem(ctx context.Context, link string, kind model.MediaKind) (Item, error) {
	tab, err := s.driver.OpenTab(ctx)
	if err != nil {
		return Item{}, err
	}
	defer tab.Close()

	if err := tab.Navigate(link); err != nil {
		return Item{}, err
	}

	base := pageBase(tab, link)
	hrefs, err := readDownloadLinks(tab, kind, base)
	if err != nil {
		return Item{}, err
	}

	ext := kind.Extension()
	downloadURL, err := SelectURL(hrefs, ext)
	if errors.Is(err, ErrOnlyLowBitrate) && s.cfg.AllowLowBitrate {
		downloadURL, err = Candidates(hrefs, ext)[0], nil
	}
	if err != nil {
		return Item{}, fmt.Errorf("%s: %w", base, err)
	}

	item := Item{Kind: kind, PageURL: link, DownloadURL: downloadURL}
	if s.cfg.FetchArtwork {
		item.ArtworkURL = readArtwork(tab, base)
	}
	return item, nil
}

// readDownloadLinks returns the hrefs matched by the first download selector
// of kind that matches anything on the page.
func readDownloadLinks(tab browser.Tab, kind model.MediaKind, base string) ([]string, error) {
	var lastErr error
	for _, selector := range profileFor(kind).downloads {
		elements, err := tab.Elements(selector)
		if errors.Is(err, browser.ErrElementNotFound) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		hrefs := make([]string, 0, len(elements))
		for _, el := range elements {
			if href, ok := el.Attribute("href"); ok && href != "" {
				hrefs = append(hrefs, resolveHref(base, href))
			}
		}
		return hrefs, nil
	}
	return nil, lastErr
}

func readArtwork(tab browser.Tab, base string) string {
	for _, el := range tab.Query(coverSelector) {
		if content, ok := el.Attribute("content"); ok && content != "" {
			return resolveHref(base, content)
		}
	}
	return ""
}

func (s *Scraper) withRetry(ctx context.Context, pageURL string, fn func() error) error {
	attempts := s.cfg.Retry.Attempts()

	var err error
	for tries := 0; tries < attempts; tries++ {
		if err = fn(); err == nil {
			return nil
		}
		if !retryable(err) || ctx.Err() != nil {
			return err
		}
		if tries+1 == attempts {
			break
		}
		if s.hooks.OnRetry != nil {
			s.hooks.OnRetry(pageURL, tries+1, err)
		}
		if werr := s.cfg.Retry.Wait(ctx, tries); werr != nil {
			return werr
		}
	}
	return err
}

func (s *Scraper) failed(col *collector, f Failure) {
	col.fail(f)
	if s.hooks.OnFailed != nil {
		s.hooks.OnFailed(f)
	}
}

// retryable reports whether loading the page again could change the outcome.
func retryable(err error) bool {
	switch {
	case errors.Is(err, ErrNoCandidates),
		errors.Is(err, ErrOnlyLowBitrate),
		errors.Is(err, ErrMalformedHref),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}

// pageBase returns the URL relative links on tab resolve against.
func pageBase(tab browser.Tab, fallback string) string {
	if u := tab.URL(); u != "" && u != "about:blank" {
		return u
	}
	return fallback
}
