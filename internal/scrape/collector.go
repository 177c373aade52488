package scrape

import (
	"sort"
	"sync"

	"github.com/handiism/baran-dl/internal/model"
)

// Item is one resolved entry of a listing.
type Item struct {
	Kind model.MediaKind

	// Name is the normalized name used as the result key.
	Name string

	// PageURL is the detail page the item was found on.
	PageURL string

	// DownloadURL is the chosen download link. Empty when Existing is true.
	DownloadURL string

	// ArtworkURL is the cover image advertised by the detail page, if any.
	ArtworkURL string

	// Existing is true when the item is already in the library and was not
	// fetched.
	Existing bool
}

// Failure records a link that could not be resolved.
type Failure struct {
	Kind    model.MediaKind
	PageURL string
	Err     error
}

// Report is the outcome of a scrape.
type Report struct {
	Items    []Item
	Failures []Failure
}

// Result converts the report into the output document. When two items of
// the same kind share a name the one added last wins.
func (r *Report) Result() *model.Result {
	result := model.NewResult()
	for _, item := range r.Items {
		result.For(item.Kind)[item.Name] = item.DownloadURL
	}
	return result
}

// Pending returns the items that have a download URL, in report order.
func (r *Report) Pending(kind model.MediaKind) []Item {
	var items []Item
	for _, item := range r.Items {
		if item.Kind == kind && item.DownloadURL != "" {
			items = append(items, item)
		}
	}
	return items
}

// collector gathers items from concurrent workers.
type collector struct {
	mu       sync.Mutex
	items    []Item
	failures []Failure
}

func (c *collector) add(item Item) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
}

func (c *collector) fail(f Failure) {
	c.mu.Lock()
	c.failures = append(c.failures, f)
	c.mu.Unlock()
}

// report returns the collected items sorted by kind, then name, so output does
// not depend on worker scheduling.
func (c *collector) report() *Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := append([]Item(nil), c.items...)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return items[i].Kind < items[j].Kind
		}
		return items[i].Name < items[j].Name
	})

	failures := append([]Failure(nil), c.failures...)
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].PageURL < failures[j].PageURL
	})

	return &Report{Items: items, Failures: failures}
}
