package browser

import (
	"context"
	"errors"
	"time"
)

// ErrElementNotFound is returned by Tab.Elements when nothing matches the
// selector before the tab's timeout expires.
var ErrElementNotFound = errors.New("element not found")

// Driver opens isolated tabs. Implementations must allow concurrent OpenTab
// calls; a single Tab is only used by one goroutine.
type Driver interface {
	// OpenTab opens a new blank tab bound to ctx.
	OpenTab(ctx context.Context) (Tab, error)

	// Close releases the browser and every tab still open.
	Close() error
}

// Tab is one page of the browser.
type Tab interface {
	// Navigate loads url and waits until the page has loaded.
	Navigate(url string) error

	// Elements waits for selector to match and returns every matching element.
	// Returns ErrElementNotFound if nothing matches in time.
	Elements(selector string) ([]Element, error)

	// Query returns the elements currently matching selector without waiting.
	Query(selector string) []Element

	// URL returns the current page URL, or the empty string if unknown.
	URL() string

	// Close closes the tab.
	Close() error
}

// Element is a DOM element found on a tab.
type Element interface {
	// Attribute returns the value of the named attribute and whether the
	// attribute is present.
	Attribute(name string) (string, bool)
}

// Kind selects a Driver implementation.
type Kind string

const (
	// KindRod drives a headless Chromium through the DevTools protocol.
	KindRod Kind = "rod"

	// KindStatic fetches plain HTML over HTTP without running scripts.
	KindStatic Kind = "static"
)

// Options configures a Driver.
type Options struct {
	// Headless hides the browser window (rod only).
	Headless bool

	// Bin is the browser executable. Empty lets rod find or download one.
	Bin string

	// UserAgent is sent with every request.
	UserAgent string

	// Timeout bounds every navigation and every element wait.
	Timeout time.Duration
}

// New creates the Driver selected by kind. Unknown kinds fall back to rod.
func New(ctx context.Context, kind Kind, opts Options) (Driver, error) {
	if kind == KindStatic {
		return NewStaticDriver(opts), nil
	}
	return NewRodDriver(ctx, opts)
}
