package browser

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// StaticDriver loads pages with a plain HTTP client and queries the returned
// HTML with CSS selectors. Scripts are not executed, so it only works for
// pages rendered on the server.
type StaticDriver struct {
	userAgent string
	timeout   time.Duration
}

// NewStaticDriver creates a StaticDriver. Opening tabs is free; there is no
// process to launch.
func NewStaticDriver(opts Options) *StaticDriver {
	return &StaticDriver{
		userAgent: opts.UserAgent,
		timeout:   timeoutOrDefault(opts.Timeout),
	}
}

// OpenTab returns an empty tab bound to ctx.
func (d *StaticDriver) OpenTab(ctx context.Context) (Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &staticTab{ctx: ctx, driver: d}, nil
}

// Close is a no-op.
func (d *StaticDriver) Close() error {
	return nil
}

type staticTab struct {
	ctx    context.Context
	driver *StaticDriver

	mu  sync.Mutex
	doc *goquery.Document
	url string
}

func (t *staticTab) Navigate(url string) error {
	c := colly.NewCollector(colly.StdlibContext(t.ctx))
	if t.driver.userAgent != "" {
		c.UserAgent = t.driver.userAgent
	}
	c.SetRequestTimeout(t.driver.timeout)

	var (
		doc      *goquery.Document
		finalURL string
		fetchErr error
	)

	c.OnResponse(func(r *colly.Response) {
		parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			fetchErr = fmt.Errorf("parse %s: %w", url, err)
			return
		}
		doc = parsed
		finalURL = r.Request.URL.String()
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = fmt.Errorf("HTTP %d fetching %s: %w", r.StatusCode, url, err)
			return
		}
		fetchErr = fmt.Errorf("fetch %s: %w", url, err)
	})

	if err := c.Visit(url); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("navigate %s: %w", url, err)
	}
	if fetchErr != nil {
		return fetchErr
	}

	t.mu.Lock()
	t.doc = doc
	t.url = finalURL
	t.mu.Unlock()
	return nil
}

func (t *staticTab) Elements(selector string) ([]Element, error) {
	t.mu.Lock()
	loaded := t.doc != nil
	t.mu.Unlock()

	if !loaded {
		return nil, fmt.Errorf("%w: %s (no page loaded)", ErrElementNotFound, selector)
	}

	elements := t.Query(selector)
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return elements, nil
}

func (t *staticTab) Query(selector string) []Element {
	t.mu.Lock()
	doc := t.doc
	t.mu.Unlock()

	if doc == nil {
		return nil
	}

	selection := doc.Find(selector)
	elements := make([]Element, 0, selection.Length())
	selection.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, staticElement{sel: s})
	})
	return elements
}

func (t *staticTab) URL() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.url
}

func (t *staticTab) Close() error {
	t.mu.Lock()
	t.doc = nil
	t.mu.Unlock()
	return nil
}

type staticElement struct {
	sel *goquery.Selection
}

func (e staticElement) Attribute(name string) (string, bool) {
	return e.sel.Attr(name)
}
