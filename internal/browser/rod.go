package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultTimeout is used when Options.Timeout is not positive.
const DefaultTimeout = 45 * time.Second

// RodDriver drives a Chromium instance launched by rod.
//
// Every tab is a separate browser target. A navigation or element wait that
// takes longer than the configured timeout fails instead of blocking the
// worker forever.
type RodDriver struct {
	launcher  *launcher.Launcher
	browser   *rod.Browser
	timeout   time.Duration
	userAgent string
}

// NewRodDriver launches the browser and connects to it.
func NewRodDriver(ctx context.Context, opts Options) (*RodDriver, error) {
	l := launcher.New().
		Context(ctx).
		Headless(opts.Headless).
		NoSandbox(true).
		Set("disable-gpu", "").
		Set("disable-dev-shm-usage", "")
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	return &RodDriver{
		launcher:  l,
		browser:   browser,
		timeout:   timeoutOrDefault(opts.Timeout),
		userAgent: opts.UserAgent,
	}, nil
}

// OpenTab opens a blank page.
func (d *RodDriver) OpenTab(ctx context.Context) (Tab, error) {
	page, err := d.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	if d.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: d.userAgent}); err != nil {
			page.Close()
			return nil, fmt.Errorf("set user agent: %w", err)
		}
	}
	return &rodTab{page: page.Context(ctx), timeout: d.timeout}, nil
}

// Close closes the browser and kills the launched process.
func (d *RodDriver) Close() error {
	err := d.browser.Close()
	d.launcher.Kill()
	d.launcher.Cleanup()
	return err
}

type rodTab struct {
	page    *rod.Page
	timeout time.Duration
}

func (t *rodTab) Navigate(url string) error {
	page := t.page.Timeout(t.timeout)
	defer page.CancelTimeout()

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

func (t *rodTab) Elements(selector string) ([]Element, error) {
	waiting := t.page.Timeout(t.timeout)
	_, err := waiting.Element(selector)
	waiting.CancelTimeout()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
		}
		return nil, fmt.Errorf("wait for %s: %w", selector, err)
	}

	found, err := t.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}

	return wrapRodElements(found), nil
}

func (t *rodTab) Query(selector string) []Element {
	found, err := t.page.Elements(selector)
	if err != nil {
		return nil
	}
	return wrapRodElements(found)
}

func wrapRodElements(found rod.Elements) []Element {
	elements := make([]Element, len(found))
	for i, el := range found {
		elements[i] = rodElement{el: el}
	}
	return elements
}

func (t *rodTab) URL() string {
	info, err := t.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (t *rodTab) Close() error {
	return t.page.Close()
}

type rodElement struct {
	el *rod.Element
}

func (e rodElement) Attribute(name string) (string, bool) {
	value, err := e.el.Attribute(name)
	if err != nil || value == nil {
		return "", false
	}
	return *value, true
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}
