package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "baran-dl"

// StatusError is returned when the server answers with anything but 200 OK.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Client performs the requests of the download stage with a fixed
// User-Agent.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// An empty userAgent falls back to DefaultUserAgent. A zero timeout means
// requests are only bounded by their context.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// ProgressWriter counts the bytes written through it and reports them to
// OnUpdate after every write.
type ProgressWriter struct {
	Writer io.Writer

	// Total is the expected size, -1 when the server did not announce one.
	Total   int64
	Written int64

	OnUpdate func(written, total int64)
}

func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// open sends the request and returns the response of a 200 answer. The
// caller closes the body.
func (c *Client) open(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: url, Status: resp.StatusCode}
	}
	return resp, nil
}

// Get returns the body of url.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.open(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// GetFileSize returns the Content-Length announced for url by a HEAD
// request.
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	resp, err := c.open(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header for %s", url)
	}
	return resp.ContentLength, nil
}

// DownloadFile streams url into destPath. onProgress may be nil.
//
// The body goes to a hidden ".part" file in the destination folder that is
// renamed once complete; destPath never holds a partial download.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	resp, err := c.open(ctx, http.MethodGet, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	file, err := os.CreateTemp(filepath.Dir(destPath), "."+filepath.Base(destPath)+".*.part")
	if err != nil {
		return err
	}
	tmpPath := file.Name()
	defer os.Remove(tmpPath)

	var w io.Writer = file
	if onProgress != nil {
		w = &ProgressWriter{Writer: file, Total: resp.ContentLength, OnUpdate: onProgress}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		file.Close()
		return fmt.Errorf("download %s: %w", url, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, destPath)
}

// DownloadBytes returns the body of url held in memory. Meant for cover
// images; tracks and archives go through DownloadFile.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
