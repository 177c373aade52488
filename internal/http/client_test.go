package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func newTestServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Agent", r.UserAgent())
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		if r.Method == http.MethodHead {
			return
		}
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_DownloadFile(t *testing.T) {
	body := bytes.Repeat([]byte("mp3"), 4096)
	srv := newTestServer(t, body)
	dest := filepath.Join(t.TempDir(), "song.mp3")

	var last, total int64
	c := NewClient("", 0)
	err := c.DownloadFile(context.Background(), srv.URL+"/song.mp3", dest, func(w, tot int64) {
		last, total = w, tot
	})
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("downloaded %d bytes, want %d", len(got), len(body))
	}
	if last != int64(len(body)) || total != int64(len(body)) {
		t.Errorf("progress = %d/%d, want %d/%d", last, total, len(body), len(body))
	}

	entries, _ := os.ReadDir(filepath.Dir(dest))
	if len(entries) != 1 {
		t.Errorf("expected only the final file, found %d entries", len(entries))
	}
}

func TestClient_DownloadFile_HTTPError(t *testing.T) {
	srv := newTestServer(t, nil)
	dest := filepath.Join(t.TempDir(), "song.mp3")

	err := NewClient("", 0).DownloadFile(context.Background(), srv.URL+"/missing", dest, nil)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("no file should be created on error")
	}
}

func TestClient_GetFileSize(t *testing.T) {
	srv := newTestServer(t, make([]byte, 1234))

	size, err := NewClient("", 0).GetFileSize(context.Background(), srv.URL+"/a.zip")
	if err != nil {
		t.Fatalf("GetFileSize() error = %v", err)
	}
	if size != 1234 {
		t.Errorf("size = %d, want 1234", size)
	}

	if _, err := NewClient("", 0).GetFileSize(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestClient_UserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.UserAgent()
	}))
	defer srv.Close()

	tests := []struct {
		agent string
		want  string
	}{
		{"", DefaultUserAgent},
		{"custom/1.0", "custom/1.0"},
	}
	for _, tt := range tests {
		if _, err := NewClient(tt.agent, 0).DownloadBytes(context.Background(), srv.URL); err != nil {
			t.Fatalf("DownloadBytes() error = %v", err)
		}
		if got != tt.want {
			t.Errorf("User-Agent = %q, want %q", got, tt.want)
		}
	}
}

func TestProgressWriter(t *testing.T) {
	var buf bytes.Buffer
	var calls int
	pw := &ProgressWriter{Writer: &buf, Total: 10, OnUpdate: func(w, total int64) { calls++ }}

	pw.Write([]byte("hello"))
	pw.Write([]byte("world"))

	if pw.Written != 10 || calls != 2 || buf.String() != "helloworld" {
		t.Errorf("Written=%d calls=%d buf=%q", pw.Written, calls, buf.String())
	}
}

func TestClient_Cancelled(t *testing.T) {
	srv := newTestServer(t, []byte("x"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewClient("", 0).Get(ctx, srv.URL); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := newTestServer(t, nil)

	_, err := NewClient("", 0).Get(context.Background(), srv.URL+"/missing")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", statusErr.Status)
	}
}
