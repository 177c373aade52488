package download

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/handiism/baran-dl/internal/audio"
	"github.com/handiism/baran-dl/internal/browser"
	"github.com/handiism/baran-dl/internal/config"
	"github.com/handiism/baran-dl/internal/http"
	ioutils "github.com/handiism/baran-dl/internal/io"
	"github.com/handiism/baran-dl/internal/library"
	"github.com/handiism/baran-dl/internal/model"
	"github.com/handiism/baran-dl/internal/scrape"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update of a run.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// DriverFactory opens the browser used for scraping.
type DriverFactory func(ctx context.Context) (browser.Driver, error)

// Option customizes a Manager.
type Option func(*Manager)

// WithDriverFactory replaces the driver selected by the settings.
func WithDriverFactory(f DriverFactory) Option {
	return func(m *Manager) {
		m.newDriver = f
	}
}

// WithHTTPClient replaces the client used by the download stage.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.httpClient = c
	}
}

// Progress is a snapshot of the run counters.
type Progress struct {
	LinksDone     int32
	LinksTotal    int32
	FilesDone     int32
	FilesTotal    int32
	BytesReceived int64
}

// Summary describes a finished run.
type Summary struct {
	Artist     model.Artist
	OutputPath string

	// LibraryAlbums and LibraryTracks count what the scan found.
	LibraryAlbums int
	LibraryTracks int

	// Albums and Tracks count the entries written to the result file,
	// existing ones included.
	Albums int
	Tracks int

	Existing   int
	Resolved   int
	Failed     int
	Downloaded int
}

// Manager runs the whole pipeline for one artist: scan the library, scrape
// the site, write the result file and optionally download what is missing.
type Manager struct {
	settings     *config.Settings
	newDriver    DriverFactory
	httpClient   *http.Client
	tagger       *audio.Tagger
	albumTagger  *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	artist   model.Artist
	snapshot *library.Snapshot
	report   *scrape.Report

	linksDone     int32
	linksTotal    int32
	filesDone     int32
	filesTotal    int32
	receivedBytes int64

	onProgress func(ProgressEvent)
}

// NewManager creates a new Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent), opts ...Option) *Manager {
	tagCfg := audio.DefaultTagConfig()
	tagCfg.ModifyTags = settings.ModifyTags
	albumTagCfg := audio.ArchiveTagConfig()
	albumTagCfg.ModifyTags = settings.ModifyTags

	m := &Manager{
		settings:     settings,
		httpClient:   http.NewClient(settings.UserAgent, 0),
		tagger:       audio.NewTagger(tagCfg),
		albumTagger:  audio.NewTagger(albumTagCfg),
		playlist:     audio.NewPlaylistCreator(settings.ToPathConfig().PlaylistFormat, settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
	m.newDriver = func(ctx context.Context) (browser.Driver, error) {
		return browser.New(ctx, browser.Kind(settings.Driver), settings.ToBrowserOptions())
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run executes every stage for the artist typed by the user.
//
// A library that cannot be scanned and a listing page that cannot be loaded
// are fatal. Individual items that fail are reported and skipped.
func (m *Manager) Run(ctx context.Context, artistQuery string) (*Summary, error) {
	if _, err := m.Scan(ctx, artistQuery); err != nil {
		return nil, err
	}

	if _, err := m.Scrape(ctx); err != nil {
		return nil, err
	}

	if err := m.WriteResult(ctx); err != nil {
		return nil, err
	}

	if m.settings.Download {
		if err := m.StartDownloads(ctx); err != nil {
			return nil, err
		}
	}

	return m.Summary(), nil
}

// Scan reads the local library for the artist. It touches neither the
// network nor the browser.
func (m *Manager) Scan(ctx context.Context, artistQuery string) (*library.Snapshot, error) {
	m.artist = model.NewArtist(artistQuery)

	scanner := library.NewScanner(m.settings.ToScanOptions(func(path string, err error) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping unreadable directory %s: %v", path, err), Level: LevelWarning})
	}))

	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s for %q", m.settings.MusicDir, m.artist.Name), Level: LevelInfo})

	snap, err := scanner.Scan(ctx, m.settings.MusicDir, m.artist)
	if err != nil {
		return nil, fmt.Errorf("scan library: %w", err)
	}
	m.snapshot = snap

	dirs := snap.ArtistDirs()
	if len(dirs) == 0 {
		m.progress(ProgressEvent{Message: "No artist folder in the library, every item will be resolved", Level: LevelWarning})
	}
	for _, dir := range dirs {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Artist folder: %s", dir), Level: LevelVerbose})
	}
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Library has %d albums and %d tracks", snap.Len(model.KindAlbum), snap.Len(model.KindTrack)),
		Level:   LevelInfo,
	})

	return snap, nil
}

// Scrape resolves download URLs for everything the site lists for the
// artist. Scan must have been called first.
func (m *Manager) Scrape(ctx context.Context) (*scrape.Report, error) {
	if m.snapshot == nil {
		return nil, errors.New("scrape called before scan")
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Starting %s browser", m.settings.Driver), Level: LevelVerbose})
	driver, err := m.newDriver(ctx)
	if err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}
	defer func() {
		if err := driver.Close(); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error closing browser: %v", err), Level: LevelWarning})
		}
	}()

	scraper := scrape.New(driver, m.settings.ToScrapeConfig(), m.scrapeHooks())
	report, err := scraper.Scrape(ctx, m.artist, m.snapshot)
	if err != nil {
		return nil, err
	}
	m.report = report

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Resolved %d links, %d failed", len(report.Items), len(report.Failures)),
		Level:   LevelInfo,
	})
	return report, nil
}

func (m *Manager) scrapeHooks() scrape.Hooks {
	return scrape.Hooks{
		OnListing: func(kind model.MediaKind, links int) {
			atomic.AddInt32(&m.linksTotal, int32(links))
			m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d %s links", links, kind), Level: LevelInfo})
		},
		OnExisting: func(item scrape.Item) {
			atomic.AddInt32(&m.linksDone, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Already in library: %s %q", item.Kind, item.Name), Level: LevelVerbose})
		},
		OnResolved: func(item scrape.Item) {
			atomic.AddInt32(&m.linksDone, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Resolved %s %q: %s", item.Kind, item.Name, item.DownloadURL), Level: LevelSuccess})
		},
		OnFailed: func(f scrape.Failure) {
			atomic.AddInt32(&m.linksDone, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s %s: %v", f.Kind, f.PageURL, f.Err), Level: LevelWarning})
		},
		OnRetry: func(pageURL string, attempt int, err error) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d for %s: %v", attempt, pageURL, err), Level: LevelVerbose})
		},
	}
}

// WriteResult writes the result file for the last scrape.
func (m *Manager) WriteResult(ctx context.Context) error {
	if m.report == nil {
		return errors.New("no scrape result to write")
	}

	data, err := m.report.Result().Marshal()
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	path := m.OutputPath()
	if err := ioutils.WriteFile(ctx, path, data); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %s", path), Level: LevelSuccess})
	return nil
}

// OutputPath returns the result file path for the current artist.
func (m *Manager) OutputPath() string {
	return m.settings.OutputPath(m.artist)
}

// Snapshot returns the library snapshot of the last scan.
func (m *Manager) Snapshot() *library.Snapshot {
	return m.snapshot
}

// GetProgress returns the current run counters.
func (m *Manager) GetProgress() Progress {
	return Progress{
		LinksDone:     atomic.LoadInt32(&m.linksDone),
		LinksTotal:    atomic.LoadInt32(&m.linksTotal),
		FilesDone:     atomic.LoadInt32(&m.filesDone),
		FilesTotal:    atomic.LoadInt32(&m.filesTotal),
		BytesReceived: atomic.LoadInt64(&m.receivedBytes),
	}
}

// Summary returns the outcome of the stages run so far.
func (m *Manager) Summary() *Summary {
	s := &Summary{
		Artist:     m.artist,
		OutputPath: m.OutputPath(),
		Downloaded: int(atomic.LoadInt32(&m.filesDone)),
	}

	if m.snapshot != nil {
		s.LibraryAlbums = m.snapshot.Len(model.KindAlbum)
		s.LibraryTracks = m.snapshot.Len(model.KindTrack)
	}

	if m.report != nil {
		result := m.report.Result()
		s.Albums = len(result.Albums)
		s.Tracks = len(result.Tracks)
		s.Failed = len(m.report.Failures)
		for _, item := range m.report.Items {
			if item.Existing {
				s.Existing++
			} else {
				s.Resolved++
			}
		}
	}

	return s
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
