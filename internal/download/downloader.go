package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/baran-dl/internal/http"
	ioutils "github.com/handiism/baran-dl/internal/io"
	"github.com/handiism/baran-dl/internal/model"
)

// StartDownloads downloads every resolved item of the last scrape into the
// library. Scrape must have been called first.
//
// Tracks go to the singles folder of the artist, albums are downloaded as
// archives and extracted into their own folder. An item that fails is
// reported and skipped; only cancellation stops the stage.
func (m *Manager) StartDownloads(ctx context.Context) error {
	if m.report == nil {
		return errors.New("download called before scrape")
	}

	albums := m.report.Pending(model.KindAlbum)
	tracks := m.report.Pending(model.KindTrack)
	if len(albums)+len(tracks) == 0 {
		m.progress(ProgressEvent{Message: "Nothing to download", Level: LevelInfo})
		return nil
	}
	atomic.AddInt32(&m.filesTotal, int32(len(albums)+len(tracks)))

	pathCfg := m.settings.ToPathConfig()
	trackCfg := m.settings.ToTrackConfig()
	artistFolder := m.artistFolder()
	singles := model.NewAlbum(artistFolder, m.settings.SinglesFolder, "", "", pathCfg)

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Downloading %d albums and %d tracks into %s", len(albums), len(tracks), filepath.Dir(singles.Path)),
		Level:   LevelInfo,
	})

	workers := m.settings.MaxConcurrentPages
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, item := range albums {
		album := model.NewAlbum(artistFolder, item.Name, item.PageURL, item.DownloadURL, pathCfg)
		album.ArtworkURL = item.ArtworkURL
		g.Go(func() error {
			if err := m.downloadAlbum(gctx, album); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading album %q: %v", album.Title, err), Level: LevelError})
				return nil
			}
			atomic.AddInt32(&m.filesDone, 1)
			return nil
		})
	}

	for _, item := range tracks {
		track := model.NewTrack(singles, 0, item.Name, item.PageURL, item.DownloadURL, trackCfg)
		track.ArtworkURL = item.ArtworkURL
		g.Go(func() error {
			if err := m.downloadTrack(gctx, track); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading track %q: %v", track.Title, err), Level: LevelError})
				return nil
			}
			atomic.AddInt32(&m.filesDone, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// artistFolder returns the library folder name downloads go into: the first
// matching folder when the library has one, else the name typed by the user.
func (m *Manager) artistFolder() string {
	if dirs := m.snapshot.ArtistDirs(); len(dirs) > 0 {
		return filepath.Base(dirs[0])
	}
	return m.artist.Query
}

func (m *Manager) downloadTrack(ctx context.Context, track *model.Track) error {
	if err := ioutils.EnsureDir(track.Album.Path); err != nil {
		return err
	}

	if m.alreadyDownloaded(ctx, track.Path, track.Mp3URL) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", filepath.Base(track.Path)), Level: LevelVerbose})
		return nil
	}

	counter := m.newByteCounter()
	err := m.withRetry(ctx, track.Title, func() error {
		counter.restart()
		return m.httpClient.DownloadFile(ctx, track.Mp3URL, track.Path, counter.update)
	})
	if err != nil {
		return err
	}

	if m.settings.ModifyTags {
		artwork := m.downloadArtwork(ctx, track.ArtworkURL, track.Title)
		if err := m.tagger.SaveTags(track, artwork); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", track.Title, err), Level: LevelWarning})
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(track.Path)), Level: LevelSuccess})
	return nil
}

func (m *Manager) downloadAlbum(ctx context.Context, album *model.Album) error {
	if err := ioutils.EnsureDir(filepath.Dir(album.ArchivePath)); err != nil {
		return err
	}

	counter := m.newByteCounter()
	err := m.withRetry(ctx, album.Title, func() error {
		counter.restart()
		return m.httpClient.DownloadFile(ctx, album.DownloadURL, album.ArchivePath, counter.update)
	})
	if err != nil {
		return err
	}

	files, err := ioutils.ExtractZip(ctx, album.ArchivePath, album.Path)
	if err != nil {
		return fmt.Errorf("extract %s: %w", filepath.Base(album.ArchivePath), err)
	}
	if err := os.Remove(album.ArchivePath); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error removing archive: %v", err), Level: LevelWarning})
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Extracted %d files into %s", len(files), album.Path), Level: LevelVerbose})

	for i, path := range ioutils.FilterExt(files, model.KindTrack.Extension()) {
		album.Tracks = append(album.Tracks, model.TrackFromFile(album, i+1, path))
	}

	if m.settings.ModifyTags && len(album.Tracks) > 0 {
		var artwork []byte
		if album.HasArtwork() {
			artwork = m.downloadArtwork(ctx, album.ArtworkURL, album.Title)
		}
		for _, track := range album.Tracks {
			if err := m.albumTagger.SaveTags(track, artwork); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", filepath.Base(track.Path), err), Level: LevelWarning})
			}
		}
	}

	if m.settings.CreatePlaylist && len(album.Tracks) > 0 {
		content := m.playlist.CreatePlaylist(album)
		if err := ioutils.WriteFile(ctx, album.PlaylistPath, []byte(content)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		} else {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist for %s", album.Title), Level: LevelVerbose})
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded album: %s (%d tracks)", album.Title, len(album.Tracks)), Level: LevelSuccess})
	return nil
}

// downloadArtwork returns the cover to embed, or nil when covers are
// disabled, unknown or cannot be fetched.
func (m *Manager) downloadArtwork(ctx context.Context, url, title string) []byte {
	if !m.settings.SaveCoverArtInTags || url == "" {
		return nil
	}

	var data []byte
	err := m.withRetry(ctx, "cover of "+title, func() error {
		var err error
		data, err = m.httpClient.DownloadBytes(ctx, url)
		return err
	})
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading artwork for %s: %v", title, err), Level: LevelWarning})
		return nil
	}

	cover, err := m.imageService.PrepareCover(ctx, data, m.settings.CoverArtInTagsMaxSize)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error converting artwork for %s: %v", title, err), Level: LevelWarning})
		return nil
	}
	return cover
}

// alreadyDownloaded reports whether path exists with the size the server
// announces for url.
func (m *Manager) alreadyDownloaded(ctx context.Context, path, url string) bool {
	if !ioutils.FileExists(path) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	expected, err := m.httpClient.GetFileSize(ctx, url)
	return err == nil && expected == info.Size()
}

func (m *Manager) withRetry(ctx context.Context, label string, fn func() error) error {
	policy := m.settings.Retry()
	attempts := policy.Attempts()

	var err error
	for tries := 0; tries < attempts; tries++ {
		if err = fn(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if permanent(err) || tries+1 == attempts {
			break
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for %s: %v", tries+1, attempts-1, label, err), Level: LevelWarning})
		if werr := policy.Wait(ctx, tries); werr != nil {
			return werr
		}
	}
	return err
}

// permanent reports whether the server refused the request for good.
func permanent(err error) bool {
	var statusErr *http.StatusError
	return errors.As(err, &statusErr) && statusErr.Status >= 400 && statusErr.Status < 500
}

// byteCounter feeds the transfer of one item into a shared byte total.
// Attempts of an item run one after another, so last needs no locking.
type byteCounter struct {
	total *int64
	last  int64
}

func (m *Manager) newByteCounter() *byteCounter {
	return &byteCounter{total: &m.receivedBytes}
}

// update is the progress callback of a transfer.
func (c *byteCounter) update(written, _ int64) {
	atomic.AddInt64(c.total, written-c.last)
	c.last = written
}

// restart takes back what the previous attempt counted.
func (c *byteCounter) restart() {
	atomic.AddInt64(c.total, -c.last)
	c.last = 0
}
