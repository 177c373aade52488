package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/baran-dl/internal/model"
)

var (
	// ErrNotDirectory is returned when the library root is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrEmptyArtist is returned when the artist name normalizes to nothing.
	ErrEmptyArtist = errors.New("empty artist name")
)

// Options controls how the Scanner treats unreadable directories.
type Options struct {
	// SkipUnreadable makes the scanner skip artist and album directories that
	// cannot be listed instead of aborting the scan. The library root must
	// always be readable.
	SkipUnreadable bool

	// OnSkip is called for every skipped directory. May be nil.
	OnSkip func(path string, err error)
}

// Scanner collects the albums and tracks already in the local library.
//
// The library is expected to be laid out as:
//
//	<root>/<artist>/<album>/<track>.mp3
//
// Artist folders are matched case and separator insensitively, so
// "The-Weeknd", "the_weeknd" and "THE WEEKND" all belong to "the weeknd".
// Every matching folder is scanned and the results are merged.
//
// Example:
//
//	scanner := library.NewScanner(library.Options{})
//	snap, err := scanner.Scan(ctx, "/music", model.NewArtist("the-weeknd"))
//	if err != nil {
//	    return err
//	}
//	snap.Exists("after hours", model.KindAlbum)
type Scanner struct {
	opts Options
}

// NewScanner creates a Scanner with the given options.
func NewScanner(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// Scan walks root and returns the snapshot for artist.
//
// Album names are the lowercased names of the directories directly inside an
// artist folder. Track names are the .mp3 files directly inside an album
// folder, normalized with model.NormalizeTitle. Nested directories below an
// album are not descended into.
//
// Returns an error if root cannot be read, or if any artist or album
// directory cannot be read and Options.SkipUnreadable is false.
func (s *Scanner) Scan(ctx context.Context, root string, artist model.Artist) (*Snapshot, error) {
	if artist.Name == "" {
		return nil, ErrEmptyArtist
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat library root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library root %s: %w", root, ErrNotDirectory)
	}

	artistDirs, err := findArtistDirs(root, artist.Name)
	if err != nil {
		return nil, fmt.Errorf("read library root: %w", err)
	}

	snap := newSnapshot()
	snap.artistDirs = artistDirs

	for _, dir := range artistDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.scanArtistDir(ctx, dir, artist, snap); err != nil {
			return nil, err
		}
	}

	return snap, nil
}

// findArtistDirs returns the subdirectories of root whose normalized name
// equals target.
func findArtistDirs(root, target string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if !isDir(path, entry) {
			continue
		}
		if model.NormalizeDirName(entry.Name()) == target {
			dirs = append(dirs, path)
		}
	}
	return dirs, nil
}

func (s *Scanner) scanArtistDir(ctx context.Context, dir string, artist model.Artist, snap *Snapshot) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return s.skipOrFail(dir, fmt.Errorf("read artist dir %s: %w", dir, err))
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isDir(path, entry) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		snap.albums[strings.ToLower(entry.Name())] = struct{}{}

		if err := s.scanAlbumDir(path, artist, snap); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) scanAlbumDir(dir string, artist model.Artist, snap *Snapshot) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return s.skipOrFail(dir, fmt.Errorf("read album dir %s: %w", dir, err))
	}

	ext := model.KindTrack.Extension()
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ext) {
			continue
		}
		if isDir(filepath.Join(dir, name), entry) {
			continue
		}
		snap.tracks[artist.Title(name, model.KindTrack)] = struct{}{}
	}
	return nil
}

func (s *Scanner) skipOrFail(path string, err error) error {
	if !s.opts.SkipUnreadable {
		return err
	}
	if s.opts.OnSkip != nil {
		s.opts.OnSkip(path, err)
	}
	return nil
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
