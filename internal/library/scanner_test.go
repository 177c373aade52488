package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/baran-dl/internal/model"
)

// makeTree creates every file path under root, creating parent directories.
// Paths ending in "/" are created as empty directories.
func makeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}
}

func TestScan_BasicLayout(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"artist/AlbumA/track1.mp3",
		"artist/AlbumA/track2.mp3",
	)

	snap, err := NewScanner(Options{}).Scan(context.Background(), root, model.NewArtist("artist"))
	require.NoError(t, err)

	assert.Equal(t, []string{"albuma"}, snap.Names(model.KindAlbum))
	assert.Equal(t, []string{"track1", "track2"}, snap.Names(model.KindTrack))
	assert.Equal(t, []string{filepath.Join(root, "artist")}, snap.ArtistDirs())
}

func TestScan_StripsArtistFromTracks(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"The Weeknd/After Hours/The Weeknd - Blinding Lights.mp3",
		"The Weeknd/After Hours/the_weeknd_save_your_tears.MP3",
		"The Weeknd/After Hours/cover.jpg",
		"The Weeknd/After Hours/notes.txt",
	)

	snap, err := NewScanner(Options{}).Scan(context.Background(), root, model.NewArtist("the-weeknd"))
	require.NoError(t, err)

	assert.Equal(t, []string{"after hours"}, snap.Names(model.KindAlbum))
	assert.Equal(t, []string{"blinding lights", "save your tears"}, snap.Names(model.KindTrack))
}

func TestScan_MatchesArtistFoldersInsensitively(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"The-Weeknd/Starboy/starboy.mp3",
		"the_weeknd/Dawn FM/gasoline.mp3",
		"THE WEEKND/Kiss Land/",
		"The Weeknds/Other/other.mp3",
		"Someone Else/Album/song.mp3",
	)

	snap, err := NewScanner(Options{}).Scan(context.Background(), root, model.NewArtist("the weeknd"))
	require.NoError(t, err)

	assert.Len(t, snap.ArtistDirs(), 3)
	assert.Equal(t, []string{"dawn fm", "kiss land", "starboy"}, snap.Names(model.KindAlbum))
	assert.Equal(t, []string{"gasoline", "starboy"}, snap.Names(model.KindTrack))
}

func TestScan_AlbumNamesAreOnlyLowercased(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "artist/Artist_Greatest-Hits/")

	snap, err := NewScanner(Options{}).Scan(context.Background(), root, model.NewArtist("artist"))
	require.NoError(t, err)

	assert.True(t, snap.Exists("artist_greatest-hits", model.KindAlbum))
	assert.False(t, snap.Exists("greatest hits", model.KindAlbum))
}

func TestScan_IgnoresNestedAndLooseFiles(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"artist/loose.mp3",
		"artist/Album/Disc 1/deep.mp3",
		"artist/Album/top.mp3",
		"artist.mp3",
	)

	snap, err := NewScanner(Options{}).Scan(context.Background(), root, model.NewArtist("artist"))
	require.NoError(t, err)

	assert.Equal(t, []string{"album"}, snap.Names(model.KindAlbum))
	assert.Equal(t, []string{"top"}, snap.Names(model.KindTrack))
}

func TestScan_TrackNamedAfterArtist(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "artist/Album/artist.mp3")

	snap, err := NewScanner(Options{}).Scan(context.Background(), root, model.NewArtist("artist"))
	require.NoError(t, err)

	assert.True(t, snap.Exists("", model.KindTrack))
	assert.Equal(t, 1, snap.Len(model.KindTrack))
}

func TestScan_NoMatchingArtist(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "someone/Album/song.mp3")

	snap, err := NewScanner(Options{}).Scan(context.Background(), root, model.NewArtist("artist"))
	require.NoError(t, err)

	assert.Empty(t, snap.ArtistDirs())
	assert.Zero(t, snap.Len(model.KindAlbum))
	assert.Zero(t, snap.Len(model.KindTrack))
}

func TestScan_FollowsSymlinkedAlbums(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	makeTree(t, elsewhere, "Real Album/song.mp3")
	makeTree(t, root, "artist/")

	if err := os.Symlink(filepath.Join(elsewhere, "Real Album"), filepath.Join(root, "artist", "Linked Album")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	snap, err := NewScanner(Options{}).Scan(context.Background(), root, model.NewArtist("artist"))
	require.NoError(t, err)

	assert.True(t, snap.Exists("linked album", model.KindAlbum))
	assert.True(t, snap.Exists("song", model.KindTrack))
}

func TestScan_Errors(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "file.txt")

	t.Run("missing root", func(t *testing.T) {
		_, err := NewScanner(Options{}).Scan(context.Background(), filepath.Join(root, "missing"), model.NewArtist("artist"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("root is a file", func(t *testing.T) {
		_, err := NewScanner(Options{}).Scan(context.Background(), filepath.Join(root, "file.txt"), model.NewArtist("artist"))
		assert.ErrorIs(t, err, ErrNotDirectory)
	})

	t.Run("empty artist", func(t *testing.T) {
		_, err := NewScanner(Options{}).Scan(context.Background(), root, model.NewArtist(" - "))
		assert.ErrorIs(t, err, ErrEmptyArtist)
	})

	t.Run("cancelled", func(t *testing.T) {
		makeTree(t, root, "artist/Album/song.mp3")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewScanner(Options{}).Scan(ctx, root, model.NewArtist("artist"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestScan_UnreadableAlbum(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	makeTree(t, root,
		"artist/Locked/secret.mp3",
		"artist/Open/song.mp3",
	)
	locked := filepath.Join(root, "artist", "Locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	t.Run("aborts by default", func(t *testing.T) {
		_, err := NewScanner(Options{}).Scan(context.Background(), root, model.NewArtist("artist"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrPermission)
	})

	t.Run("skips when asked", func(t *testing.T) {
		var skipped []string
		scanner := NewScanner(Options{
			SkipUnreadable: true,
			OnSkip:         func(path string, err error) { skipped = append(skipped, path) },
		})

		snap, err := scanner.Scan(context.Background(), root, model.NewArtist("artist"))
		require.NoError(t, err)

		assert.Equal(t, []string{locked}, skipped)
		assert.True(t, snap.Exists("locked", model.KindAlbum))
		assert.True(t, snap.Exists("song", model.KindTrack))
		assert.False(t, snap.Exists("secret", model.KindTrack))
	})
}

func TestSnapshot_Exists(t *testing.T) {
	snap := NewSnapshot([]string{"after hours"}, []string{"blinding lights", ""})

	tests := []struct {
		name string
		kind model.MediaKind
		want bool
	}{
		{"after hours", model.KindAlbum, true},
		{"after hours", model.KindTrack, false},
		{"blinding lights", model.KindTrack, true},
		{"Blinding Lights", model.KindTrack, false},
		{"", model.KindTrack, true},
		{"", model.KindAlbum, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, snap.Exists(tt.name, tt.kind))
		})
	}

	assert.Equal(t, 2, snap.Len(model.KindTrack), "Exists must not add names")
}
