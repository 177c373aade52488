package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/baran-dl/internal/model"
)

func TestArtistURL(t *testing.T) {
	artist := model.NewArtist("the-weeknd")

	assert.Equal(t, "https://mymusicbaran1.ir/artists/the-weeknd",
		ArtistURL("https://mymusicbaran1.ir", artist))
	assert.Equal(t, "https://mymusicbaran1.ir/artists/the-weeknd",
		ArtistURL("https://mymusicbaran1.ir/", artist))
	assert.Equal(t, "http://x/artists/a%20b",
		ArtistURL("http://x", model.NewArtist("a b")))
}

func TestListingURL(t *testing.T) {
	base := "https://site/artists/adele"
	assert.Equal(t, base+"/?section=album", ListingURL(base, model.KindAlbum))
	assert.Equal(t, base+"/?section=music", ListingURL(base, model.KindTrack))
}

func TestNameFromHref(t *testing.T) {
	weeknd := model.NewArtist("the-weeknd")

	tests := []struct {
		name   string
		href   string
		artist model.Artist
		kind   model.MediaKind
		want   string
	}{
		{
			name:   "trailing slash",
			href:   "https://site/music/the-weeknd-blinding-lights/",
			artist: weeknd,
			kind:   model.KindTrack,
			want:   "blinding lights",
		},
		{
			name:   "no trailing slash",
			href:   "https://site/music/the-weeknd-blinding-lights",
			artist: weeknd,
			kind:   model.KindTrack,
			want:   "blinding lights",
		},
		{
			name:   "album with extension",
			href:   "https://site/album/After_Hours.zip",
			artist: weeknd,
			kind:   model.KindAlbum,
			want:   "after hours",
		},
		{
			name:   "query ignored",
			href:   "https://site/music/starboy/?ref=home",
			artist: weeknd,
			kind:   model.KindTrack,
			want:   "starboy",
		},
		{
			name:   "relative link",
			href:   "/music/adele-hello/",
			artist: model.NewArtist("Adele"),
			kind:   model.KindTrack,
			want:   "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NameFromHref(tt.href, tt.artist, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNameFromHref_Malformed(t *testing.T) {
	artist := model.NewArtist("adele")

	for _, href := range []string{"", "https://site/", "https://site", "%zz"} {
		_, err := NameFromHref(href, artist, model.KindTrack)
		assert.ErrorIs(t, err, ErrMalformedHref, "href %q", href)
	}
}

func TestResolveHref(t *testing.T) {
	assert.Equal(t, "https://site/music/a/", resolveHref("https://site/artists/x/?section=music", "/music/a/"))
	assert.Equal(t, "https://cdn/a.mp3", resolveHref("https://site/music/a/", "https://cdn/a.mp3"))
	assert.Equal(t, "https://site/music/a/b.mp3", resolveHref("https://site/music/a/", "b.mp3"))
	assert.Equal(t, "b.mp3", resolveHref("", "b.mp3"))
}
