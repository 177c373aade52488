// Package audio writes ID3 tags and playlists for files placed into the
// library by the download stage.
//
// Single tracks are tagged with DefaultTagConfig: artist, album, title and
// the embedded cover. Tracks that come out of an album archive already carry
// their own title and number, so ArchiveTagConfig leaves those frames alone
// and only fills in the artist and album:
//
//	tagger := audio.NewTagger(audio.ArchiveTagConfig())
//	for _, track := range album.Tracks {
//	    if err := tagger.SaveTags(track, cover); err != nil {
//	        return err
//	    }
//	}
//
// PlaylistCreator renders M3U (plain or extended) and PLS playlists with
// paths relative to the album folder.
package audio
