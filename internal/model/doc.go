// Package model defines the core data structures used throughout baran-dl.
//
// # Names
//
// Local files and scraped links are compared by normalized name:
//
//	artist := model.NewArtist("The-Weeknd")      // artist.Name == "the weeknd"
//	artist.Title("the-weeknd-after-hours", model.KindAlbum) // "after hours"
//
// # Media kinds
//
// MediaKind captures everything that differs between tracks and albums:
// download extension and site section.
//
// # Result
//
// Result is the JSON document written at the end of a run:
//
//	{"tracks": {name: url}, "albums": {name: url}}
//
// # Album and Track
//
// Album and Track describe files placed into the library by the download
// stage. PathConfig controls where they go using placeholders:
//
//	cfg := &model.PathConfig{
//	    MusicDir:               "/music",
//	    DownloadsPath:          "{music}/{artist}/{album}",
//	    PlaylistFileNameFormat: "{album}",
//	    PlaylistFormat:         model.PlaylistFormatM3U,
//	}
package model
