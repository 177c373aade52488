package audio

import (
	"fmt"
	"strconv"

	"github.com/bogem/id3v2"

	"github.com/handiism/baran-dl/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value known for the track.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags:  true,
//	    Artist:      TagModify,
//	    Album:       TagModify,
//	    TrackTitle:  TagDoNotModify, // keep titles shipped in the archive
//	    Comments:    TagEmpty,
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no text frames are modified.
	ModifyTags bool

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// AlbumArtist controls the TPE2 (Album artist) frame.
	AlbumArtist TagEditAction

	// Album controls the TALB (Album title) frame.
	Album TagEditAction

	// TrackNumber controls the TRCK (Track number) frame.
	TrackNumber TagEditAction

	// TrackTitle controls the TIT2 (Title) frame.
	TrackTitle TagEditAction

	// Comments controls the COMM (Comments) frame.
	Comments TagEditAction
}

// DefaultTagConfig returns the tag configuration used for single tracks.
//
// Every frame is modified except comments, which are cleared since download
// sites like to stamp their address in them.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Artist:      TagModify,
		AlbumArtist: TagModify,
		Album:       TagModify,
		TrackNumber: TagModify,
		TrackTitle:  TagModify,
		Comments:    TagEmpty,
	}
}

// ArchiveTagConfig returns the tag configuration used for tracks extracted
// from an album archive: titles and numbers shipped in the files are kept.
func ArchiveTagConfig() *TagConfig {
	cfg := DefaultTagConfig()
	cfg.TrackNumber = TagDoNotModify
	cfg.TrackTitle = TagDoNotModify
	return cfg
}

// Tagger writes ID3 tags to MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags(track, jpegBytes); err != nil {
//	    log.Printf("Failed to tag %s: %v", track.Path, err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes ID3 tags to the track's MP3 file.
//
// Text frames come from the track and its album. artwork, when not nil,
// replaces any embedded front cover and must be JPEG encoded.
func (t *Tagger) SaveTags(track *model.Track, artwork []byte) error {
	if track.Album == nil {
		return fmt.Errorf("track %q has no album", track.Title)
	}

	tag, err := id3v2.Open(track.Path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tags: %w", err)
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.updateStringTags(tag, track)
	}

	if artwork != nil {
		updateArtwork(tag, artwork)
	}

	return tag.Save()
}

// textFrame binds a configurable frame to the value the track supplies.
type textFrame struct {
	id     string
	action TagEditAction
	value  string
}

// frames lists the text frames the tagger manages for track.
func (t *Tagger) frames(track *model.Track) []textFrame {
	number := ""
	if track.Number > 0 {
		number = strconv.Itoa(track.Number)
	}
	return []textFrame{
		{id: "TPE1", action: t.config.Artist, value: track.Album.Artist},
		{id: "TPE2", action: t.config.AlbumArtist, value: track.Album.Artist},
		{id: "TALB", action: t.config.Album, value: track.Album.Title},
		{id: "TRCK", action: t.config.TrackNumber, value: number},
		{id: "TIT2", action: t.config.TrackTitle, value: track.Title},
	}
}

func (t *Tagger) updateStringTags(tag *id3v2.Tag, track *model.Track) {
	for _, f := range t.frames(track) {
		switch f.action {
		case TagEmpty:
			tag.DeleteFrames(f.id)
		case TagModify:
			// An unknown value leaves the frame as shipped.
			if f.value != "" {
				tag.AddTextFrame(f.id, id3v2.EncodingUTF8, f.value)
			}
		}
	}

	if t.config.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

// updateArtwork embeds cover art as the front cover picture frame.
func updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})
}
