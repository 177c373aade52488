package model

import "encoding/json"

// Result is the document written at the end of a run.
//
// Both maps are keyed by normalized name. The value is the chosen download
// URL, or the empty string when the item already exists in the library:
//
//	{
//	  "tracks": {"blinding lights": "https://.../blinding-lights-320.mp3", "save your tears": ""},
//	  "albums": {"after hours": "https://.../after-hours.zip"}
//	}
//
// Items that could not be resolved are not present.
type Result struct {
	Tracks map[string]string `json:"tracks"`
	Albums map[string]string `json:"albums"`
}

// NewResult returns a Result with empty, non-nil maps.
func NewResult() *Result {
	return &Result{
		Tracks: make(map[string]string),
		Albums: make(map[string]string),
	}
}

// For returns the map holding items of the given kind.
func (r *Result) For(kind MediaKind) map[string]string {
	if kind == KindAlbum {
		return r.Albums
	}
	return r.Tracks
}

// Marshal encodes the result as indented JSON with a trailing newline.
func (r *Result) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
