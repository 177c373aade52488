package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/handiism/baran-dl/internal/download"
	"github.com/handiism/baran-dl/internal/library"
	"github.com/handiism/baran-dl/internal/model"
)

func TestPrinter_Event(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		event   download.ProgressEvent
		want    string
	}{
		{"info", false, download.ProgressEvent{Message: "Found 3 album links", Level: download.LevelInfo}, "[info]  Found 3 album links\n"},
		{"warning", false, download.ProgressEvent{Message: "Skipping", Level: download.LevelWarning}, "[warn]  Skipping\n"},
		{"error", false, download.ProgressEvent{Message: "boom", Level: download.LevelError}, "[error] boom\n"},
		{"success", false, download.ProgressEvent{Message: "Wrote a.json", Level: download.LevelSuccess}, "[ok]    Wrote a.json\n"},
		{"verbose hidden", false, download.ProgressEvent{Message: "detail", Level: download.LevelVerbose}, ""},
		{"verbose shown", true, download.ProgressEvent{Message: "detail", Level: download.LevelVerbose}, "        detail\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := &printer{out: &buf, verbose: tt.verbose}
			p.event(tt.event)
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrinter_Summary(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{out: &buf}

	p.summary(&download.Summary{
		Artist:     model.NewArtist("Adele"),
		OutputPath: "adele.json",
		Albums:     2,
		Tracks:     5,
		Failed:     1,
	})

	out := buf.String()
	for _, want := range []string{"Done: adele", "2 albums, 5 tracks", "Failed:     1", "Output:     adele.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Downloaded") {
		t.Error("downloaded line should be omitted when nothing was downloaded")
	}
}

func TestPrinter_Library(t *testing.T) {
	snap := library.NewSnapshot([]string{"after hours", "starboy"}, []string{"blinding lights"})

	var buf bytes.Buffer
	(&printer{out: &buf}).library(snap)
	out := buf.String()
	if !strings.Contains(out, "albums: 2 in library") || !strings.Contains(out, "tracks: 1 in library") {
		t.Errorf("counts missing:\n%s", out)
	}
	if strings.Contains(out, "starboy") {
		t.Errorf("names should only be listed in verbose mode:\n%s", out)
	}

	buf.Reset()
	(&printer{out: &buf, verbose: true}).library(snap)
	for _, want := range []string{"    after hours", "    starboy", "    blinding lights"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("verbose listing missing %q:\n%s", want, buf.String())
		}
	}
}
