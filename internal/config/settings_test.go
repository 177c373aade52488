package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/handiism/baran-dl/internal/model"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.BaseURL != "https://mymusicbaran1.ir" {
		t.Errorf("BaseURL = %q", s.BaseURL)
	}
	if s.Driver != "rod" {
		t.Errorf("Driver = %q, want rod", s.Driver)
	}
	if !s.Headless {
		t.Error("Headless should default to true")
	}
	if s.NavigationTimeout != 45 {
		t.Errorf("NavigationTimeout = %d, want 45", s.NavigationTimeout)
	}
	if s.Download {
		t.Error("Download should default to false")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.MaxConcurrentPages != DefaultSettings().MaxConcurrentPages {
		t.Errorf("expected defaults, got MaxConcurrentPages = %d", s.MaxConcurrentPages)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"music_dir": "/srv/music", "driver": "static", "max_concurrent_pages": 8}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.MusicDir != "/srv/music" {
		t.Errorf("MusicDir = %q", s.MusicDir)
	}
	if s.Driver != "static" {
		t.Errorf("Driver = %q", s.Driver)
	}
	if s.MaxConcurrentPages != 8 {
		t.Errorf("MaxConcurrentPages = %d", s.MaxConcurrentPages)
	}
	if s.SinglesFolder != "Singles" {
		t.Errorf("SinglesFolder = %q, want default", s.SinglesFolder)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestLoad_ZeroWorkersFailsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"max_concurrent_pages": 0}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.MaxConcurrentPages != 0 {
		t.Fatalf("MaxConcurrentPages = %d, want the value from the file", s.MaxConcurrentPages)
	}
	if err := s.Validate(); err == nil {
		t.Error("Validate() should reject max_concurrent_pages = 0")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	s := DefaultSettings()
	s.MusicDir = "/data/music"
	s.AllowLowBitrate = true
	s.PlaylistFormat = "pls"

	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *s {
		t.Errorf("loaded settings differ:\n got %+v\nwant %+v", loaded, s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"empty music dir", func(s *Settings) { s.MusicDir = "" }},
		{"empty base url", func(s *Settings) { s.BaseURL = "" }},
		{"unknown driver", func(s *Settings) { s.Driver = "selenium" }},
		{"negative timeout", func(s *Settings) { s.NavigationTimeout = -1 }},
		{"no workers", func(s *Settings) { s.MaxConcurrentPages = 0 }},
		{"unknown playlist", func(s *Settings) { s.PlaylistFormat = "wpl" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConversions(t *testing.T) {
	s := DefaultSettings()
	s.MusicDir = "/music"
	s.OutputDir = "/out"
	s.PlaylistFormat = "PLS"
	s.NavigationTimeout = 10
	s.Download = true

	pc := s.ToPathConfig()
	if pc.MusicDir != "/music" || pc.PlaylistFormat != model.PlaylistFormatPLS {
		t.Errorf("ToPathConfig() = %+v", pc)
	}

	if got := s.ToBrowserOptions().Timeout; got != 10*time.Second {
		t.Errorf("browser timeout = %v", got)
	}

	sc := s.ToScrapeConfig()
	if sc.BaseURL != s.BaseURL || sc.MaxConcurrentPages != s.MaxConcurrentPages {
		t.Errorf("ToScrapeConfig() = %+v", sc)
	}
	if !sc.FetchArtwork {
		t.Error("FetchArtwork should follow download with cover art tags")
	}
	if sc.Retry.MaxRetries != s.MaxRetries {
		t.Errorf("retry = %+v", sc.Retry)
	}

	want := filepath.Join("/out", "the weeknd.json")
	if got := s.OutputPath(model.NewArtist("The-Weeknd")); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}
