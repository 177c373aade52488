package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/baran-dl/internal/browser"
	"github.com/handiism/baran-dl/internal/library"
	"github.com/handiism/baran-dl/internal/model"
	"github.com/handiism/baran-dl/internal/scrape"
)

// Settings holds all configuration options.
type Settings struct {
	// Library and output
	MusicDir  string `json:"music_dir"`
	OutputDir string `json:"output_dir"`

	// Site and browser
	BaseURL           string `json:"base_url"`
	Driver            string `json:"driver"` // rod, static
	Headless          bool   `json:"headless"`
	BrowserBin        string `json:"browser_bin"`
	UserAgent         string `json:"user_agent"`
	NavigationTimeout int    `json:"navigation_timeout"` // seconds

	// Scraping
	MaxConcurrentPages int     `json:"max_concurrent_pages"`
	MaxRetries         int     `json:"max_retries"` // attempts, first one included
	RetryCooldown      float64 `json:"retry_cooldown"`
	RetryExponent      float64 `json:"retry_exponent"`
	AllowLowBitrate    bool    `json:"allow_low_bitrate"`
	SkipUnreadable     bool    `json:"skip_unreadable"`

	// Download stage
	Download               bool   `json:"download"`
	DownloadsPath          string `json:"downloads_path"`
	SinglesFolder          string `json:"singles_folder"`
	FileNameFormat         string `json:"file_name_format"`
	PlaylistFileNameFormat string `json:"playlist_file_name_format"`

	// Tag settings
	ModifyTags            bool `json:"modify_tags"`
	SaveCoverArtInTags    bool `json:"save_cover_art_in_tags"`
	CoverArtInTagsMaxSize int  `json:"cover_art_in_tags_max_size"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls
	M3UExtended    bool   `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		MusicDir:  filepath.Join(homeDir, "Music"),
		OutputDir: ".",

		BaseURL:           "https://mymusicbaran1.ir",
		Driver:            string(browser.KindRod),
		Headless:          true,
		UserAgent:         "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		NavigationTimeout: 45,

		MaxConcurrentPages: 4,
		MaxRetries:         3,
		RetryCooldown:      0.5,
		RetryExponent:      2.0,
		AllowLowBitrate:    false,
		SkipUnreadable:     false,

		Download:               false,
		DownloadsPath:          filepath.Join("{music}", "{artist}", "{album}"),
		SinglesFolder:          "Singles",
		FileNameFormat:         "{title}.mp3",
		PlaylistFileNameFormat: "{album}",

		ModifyTags:            true,
		SaveCoverArtInTags:    true,
		CoverArtInTagsMaxSize: 1000,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// DefaultPath returns the default location of the settings file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "baran-dl.json"
	}
	return filepath.Join(dir, "baran-dl", "config.json")
}

// Load reads settings from a JSON file. Fields missing from the file keep
// their default values; a missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid field.
func (s *Settings) Validate() error {
	switch {
	case s.MusicDir == "":
		return fmt.Errorf("music_dir is required")
	case s.BaseURL == "":
		return fmt.Errorf("base_url is required")
	case s.Driver != string(browser.KindRod) && s.Driver != string(browser.KindStatic):
		return fmt.Errorf("driver must be %q or %q, got %q", browser.KindRod, browser.KindStatic, s.Driver)
	case s.NavigationTimeout < 0:
		return fmt.Errorf("navigation_timeout must not be negative")
	case s.MaxConcurrentPages < 1:
		return fmt.Errorf("max_concurrent_pages must be at least 1")
	}

	switch strings.ToLower(s.PlaylistFormat) {
	case "m3u", "pls":
	default:
		return fmt.Errorf("playlist_format must be m3u or pls, got %q", s.PlaylistFormat)
	}
	return nil
}

// OutputPath returns where the result file for artist is written.
func (s *Settings) OutputPath(artist model.Artist) string {
	return filepath.Join(s.OutputDir, artist.OutputFileName())
}

// ToPathConfig converts settings to PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	var pf model.PlaylistFormat
	switch strings.ToLower(s.PlaylistFormat) {
	case "pls":
		pf = model.PlaylistFormatPLS
	default:
		pf = model.PlaylistFormatM3U
	}

	return &model.PathConfig{
		MusicDir:               s.MusicDir,
		DownloadsPath:          s.DownloadsPath,
		PlaylistFileNameFormat: s.PlaylistFileNameFormat,
		PlaylistFormat:         pf,
	}
}

// ToTrackConfig converts settings to TrackConfig.
func (s *Settings) ToTrackConfig() *model.TrackConfig {
	return &model.TrackConfig{
		FileNameFormat: s.FileNameFormat,
	}
}

// Retry returns the backoff used for page loads and downloads.
func (s *Settings) Retry() scrape.RetryPolicy {
	return scrape.RetryPolicy{
		MaxRetries: s.MaxRetries,
		Cooldown:   s.RetryCooldown,
		Exponent:   s.RetryExponent,
	}
}

// ToScrapeConfig converts settings to the scraper configuration.
func (s *Settings) ToScrapeConfig() scrape.Config {
	return scrape.Config{
		BaseURL:            s.BaseURL,
		MaxConcurrentPages: s.MaxConcurrentPages,
		Retry:              s.Retry(),
		AllowLowBitrate:    s.AllowLowBitrate,
		FetchArtwork:       s.Download && s.ModifyTags && s.SaveCoverArtInTags,
	}
}

// ToBrowserOptions converts settings to driver options.
func (s *Settings) ToBrowserOptions() browser.Options {
	return browser.Options{
		Headless:  s.Headless,
		Bin:       s.BrowserBin,
		UserAgent: s.UserAgent,
		Timeout:   time.Duration(s.NavigationTimeout) * time.Second,
	}
}

// ToScanOptions converts settings to library scanner options.
func (s *Settings) ToScanOptions(onSkip func(path string, err error)) library.Options {
	return library.Options{
		SkipUnreadable: s.SkipUnreadable,
		OnSkip:         onSkip,
	}
}
