// Package config loads and saves the baran-dl settings file.
//
// Settings are stored as JSON under the user config directory
// (DefaultPath). A missing file is not an error: Load returns
// DefaultSettings, which scan ~/Music, scrape the site with headless
// Chromium and write <artist>.json to the working directory without
// downloading anything.
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    return err
//	}
//	settings.Driver = "static"
//	if err := settings.Validate(); err != nil {
//	    return err
//	}
//
// The To* methods turn Settings into the option types of the scanner,
// browser, scraper and model packages.
package config
