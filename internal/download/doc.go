// Package download orchestrates a run for one artist.
//
// # Manager
//
// The Manager coordinates the entire process:
//
//  1. Scan the local library for the artist's albums and tracks
//  2. Start the browser and scrape the artist's album and track listings
//  3. Resolve a download URL for every item missing from the library
//  4. Write <output_dir>/<artist>.json
//  5. Optionally download the missing items, tag them and write playlists
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	summary, err := manager.Run(ctx, "the-weeknd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary.OutputPath)
//
// The stages can also be run one by one with Scan, Scrape, WriteResult and
// StartDownloads.
//
// # Concurrency
//
// Detail pages and downloads are processed on errgroups limited by
// settings.MaxConcurrentPages.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress returns counters suitable for a progress bar.
//
// # Retry Logic
//
// Failed page loads and downloads are retried with exponential backoff.
// settings.MaxRetries is the total number of attempts; the wait grows with
// settings.RetryCooldown and settings.RetryExponent.
package download
