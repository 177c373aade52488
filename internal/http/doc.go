// Package http wraps net/http for the download stage: mp3 files, album
// archives and cover images.
//
// Every request carries the configured User-Agent. DownloadFile streams the
// body into a temporary file next to the destination and renames it once the
// transfer completes, so an interrupted download never leaves a truncated mp3
// behind:
//
//	client := http.NewClient(settings.UserAgent, 0)
//	err := client.DownloadFile(ctx, url, dest, func(written, total int64) {
//	    bar.SetPercent(float64(written) / float64(total))
//	})
//
// GetFileSize issues a HEAD request and is used to skip files that are
// already complete on disk.
package http
