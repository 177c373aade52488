// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Atomic file writes for the result document
//   - Directory creation
//   - Zip extraction for downloaded album archives
//   - Cover art resizing and JPEG conversion
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/out/adele.json", data)
//
//	// Extract an album archive
//	files, err := ioutils.ExtractZip(ctx, "/music/Adele/25.zip", "/music/Adele/25")
//	mp3s := ioutils.FilterExt(files, ".mp3")
//
// # Image Processing
//
//	svc := ioutils.NewImageService()
//	cover, _ := svc.PrepareCover(ctx, imageData, 1000)
package ioutils
