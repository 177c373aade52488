// Package library reads the local music library to find out which albums and
// tracks of an artist are already owned.
//
// Scanner produces an immutable Snapshot; the scraper consults
// Snapshot.Exists before fetching anything, so owned items never cause a
// page load.
package library
