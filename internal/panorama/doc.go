// Package panorama decides whether extractor output describes a panoramic
// capture and how a matching file should be named on copy.
//
// Both types are pure values built from configuration; nothing here touches
// the filesystem.
package panorama
