// Package fileutil holds the small copy helpers used when mirroring matches
// into the output tree.
package fileutil
