// Package exiftool mediates access to the external metadata inspection tool.
//
// The Client invokes a fixed binary with fixed arguments plus the target file
// path, captures stdout as raw bytes, and decodes it with a configured
// single-byte character set. Launch failures and abnormal exits surface as
// errors wrapping ErrExtractorFailed; callers decide whether that means "no
// metadata". The Extractor interface lets the scanner run against canned
// output in tests.
package exiftool
