// Package preflight checks the input folder, the output folder, and the
// metadata extractor before a scan starts.
//
// Input and output failures are required: the CLI refuses to walk when either
// fails. A missing extractor is reported but not required, since every file
// then falls through to "no match".
package preflight
