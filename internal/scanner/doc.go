// Package scanner walks an input tree, asks the metadata extractor about each
// accepted image, and mirrors panoramas into the output tree.
//
// The walk is strictly sequential: each file is extracted, classified, and
// copied before the next is considered. Extractor failures are logged and
// treated as "no match". Filesystem failures while planning or copying either
// abort the run (wrapped in ErrAborted) or are counted and skipped, depending
// on the configured error policy.
package scanner
