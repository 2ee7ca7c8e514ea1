// Package textutil converts extractor output between character sets.
//
// Metadata tools emit bytes in whatever charset the image carried. Decoding
// through a fixed single-byte encoding (ISO-8859-1 by default) never fails,
// so marker matching always sees a string.
package textutil
