package textutil

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// LookupEncoding resolves an IANA character set name (for example
// "ISO-8859-1", "latin1", "windows-1252", "UTF-8") to a decoder-capable
// encoding. ISO-8859-1 is special-cased because it is the default and the
// index maps some of its aliases to windows-1252 in other registries.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty encoding name")
	}
	switch strings.ToLower(name) {
	case "iso-8859-1", "iso8859-1", "latin1", "l1":
		return charmap.ISO8859_1, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// Decode converts raw bytes in enc to a UTF-8 string. A nil encoding treats
// the input as UTF-8 already.
func Decode(enc encoding.Encoding, raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	if enc == nil {
		return string(raw), nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode %d bytes: %w", len(raw), err)
	}
	return string(out), nil
}
