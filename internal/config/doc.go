// Package config loads, normalizes, and validates panosort configuration.
//
// Defaults reproduce the historical compiled-in constants (exiftool at its
// Homebrew location, the "Custom Rendered : Panorama" marker, the "pano"
// keyword). A TOML file can override any of them. The resulting Config is
// treated as immutable once Load returns and is passed by pointer into the
// scanner and its collaborators.
package config
