package config

const (
	defaultExtractorBinary   = "/opt/homebrew/bin/exiftool"
	defaultExtractorEncoding = "ISO-8859-1"
	defaultPanoramaMarker    = "Custom Rendered                 : Panorama"
	defaultFilenameKeyword   = "pano"
	defaultFilenameSuffix    = "_pano"
	defaultOnError           = OnErrorAbort
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Error policies accepted by scan.on_error.
const (
	OnErrorAbort    = "abort"
	OnErrorContinue = "continue"
)

var defaultExtensions = []string{"jpg", "heic", "png"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Extensions: append([]string(nil), defaultExtensions...),
			OnError:    defaultOnError,
		},
		Extractor: Extractor{
			Binary:   defaultExtractorBinary,
			Args:     []string{},
			Encoding: defaultExtractorEncoding,
		},
		Match: Match{
			First:  defaultPanoramaMarker,
			Second: defaultPanoramaMarker,
		},
		Rename: Rename{
			Keyword: defaultFilenameKeyword,
			Suffix:  defaultFilenameSuffix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
