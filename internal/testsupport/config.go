package testsupport

import (
	"path/filepath"
	"testing"

	"panosort/internal/config"
)

// PanoramaScript is a stand-in extractor that reports the panorama marker for
// any path containing "PANO" and a non-panorama rendering otherwise.
const PanoramaScript = `#!/bin/sh
case "$1" in
  *PANO*) echo "Custom Rendered                 : Panorama" ;;
  *) echo "Custom Rendered                 : Normal" ;;
esac
`

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config with logging quieted to errors and
// applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithStubbedExtractor writes script as an executable and points
// extractor.binary at it. An empty script installs PanoramaScript.
func WithStubbedExtractor(script string) ConfigOption {
	return func(b *configBuilder) {
		if script == "" {
			script = PanoramaScript
		}
		b.cfg.Extractor.Binary = WriteExecutable(b.t, filepath.Join(b.baseDir, "bin"), "exiftool", script)
	}
}

// WithOnError sets the filesystem error policy.
func WithOnError(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.OnError = policy
	}
}

// WithDryRun toggles dry-run mode.
func WithDryRun(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.DryRun = enabled
	}
}
