package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"panosort/internal/config"
)

func TestLoadDefaultConfigMatchesHistoricalConstants(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "panosort", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if got := strings.Join(cfg.Scan.Extensions, ","); got != "jpg,heic,png" {
		t.Fatalf("unexpected extensions: %s", got)
	}
	if cfg.Extractor.Binary != "/opt/homebrew/bin/exiftool" {
		t.Fatalf("unexpected extractor binary: %q", cfg.Extractor.Binary)
	}
	if len(cfg.Extractor.Args) != 0 {
		t.Fatalf("expected no extractor args, got %v", cfg.Extractor.Args)
	}
	if cfg.Extractor.Encoding != "ISO-8859-1" {
		t.Fatalf("unexpected encoding: %q", cfg.Extractor.Encoding)
	}
	if cfg.Match.First != "Custom Rendered                 : Panorama" {
		t.Fatalf("unexpected first marker: %q", cfg.Match.First)
	}
	if cfg.Match.Second != cfg.Match.First {
		t.Fatalf("expected identical default markers, got %q and %q", cfg.Match.First, cfg.Match.Second)
	}
	if cfg.Rename.Keyword != "pano" || cfg.Rename.Suffix != "_pano" {
		t.Fatalf("unexpected rename settings: %+v", cfg.Rename)
	}
	if cfg.ContinueOnError() {
		t.Fatal("expected abort-on-error by default")
	}
	if cfg.ExtractorTimeout() != 0 {
		t.Fatalf("expected no extractor timeout, got %s", cfg.ExtractorTimeout())
	}
	if cfg.Journal.Path != "" {
		t.Fatalf("expected journal disabled, got %q", cfg.Journal.Path)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "panosort.toml")

	type payload struct {
		Scan struct {
			Extensions []string `toml:"extensions"`
			OnError    string   `toml:"on_error"`
		} `toml:"scan"`
		Extractor struct {
			Binary         string   `toml:"binary"`
			Args           []string `toml:"args"`
			TimeoutSeconds int      `toml:"timeout_seconds"`
		} `toml:"extractor"`
		Match struct {
			Second string `toml:"second"`
		} `toml:"match"`
		Journal struct {
			Path string `toml:"path"`
		} `toml:"journal"`
	}
	custom := payload{}
	custom.Scan.Extensions = []string{".JPG", "tiff", "jpg", " "}
	custom.Scan.OnError = "Continue"
	custom.Extractor.Binary = "/usr/bin/exiftool"
	custom.Extractor.Args = []string{"-s"}
	custom.Extractor.TimeoutSeconds = 30
	custom.Match.Second = "Projection Type : equirectangular"
	custom.Journal.Path = filepath.Join(tempDir, "journal.db")

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if got := strings.Join(cfg.Scan.Extensions, ","); got != "jpg,tiff" {
		t.Fatalf("expected normalized extensions, got %s", got)
	}
	if !cfg.ContinueOnError() {
		t.Fatal("expected continue-on-error")
	}
	if cfg.ExtractorTimeout() != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.ExtractorTimeout())
	}
	if cfg.Match.First != config.Default().Match.First {
		t.Fatalf("expected first marker default to survive partial override, got %q", cfg.Match.First)
	}
	if cfg.Match.Second != "Projection Type : equirectangular" {
		t.Fatalf("unexpected second marker: %q", cfg.Match.Second)
	}
	if cfg.Journal.Path != custom.Journal.Path {
		t.Fatalf("unexpected journal path: %q", cfg.Journal.Path)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[scan]\nextensionz = [\"jpg\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"no extensions", func(c *config.Config) { c.Scan.Extensions = nil }, "scan.extensions"},
		{"bad on_error", func(c *config.Config) { c.Scan.OnError = "retry" }, "scan.on_error"},
		{"empty binary", func(c *config.Config) { c.Extractor.Binary = "" }, "extractor.binary"},
		{"negative timeout", func(c *config.Config) { c.Extractor.TimeoutSeconds = -1 }, "extractor.timeout_seconds"},
		{"bad encoding", func(c *config.Config) { c.Extractor.Encoding = "klingon-8" }, "extractor.encoding"},
		{"empty first marker", func(c *config.Config) { c.Match.First = "" }, "match.first"},
		{"empty second marker", func(c *config.Config) { c.Match.Second = "" }, "match.second"},
		{"empty keyword", func(c *config.Config) { c.Rename.Keyword = "" }, "rename.keyword"},
		{"suffix without keyword", func(c *config.Config) { c.Rename.Suffix = "_wide" }, "must contain"},
		{"suffix with separator", func(c *config.Config) { c.Rename.Suffix = "/pano" }, "path separators"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestAcceptsExtensionIsCaseInsensitive(t *testing.T) {
	cfg := config.Default()
	for _, ext := range []string{"jpg", "JPG", "Heic", "png"} {
		if !cfg.AcceptsExtension(ext) {
			t.Fatalf("expected %q to be accepted", ext)
		}
	}
	for _, ext := range []string{"gif", "", "jpeg"} {
		if cfg.AcceptsExtension(ext) {
			t.Fatalf("expected %q to be rejected", ext)
		}
	}
}

func TestExpandPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/journal.db")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "journal.db") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
