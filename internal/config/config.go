package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Scan controls which files the walk considers and how it reacts to
// filesystem failures.
type Scan struct {
	Extensions []string `toml:"extensions"`
	OnError    string   `toml:"on_error"`
	DryRun     bool     `toml:"dry_run"`
}

// Extractor describes the external metadata tool invocation.
type Extractor struct {
	Binary         string   `toml:"binary"`
	Args           []string `toml:"args"`
	Encoding       string   `toml:"encoding"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Match holds the two literal markers that must both appear in extractor
// output for a file to count as a panorama. They are independent values even
// though the defaults are identical.
type Match struct {
	First  string `toml:"first"`
	Second string `toml:"second"`
}

// Rename controls the keyword injected into copied file names.
type Rename struct {
	Keyword string `toml:"keyword"`
	Suffix  string `toml:"suffix"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Journal configures the optional SQLite run journal. An empty path disables it.
type Journal struct {
	Path string `toml:"path"`
}

// Config encapsulates all configuration values for panosort.
type Config struct {
	Scan      Scan      `toml:"scan"`
	Extractor Extractor `toml:"extractor"`
	Match     Match     `toml:"match"`
	Rename    Rename    `toml:"rename"`
	Logging   Logging   `toml:"logging"`
	Journal   Journal   `toml:"journal"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/panosort/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file was actually read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("panosort.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ExtractorTimeout returns the per-file extractor deadline, or zero when the
// extractor may run indefinitely.
func (c *Config) ExtractorTimeout() time.Duration {
	if c.Extractor.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Extractor.TimeoutSeconds) * time.Second
}

// ContinueOnError reports whether filesystem failures during copying should be
// logged and skipped rather than aborting the run.
func (c *Config) ContinueOnError() bool {
	return c.Scan.OnError == OnErrorContinue
}

// AcceptsExtension reports whether ext (without the dot, any case) is in the
// accepted set.
func (c *Config) AcceptsExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, candidate := range c.Scan.Extensions {
		if candidate == ext {
			return true
		}
	}
	return false
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
