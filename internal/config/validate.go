package config

import (
	"errors"
	"fmt"
	"strings"

	"panosort/internal/textutil"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateExtractor(); err != nil {
		return err
	}
	if err := c.validateMatch(); err != nil {
		return err
	}
	if err := c.validateRename(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScan() error {
	if len(c.Scan.Extensions) == 0 {
		return errors.New("scan.extensions must list at least one extension")
	}
	switch c.Scan.OnError {
	case OnErrorAbort, OnErrorContinue:
	default:
		return fmt.Errorf("scan.on_error: unsupported value %q (use %q or %q)", c.Scan.OnError, OnErrorAbort, OnErrorContinue)
	}
	return nil
}

func (c *Config) validateExtractor() error {
	if c.Extractor.Binary == "" {
		return errors.New("extractor.binary must be set")
	}
	if c.Extractor.TimeoutSeconds < 0 {
		return errors.New("extractor.timeout_seconds must be zero or positive")
	}
	if _, err := textutil.LookupEncoding(c.Extractor.Encoding); err != nil {
		return fmt.Errorf("extractor.encoding: %w", err)
	}
	return nil
}

func (c *Config) validateMatch() error {
	if c.Match.First == "" {
		return errors.New("match.first must be set")
	}
	if c.Match.Second == "" {
		return errors.New("match.second must be set")
	}
	return nil
}

// validateRename requires the suffix to carry the keyword so renaming stays
// idempotent: a renamed file never gets the suffix twice.
func (c *Config) validateRename() error {
	if c.Rename.Keyword == "" {
		return errors.New("rename.keyword must be set")
	}
	if c.Rename.Suffix == "" {
		return errors.New("rename.suffix must be set")
	}
	if !strings.Contains(c.Rename.Suffix, c.Rename.Keyword) {
		return fmt.Errorf("rename.suffix %q must contain rename.keyword %q", c.Rename.Suffix, c.Rename.Keyword)
	}
	if strings.ContainsAny(c.Rename.Suffix, `/\`) {
		return errors.New("rename.suffix must not contain path separators")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
