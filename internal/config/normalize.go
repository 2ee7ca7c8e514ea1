package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeScan()
	c.normalizeExtractor()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	return nil
}

// normalizeScan lower-cases extensions, strips any leading dots, and drops
// blanks and duplicates while keeping the configured order.
func (c *Config) normalizeScan() {
	seen := make(map[string]struct{}, len(c.Scan.Extensions))
	normalized := make([]string, 0, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		ext = strings.ToLower(strings.TrimLeft(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		normalized = append(normalized, ext)
	}
	c.Scan.Extensions = normalized

	c.Scan.OnError = strings.ToLower(strings.TrimSpace(c.Scan.OnError))
	if c.Scan.OnError == "" {
		c.Scan.OnError = defaultOnError
	}
}

func (c *Config) normalizeExtractor() {
	c.Extractor.Binary = strings.TrimSpace(c.Extractor.Binary)
	c.Extractor.Encoding = strings.TrimSpace(c.Extractor.Encoding)
	if c.Extractor.Encoding == "" {
		c.Extractor.Encoding = defaultExtractorEncoding
	}
	if c.Extractor.Args == nil {
		c.Extractor.Args = []string{}
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = ""
		return nil
	}
	var err error
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}
