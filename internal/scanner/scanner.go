package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"panosort/internal/config"
	"panosort/internal/exiftool"
	"panosort/internal/journal"
	"panosort/internal/logging"
	"panosort/internal/panorama"
)

// ErrAborted wraps the filesystem error that stopped a run under the abort policy.
var ErrAborted = errors.New("scan aborted")

// Counts are the run counters. Folders, Files, and Matches are the historical
// summary; Matches counts classified panoramas whether or not a copy happened.
type Counts struct {
	Folders int
	Files   int
	Matches int
	Copied  int
	Skipped int
	Errors  int
}

// Recorder receives one entry per match. The journal satisfies it.
type Recorder interface {
	RecordMatch(ctx context.Context, m journal.Match) error
}

// Option configures the scanner.
type Option func(*Scanner)

// WithOutput sets the writer for operator notices. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(s *Scanner) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logging.NewComponentLogger(logger, "scanner")
	}
}

// WithRecorder attaches a match recorder keyed by runID.
func WithRecorder(rec Recorder, runID string) Option {
	return func(s *Scanner) {
		s.recorder = rec
		s.runID = runID
	}
}

// WithMatchStyle decorates the match notice prefix, for example with color.
func WithMatchStyle(style func(string) string) Option {
	return func(s *Scanner) {
		if style != nil {
			s.style = style
		}
	}
}

// Scanner runs the walk-classify-copy pipeline.
type Scanner struct {
	cfg       *config.Config
	extractor exiftool.Extractor
	matcher   panorama.Matcher
	renamer   panorama.Renamer
	out       io.Writer
	logger    *slog.Logger
	recorder  Recorder
	runID     string
	style     func(string) string
}

// New builds a scanner from cfg. The extractor is the only collaborator that
// touches external processes.
func New(cfg *config.Config, extractor exiftool.Extractor, opts ...Option) (*Scanner, error) {
	if cfg == nil {
		return nil, errors.New("scanner requires config")
	}
	if extractor == nil {
		return nil, errors.New("scanner requires an extractor")
	}
	s := &Scanner{
		cfg:       cfg,
		extractor: extractor,
		matcher:   panorama.NewMatcher(cfg.Match.First, cfg.Match.Second),
		renamer:   panorama.NewRenamer(cfg.Rename.Keyword, cfg.Rename.Suffix),
		out:       io.Discard,
		logger:    logging.NewComponentLogger(nil, "scanner"),
		style:     func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run walks inputRoot and mirrors matches into outputRoot. The returned counts
// are valid even when an error is returned.
func (s *Scanner) Run(ctx context.Context, inputRoot, outputRoot string) (Counts, error) {
	in, err := filepath.Abs(inputRoot)
	if err != nil {
		return Counts{}, fmt.Errorf("resolve input folder: %w", err)
	}
	out, err := filepath.Abs(outputRoot)
	if err != nil {
		return Counts{}, fmt.Errorf("resolve output folder: %w", err)
	}
	w := &walk{inputRoot: in, outputRoot: out}
	switch {
	case in == out:
		s.logger.Info("output folder is the input folder; copies are written beside their sources",
			logging.String("folder", in))
	case within(out, in):
		w.excluded = out
		s.logger.Info("output folder is inside input folder; it is counted but not scanned",
			logging.String("output", out))
	}

	s.logger.Debug("scan started",
		logging.String("input", in),
		logging.String("output", out),
		logging.Any("extensions", s.cfg.Scan.Extensions),
		logging.Bool("dry_run", s.cfg.Scan.DryRun))

	err = s.walkDir(ctx, in, w)
	s.logger.Info("scan finished",
		logging.Int("folders", w.counts.Folders),
		logging.Int("files", w.counts.Files),
		logging.Int("matches", w.counts.Matches),
		logging.Int("copied", w.counts.Copied),
		logging.Int("skipped", w.counts.Skipped),
		logging.Int("errors", w.counts.Errors))
	return w.counts, err
}

func (s *Scanner) record(ctx context.Context, source, dest string, outcome journal.Outcome, detail string) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.RecordMatch(ctx, journal.Match{
		RunID:       s.runID,
		Source:      source,
		Destination: dest,
		Outcome:     outcome,
		Detail:      detail,
	})
	if err != nil {
		logging.WarnWithContext(s.logger, "journal write failed", "journal_write_failed",
			logging.String("source", source),
			logging.Error(err),
			logging.String(logging.FieldImpact, "match missing from run journal"))
	}
}
