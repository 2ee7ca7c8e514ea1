package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"panosort/internal/config"
	"panosort/internal/exiftool"
	"panosort/internal/journal"
	"panosort/internal/logging"
	"panosort/internal/preflight"
	"panosort/internal/scanner"
	"panosort/internal/textutil"
)

func runSort(ctx context.Context, stdout io.Writer, opts *runOptions, input, output string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger, err := logging.NewFromConfig(cfg, runID)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	inputAbs, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolve input folder: %w", err)
	}
	outputAbs, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolve output folder: %w", err)
	}

	if err := runPreflight(logger, cfg, inputAbs, outputAbs); err != nil {
		return err
	}

	if !cfg.Scan.DryRun {
		lock, err := scanner.LockOutput(outputAbs)
		if err != nil {
			return err
		}
		logger.Debug("output locked", logging.String("lock", lock.Path()))
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("release output lock failed", logging.Error(err))
			}
		}()
	}

	scanOpts := []scanner.Option{
		scanner.WithOutput(stdout),
		scanner.WithLogger(logger),
		scanner.WithMatchStyle(matchStyle(stdout)),
	}

	var runJournal *journal.Journal
	if cfg.Journal.Path != "" {
		runJournal, err = journal.Open(ctx, cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer runJournal.Close()
		logger.Debug("journal opened", logging.String("path", runJournal.Path()))
		if err := runJournal.StartRun(ctx, journal.Run{
			ID:         runID,
			InputRoot:  inputAbs,
			OutputRoot: outputAbs,
			DryRun:     cfg.Scan.DryRun,
		}); err != nil {
			return err
		}
		scanOpts = append(scanOpts, scanner.WithRecorder(runJournal, runID))
	}

	enc, err := textutil.LookupEncoding(cfg.Extractor.Encoding)
	if err != nil {
		return fmt.Errorf("extractor encoding: %w", err)
	}
	client, err := exiftool.New(cfg.Extractor.Binary, cfg.Extractor.Args,
		exiftool.WithEncoding(enc),
		exiftool.WithTimeout(cfg.ExtractorTimeout()),
		exiftool.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("extractor configured",
		logging.String("binary", client.Binary()),
		logging.Duration("timeout", cfg.ExtractorTimeout()))

	sc, err := scanner.New(cfg, client, scanOpts...)
	if err != nil {
		return err
	}

	counts, runErr := sc.Run(ctx, inputAbs, outputAbs)

	if runJournal != nil {
		// The run context may already be cancelled; the final totals still belong in the journal.
		if err := runJournal.FinishRun(context.WithoutCancel(ctx), runID, journalTotals(counts), runErr); err != nil {
			logging.WarnWithContext(logger, "journal finish failed", "journal_finish_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the journal path is writable"),
				logging.String(logging.FieldImpact, "run totals missing from journal"))
		}
	}

	if errors.Is(runErr, context.Canceled) {
		return runErr
	}
	printSummary(stdout, counts)
	if opts.table {
		printTables(ctx, stdout, logger, counts, runJournal, runID)
	}
	return runErr
}

func loadConfig(opts *runOptions) (*config.Config, error) {
	path := strings.TrimSpace(opts.configPath)
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path != "" && !exists {
		return nil, fmt.Errorf("config file %s not found", resolved)
	}

	if opts.dryRun {
		cfg.Scan.DryRun = true
	}
	if v := strings.TrimSpace(opts.journalPath); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return nil, fmt.Errorf("journal path: %w", err)
		}
		cfg.Journal.Path = expanded
	}
	if v := strings.TrimSpace(opts.logLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(opts.logFormat); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPreflight(logger *slog.Logger, cfg *config.Config, input, output string) error {
	logger = logging.NewComponentLogger(logger, "preflight")
	results := preflight.RunAll(cfg, input, output)
	for _, r := range results {
		switch {
		case r.Passed:
			logger.Debug("check passed", logging.String("check", r.Name), logging.String("detail", r.Detail))
		case r.Required:
			logging.ErrorWithContext(logger, "check failed", "preflight_failed",
				logging.String("check", r.Name),
				logging.String("detail", r.Detail),
				logging.String(logging.FieldErrorHint, "fix the folder path or permissions and rerun"))
		default:
			logging.WarnWithContext(logger, "check failed", "preflight_degraded",
				logging.String("check", r.Name),
				logging.String("detail", r.Detail),
				logging.String(logging.FieldErrorHint, "set extractor.binary to an installed exiftool"),
				logging.String(logging.FieldImpact, "no file will be recognized as a panorama"))
		}
	}
	if failed := preflight.Failures(results); len(failed) > 0 {
		return fmt.Errorf("%s: %s", strings.ToLower(failed[0].Name), failed[0].Detail)
	}
	return nil
}

func journalTotals(c scanner.Counts) journal.Totals {
	return journal.Totals{
		Folders: c.Folders,
		Files:   c.Files,
		Matches: c.Matches,
		Copied:  c.Copied,
		Skipped: c.Skipped,
		Errors:  c.Errors,
	}
}
