package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"panosort/internal/fileutil"
	"panosort/internal/journal"
	"panosort/internal/logging"
)

type walk struct {
	inputRoot  string
	outputRoot string
	excluded   string
	counts     Counts
}

// walkDir visits dir top-down: subdirectories are counted, files are
// processed in name order, and only then are real subdirectories descended.
// Symlinks to directories are counted but not followed.
func (s *Scanner) walkDir(ctx context.Context, dir string, w *walk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.WarnWithContext(s.logger, "directory unreadable; skipping", "directory_unreadable",
			logging.String("dir", dir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
			logging.String(logging.FieldImpact, "files below this directory were not scanned"))
		return nil
	}

	var subdirs []string
	var files []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if w.excluded != "" && full == w.excluded {
			w.counts.Folders++
			continue
		}
		isDir, descend := classifyEntry(full, entry)
		if isDir {
			w.counts.Folders++
			if descend {
				subdirs = append(subdirs, full)
			}
			continue
		}
		files = append(files, full)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.processFile(ctx, path, w); err != nil {
			return err
		}
	}

	for _, sub := range subdirs {
		if err := s.walkDir(ctx, sub, w); err != nil {
			return err
		}
	}
	return nil
}

func classifyEntry(full string, entry os.DirEntry) (isDir bool, descend bool) {
	if entry.IsDir() {
		return true, true
	}
	if entry.Type()&os.ModeSymlink != 0 {
		if info, err := os.Stat(full); err == nil && info.IsDir() {
			return true, false
		}
	}
	return false, false
}

func (s *Scanner) processFile(ctx context.Context, path string, w *walk) error {
	if !s.cfg.AcceptsExtension(extensionOf(filepath.Base(path))) {
		return nil
	}
	w.counts.Files++

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		fmt.Fprintf(s.out, "Error running executable on %s: %v\n", path, err)
		logging.WarnWithContext(s.logger, "metadata extraction failed", "extractor_failed",
			logging.String("file", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify extractor.binary points at a working exiftool"),
			logging.String(logging.FieldImpact, "file treated as not a panorama"))
		text = ""
	}

	if !s.matcher.Match(text) {
		s.logger.Debug("not a panorama", logging.String("file", path))
		return nil
	}
	w.counts.Matches++
	return s.copyMatch(ctx, path, w)
}

func (s *Scanner) copyMatch(ctx context.Context, source string, w *walk) error {
	dest, err := PlanDestination(source, w.inputRoot, w.outputRoot, s.renamer)
	if err != nil {
		return s.fsFailure(ctx, source, "", fmt.Errorf("plan destination: %w", err), w)
	}

	if s.cfg.Scan.DryRun {
		fmt.Fprintf(s.out, "%s %s\n", s.style("**** MATCH! WOULD COPY TO:"), dest)
	} else {
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return s.fsFailure(ctx, source, dest, fmt.Errorf("create destination folder: %w", err), w)
		}
		fmt.Fprintf(s.out, "%s  %s\n", s.style("**** MATCH! COPYING TO:"), dest)
	}

	exists, err := fileutil.Exists(dest)
	if err != nil {
		return s.fsFailure(ctx, source, dest, fmt.Errorf("check destination: %w", err), w)
	}
	if exists {
		fmt.Fprintf(s.out, "File %s already exists. Skipping.\n", dest)
		w.counts.Skipped++
		s.logger.Debug("destination exists; skipped", logging.String("source", source), logging.String("dest", dest))
		s.record(ctx, source, dest, journal.OutcomeSkipped, "destination exists")
		return nil
	}

	if s.cfg.Scan.DryRun {
		s.record(ctx, source, dest, journal.OutcomePlanned, "")
		return nil
	}

	if err := fileutil.CopyFileAtomic(source, dest); err != nil {
		return s.fsFailure(ctx, source, dest, err, w)
	}
	w.counts.Copied++
	s.logger.Debug("match copied", logging.String("source", source), logging.String("dest", dest))
	s.record(ctx, source, dest, journal.OutcomeCopied, "")
	return nil
}

// fsFailure applies the error policy to a filesystem failure for source.
func (s *Scanner) fsFailure(ctx context.Context, source, dest string, err error, w *walk) error {
	w.counts.Errors++
	s.record(ctx, source, dest, journal.OutcomeFailed, err.Error())
	fmt.Fprintf(s.out, "Error copying %s: %v\n", source, err)
	if s.cfg.ContinueOnError() {
		logging.WarnWithContext(s.logger, "copy failed; continuing", "copy_failed",
			logging.String("source", source),
			logging.String("dest", dest),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check output folder permissions and free space"),
			logging.String(logging.FieldImpact, "match was not copied"))
		return nil
	}
	logging.ErrorWithContext(s.logger, "copy failed; aborting", "copy_failed",
		logging.String("source", source),
		logging.String("dest", dest),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "fix the error or set scan.on_error = \"continue\""))
	return fmt.Errorf("%w: %s: %w", ErrAborted, source, err)
}
