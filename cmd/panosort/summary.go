package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"panosort/internal/journal"
	"panosort/internal/logging"
	"panosort/internal/scanner"
)

func printSummary(w io.Writer, counts scanner.Counts) {
	fmt.Fprintf(w, "Folders analyzed: %d\n", counts.Folders)
	fmt.Fprintf(w, "Files analyzed: %d\n", counts.Files)
	fmt.Fprintf(w, "Matches copied: %d\n", counts.Matches)
}

// printTables renders the counters and, when a journal is open, the matches it
// recorded for this run. Stored journal totals take precedence over counts.
func printTables(ctx context.Context, w io.Writer, logger *slog.Logger, counts scanner.Counts, runJournal *journal.Journal, runID string) {
	totals := journalTotals(counts)
	var matches []journal.Match
	var journalPath string
	if runJournal != nil {
		journalPath = runJournal.Path()
		stored, finished, err := runJournal.Totals(ctx, runID)
		switch {
		case err != nil:
			logging.WarnWithContext(logger, "read journal totals failed", "journal_read_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "table shows in-memory counters"))
		case finished:
			totals = stored
		}
		if matches, err = runJournal.Matches(ctx, runID); err != nil {
			logging.WarnWithContext(logger, "read journal matches failed", "journal_read_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "match table omitted"))
		}
	}

	fmt.Fprintln(w, renderTotals(totals, journalPath))
	if len(matches) > 0 {
		fmt.Fprintln(w, renderMatches(matches))
	}
}

func newTableWriter() table.Writer {
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	tw := table.NewWriter()
	tw.SetStyle(style)
	return tw
}

func renderTotals(totals journal.Totals, journalPath string) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Counter", "Value"})
	for _, row := range []struct {
		label string
		value int
	}{
		{"Folders", totals.Folders},
		{"Files", totals.Files},
		{"Matches", totals.Matches},
		{"Copied", totals.Copied},
		{"Skipped", totals.Skipped},
		{"Errors", totals.Errors},
	} {
		tw.AppendRow(table.Row{row.label, strconv.Itoa(row.value)})
	}
	if journalPath != "" {
		tw.AppendFooter(table.Row{"Journal", journalPath})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func renderMatches(matches []journal.Match) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Outcome", "Source", "Destination"})
	for _, m := range matches {
		tw.AppendRow(table.Row{string(m.Outcome), m.Source, m.Destination})
	}
	return tw.Render()
}

// matchStyle returns a colorizer for the match notice, or nil when w is not
// a terminal.
func matchStyle(w io.Writer) func(string) string {
	if !shouldColorize(w) {
		return nil
	}
	colors := text.Colors{text.FgGreen, text.Bold}
	return func(s string) string { return colors.Sprint(s) }
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
