package preflight

import (
	"panosort/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Required bool
	Detail   string
}

// RunAll executes the preflight checks for a scan of input into output.
// The output folder is created unless the scan is a dry run.
func RunAll(cfg *config.Config, input, output string) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckInputDirectory("Input folder", input),
		CheckOutputDirectory("Output folder", output, !cfg.Scan.DryRun),
		CheckExtractor(cfg.Extractor.Binary),
	}
}

// Failures returns the required checks that did not pass.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Required && !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
