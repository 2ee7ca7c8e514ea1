package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const usageLine = "Usage: panosort <input_folder> <output_folder>"

// errUsage signals a wrong argument count. The usage line has already been
// printed when it is returned.
var errUsage = errors.New("invalid arguments")

type runOptions struct {
	configPath  string
	dryRun      bool
	journalPath string
	logLevel    string
	logFormat   string
	table       bool
}

func newRootCommand() *cobra.Command {
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:           "panosort <input_folder> <output_folder>",
		Short:         "Copy panoramic photos into a mirrored folder tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				fmt.Fprintln(cmd.OutOrStdout(), usageLine)
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd.Context(), cmd.OutOrStdout(), opts, args[0], args[1])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Report matches without creating folders or copying files")
	flags.StringVar(&opts.journalPath, "journal", "", "Record the run in a SQLite journal at this path")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format override (console, json)")
	flags.BoolVar(&opts.table, "table", false, "Print a summary table after the run")

	return rootCmd
}
