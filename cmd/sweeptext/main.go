// Command sweeptext scans plain-text note files for lines matching a
// pattern and moves (refile) or copies (collect) them into other
// notes. It exists to keep folders of SimpleNote-style text files
// organized: tag a line with [project] or #todo and let a sweep file
// it where it belongs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termfx/sweeptext/internal/cli"
	"github.com/termfx/sweeptext/internal/config"
	"github.com/termfx/sweeptext/internal/logging"
)

const longHelp = `sweeptext scans text notes and finds lines matching a pattern,
then moves (--refile) or copies (--collect) those lines to target files.

--refile removes matching lines from the source and inserts them into the
target, in the order found. A {word} captured by the pattern can name the
target: --refile '^\[{note}\] ' --to '{note}.txt'. Defaults: --cleanmatch
--noaddlinks --noaddheaders --insert afterblank.

--collect copies matching lines; the target is wiped and rebuilt each run,
so repeated collects stay stable. Defaults: --nocleanmatch --noaddlinks
--addheaders --insert overwrite.

Targets are never created: a template that resolves to a file that does not
exist is reported and skipped, so a typo cannot spray lines into new files.`

func main() {
	// Per-file and per-target skips are reported inside the run and
	// never surface here; an error at this level is a doomed
	// configuration or an unreadable folder, and those exit non-zero.
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	env := config.Load()
	var opts cli.Options
	var rulesFile string
	var verbose, debug bool

	cmd := &cobra.Command{
		Use:           "sweeptext",
		Short:         "move or copy matching lines between plain-text notes",
		Long:          longHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity := 0
			if verbose || opts.Test {
				verbosity = 1
			}
			if debug {
				verbosity = 2
			}
			logging.Setup(verbosity)

			if rulesFile != "" {
				batch := cli.Batch{Env: env, Test: opts.Test}
				if cmd.Flags().Changed("folder") {
					batch.Folder = opts.Folder
				}
				return cli.RunRulesFile(rulesFile, batch, cmd.OutOrStdout())
			}

			cfg, err := opts.BuildConfig(env)
			if err != nil {
				return err
			}
			return cli.Execute(cfg, cmd.OutOrStdout())
		},
	}

	opts.Register(cmd.Flags(), env)
	cmd.Flags().StringVar(&rulesFile, "rulesfile", "", "run each line of this file as an independent sweep")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report what is being done")
	cmd.Flags().BoolVar(&debug, "debug", false, "report everything, much more than verbose")

	cmd.MarkFlagsMutuallyExclusive("refile", "move", "collect", "copy")
	cmd.MarkFlagsMutuallyExclusive("addlinks", "noaddlinks")
	cmd.MarkFlagsMutuallyExclusive("cleanmatch", "nocleanmatch")
	cmd.MarkFlagsMutuallyExclusive("addheaders", "noaddheaders")

	return cmd
}
