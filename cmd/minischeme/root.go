package main

import (
	"log"
	"os"

	"github.com/deosjr/minischeme/lisp"
	"github.com/deosjr/minischeme/prelude"
	"github.com/spf13/cobra"
)

// options are the flags shared by every command.
type options struct {
	maxDepth    int
	maxSteps    int
	loadPrelude bool
	verbose     bool
	historyFile string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "minischeme [file...]",
		Short: "A small Scheme interpreter",
		Long: `minischeme evaluates a small Scheme dialect: numbers, booleans, symbols,
pairs and closures, with define, lambda, if, and, or, begin, let, set! and del.

Without a subcommand it loads the given files and starts a REPL.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(opts, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&opts.maxDepth, "max-depth", lisp.DefaultConfig.MaxDepth,
		"Maximum evaluation depth (0 for no limit)")
	flags.IntVar(&opts.maxSteps, "max-steps", 0,
		"Maximum forms evaluated per top-level form (0 for no limit)")
	flags.BoolVar(&opts.loadPrelude, "prelude", false,
		"Load the prelude (map, filter, reduce, ...) before anything else")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Log each file as it is loaded")

	rootCmd.AddCommand(newRunCmd(opts), newReplCmd(opts), newTokensCmd(), newParseCmd())
	return rootCmd
}

func (opts *options) newLisp() (lisp.Lisp, error) {
	lopts := []lisp.Option{
		lisp.WithConfig(lisp.Config{MaxDepth: opts.maxDepth, MaxSteps: opts.maxSteps}),
	}
	if opts.verbose {
		lopts = append(lopts, lisp.WithLogger(log.New(os.Stderr, "minischeme: ", 0)))
	}
	l := lisp.New(lopts...)
	if opts.loadPrelude {
		if err := prelude.Load(l); err != nil {
			return l, err
		}
	}
	return l, nil
}
