package main

import (
	"github.com/deosjr/minischeme/repl"
	"github.com/spf13/cobra"
)

func newReplCmd(opts *options) *cobra.Command {
	replCmd := &cobra.Command{
		Use:   "repl [file...]",
		Short: "Start an interactive session",
		Long:  `Load the given files into one global environment, then start a REPL on it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(opts, args)
		},
	}
	replCmd.Flags().StringVar(&opts.historyFile, "history", "",
		"File to keep input history in")
	return replCmd
}

func runREPL(opts *options, files []string) error {
	l, err := opts.newLisp()
	if err != nil {
		return err
	}
	if _, err := l.LoadFiles(files...); err != nil {
		return err
	}
	return repl.Run(l, repl.Config{Prompt: "in> ", HistoryFile: opts.historyFile})
}
