package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/deosjr/minischeme/lisp"
	"github.com/spf13/cobra"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens file",
		Short: "Print the tokens of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			for _, token := range lisp.Tokenize(string(b)) {
				fmt.Fprintln(cmd.OutOrStdout(), token)
			}
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse file",
		Short: "Dump the syntax trees of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forms, err := lisp.ParseFile(args[0])
			if err != nil {
				return err
			}
			for _, form := range forms {
				dumper.Fdump(cmd.OutOrStdout(), form)
			}
			return nil
		},
	}
}
