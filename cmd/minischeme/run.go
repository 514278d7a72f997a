package main

import (
	"fmt"
	"io"

	"github.com/deosjr/minischeme/lisp"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		runExpression bool
		runPrint      bool
	)
	runCmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Run lisp code",
		Long: `Run lisp code supplied via the command line or files. Every file is
loaded into the same global environment and the value of the last form is
printed. Evaluation stops at the first error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.newLisp()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if runPrint {
				return runEach(l, args, runExpression, out)
			}
			var last lisp.SExpression
			if runExpression {
				for _, arg := range args {
					e, err := l.Load(arg)
					if err != nil {
						return err
					}
					if e != nil {
						last = e
					}
				}
			} else {
				last, err = l.LoadFiles(args...)
				if err != nil {
					return err
				}
			}
			if last != nil {
				fmt.Fprintln(out, last)
			}
			return nil
		},
	}

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print the value of every top-level form")
	return runCmd
}

// runEach evaluates form by form so every value can be printed.
func runEach(l lisp.Lisp, args []string, expressions bool, out io.Writer) error {
	for _, arg := range args {
		var (
			forms []lisp.SExpression
			err   error
		)
		if expressions {
			forms, err = lisp.Multiparse(arg)
		} else {
			forms, err = lisp.ParseFile(arg)
		}
		if err != nil {
			return err
		}
		for _, form := range forms {
			e, err := l.EvalExpr(form)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, e)
		}
	}
	return nil
}
