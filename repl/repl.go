// Package repl runs an interactive read-eval-print loop over a lisp.Lisp.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/deosjr/minischeme/lisp"
)

type Config struct {
	Prompt string
	// HistoryFile is where readline keeps input history. Empty disables it.
	HistoryFile string
}

// Run reads forms until EOF and evaluates them in l's env. Input spanning
// several lines is collected until its parens balance. Errors are printed
// and the loop carries on with the env as the failing form left it.
func Run(l lisp.Lisp, cfg Config) error {
	if cfg.Prompt == "" {
		cfg.Prompt = "in> "
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(cfg.Prompt)) // prompt had better be ascii...

	s := newSession(l, rl.Stdout(), rl.Stderr())
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.reset()
			rl.SetPrompt(cfg.Prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.feed(line) {
			rl.SetPrompt(cfg.Prompt)
		} else {
			rl.SetPrompt(contPrompt)
		}
	}
}

// session buffers input lines until they hold complete forms, then
// evaluates them.
type session struct {
	l      lisp.Lisp
	buf    []string
	out    io.Writer
	errOut io.Writer
}

func newSession(l lisp.Lisp, out, errOut io.Writer) *session {
	return &session{l: l, out: out, errOut: errOut}
}

func (s *session) reset() {
	s.buf = nil
}

// feed adds one line of input. It returns false while a form is still open.
func (s *session) feed(line string) bool {
	s.buf = append(s.buf, line)
	source := strings.Join(s.buf, "\n")
	if lisp.Balance(lisp.Tokenize(source)) > 0 {
		return false
	}
	s.reset()

	forms, err := lisp.Multiparse(source)
	if err != nil {
		s.printError(err)
		return true
	}
	for _, form := range forms {
		e, err := s.l.EvalExpr(form)
		if err != nil {
			s.printError(err)
			return true
		}
		fmt.Fprintln(s.out, "  out> "+e.String())
	}
	return true
}

func (s *session) printError(err error) {
	fmt.Fprintf(s.errOut, "error: %v\n", err)
}
