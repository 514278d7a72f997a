package lisp

import (
	"fmt"
	"io"
	"log"
)

// Lisp evaluates forms against one shared global env, so definitions made
// by one form are visible to the next.
type Lisp struct {
	Env    *Env
	eval   *Evaluator
	logger *log.Logger
}

type Option func(*Lisp)

func WithConfig(config Config) Option {
	return func(l *Lisp) { l.eval = NewEvaluator(config) }
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Lisp) { l.logger = logger }
}

// WithEnv evaluates in env instead of a fresh global env.
func WithEnv(env *Env) Option {
	return func(l *Lisp) { l.Env = env }
}

func New(opts ...Option) Lisp {
	l := Lisp{
		Env:    NewGlobalEnv(),
		eval:   NewEvaluator(DefaultConfig),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// Eval parses and evaluates a single form.
func (l Lisp) Eval(input string) (SExpression, error) {
	sexp, err := Parse(Tokenize(input))
	if err != nil {
		return nil, err
	}
	return l.EvalExpr(sexp)
}

func (l Lisp) EvalExpr(e SExpression) (SExpression, error) {
	return l.eval.Eval(e, l.Env)
}

// Load evaluates every form in data in order and returns the value of the
// last one. It stops at the first error; forms before it keep their effects.
func (l Lisp) Load(data string) (SExpression, error) {
	sexprs, err := Multiparse(data)
	if err != nil {
		return nil, err
	}
	return l.evalAll(sexprs)
}

func (l Lisp) LoadFile(filename string) (SExpression, error) {
	l.logger.Printf("loading %s", filename)
	sexprs, err := ParseFile(filename)
	if err != nil {
		return nil, err
	}
	e, err := l.evalAll(sexprs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return e, nil
}

// LoadFiles loads each file in turn into the same env and returns the value
// of the last form of the last file.
func (l Lisp) LoadFiles(filenames ...string) (SExpression, error) {
	var last SExpression
	for _, filename := range filenames {
		e, err := l.LoadFile(filename)
		if err != nil {
			return nil, err
		}
		if e != nil {
			last = e
		}
	}
	return last, nil
}

func (l Lisp) evalAll(sexprs []SExpression) (SExpression, error) {
	var last SExpression
	for _, def := range sexprs {
		e, err := l.EvalExpr(def)
		if err != nil {
			return nil, err
		}
		last = e
	}
	return last, nil
}
