package lisp

import (
	"errors"
	"fmt"
)

// ErrScheme is wrapped by every error the interpreter reports, so callers
// can test errors.Is(err, ErrScheme) and still discriminate on the kinds
// below.
var ErrScheme = errors.New("scheme error")

var (
	ErrSyntax     = fmt.Errorf("%w: syntax error", ErrScheme)
	ErrName       = fmt.Errorf("%w: name error", ErrScheme)
	ErrEvaluation = fmt.Errorf("%w: evaluation error", ErrScheme)

	ErrRecursionDepth = fmt.Errorf("%w: maximum recursion depth exceeded", ErrEvaluation)
	ErrStepLimit      = fmt.Errorf("%w: step limit exceeded", ErrEvaluation)
)

func syntaxErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrSyntax}, args...)...)
}

func nameErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrName}, args...)...)
}

func evalErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrEvaluation}, args...)...)
}

// asSchemeError passes interpreter errors through unchanged and reports
// anything else as an evaluation error.
func asSchemeError(err error) error {
	if err == nil || errors.Is(err, ErrScheme) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrEvaluation, err)
}
