// Package prelude defines list utilities (map, filter, reduce, range, ...)
// in Scheme source and loads them into an interpreter.
package prelude

import (
	_ "embed"

	"github.com/deosjr/minischeme/lisp"
)

//go:embed prelude.scm
var prelude string

// Load evaluates the prelude in l's global env.
func Load(l lisp.Lisp) error {
	_, err := l.Load(prelude)
	return err
}
