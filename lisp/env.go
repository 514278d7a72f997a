package lisp

// Env is one frame of the lexical scope chain. Frames are shared: every
// closure created in a frame and every call frame whose outer it is keeps it
// reachable.
type Env struct {
	dict     map[Symbol]SExpression
	outer    *Env
	readOnly bool
}

// NewEnv returns an empty frame chained to outer.
func NewEnv(outer *Env) *Env {
	return &Env{dict: map[Symbol]SExpression{}, outer: outer}
}

// NewGlobalEnv returns a fresh top-level frame for user definitions, chained
// to the shared builtin frame. Reuse it across Evaluate calls to keep
// definitions between forms.
func NewGlobalEnv() *Env {
	return NewEnv(builtinEnv)
}

func (e *Env) Outer() *Env {
	return e.outer
}

func (e *Env) find(s Symbol) (*Env, bool) {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.dict[s]; ok {
			return env, true
		}
	}
	return nil, false
}

// Define binds s in this frame, shadowing any outer binding.
func (e *Env) Define(s Symbol, sexp SExpression) error {
	if e.readOnly {
		return evalErrorf("cannot define %s in the builtin frame", s)
	}
	e.dict[s] = sexp
	return nil
}

// Lookup returns the value bound to s in the nearest frame that has it.
func (e *Env) Lookup(s Symbol) (SExpression, error) {
	env, ok := e.find(s)
	if !ok {
		return nil, nameErrorf("variable %s is not bound", s)
	}
	return env.dict[s], nil
}

// Set overwrites the binding of s in the nearest frame, starting from e, that
// already binds it. It never creates a binding.
func (e *Env) Set(s Symbol, sexp SExpression) error {
	env, ok := e.find(s)
	if !ok {
		return nameErrorf("cannot set! unbound variable %s", s)
	}
	if env.readOnly {
		return evalErrorf("cannot set! builtin %s", s)
	}
	env.dict[s] = sexp
	return nil
}

// Delete removes s from this frame only and returns its old value.
func (e *Env) Delete(s Symbol) (SExpression, error) {
	v, ok := e.dict[s]
	if !ok {
		return nil, nameErrorf("variable %s is not bound in the current frame", s)
	}
	if e.readOnly {
		return nil, evalErrorf("cannot delete builtin %s", s)
	}
	delete(e.dict, s)
	return v, nil
}

// Bound reports whether s is visible from e.
func (e *Env) Bound(s Symbol) bool {
	_, ok := e.find(s)
	return ok
}
