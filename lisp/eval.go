package lisp

// Config bounds an Evaluator. A zero field means no limit.
type Config struct {
	// MaxDepth caps nested evaluation. Go aborts the whole process on stack
	// exhaustion, so runaway recursion has to be stopped before that. It
	// counts evaluation levels, not procedure calls: one non-tail call
	// nests through its if, its operator application and its operands, so
	// the default allows user recursion only a few thousand calls deep.
	MaxDepth int
	// MaxSteps caps the number of forms evaluated by one top-level call.
	MaxSteps int
}

var DefaultConfig = Config{MaxDepth: 50000}

// Evaluator walks syntax trees. It is not safe for concurrent use, and
// neither is any Env it evaluates in.
type Evaluator struct {
	config Config
	depth  int
	steps  int
}

func NewEvaluator(config Config) *Evaluator {
	return &Evaluator{config: config}
}

// Evaluate evaluates e in env, or in a fresh global env if env is nil.
func Evaluate(e SExpression, env *Env) (SExpression, error) {
	if env == nil {
		env = NewGlobalEnv()
	}
	return NewEvaluator(DefaultConfig).Eval(e, env)
}

// Eval evaluates one top-level form. The step budget starts over with
// every call.
func (ev *Evaluator) Eval(e SExpression, env *Env) (SExpression, error) {
	ev.depth, ev.steps = 0, 0
	return ev.evalEnv(env, e)
}

func (ev *Evaluator) evalEnv(env *Env, e SExpression) (SExpression, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.config.MaxDepth > 0 && ev.depth > ev.config.MaxDepth {
		return nil, ErrRecursionDepth
	}
	ev.steps++
	if ev.config.MaxSteps > 0 && ev.steps > ev.config.MaxSteps {
		return nil, ErrStepLimit
	}

	switch t := e.(type) {
	case Symbol:
		return env.Lookup(t)
	case List:
		if len(t) == 0 {
			return Empty, nil
		}
		return ev.evalList(env, t)
	}
	// numbers and booleans, plus runtime values handed back in by callers
	return e, nil
}

func (ev *Evaluator) evalList(env *Env, list List) (SExpression, error) {
	// special forms are recognised by spelling before anything is evaluated,
	// and their shape is checked here rather than at read time
	if s, ok := list[0].(Symbol); ok {
		if err := syntaxCheck(list); err != nil {
			return nil, err
		}
		switch s {
		case "define":
			return ev.evalDefine(env, list)
		case "lambda":
			params, _ := paramList(list[1])
			return &Closure{params: params, body: list[2], env: env}, nil
		case "if":
			tested, err := ev.evalEnv(env, list[1])
			if err != nil {
				return nil, err
			}
			if isTruthy(tested) {
				return ev.evalEnv(env, list[2])
			}
			return ev.evalEnv(env, list[3])
		case "and":
			for _, arg := range list[1:] {
				v, err := ev.evalEnv(env, arg)
				if err != nil {
					return nil, err
				}
				if !isTruthy(v) {
					return False, nil
				}
			}
			return True, nil
		case "or":
			for _, arg := range list[1:] {
				v, err := ev.evalEnv(env, arg)
				if err != nil {
					return nil, err
				}
				if isTruthy(v) {
					return v, nil
				}
			}
			return False, nil
		case "begin":
			var last SExpression
			for _, arg := range list[1:] {
				v, err := ev.evalEnv(env, arg)
				if err != nil {
					return nil, err
				}
				last = v
			}
			return last, nil
		case "let":
			return ev.evalLet(env, list)
		case "set!":
			evalled, err := ev.evalEnv(env, list[2])
			if err != nil {
				return nil, err
			}
			if err := env.Set(list[1].(Symbol), evalled); err != nil {
				return nil, err
			}
			return evalled, nil
		case "del":
			return env.Delete(list[1].(Symbol))
			// default: falls through to procedure call
		}
	}

	// procedure call
	proc, err := ev.evalEnv(env, list[0])
	if err != nil {
		return nil, err
	}
	args := make([]SExpression, len(list)-1)
	for i, arg := range list[1:] {
		evarg, err := ev.evalEnv(env, arg)
		if err != nil {
			return nil, err
		}
		args[i] = evarg
	}
	return ev.apply(proc, args)
}

func (ev *Evaluator) evalDefine(env *Env, list List) (SExpression, error) {
	if target, ok := list[1].(List); ok {
		params, _ := paramList(target[1:])
		name := target[0].(Symbol)
		proc := &Closure{name: name, params: params, body: list[2], env: env}
		if err := env.Define(name, proc); err != nil {
			return nil, err
		}
		return proc, nil
	}
	name := list[1].(Symbol)
	evalled, err := ev.evalEnv(env, list[2])
	if err != nil {
		return nil, err
	}
	if c, ok := evalled.(*Closure); ok && c.name == "" && isLambda(list[2]) {
		c.name = name
	}
	if err := env.Define(name, evalled); err != nil {
		return nil, err
	}
	return evalled, nil
}

// evalLet evaluates every binding in the outer env first, so bindings in
// one let cannot see each other.
func (ev *Evaluator) evalLet(env *Env, list List) (SExpression, error) {
	bindings := list[1].(List)
	letEnv := NewEnv(env)
	for _, b := range bindings {
		binding := b.(List)
		evalled, err := ev.evalEnv(env, binding[1])
		if err != nil {
			return nil, err
		}
		letEnv.dict[binding[0].(Symbol)] = evalled
	}
	return ev.evalEnv(letEnv, list[2])
}

func (ev *Evaluator) apply(f SExpression, args []SExpression) (SExpression, error) {
	switch proc := f.(type) {
	case *Builtin:
		return callBuiltin(proc, args)
	case *Closure:
		if len(args) != len(proc.params) {
			return nil, evalErrorf("%s: expected %d arguments, got %d", proc, len(proc.params), len(args))
		}
		return ev.evalEnv(newEnv(proc.params, args, proc.env), proc.body)
	}
	return nil, evalErrorf("attempt to apply non-procedure %s", f)
}

func newEnv(params []Symbol, args []SExpression, outer *Env) *Env {
	m := make(map[Symbol]SExpression, len(params))
	for i, p := range params {
		m[p] = args[i]
	}
	return &Env{dict: m, outer: outer}
}

// callBuiltin runs a builtin and reports any failure it did not classify
// itself, panics included, as an evaluation error.
func callBuiltin(b *Builtin, args []SExpression) (result SExpression, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, evalErrorf("%s: %v", b.name, r)
		}
	}()
	result, err = b.fn(args)
	if err != nil {
		return nil, asSchemeError(err)
	}
	return result, nil
}

func isLambda(e SExpression) bool {
	list, ok := e.(List)
	return ok && len(list) > 0 && list[0] == Symbol("lambda")
}
