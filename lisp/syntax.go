package lisp

// check syntactic form of the special forms
// so we don't encounter weirdness while evaluating them
func syntaxCheck(list List) error {
	if len(list) == 0 {
		return nil
	}
	s, ok := list[0].(Symbol)
	if !ok {
		return nil
	}
	switch s {
	case "define":
		if len(list) != 3 {
			return syntaxError(list)
		}
		switch target := list[1].(type) {
		case Symbol:
		case List:
			if len(target) == 0 {
				return syntaxError(list)
			}
			if _, ok := target[0].(Symbol); !ok {
				return syntaxError(list)
			}
			if _, ok := paramList(target[1:]); !ok {
				return syntaxError(list)
			}
		default:
			return syntaxError(list)
		}
	case "lambda":
		if len(list) != 3 {
			return syntaxError(list)
		}
		if _, ok := paramList(list[1]); !ok {
			return syntaxError(list)
		}
	case "if":
		if len(list) != 4 {
			return syntaxError(list)
		}
	case "begin":
		if len(list) == 1 {
			return syntaxError(list)
		}
	case "let":
		if len(list) != 3 {
			return syntaxError(list)
		}
		bindings, ok := list[1].(List)
		if !ok {
			return syntaxError(list)
		}
		for _, b := range bindings {
			binding, ok := b.(List)
			if !ok || len(binding) != 2 {
				return syntaxError(list)
			}
			if _, ok := binding[0].(Symbol); !ok {
				return syntaxError(list)
			}
		}
	case "set!":
		if len(list) != 3 {
			return syntaxError(list)
		}
		if _, ok := list[1].(Symbol); !ok {
			return syntaxError(list)
		}
	case "del":
		if len(list) != 2 {
			return syntaxError(list)
		}
		if _, ok := list[1].(Symbol); !ok {
			return syntaxError(list)
		}
	}
	return nil
}

// paramList reads a parameter list. Every entry must be a distinct symbol.
func paramList(e SExpression) ([]Symbol, bool) {
	list, ok := e.(List)
	if !ok {
		return nil, false
	}
	params := make([]Symbol, len(list))
	seen := map[Symbol]bool{}
	for i, p := range list {
		s, ok := p.(Symbol)
		if !ok || seen[s] {
			return nil, false
		}
		seen[s] = true
		params[i] = s
	}
	return params, true
}

func syntaxError(list List) error {
	return syntaxErrorf("invalid syntax %s", list)
}
