package lisp

import "math"

// builtinEnv is the outermost frame of every global env. Its table is built
// once and never written to; NewGlobalEnv chains to it rather than copying.
var builtinEnv = &Env{dict: builtins(), readOnly: true}

func builtins() map[Symbol]SExpression {
	return map[Symbol]SExpression{
		"+":          builtinFunc("+", add),
		"-":          builtinFunc("-", sub),
		"*":          builtinFunc("*", mul),
		"/":          builtinFunc("/", div),
		"equal?":     builtinFunc("equal?", equal),
		">":          builtinFunc(">", gt),
		">=":         builtinFunc(">=", geq),
		"<":          builtinFunc("<", lt),
		"<=":         builtinFunc("<=", leq),
		"not":        builtinFunc("not", not),
		"cons":       builtinFunc("cons", cons),
		"car":        builtinFunc("car", car),
		"cdr":        builtinFunc("cdr", cdr),
		"list":       builtinFunc("list", list),
		"list?":      builtinFunc("list?", islist),
		"length":     builtinFunc("length", length),
		"list-ref":   builtinFunc("list-ref", listRef),
		"append":     builtinFunc("append", appendLists),
		"null?":      builtinFunc("null?", isnull),
		"pair?":      builtinFunc("pair?", ispair),
		"number?":    builtinFunc("number?", isnumber),
		"symbol?":    builtinFunc("symbol?", issymbol),
		"boolean?":   builtinFunc("boolean?", isboolean),
		"procedure?": builtinFunc("procedure?", isprocedure),
	}
}

func builtinFunc(name string, f BuiltinProc) *Builtin {
	return &Builtin{name: name, fn: f}
}

func arity(name string, args []SExpression, n int) error {
	if len(args) != n {
		return evalErrorf("%s: expected %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func atLeast(name string, args []SExpression, n int) error {
	if len(args) < n {
		return evalErrorf("%s: expected at least %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func add(args []SExpression) (SExpression, error) {
	return agg("+", Integer(0), args, addInt,
		func(r, x float64) float64 { return r + x })
}

func sub(args []SExpression) (SExpression, error) {
	if err := atLeast("-", args, 1); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		switch t := args[0].(type) {
		case Integer:
			if t == math.MinInt64 {
				return -Float(t), nil
			}
			return -t, nil
		case Float:
			return -t, nil
		}
		return nil, evalErrorf("-: invalid operand %s", args[0])
	}
	return agg("-", args[0], args[1:], subInt,
		func(r, x float64) float64 { return r - x })
}

func mul(args []SExpression) (SExpression, error) {
	return agg("*", Integer(1), args, mulInt,
		func(r, x float64) float64 { return r * x })
}

// addInt, subInt and mulInt report false when the result does not fit in
// an int64.
func addInt(r, x int64) (int64, bool) {
	s := r + x
	return s, (s > r) == (x > 0)
}

func subInt(r, x int64) (int64, bool) {
	d := r - x
	return d, (d < r) == (x > 0)
}

func mulInt(r, x int64) (int64, bool) {
	if r == 0 || x == 0 {
		return 0, true
	}
	if (r == -1 && x == math.MinInt64) || (x == -1 && r == math.MinInt64) {
		return 0, false
	}
	p := r * x
	return p, p/x == r
}

// div is true division: any two operands give a float.
func div(args []SExpression) (SExpression, error) {
	if err := atLeast("/", args, 1); err != nil {
		return nil, err
	}
	first, ok := toFloat(args[0])
	if !ok {
		return nil, evalErrorf("/: invalid operand %s", args[0])
	}
	if len(args) == 1 {
		return args[0], nil
	}
	for _, arg := range args[1:] {
		x, ok := toFloat(arg)
		if !ok {
			return nil, evalErrorf("/: invalid operand %s", arg)
		}
		if x == 0 {
			return nil, evalErrorf("/: division by zero")
		}
		first /= x
	}
	return Float(first), nil
}

// agg folds args left to right onto init. Integers stay integers until a
// float shows up or the int64 result would overflow; from then on the fold
// continues in floats.
func agg(name string, init SExpression, args []SExpression, accumInt func(int64, int64) (int64, bool), accumFloat func(float64, float64) float64) (SExpression, error) {
	if !isNumber(init) {
		return nil, evalErrorf("%s: invalid operand %s", name, init)
	}
	ret := init
	for _, arg := range args {
		ri, rIsInt := ret.(Integer)
		ai, aIsInt := arg.(Integer)
		if rIsInt && aIsInt {
			if n, ok := accumInt(int64(ri), int64(ai)); ok {
				ret = Integer(n)
				continue
			}
		}
		rf, _ := toFloat(ret)
		af, ok := toFloat(arg)
		if !ok {
			return nil, evalErrorf("%s: invalid operand %s", name, arg)
		}
		ret = Float(accumFloat(rf, af))
	}
	return ret, nil
}

func toFloat(e SExpression) (float64, bool) {
	switch t := e.(type) {
	case Integer:
		return float64(t), true
	case Float:
		return float64(t), true
	}
	return 0, false
}

func lt(args []SExpression) (SExpression, error) {
	return order("<", args,
		func(r, x int64) bool { return r < x },
		func(r, x float64) bool { return r < x })
}

func leq(args []SExpression) (SExpression, error) {
	return order("<=", args,
		func(r, x int64) bool { return r <= x },
		func(r, x float64) bool { return r <= x })
}

func gt(args []SExpression) (SExpression, error) {
	return order(">", args,
		func(r, x int64) bool { return r > x },
		func(r, x float64) bool { return r > x })
}

func geq(args []SExpression) (SExpression, error) {
	return order(">=", args,
		func(r, x int64) bool { return r >= x },
		func(r, x float64) bool { return r >= x })
}

// order checks every adjacent pair of args, not just the first and last.
func order(name string, args []SExpression, orderInt func(int64, int64) bool, orderFloat func(float64, float64) bool) (SExpression, error) {
	if err := atLeast(name, args, 2); err != nil {
		return nil, err
	}
	for _, arg := range args {
		if !isNumber(arg) {
			return nil, evalErrorf("%s: invalid operand %s", name, arg)
		}
	}
	for i := 1; i < len(args); i++ {
		var ok bool
		ri, rIsInt := args[i-1].(Integer)
		ai, aIsInt := args[i].(Integer)
		if rIsInt && aIsInt {
			ok = orderInt(int64(ri), int64(ai))
		} else {
			rf, _ := toFloat(args[i-1])
			af, _ := toFloat(args[i])
			ok = orderFloat(rf, af)
		}
		if !ok {
			return False, nil
		}
	}
	return True, nil
}

func equal(args []SExpression) (SExpression, error) {
	if err := atLeast("equal?", args, 2); err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i++ {
		if !Equals(args[i-1], args[i]) {
			return False, nil
		}
	}
	return True, nil
}

func not(args []SExpression) (SExpression, error) {
	if err := arity("not", args, 1); err != nil {
		return nil, err
	}
	return Boolean(!isTruthy(args[0])), nil
}

func cons(args []SExpression) (SExpression, error) {
	if err := arity("cons", args, 2); err != nil {
		return nil, err
	}
	return NewPair(args[0], args[1]), nil
}

func car(args []SExpression) (SExpression, error) {
	if err := arity("car", args, 1); err != nil {
		return nil, err
	}
	p, ok := args[0].(*Pair)
	if !ok {
		return nil, evalErrorf("car: %s is not a pair", args[0])
	}
	return p.car, nil
}

func cdr(args []SExpression) (SExpression, error) {
	if err := arity("cdr", args, 1); err != nil {
		return nil, err
	}
	p, ok := args[0].(*Pair)
	if !ok {
		return nil, evalErrorf("cdr: %s is not a pair", args[0])
	}
	return p.cdr, nil
}

func list(args []SExpression) (SExpression, error) {
	return list2cons(args...), nil
}

func islist(args []SExpression) (SExpression, error) {
	if err := arity("list?", args, 1); err != nil {
		return nil, err
	}
	return Boolean(isProperList(args[0])), nil
}

func length(args []SExpression) (SExpression, error) {
	if err := arity("length", args, 1); err != nil {
		return nil, err
	}
	n := 0
	e := args[0]
	for {
		p, ok := e.(*Pair)
		if !ok {
			break
		}
		n++
		e = p.cdr
	}
	if e != Empty {
		return nil, evalErrorf("length: %s is not a proper list", args[0])
	}
	return Integer(n), nil
}

func listRef(args []SExpression) (SExpression, error) {
	if err := arity("list-ref", args, 2); err != nil {
		return nil, err
	}
	idx, ok := args[1].(Integer)
	if !ok || idx < 0 {
		return nil, evalErrorf("list-ref: invalid index %s", args[1])
	}
	if _, ok := args[0].(*Pair); !ok && args[0] != Empty {
		return nil, evalErrorf("list-ref: %s is not a list", args[0])
	}
	for e := args[0]; ; idx-- {
		p, ok := e.(*Pair)
		if !ok {
			return nil, evalErrorf("list-ref: index %s out of range", args[1])
		}
		if idx == 0 {
			return p.car, nil
		}
		e = p.cdr
	}
}

// appendLists copies the spine of every argument but the last, which the
// result shares. A lone argument is copied too, so the result never aliases
// a caller's cells unless they were the tail.
func appendLists(args []SExpression) (SExpression, error) {
	if len(args) == 0 {
		return Empty, nil
	}
	for _, arg := range args {
		if _, ok := arg.(*Pair); !ok && arg != Empty {
			return nil, evalErrorf("append: %s is not a list", arg)
		}
	}
	copied, shared := args, SExpression(Empty)
	if len(args) > 1 {
		copied, shared = args[:len(args)-1], args[len(args)-1]
	}
	var head, tail *Pair
	for _, arg := range copied {
		elems, ok := cons2list(arg)
		if !ok {
			return nil, evalErrorf("append: %s is not a proper list", arg)
		}
		for _, elem := range elems {
			cell := NewPair(elem, Empty)
			if head == nil {
				head = cell
			} else {
				tail.cdr = cell
			}
			tail = cell
		}
	}
	if head == nil {
		return shared, nil
	}
	tail.cdr = shared
	return head, nil
}

func isnull(args []SExpression) (SExpression, error) {
	if err := arity("null?", args, 1); err != nil {
		return nil, err
	}
	return Boolean(args[0] == Empty), nil
}

func ispair(args []SExpression) (SExpression, error) {
	if err := arity("pair?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*Pair)
	return Boolean(ok), nil
}

func isnumber(args []SExpression) (SExpression, error) {
	if err := arity("number?", args, 1); err != nil {
		return nil, err
	}
	return Boolean(isNumber(args[0])), nil
}

func issymbol(args []SExpression) (SExpression, error) {
	if err := arity("symbol?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(Symbol)
	return Boolean(ok), nil
}

func isboolean(args []SExpression) (SExpression, error) {
	if err := arity("boolean?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(Boolean)
	return Boolean(ok), nil
}

func isprocedure(args []SExpression) (SExpression, error) {
	if err := arity("procedure?", args, 1); err != nil {
		return nil, err
	}
	return Boolean(isProcedure(args[0])), nil
}
