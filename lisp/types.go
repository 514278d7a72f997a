package lisp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SExpression is any value the interpreter handles: the atoms and Lists
// produced by the parser, and the runtime values produced by evaluation.
type SExpression interface {
	fmt.Stringer
	sexpression()
}

type (
	Integer int64
	Float   float64
	Boolean bool
	Symbol  string
)

// List is a parenthesized form in a syntax tree. Evaluation never produces
// one; quoted data is built from pairs instead.
type List []SExpression

var (
	True  = Boolean(true)
	False = Boolean(false)
)

func (Integer) sexpression() {}
func (Float) sexpression()   {}
func (Boolean) sexpression() {}
func (Symbol) sexpression()  {}
func (List) sexpression()    {}

func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 64)
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (b Boolean) String() string {
	if b {
		return "#t"
	}
	return "#f"
}

func (s Symbol) String() string {
	return string(s)
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

type emptyList struct{}

func (emptyList) sexpression()   {}
func (emptyList) String() string { return "()" }

// Empty is the empty list. It is the only value of its type, so it compares
// equal to itself and to nothing else.
var Empty SExpression = emptyList{}

// Pair is a mutable cons cell. Pairs are shared by pointer: car and cdr hand
// out the cells they were given, and only list-building builtins allocate.
type Pair struct {
	car SExpression
	cdr SExpression
}

func NewPair(car, cdr SExpression) *Pair {
	return &Pair{car: car, cdr: cdr}
}

func (*Pair) sexpression() {}

func (p *Pair) Car() SExpression { return p.car }
func (p *Pair) Cdr() SExpression { return p.cdr }

func (p *Pair) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(p.car.String())
	e := p.cdr
Loop:
	for {
		switch t := e.(type) {
		case *Pair:
			sb.WriteByte(' ')
			sb.WriteString(t.car.String())
			e = t.cdr
		case emptyList:
			break Loop
		default:
			sb.WriteString(" . ")
			sb.WriteString(t.String())
			break Loop
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// BuiltinProc is the native implementation of a builtin. Arguments arrive
// evaluated; each builtin checks its own arity and operand types.
type BuiltinProc func(args []SExpression) (SExpression, error)

type Builtin struct {
	name string
	fn   BuiltinProc
}

func (*Builtin) sexpression() {}

func (b *Builtin) String() string { return "#<builtin " + b.name + ">" }

// Closure is a user-defined procedure. env is the frame that was current when
// the lambda or define was evaluated, never the caller's frame.
type Closure struct {
	name   Symbol
	params []Symbol
	body   SExpression
	env    *Env
}

func (*Closure) sexpression() {}

func (c *Closure) String() string {
	if c.name == "" {
		return "#<procedure>"
	}
	return "#<procedure " + string(c.name) + ">"
}

func list2cons(list ...SExpression) SExpression {
	var out SExpression = Empty
	for i := len(list) - 1; i >= 0; i-- {
		out = NewPair(list[i], out)
	}
	return out
}

// cons2list returns the elements of a proper list, or false if e is anything
// else.
func cons2list(e SExpression) ([]SExpression, bool) {
	var out []SExpression
	for {
		switch t := e.(type) {
		case *Pair:
			out = append(out, t.car)
			e = t.cdr
		case emptyList:
			return out, true
		default:
			return nil, false
		}
	}
}

func isProperList(e SExpression) bool {
	for {
		p, ok := e.(*Pair)
		if !ok {
			return e == Empty
		}
		e = p.cdr
	}
}

func isTruthy(e SExpression) bool {
	return e != False
}

func isNumber(e SExpression) bool {
	switch e.(type) {
	case Integer, Float:
		return true
	}
	return false
}

func isProcedure(e SExpression) bool {
	switch e.(type) {
	case *Builtin, *Closure:
		return true
	}
	return false
}
