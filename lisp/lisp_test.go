package lisp

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLisp(t *testing.T) {
	// NOTE: one shared global env for test, meaning order matters here!
	l := New()
	for i, tt := range []struct {
		input string
		want  string
	}{
		{
			input: "(+ 1 2)",
			want:  "3",
		},
		{
			input: "(define r 10)",
			want:  "10",
		},
		{
			input: "(* 3 (* r r))",
			want:  "300",
		},
		{
			input: "(if (> (* 11 11) 120) (* 7 6) oops)",
			want:  "42",
		},
		{
			input: "(define circle-area (lambda (r) (* 3 (* r r))))",
			want:  "#<procedure circle-area>",
		},
		{
			input: "(circle-area 2)",
			want:  "12",
		},
		{
			input: "(define (f x) (+ x 1))",
			want:  "#<procedure f>",
		},
		{
			input: "(f 4)",
			want:  "5",
		},
		{
			input: `(define (fact n)
                (if (<= n 1) 1 (* n (fact (- n 1)))))`,
			want: "#<procedure fact>",
		},
		{
			input: "(fact 10)",
			want:  "3628800",
		},
		{
			input: "(define twice (lambda (x) (* 2 x)))",
			want:  "#<procedure twice>",
		},
		{
			input: "(define repeat (lambda (f) (lambda (x) (f (f x)))))",
			want:  "#<procedure repeat>",
		},
		{
			input: "((repeat twice) 10)",
			want:  "40",
		},
		{
			input: "((repeat (repeat (repeat (repeat twice)))) 10)",
			want:  "655360",
		},
		{
			input: "(define (make-adder n) (lambda (x) (+ x n)))",
			want:  "#<procedure make-adder>",
		},
		{
			input: "((make-adder 3) 4)",
			want:  "7",
		},
		{
			input: "(lambda (x) x)",
			want:  "#<procedure>",
		},
		{
			input: "car",
			want:  "#<builtin car>",
		},
		{
			input: "(let ((x 5)) (let ((x 6) (y x)) y))",
			want:  "5",
		},
		{
			input: "(define x 5)",
			want:  "5",
		},
		{
			input: "(+ (let ((x 3)) (+ x (* x 10))) x)",
			want:  "38",
		},
		{
			input: "(begin (define z 1) (+ z 1))",
			want:  "2",
		},
		{
			input: "(if #f 1 2)",
			want:  "2",
		},
		{
			input: "(if 0 1 2)",
			want:  "1",
		},
		{
			input: "(if () 1 2)",
			want:  "1",
		},
		{
			input: "(and)",
			want:  "#t",
		},
		{
			input: "(and 1 2)",
			want:  "#t",
		},
		{
			input: "(and #f undefined)",
			want:  "#f",
		},
		{
			input: "(or)",
			want:  "#f",
		},
		{
			input: "(or #f 3 undefined)",
			want:  "3",
		},
		{
			input: "(or #f #f)",
			want:  "#f",
		},
		{
			input: "(define (make-counter) (let ((n 0)) (lambda () (begin (set! n (+ n 1)) n))))",
			want:  "#<procedure make-counter>",
		},
		{
			input: "(define c (make-counter))",
			want:  "#<procedure>",
		},
		{
			input: "(c)",
			want:  "1",
		},
		{
			input: "(c)",
			want:  "2",
		},
		{
			input: "(define y 1)",
			want:  "1",
		},
		{
			input: "(define (bump) (set! y (+ y 10)))",
			want:  "#<procedure bump>",
		},
		{
			input: "(bump)",
			want:  "11",
		},
		{
			input: "y",
			want:  "11",
		},
		{
			input: "(define w 3)",
			want:  "3",
		},
		{
			input: "(del w)",
			want:  "3",
		},
		{
			input: "()",
			want:  "()",
		},
	} {
		e, err := l.Eval(tt.input)
		if !assert.NoError(t, err, "%d) %s", i, tt.input) {
			continue
		}
		assert.Equal(t, tt.want, e.String(), "%d) %s", i, tt.input)
	}

	_, err := l.Eval("w")
	assert.ErrorIs(t, err, ErrName)
}

func TestEvalErrors(t *testing.T) {
	l := New()
	_, err := l.Load(`
        (define (f x) (+ x 1))
        (define g 1)`)
	require.NoError(t, err)

	for i, tt := range []struct {
		input string
		want  error
	}{
		{input: "(f)", want: ErrEvaluation},
		{input: "(f 1 2)", want: ErrEvaluation},
		{input: "(car 5)", want: ErrEvaluation},
		{input: "(cdr ())", want: ErrEvaluation},
		{input: "(1 2)", want: ErrEvaluation},
		{input: "(g)", want: ErrEvaluation},
		{input: "undefined", want: ErrName},
		{input: "(undefined 1)", want: ErrName},
		{input: "(set! nope 1)", want: ErrName},
		{input: "(set! + 1)", want: ErrEvaluation},
		{input: "((lambda (a) (del g)) 1)", want: ErrName},
		{input: "(del +)", want: ErrName},
		{input: "(if 1 2)", want: ErrSyntax},
		{input: "(if 1 2 3 4)", want: ErrSyntax},
		{input: "(let ((x)) x)", want: ErrSyntax},
		{input: "(let (x 1) x)", want: ErrSyntax},
		{input: "(let ((1 2)) 3)", want: ErrSyntax},
		{input: "(let ((x 1)))", want: ErrSyntax},
		{input: "(define)", want: ErrSyntax},
		{input: "(define x)", want: ErrSyntax},
		{input: "(define 1 2)", want: ErrSyntax},
		{input: "(define () 2)", want: ErrSyntax},
		{input: "(define (h x x) x)", want: ErrSyntax},
		{input: "(lambda x x)", want: ErrSyntax},
		{input: "(lambda (1) 1)", want: ErrSyntax},
		{input: "(lambda (x))", want: ErrSyntax},
		{input: "(begin)", want: ErrSyntax},
		{input: "(set! 1 2)", want: ErrSyntax},
		{input: "(del)", want: ErrSyntax},
		{input: "(del 1)", want: ErrSyntax},
	} {
		_, err := l.Eval(tt.input)
		assert.ErrorIs(t, err, tt.want, "%d) %s", i, tt.input)
		assert.ErrorIs(t, err, ErrScheme, "%d) %s", i, tt.input)
	}

	// + is still the builtin after the failed set!
	e, err := l.Eval("(+ 1 1)")
	require.NoError(t, err)
	assert.Equal(t, Integer(2), e)
}

func TestEvaluate(t *testing.T) {
	e, err := Evaluate(mustParse("(+ 1 2)"), nil)
	require.NoError(t, err)
	assert.Equal(t, Integer(3), e)

	env := NewGlobalEnv()
	_, err = Evaluate(mustParse("(define x 41)"), env)
	require.NoError(t, err)
	e, err = Evaluate(mustParse("(+ x 1)"), env)
	require.NoError(t, err)
	assert.Equal(t, Integer(42), e)

	_, err = Evaluate(mustParse("x"), nil)
	assert.ErrorIs(t, err, ErrName)
}

func TestSetFromInnerScope(t *testing.T) {
	l := New()
	_, err := l.Load(`
        (define y 1)
        (define (g) (begin (set! y 5) y))`)
	require.NoError(t, err)

	e, err := l.Eval("(g)")
	require.NoError(t, err)
	assert.Equal(t, Integer(5), e)
	e, err = l.Eval("y")
	require.NoError(t, err)
	assert.Equal(t, Integer(5), e)
}

func TestClosureCapturesDefiningEnv(t *testing.T) {
	l := New()
	_, err := l.Load(`
        (define n 100)
        (define (make-adder n) (lambda (x) (+ x n)))
        (define add3 (make-adder 3))
        (define (call-with-n n f) (f 0))`)
	require.NoError(t, err)

	// the n in scope at the call site must not leak into add3
	e, err := l.Eval("(call-with-n 50 add3)")
	require.NoError(t, err)
	assert.Equal(t, Integer(3), e)
}

func TestLoadStopsAtFirstError(t *testing.T) {
	l := New()
	_, err := l.Load("(define a 1) (car 5) (define b 2)")
	assert.ErrorIs(t, err, ErrEvaluation)
	assert.True(t, l.Env.Bound("a"))
	assert.False(t, l.Env.Bound("b"))

	e, err := l.Load("(define c 3) (+ a c)")
	require.NoError(t, err)
	assert.Equal(t, Integer(4), e)

	e, err = l.Load("")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestRecursionDepth(t *testing.T) {
	l := New(WithConfig(Config{MaxDepth: 200}))
	_, err := l.Eval("(define (loop n) (+ 1 (loop n)))")
	require.NoError(t, err)
	_, err = l.Eval("(loop 1)")
	assert.ErrorIs(t, err, ErrRecursionDepth)
	assert.ErrorIs(t, err, ErrEvaluation)

	// the depth counter is back to zero for the next form
	e, err := l.Eval("(+ 1 2)")
	require.NoError(t, err)
	assert.Equal(t, Integer(3), e)
}

func TestNonTailRecursion(t *testing.T) {
	l := New()
	_, err := l.Eval("(define (sum-to n) (if (equal? n 0) 0 (+ n (sum-to (- n 1)))))")
	require.NoError(t, err)
	e, err := l.Eval("(sum-to 1000)")
	require.NoError(t, err)
	assert.Equal(t, Integer(500500), e)

	// the default depth counts evaluation levels, several per call
	assert.Equal(t, 50000, DefaultConfig.MaxDepth)
	_, err = l.Eval("(sum-to 20000)")
	assert.ErrorIs(t, err, ErrRecursionDepth)
}

func TestStepLimit(t *testing.T) {
	l := New(WithConfig(Config{MaxDepth: 10000, MaxSteps: 100}))
	_, err := l.Eval("(define (spin n) (if (> n 0) (spin (- n 1)) 0))")
	require.NoError(t, err)
	_, err = l.Eval("(spin 1000)")
	assert.ErrorIs(t, err, ErrStepLimit)

	e, err := l.Eval("(spin 5)")
	require.NoError(t, err)
	assert.Equal(t, Integer(0), e)
}

func TestBuiltinFailuresAreEvaluationErrors(t *testing.T) {
	boom := builtinFunc("boom", func(args []SExpression) (SExpression, error) {
		panic("boom")
	})
	_, err := callBuiltin(boom, nil)
	assert.ErrorIs(t, err, ErrEvaluation)

	plain := builtinFunc("plain", func(args []SExpression) (SExpression, error) {
		return nil, errors.New("plain failure")
	})
	_, err = callBuiltin(plain, nil)
	assert.ErrorIs(t, err, ErrEvaluation)
	assert.Contains(t, err.Error(), "plain failure")

	_, err = callBuiltin(builtinFunc("car", car), []SExpression{Integer(1)})
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestListLength(t *testing.T) {
	l := New()
	for n := 0; n < 20; n++ {
		elems := make([]string, n)
		for i := range elems {
			elems[i] = fmt.Sprint(i)
		}
		src := "(list " + strings.Join(elems, " ") + ")"

		e, err := l.Eval("(list? " + src + ")")
		require.NoError(t, err)
		assert.Equal(t, True, e, src)

		e, err = l.Eval("(length " + src + ")")
		require.NoError(t, err)
		assert.Equal(t, Integer(n), e, src)
	}
}
