package lisp

import (
	"os"
	"strconv"
	"strings"
	"unicode"
)

// ParseFile slurps in the entire file and returns its top-level forms.
func ParseFile(filename string) ([]SExpression, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Multiparse(string(b))
}

// Multiparse reads every top-level form in program.
func Multiparse(program string) ([]SExpression, error) {
	chunks, err := SplitForms(Tokenize(program))
	if err != nil {
		return nil, err
	}
	list := make([]SExpression, 0, len(chunks))
	for _, chunk := range chunks {
		e, err := Parse(chunk)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, nil
}

func mustParse(program string) SExpression {
	p, err := Parse(Tokenize(program))
	if err != nil {
		panic(err)
	}
	return p
}

// Tokenize splits source into tokens. A semicolon comments out the rest of
// its line, parens are always tokens of their own, and whitespace separates
// everything else. It never fails.
func Tokenize(source string) []string {
	tokens := []string{}
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
		}
	}
	comment := false
	for _, r := range source {
		switch {
		case isLineBreak(r):
			flush()
			comment = false
		case comment:
		case r == ';':
			flush()
			comment = true
		case unicode.IsSpace(r) || r == '\x1f':
			flush()
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// isLineBreak reports whether r ends a line, and with it any comment.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Parse reads exactly one form from tokens. Leftover tokens after the first
// complete form are a syntax error.
func Parse(tokens []string) (SExpression, error) {
	if len(tokens) == 0 {
		return nil, syntaxErrorf("no input")
	}
	e, next, err := readFromTokens(tokens, 0)
	if err != nil {
		return nil, err
	}
	if next != len(tokens) {
		return nil, syntaxErrorf("unexpected %q after complete form", tokens[next])
	}
	return e, nil
}

func readFromTokens(tokens []string, i int) (SExpression, int, error) {
	if i >= len(tokens) {
		return nil, i, syntaxErrorf("unexpected end of input")
	}
	switch token := tokens[i]; token {
	case ")":
		return nil, i, syntaxErrorf("unexpected ')'")
	case "(":
		list := List{}
		i++
		for {
			if i >= len(tokens) {
				return nil, i, syntaxErrorf("missing ')'")
			}
			if tokens[i] == ")" {
				return list, i + 1, nil
			}
			e, next, err := readFromTokens(tokens, i)
			if err != nil {
				return nil, next, err
			}
			list = append(list, e)
			i = next
		}
	default:
		return atom(token), i + 1, nil
	}
}

// SplitForms cuts a token stream into one chunk per top-level form, cutting
// every time the paren depth returns to zero.
func SplitForms(tokens []string) ([][]string, error) {
	chunks := [][]string{}
	depth, start := 0, 0
	for i, token := range tokens {
		switch token {
		case "(":
			depth++
		case ")":
			depth--
			if depth < 0 {
				return nil, syntaxErrorf("unexpected ')'")
			}
		}
		if depth == 0 {
			chunks = append(chunks, tokens[start:i+1])
			start = i + 1
		}
	}
	if depth != 0 {
		return nil, syntaxErrorf("missing ')'")
	}
	return chunks, nil
}

// Balance returns the number of parens left open at the end of tokens. It is
// negative if a ')' has no matching '('.
func Balance(tokens []string) int {
	depth := 0
	for _, token := range tokens {
		switch token {
		case "(":
			depth++
		case ")":
			depth--
			if depth < 0 {
				return depth
			}
		}
	}
	return depth
}

func atom(token string) SExpression {
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return Integer(n)
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return Float(f)
	}
	switch token {
	case "#t":
		return True
	case "#f":
		return False
	}
	return Symbol(token)
}
