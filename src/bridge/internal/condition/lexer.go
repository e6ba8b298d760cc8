package condition

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/uber/debug-bridge/src/bridge/internal/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
	tokAnd
	tokOr
	tokNot
	tokMinus
	tokLParen
	tokRParen
	tokDot
	tokLBracket
	tokRBracket
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

func syntaxError(pos int, format string, args ...interface{}) error {
	return &errors.ConditionSyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func lex(src string) ([]token, error) {
	var tokens []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			// Numeric suffixes such as 10L or 1.5f are accepted and ignored.
			text := string(runes[start:i])
			if i < len(runes) && strings.ContainsRune("lLfFdD", runes[i]) {
				i++
			}
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, syntaxError(start, "invalid number %q", text)
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, num: n, pos: start})
		case r == '"' || r == '\'':
			s, next, err := lexString(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokString, text: s, pos: i})
			i = next
		case r == '_' || r == '$' || unicode.IsLetter(r):
			start := i
			for i < len(runes) && (runes[i] == '_' || runes[i] == '$' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
		default:
			kind, width := operator(runes, i)
			if width == 0 {
				return nil, syntaxError(i, "unexpected character %q", r)
			}
			tokens = append(tokens, token{kind: kind, text: string(runes[i : i+width]), pos: i})
			i += width
		}
	}
	return append(tokens, token{kind: tokEOF, pos: len(runes)}), nil
}

func operator(runes []rune, i int) (tokenKind, int) {
	next := rune(0)
	if i+1 < len(runes) {
		next = runes[i+1]
	}
	switch runes[i] {
	case '=':
		if next == '=' {
			return tokEq, 2
		}
	case '!':
		if next == '=' {
			return tokNe, 2
		}
		return tokNot, 1
	case '<':
		if next == '=' {
			return tokLe, 2
		}
		return tokLt, 1
	case '>':
		if next == '=' {
			return tokGe, 2
		}
		return tokGt, 1
	case '&':
		if next == '&' {
			return tokAnd, 2
		}
	case '|':
		if next == '|' {
			return tokOr, 2
		}
	case '-':
		return tokMinus, 1
	case '(':
		return tokLParen, 1
	case ')':
		return tokRParen, 1
	case '.':
		return tokDot, 1
	case '[':
		return tokLBracket, 1
	case ']':
		return tokRBracket, 1
	}
	return tokEOF, 0
}

func lexString(runes []rune, start int) (string, int, error) {
	quote := runes[start]
	var sb strings.Builder
	i := start + 1
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == quote:
			return sb.String(), i + 1, nil
		case r == '\\':
			if i+1 >= len(runes) {
				return "", 0, syntaxError(i, "unterminated escape")
			}
			switch esc := runes[i+1]; esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			default:
				sb.WriteRune(esc)
			}
			i += 2
		default:
			sb.WriteRune(r)
			i++
		}
	}
	return "", 0, syntaxError(start, "unterminated string")
}
