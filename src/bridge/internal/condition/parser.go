package condition

import (
	"strings"
)

type parser struct {
	tokens []token
	pos    int
}

// parse builds an AST with the precedence, loosest first: ||, &&, comparisons, unary !, operands.
func parse(src string) (expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, syntaxError(-1, "condition is blank")
	}
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, syntaxError(tok.pos, "unexpected %q", tok.text)
	}
	return e, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: opOr, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: opAnd, left: left, right: right}
	}
	return left, nil
}

var _comparisons = map[tokenKind]binaryOp{
	tokEq: opEq,
	tokNe: opNe,
	tokLt: opLt,
	tokLe: opLe,
	tokGt: opGt,
	tokGe: opGe,
}

func (p *parser) parseComparison() (expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	op, ok := _comparisons[p.peek().kind]
	if !ok {
		return left, nil
	}
	p.next()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if _, chained := _comparisons[p.peek().kind]; chained {
		return nil, syntaxError(p.peek().pos, "comparisons cannot be chained")
	}
	return binaryExpr{op: op, left: left, right: right}, nil
}

func (p *parser) parseUnary() (expr, error) {
	if p.peek().kind == tokNot {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{operand: operand}, nil
	}
	return p.parseOperand()
}

func (p *parser) parseOperand() (expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return literalExpr{value: NumberValue(tok.num)}, nil
	case tokMinus:
		num := p.next()
		if num.kind != tokNumber {
			return nil, syntaxError(num.pos, "expected number after '-'")
		}
		return literalExpr{value: NumberValue(-num.num)}, nil
	case tokString:
		return literalExpr{value: TextValue(tok.text)}, nil
	case tokIdent:
		switch tok.text {
		case "true":
			return literalExpr{value: BoolValue(true)}, nil
		case "false":
			return literalExpr{value: BoolValue(false)}, nil
		case "null":
			return literalExpr{value: NullValue()}, nil
		}
		return p.parsePath(tok)
	case tokLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, syntaxError(closing.pos, "expected ')'")
		}
		return inner, nil
	case tokEOF:
		return nil, syntaxError(tok.pos, "unexpected end of condition")
	default:
		return nil, syntaxError(tok.pos, "unexpected %q", tok.text)
	}
}

func (p *parser) parsePath(first token) (expr, error) {
	path := Path{{Name: first.text}}
	for {
		switch p.peek().kind {
		case tokDot:
			p.next()
			name := p.next()
			if name.kind != tokIdent {
				return nil, syntaxError(name.pos, "expected field name after '.'")
			}
			path = append(path, Segment{Name: name.text})
		case tokLBracket:
			p.next()
			idx := p.next()
			if idx.kind != tokNumber || idx.num != float64(int(idx.num)) || idx.num < 0 {
				return nil, syntaxError(idx.pos, "expected non-negative integer index")
			}
			if closing := p.next(); closing.kind != tokRBracket {
				return nil, syntaxError(closing.pos, "expected ']'")
			}
			path = append(path, Segment{Index: int(idx.num), IsIndex: true})
		default:
			return pathExpr{path: path}, nil
		}
	}
}

// ParsePath parses a bare value path such as order.items[2].price.
func ParsePath(src string) (Path, error) {
	if strings.TrimSpace(src) == "" {
		return nil, syntaxError(-1, "path is blank")
	}
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	first := p.next()
	if first.kind != tokIdent {
		return nil, syntaxError(first.pos, "path must start with a name")
	}
	e, err := p.parsePath(first)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, syntaxError(tok.pos, "unexpected %q", tok.text)
	}
	return e.(pathExpr).path, nil
}
