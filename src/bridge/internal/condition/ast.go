package condition

import (
	"strconv"
	"strings"
)

// Segment is one step of a value path: a field name or an index.
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// Path is a dotted and indexed value path such as order.items[2].price.
type Path []Segment

// String renders the path in source form.
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		switch {
		case seg.IsIndex:
			sb.WriteString("[" + strconv.Itoa(seg.Index) + "]")
		case i == 0:
			sb.WriteString(seg.Name)
		default:
			sb.WriteString("." + seg.Name)
		}
	}
	return sb.String()
}

type binaryOp int

const (
	opEq binaryOp = iota
	opNe
	opLt
	opLe
	opGt
	opGe
	opAnd
	opOr
)

func (o binaryOp) String() string {
	return [...]string{"==", "!=", "<", "<=", ">", ">=", "&&", "||"}[o]
}

// expr is the closed set of AST nodes.
type expr interface {
	isExpr()
}

type literalExpr struct {
	value Value
}

type pathExpr struct {
	path Path
}

type notExpr struct {
	operand expr
}

type binaryExpr struct {
	op          binaryOp
	left, right expr
}

func (literalExpr) isExpr() {}
func (pathExpr) isExpr()    {}
func (notExpr) isExpr()     {}
func (binaryExpr) isExpr()  {}
