package condition

import (
	"fmt"

	"github.com/uber/debug-bridge/src/bridge/internal/errors"
)

// Resolver supplies values for paths.
type Resolver interface {
	Resolve(path Path) (Value, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(path Path) (Value, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(path Path) (Value, error) {
	return f(path)
}

// Program is a compiled expression.
type Program struct {
	source string
	root   expr
}

// Compile parses src. Errors are *errors.ConditionSyntaxError.
func Compile(src string) (*Program, error) {
	root, err := parse(src)
	if err != nil {
		return nil, err
	}
	return &Program{source: src, root: root}, nil
}

// Source returns the expression text.
func (p *Program) Source() string {
	return p.source
}

// Eval evaluates the program as a condition. A non-boolean result is an evaluation error.
func (p *Program) Eval(r Resolver) (bool, error) {
	v, err := p.Value(r)
	if err != nil {
		return false, err
	}
	if v.kind != Bool {
		return false, evalError("condition evaluated to %s, not boolean", v.kind)
	}
	return v.b, nil
}

// Value evaluates the program and returns its result. Errors are *errors.ConditionEvaluationError.
func (p *Program) Value(r Resolver) (Value, error) {
	return eval(p.root, r)
}

func evalError(format string, args ...interface{}) error {
	return &errors.ConditionEvaluationError{Msg: fmt.Sprintf(format, args...)}
}

func eval(e expr, r Resolver) (Value, error) {
	switch n := e.(type) {
	case literalExpr:
		return n.value, nil
	case pathExpr:
		v, err := r.Resolve(n.path)
		if err != nil {
			return Value{}, &errors.ConditionEvaluationError{Msg: fmt.Sprintf("cannot resolve %q", n.path.String()), Err: err}
		}
		return v, nil
	case notExpr:
		v, err := eval(n.operand, r)
		if err != nil {
			return Value{}, err
		}
		if v.kind != Bool {
			return Value{}, evalError("operator ! expects boolean, got %s", v.kind)
		}
		return BoolValue(!v.b), nil
	case binaryExpr:
		return evalBinary(n, r)
	default:
		return Value{}, evalError("unsupported expression %T", e)
	}
}

func evalBinary(n binaryExpr, r Resolver) (Value, error) {
	left, err := eval(n.left, r)
	if err != nil {
		return Value{}, err
	}

	switch n.op {
	case opAnd, opOr:
		if left.kind != Bool {
			return Value{}, evalError("operator %s expects boolean operands, got %s", n.op, left.kind)
		}
		if (n.op == opAnd && !left.b) || (n.op == opOr && left.b) {
			return left, nil
		}
		right, err := eval(n.right, r)
		if err != nil {
			return Value{}, err
		}
		if right.kind != Bool {
			return Value{}, evalError("operator %s expects boolean operands, got %s", n.op, right.kind)
		}
		return right, nil
	}

	right, err := eval(n.right, r)
	if err != nil {
		return Value{}, err
	}

	switch n.op {
	case opEq, opNe:
		eq, err := equal(left, right)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(eq == (n.op == opEq)), nil
	default:
		cmp, err := compare(n.op, left, right)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(cmp), nil
	}
}

// equal treats null as equal only to null. Objects are comparable only against null.
func equal(a, b Value) (bool, error) {
	if a.kind == Null || b.kind == Null {
		return a.kind == b.kind, nil
	}
	if a.kind != b.kind {
		return false, evalError("cannot compare %s with %s", a.kind, b.kind)
	}
	switch a.kind {
	case Bool:
		return a.b == b.b, nil
	case Number:
		return a.n == b.n, nil
	case Text:
		return a.s == b.s, nil
	case Object:
		return false, evalError("objects of type %s can only be compared with null", a.typeName)
	default:
		return false, evalError("cannot compare %s values", a.kind)
	}
}

func compare(op binaryOp, a, b Value) (bool, error) {
	var c int
	switch {
	case a.kind == Number && b.kind == Number:
		switch {
		case a.n < b.n:
			c = -1
		case a.n > b.n:
			c = 1
		}
	case a.kind == Text && b.kind == Text:
		switch {
		case a.s < b.s:
			c = -1
		case a.s > b.s:
			c = 1
		}
	default:
		return false, evalError("operator %s is not defined for %s and %s", op, a.kind, b.kind)
	}

	switch op {
	case opLt:
		return c < 0, nil
	case opLe:
		return c <= 0, nil
	case opGt:
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}
