// Package condition parses and evaluates breakpoint conditions.
//
// The grammar covers literals (numbers, quoted strings, true, false, null), dotted and indexed
// value paths, the comparisons == != < <= > >=, and the logical operators && || ! with grouping.
// Paths are resolved through a caller supplied Resolver.
package condition

import (
	"fmt"
	"strconv"
)

// Kind discriminates Value.
type Kind int

const (
	// Null is the null reference.
	Null Kind = iota
	// Bool is a boolean.
	Bool
	// Number is any numeric width, widened to float64.
	Number
	// Text is a non-null string.
	Text
	// Object is any other non-null reference, identified by its type name.
	Object
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case Text:
		return "string"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the closed set of values conditions operate on.
type Value struct {
	kind     Kind
	b        bool
	n        float64
	s        string
	typeName string
}

// NullValue returns the null value.
func NullValue() Value { return Value{kind: Null} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{kind: Number, n: n} }

// TextValue wraps a string.
func TextValue(s string) Value { return Value{kind: Text, s: s} }

// ObjectValue stands for a non-null object of the named type.
func ObjectValue(typeName string) Value { return Value{kind: Object, typeName: typeName} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload.
func (v Value) Number() float64 { return v.n }

// Text returns the string payload.
func (v Value) Text() string { return v.s }

// TypeName returns the object type name.
func (v Value) TypeName() string { return v.typeName }

// String renders the value the way it appears in logpoint output.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.b)
	case Number:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case Text:
		return v.s
	case Object:
		return v.typeName
	default:
		return "?"
	}
}

// Interface returns a JSON friendly representation.
func (v Value) Interface() interface{} {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return v.n
	case Text:
		return v.s
	case Object:
		return v.typeName
	default:
		return nil
	}
}
