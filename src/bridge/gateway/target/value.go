package target

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindObject
	KindArray
)

// String returns the type name used in inspection output.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindByte:
		return "byte"
	case KindChar:
		return "char"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a tagged value read from the target. Integral kinds use Int, floating kinds use Float,
// and reference kinds use Object.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Int    int64
	Float  float64
	Char   rune
	Object ObjectID
}

// Null returns the null reference.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Byte returns a byte value.
func Byte(v int8) Value { return Value{Kind: KindByte, Int: int64(v)} }

// Char returns a char value.
func Char(r rune) Value { return Value{Kind: KindChar, Char: r} }

// Short returns a short value.
func Short(v int16) Value { return Value{Kind: KindShort, Int: int64(v)} }

// Int returns an int value.
func Int(v int32) Value { return Value{Kind: KindInt, Int: int64(v)} }

// Long returns a long value.
func Long(v int64) Value { return Value{Kind: KindLong, Int: v} }

// Float returns a float value.
func Float(v float32) Value { return Value{Kind: KindFloat, Float: float64(v)} }

// Double returns a double value.
func Double(v float64) Value { return Value{Kind: KindDouble, Float: v} }

// StringRef returns a reference to a string object.
func StringRef(id ObjectID) Value { return Value{Kind: KindString, Object: id} }

// ObjectRef returns a reference to a plain object.
func ObjectRef(id ObjectID) Value { return Value{Kind: KindObject, Object: id} }

// ArrayRef returns a reference to an array object.
func ArrayRef(id ObjectID) Value { return Value{Kind: KindArray, Object: id} }

// IsReference reports whether the value points into the heap.
func (v Value) IsReference() bool {
	switch v.Kind {
	case KindString, KindObject, KindArray:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether the value is an integral or floating primitive.
func (v Value) IsNumeric() bool {
	switch v.Kind {
	case KindByte, KindChar, KindShort, KindInt, KindLong, KindFloat, KindDouble:
		return true
	default:
		return false
	}
}

// Literal renders a primitive as source text. Reference kinds render their object id.
func (v Value) Literal() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindByte, KindShort, KindInt, KindLong:
		return strconv.FormatInt(v.Int, 10)
	case KindChar:
		return strconv.QuoteRune(v.Char)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString, KindObject, KindArray:
		return fmt.Sprintf("@%d", v.Object)
	default:
		return "?"
	}
}
