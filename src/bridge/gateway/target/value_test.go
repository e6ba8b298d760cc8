package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueLiteral(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		literal string
		ref     bool
		numeric bool
	}{
		{name: "null", value: Null(), literal: "null"},
		{name: "bool", value: Bool(true), literal: "true"},
		{name: "byte", value: Byte(-3), literal: "-3", numeric: true},
		{name: "char", value: Char('x'), literal: "'x'", numeric: true},
		{name: "short", value: Short(12), literal: "12", numeric: true},
		{name: "int", value: Int(42), literal: "42", numeric: true},
		{name: "long", value: Long(1 << 40), literal: "1099511627776", numeric: true},
		{name: "float", value: Float(1.5), literal: "1.5", numeric: true},
		{name: "double", value: Double(0.25), literal: "0.25", numeric: true},
		{name: "string", value: StringRef(9), literal: "@9", ref: true},
		{name: "object", value: ObjectRef(10), literal: "@10", ref: true},
		{name: "array", value: ArrayRef(11), literal: "@11", ref: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.literal, tt.value.Literal())
			assert.Equal(t, tt.ref, tt.value.IsReference())
			assert.Equal(t, tt.numeric, tt.value.IsNumeric())
		})
	}
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "boolean", KindBool.String())
	assert.Equal(t, "kind(99)", ValueKind(99).String())
	assert.Equal(t, "class_load", WatchClassLoad.String())
	assert.Equal(t, "watch(0)", WatchKind(0).String())
	assert.Equal(t, "vm_disconnect", EventVMDisconnect.String())
	assert.Equal(t, "event(0)", EventKind(0).String())
	assert.True(t, StepOut.Valid())
	assert.False(t, StepKind("sideways").Valid())
	assert.Equal(t, "com.example.Main:12", Location{Class: ClassRef{Name: "com.example.Main"}, Line: 12}.String())
}
