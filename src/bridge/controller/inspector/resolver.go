package inspector

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/condition"
	"github.com/uber/debug-bridge/src/bridge/internal/symbolmap"
	"github.com/uber/debug-bridge/src/bridge/mapper"
)

const _receiver = "this"

// PathError reports a value path that does not resolve in a frame: an unknown name or member, a null
// dereference or an index out of bounds. Failures reading the target are returned as they are.
type PathError struct {
	Msg string
}

// Error is an implementation of the error interface.
func (e *PathError) Error() string {
	return e.Msg
}

func pathErrorf(format string, args ...interface{}) error {
	return &PathError{Msg: fmt.Sprintf(format, args...)}
}

// Lookup resolves path against a frame. The first segment names a local or "this"; unknown names
// fall back to fields of the receiver.
func (i *inspector) Lookup(ctx context.Context, tgt target.Target, thread target.ThreadID, frame int, path condition.Path) (target.Value, error) {
	if len(path) == 0 || path[0].IsIndex {
		return target.Value{}, pathErrorf("path must start with a name")
	}

	cur, err := lookupRoot(ctx, tgt, thread, frame, path[0].Name)
	if err != nil {
		return target.Value{}, err
	}
	for n := 1; n < len(path); n++ {
		cur, err = step(ctx, tgt, cur, path[n], path[:n])
		if err != nil {
			return target.Value{}, err
		}
	}
	return cur, nil
}

func lookupRoot(ctx context.Context, tgt target.Target, thread target.ThreadID, frame int, name string) (target.Value, error) {
	this, err := tgt.This(ctx, thread, frame)
	if err != nil {
		return target.Value{}, err
	}
	if name == _receiver {
		return this, nil
	}

	locals, err := tgt.Locals(ctx, thread, frame)
	if err != nil {
		return target.Value{}, err
	}
	for _, local := range locals {
		if local.Name == name {
			return local.Value, nil
		}
	}

	if this.Kind == target.KindObject {
		if v, ok, err := fieldByName(ctx, tgt, this, name); err != nil || ok {
			return v, err
		}
	}
	return target.Value{}, pathErrorf("no local variable or field named %q", name)
}

func step(ctx context.Context, tgt target.Target, cur target.Value, seg condition.Segment, prefix condition.Path) (target.Value, error) {
	if cur.Kind == target.KindNull {
		return target.Value{}, pathErrorf("null dereference at %q", prefix.String())
	}
	if seg.IsIndex {
		return index(ctx, tgt, cur, seg.Index, prefix)
	}

	switch cur.Kind {
	case target.KindArray:
		if seg.Name == "length" {
			n, err := tgt.ArrayLength(ctx, cur.Object)
			return target.Int(int32(n)), err
		}
	case target.KindString:
		if seg.Name == "length" {
			s, err := tgt.StringValue(ctx, cur.Object)
			return target.Int(int32(utf8.RuneCountInString(s))), err
		}
	case target.KindObject:
		v, ok, err := fieldByName(ctx, tgt, cur, seg.Name)
		if err != nil {
			return target.Value{}, err
		}
		if ok {
			return v, nil
		}
	}
	return target.Value{}, pathErrorf("%q has no member %q", prefix.String(), seg.Name)
}

func index(ctx context.Context, tgt target.Target, cur target.Value, idx int, prefix condition.Path) (target.Value, error) {
	array, limit := cur, -1
	if cur.Kind == target.KindObject {
		size, backing, ok, err := listBacking(ctx, tgt, cur)
		if err != nil {
			return target.Value{}, err
		}
		if !ok {
			return target.Value{}, pathErrorf("%q is not indexable", prefix.String())
		}
		array, limit = backing, size
	}
	if array.Kind != target.KindArray {
		return target.Value{}, pathErrorf("%q is not indexable", prefix.String())
	}

	length, err := tgt.ArrayLength(ctx, array.Object)
	if err != nil {
		return target.Value{}, err
	}
	if limit < 0 || limit > length {
		limit = length
	}
	if idx >= limit {
		return target.Value{}, pathErrorf("index %d out of bounds for %q of length %d", idx, prefix.String(), limit)
	}
	values, err := tgt.ArrayValues(ctx, array.Object, idx, 1)
	if err != nil {
		return target.Value{}, err
	}
	return values[0], nil
}

func listBacking(ctx context.Context, tgt target.Target, obj target.Value) (int, target.Value, bool, error) {
	for _, shape := range _listShapes {
		size, ok, err := fieldByName(ctx, tgt, obj, shape.size)
		if err != nil || !ok || !isIntegral(size) {
			continue
		}
		backing, ok, err := fieldByName(ctx, tgt, obj, shape.backing)
		if err != nil || !ok || backing.Kind != target.KindArray {
			continue
		}
		return int(size.Int), backing, true, nil
	}
	return 0, target.Value{}, false, nil
}

// fieldByName reads a field, preferring instance fields over static ones.
func fieldByName(ctx context.Context, tgt target.Target, obj target.Value, name string) (target.Value, bool, error) {
	class, err := tgt.ObjectClass(ctx, obj.Object)
	if err != nil {
		return target.Value{}, false, err
	}
	fields, err := tgt.Fields(ctx, class)
	if err != nil {
		return target.Value{}, false, err
	}
	var static *target.Field
	for n := range fields {
		f := fields[n]
		if f.Name != name {
			continue
		}
		if !f.Static {
			v, err := tgt.FieldValue(ctx, obj.Object, f)
			return v, err == nil, err
		}
		if static == nil {
			static = &f
		}
	}
	if static != nil {
		v, err := tgt.FieldValue(ctx, obj.Object, *static)
		return v, err == nil, err
	}
	return target.Value{}, false, nil
}

type frameResolver struct {
	ctx     context.Context
	tgt     target.Target
	insp    *inspector
	thread  target.ThreadID
	frame   int
	symbols symbolmap.Mapping
}

func (i *inspector) Resolver(ctx context.Context, tgt target.Target, thread target.ThreadID, frame int, symbols symbolmap.Mapping) condition.Resolver {
	return &frameResolver{ctx: ctx, tgt: tgt, insp: i, thread: thread, frame: frame, symbols: symbols}
}

func (r *frameResolver) Resolve(path condition.Path) (condition.Value, error) {
	v, err := r.insp.Lookup(r.ctx, r.tgt, r.thread, r.frame, path)
	if err != nil {
		return condition.Value{}, err
	}
	return ToConditionValue(r.ctx, r.tgt, v, r.symbols)
}

// ToConditionValue widens a target value into the condition value domain.
func ToConditionValue(ctx context.Context, tgt target.Target, v target.Value, symbols symbolmap.Mapping) (condition.Value, error) {
	switch v.Kind {
	case target.KindNull:
		return condition.NullValue(), nil
	case target.KindBool:
		return condition.BoolValue(v.Bool), nil
	case target.KindByte, target.KindShort, target.KindInt, target.KindLong:
		return condition.NumberValue(float64(v.Int)), nil
	case target.KindFloat, target.KindDouble:
		return condition.NumberValue(v.Float), nil
	case target.KindChar:
		return condition.NumberValue(float64(v.Char)), nil
	case target.KindString:
		s, err := tgt.StringValue(ctx, v.Object)
		if err != nil {
			return condition.Value{}, err
		}
		return condition.TextValue(s), nil
	case target.KindObject, target.KindArray:
		class, err := tgt.ObjectClass(ctx, v.Object)
		if err != nil {
			return condition.Value{}, err
		}
		return condition.ObjectValue(mapper.ClassName(class.Name, symbols)), nil
	default:
		return condition.Value{}, fmt.Errorf("unsupported value kind %s", v.Kind)
	}
}

// ReadField reads a named field of an object. ok is false when the class declares no such field.
func ReadField(ctx context.Context, tgt target.Target, obj target.Value, name string) (v target.Value, ok bool, err error) {
	if obj.Kind != target.KindObject {
		return target.Value{}, false, nil
	}
	return fieldByName(ctx, tgt, obj, name)
}
