package inspector

import (
	"context"
	"strconv"
	"unicode/utf8"

	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/symbolmap"
	"github.com/uber/debug-bridge/src/bridge/mapper"
)

// _nodeOverhead approximates the structural tokens of one serialized node.
const _nodeOverhead = 3

// listShape is a size field paired with the array that backs it.
type listShape struct {
	size    string
	backing string
}

var _listShapes = []listShape{
	{size: "size", backing: "elementData"},
	{size: "mSize", backing: "mValues"},
	{size: "count", backing: "value"},
}

func estimateTokens(s string) int {
	return (len(s) + 3) / 4
}

type walker struct {
	ctx      context.Context
	tgt      target.Target
	cfg      Config
	identity func(target.Value) string
	symbols  symbolmap.Mapping

	budget    int
	used      int
	exhausted bool
	visiting  map[target.ObjectID]bool
}

func (i *inspector) newWalker(ctx context.Context, tgt target.Target, opts Options) *walker {
	return &walker{
		ctx:      ctx,
		tgt:      tgt,
		cfg:      i.cfg,
		identity: opts.Identity,
		symbols:  opts.Symbols,
		budget:   opts.Budget,
		visiting: make(map[target.ObjectID]bool),
	}
}

func (w *walker) result(vars []*entity.Node) *entity.Inspection {
	return &entity.Inspection{
		Variables:       vars,
		EstimatedTokens: w.used,
		Truncated:       w.exhausted,
	}
}

// spend charges the cost of n against the budget. Once the budget is exceeded nothing else is emitted.
func (w *walker) spend(n *entity.Node) bool {
	if w.exhausted {
		return false
	}
	cost := _nodeOverhead + estimateTokens(n.Name) + estimateTokens(n.Type) + estimateTokens(n.Handle)
	switch v := n.Value.(type) {
	case string:
		cost += estimateTokens(v)
	case nil:
	default:
		cost++
	}
	if w.used+cost > w.budget {
		w.exhausted = true
		return false
	}
	w.used += cost
	return true
}

func (w *walker) handle(v target.Value) string {
	if w.identity == nil {
		return ""
	}
	return w.identity(v)
}

func (w *walker) className(raw string) string {
	return mapper.ClassName(raw, w.symbols)
}

// node serializes v. It returns nil only when the budget ran out before the node itself could be emitted.
func (w *walker) node(name string, v target.Value, depth int) *entity.Node {
	switch v.Kind {
	case target.KindNull:
		return w.emit(&entity.Node{Name: name, Type: "null"})
	case target.KindBool:
		return w.emit(&entity.Node{Name: name, Type: v.Kind.String(), Value: v.Bool})
	case target.KindByte, target.KindShort, target.KindInt, target.KindLong:
		return w.emit(&entity.Node{Name: name, Type: v.Kind.String(), Value: v.Int})
	case target.KindFloat, target.KindDouble:
		return w.emit(&entity.Node{Name: name, Type: v.Kind.String(), Value: v.Float})
	case target.KindChar:
		return w.emit(&entity.Node{Name: name, Type: v.Kind.String(), Value: string(v.Char)})
	case target.KindString:
		return w.stringNode(name, v)
	case target.KindArray:
		return w.arrayNode(name, v, depth)
	case target.KindObject:
		return w.objectNode(name, v, depth)
	default:
		return w.emit(&entity.Node{Name: name, Type: v.Kind.String(), Error: "unsupported value kind"})
	}
}

func (w *walker) emit(n *entity.Node) *entity.Node {
	if !w.spend(n) {
		return nil
	}
	return n
}

func (w *walker) stringNode(name string, v target.Value) *entity.Node {
	n := &entity.Node{Name: name, Type: "java.lang.String"}
	s, err := w.tgt.StringValue(w.ctx, v.Object)
	if err != nil {
		n.Error = err.Error()
		return w.emit(n)
	}
	if utf8.RuneCountInString(s) > w.cfg.MaxStringLength {
		s = string([]rune(s)[:w.cfg.MaxStringLength])
		n.Truncated = true
	}
	n.Value = s
	return w.emit(n)
}

func (w *walker) circular(n *entity.Node, id target.ObjectID) bool {
	if !w.visiting[id] {
		return false
	}
	n.Circular = true
	n.Handle = ""
	return true
}

func (w *walker) arrayNode(name string, v target.Value, depth int) *entity.Node {
	n := &entity.Node{Name: name, Type: "array", Handle: w.handle(v)}
	if class, err := w.tgt.ObjectClass(w.ctx, v.Object); err == nil {
		n.Type = w.className(class.Name)
	}
	if w.circular(n, v.Object) {
		return w.emit(n)
	}

	length, err := w.tgt.ArrayLength(w.ctx, v.Object)
	if err != nil {
		n.Error = err.Error()
		return w.emit(n)
	}
	n.Length = &length
	if w.emit(n) == nil {
		return nil
	}
	if depth <= 0 || length == 0 {
		return n
	}

	count := min(length, w.cfg.MaxItems)
	values, err := w.tgt.ArrayValues(w.ctx, v.Object, 0, count)
	if err != nil {
		n.Error = err.Error()
		return n
	}
	n.Truncated = length > count

	w.visiting[v.Object] = true
	defer delete(w.visiting, v.Object)
	w.children(n, values, depth)
	return n
}

func (w *walker) children(n *entity.Node, values []target.Value, depth int) {
	for i, ev := range values {
		child := w.node("["+strconv.Itoa(i)+"]", ev, depth-1)
		if child == nil {
			return
		}
		n.Children = append(n.Children, child)
	}
}

func (w *walker) objectNode(name string, v target.Value, depth int) *entity.Node {
	n := &entity.Node{Name: name, Type: "object", Handle: w.handle(v)}
	class, err := w.tgt.ObjectClass(w.ctx, v.Object)
	if err != nil {
		n.Error = err.Error()
		return w.emit(n)
	}
	n.Type = w.className(class.Name)
	if w.circular(n, v.Object) {
		return w.emit(n)
	}

	fields, err := w.instanceFields(class)
	if err != nil {
		n.Error = err.Error()
		return w.emit(n)
	}

	size, backing, isList := w.listShape(v.Object, fields)
	if isList {
		n.Size = &size
	}
	if w.emit(n) == nil {
		return nil
	}
	if depth <= 0 {
		return n
	}

	w.visiting[v.Object] = true
	defer delete(w.visiting, v.Object)

	if isList {
		w.listItems(n, size, backing, depth)
		return n
	}

	shown := fields
	if len(shown) > w.cfg.MaxFields {
		shown = shown[:w.cfg.MaxFields]
		n.Truncated = true
	}
	for _, f := range shown {
		fv, err := w.tgt.FieldValue(w.ctx, v.Object, f)
		if err != nil {
			continue
		}
		child := w.node(f.Name, fv, depth-1)
		if child == nil {
			return n
		}
		n.Children = append(n.Children, child)
	}
	return n
}

func (w *walker) listItems(n *entity.Node, size int, backing target.Value, depth int) {
	capacity, err := w.tgt.ArrayLength(w.ctx, backing.Object)
	if err != nil {
		n.Error = err.Error()
		return
	}
	count := min(size, capacity, w.cfg.MaxItems)
	if count <= 0 {
		return
	}
	values, err := w.tgt.ArrayValues(w.ctx, backing.Object, 0, count)
	if err != nil {
		n.Error = err.Error()
		return
	}
	n.Truncated = size > count
	w.children(n, values, depth)
}

func (w *walker) instanceFields(class target.ClassRef) ([]target.Field, error) {
	all, err := w.tgt.Fields(w.ctx, class)
	if err != nil {
		return nil, err
	}
	out := make([]target.Field, 0, len(all))
	for _, f := range all {
		if !f.Static {
			out = append(out, f)
		}
	}
	return out, nil
}

// listShape recognizes containers that keep a logical size next to a larger backing array.
func (w *walker) listShape(obj target.ObjectID, fields []target.Field) (int, target.Value, bool) {
	byName := make(map[string]target.Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	for _, shape := range _listShapes {
		sizeField, ok := byName[shape.size]
		if !ok {
			continue
		}
		backingField, ok := byName[shape.backing]
		if !ok {
			continue
		}
		sizeValue, err := w.tgt.FieldValue(w.ctx, obj, sizeField)
		if err != nil || !isIntegral(sizeValue) {
			continue
		}
		backing, err := w.tgt.FieldValue(w.ctx, obj, backingField)
		if err != nil || backing.Kind != target.KindArray {
			continue
		}
		return int(sizeValue.Int), backing, true
	}
	return 0, target.Value{}, false
}

func isIntegral(v target.Value) bool {
	switch v.Kind {
	case target.KindByte, target.KindShort, target.KindInt, target.KindLong:
		return true
	default:
		return false
	}
}
