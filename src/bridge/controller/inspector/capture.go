package inspector

import (
	"context"

	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/symbolmap"
	"github.com/uber/debug-bridge/src/bridge/mapper"
)

// CaptureOptions bound a stopped-frame payload.
type CaptureOptions struct {
	MaxFrames     int
	IncludeLocals bool
	Symbols       symbolmap.Mapping
	Identity      func(target.Value) string
}

func (i *inspector) Capture(ctx context.Context, tgt target.Target, thread target.ThreadID, opts CaptureOptions) entity.StoppedFrame {
	sf := entity.StoppedFrame{ThreadID: uint64(thread)}
	if name, err := tgt.ThreadName(ctx, thread); err == nil {
		sf.ThreadName = name
	}

	frames, err := tgt.Frames(ctx, thread, 0, -1)
	if err != nil || len(frames) == 0 {
		return sf
	}
	sf.Location = mapper.LocationToString(TopLocation(frames), opts.Symbols)
	sf.Stack = FormatStack(frames, opts.MaxFrames, opts.Symbols)

	if opts.IncludeLocals {
		locals, err := i.Frame(ctx, tgt, thread, 0, Options{
			Depth:    1,
			Budget:   i.cfg.DefaultBudget,
			Identity: opts.Identity,
			Symbols:  opts.Symbols,
		})
		if err == nil {
			sf.Locals = locals
		}
	}
	return sf
}

// TopLocation returns the first frame location with line information, or the top frame when none has any.
func TopLocation(frames []target.Frame) target.Location {
	for _, f := range frames {
		if f.Location.Line > 0 {
			return f.Location
		}
	}
	return frames[0].Location
}

// FormatStack renders at most maxFrames frames, innermost first.
func FormatStack(frames []target.Frame, maxFrames int, symbols symbolmap.Mapping) []string {
	n := min(len(frames), max(maxFrames, 0))
	out := make([]string, 0, n)
	for _, f := range frames[:n] {
		out = append(out, mapper.FrameToString(f, symbols))
	}
	return out
}

// CaptureStack reads and formats up to maxFrames frames of a suspended thread.
func CaptureStack(ctx context.Context, tgt target.Target, thread target.ThreadID, maxFrames int, symbols symbolmap.Mapping) ([]string, error) {
	frames, err := tgt.Frames(ctx, thread, 0, -1)
	if err != nil {
		return nil, err
	}
	return FormatStack(frames, maxFrames, symbols), nil
}
