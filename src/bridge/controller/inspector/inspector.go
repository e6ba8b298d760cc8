// Package inspector serializes target values into bounded trees and resolves value paths in frames.
package inspector

import (
	"context"
	stderr "errors"
	"fmt"

	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"github.com/uber/debug-bridge/src/bridge/internal/condition"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"github.com/uber/debug-bridge/src/bridge/internal/symbolmap"
	"go.uber.org/config"
	"go.uber.org/fx"
)

const _configKey = "inspector"

// Module provides the Inspector.
var Module = fx.Provide(New)

// Config bounds serialization.
type Config struct {
	MaxStringLength int `yaml:"maxStringLength"`
	MaxItems        int `yaml:"maxItems"`
	MaxFields       int `yaml:"maxFields"`
	DefaultDepth    int `yaml:"defaultDepth"`
	DefaultBudget   int `yaml:"defaultBudget"`
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() Config {
	return Config{
		MaxStringLength: 200,
		MaxItems:        10,
		MaxFields:       10,
		DefaultDepth:    2,
		DefaultBudget:   4000,
	}
}

// Options tune a single inspection.
type Options struct {
	Depth  int
	Budget int
	// Identity assigns opaque handles to references. Nil disables handles.
	Identity func(target.Value) string
	// Symbols maps class names for display. Nil leaves them raw.
	Symbols symbolmap.Mapping
}

// Inspector reads values out of a suspended target.
type Inspector interface {
	// Frame serializes the receiver and locals of one frame. A thread that is no longer suspended yields an empty result.
	Frame(ctx context.Context, tgt target.Target, thread target.ThreadID, frame int, opts Options) (*entity.Inspection, error)
	// Value serializes a single value under name.
	Value(ctx context.Context, tgt target.Target, name string, v target.Value, opts Options) (*entity.Inspection, error)
	// Lookup resolves a value path in a frame.
	Lookup(ctx context.Context, tgt target.Target, thread target.ThreadID, frame int, path condition.Path) (target.Value, error)
	// Resolver returns a condition.Resolver bound to a frame.
	Resolver(ctx context.Context, tgt target.Target, thread target.ThreadID, frame int, symbols symbolmap.Mapping) condition.Resolver
	// Capture builds a stopped-frame payload. It never fails; unreadable parts are left empty.
	Capture(ctx context.Context, tgt target.Target, thread target.ThreadID, opts CaptureOptions) entity.StoppedFrame
	// Defaults returns the configured default depth and budget.
	Defaults() (depth int, budget int)
}

// Params define values to be used by the inspector.
type Params struct {
	fx.In

	Config config.Provider
}

type inspector struct {
	cfg Config
}

// New creates an Inspector from the "inspector" config block. Missing keys keep their defaults.
func New(p Params) (Inspector, error) {
	cfg := DefaultConfig()
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKey, err)
	}
	if cfg.MaxStringLength <= 0 || cfg.MaxItems <= 0 || cfg.MaxFields <= 0 || cfg.DefaultBudget <= 0 || cfg.DefaultDepth < 0 {
		return nil, fmt.Errorf("invalid %q config: limits must be positive", _configKey)
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig creates an Inspector with explicit limits.
func NewWithConfig(cfg Config) Inspector {
	return &inspector{cfg: cfg}
}

func (i *inspector) Defaults() (int, int) {
	return i.cfg.DefaultDepth, i.cfg.DefaultBudget
}

func validateOptions(opts Options) error {
	if opts.Depth < 0 {
		return errors.InvalidParams("depth must not be negative, got %d", opts.Depth)
	}
	if opts.Budget <= 0 {
		return errors.InvalidParams("budget must be positive, got %d", opts.Budget)
	}
	return nil
}

func emptyInspection() *entity.Inspection {
	return &entity.Inspection{Variables: []*entity.Node{}}
}

// CheckFrame verifies that frame indexes the stack of a suspended thread. It returns
// target.ErrThreadNotSuspended unchanged, InvalidParams for a bad index and Internal for read failures.
func CheckFrame(ctx context.Context, tgt target.Target, thread target.ThreadID, frame int) error {
	frames, err := tgt.Frames(ctx, thread, 0, -1)
	if stderr.Is(err, target.ErrThreadNotSuspended) {
		return err
	}
	if err != nil {
		return errors.Internal("reading frames", err)
	}
	if frame < 0 || frame >= len(frames) {
		return errors.InvalidParams("frame index %d out of range, thread has %d frames", frame, len(frames))
	}
	return nil
}

func (i *inspector) Frame(ctx context.Context, tgt target.Target, thread target.ThreadID, frame int, opts Options) (*entity.Inspection, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if err := CheckFrame(ctx, tgt, thread, frame); err != nil {
		if stderr.Is(err, target.ErrThreadNotSuspended) {
			return emptyInspection(), nil
		}
		return nil, err
	}

	locals, err := tgt.Locals(ctx, thread, frame)
	if stderr.Is(err, target.ErrThreadNotSuspended) {
		return emptyInspection(), nil
	}
	if err != nil {
		return nil, errors.Internal("reading locals", err)
	}
	this, err := tgt.This(ctx, thread, frame)
	if stderr.Is(err, target.ErrThreadNotSuspended) {
		return emptyInspection(), nil
	}
	if err != nil {
		return nil, errors.Internal("reading receiver", err)
	}

	w := i.newWalker(ctx, tgt, opts)
	vars := make([]*entity.Node, 0, len(locals)+1)
	if this.IsReference() {
		locals = append([]target.Variable{{Name: "this", Value: this}}, locals...)
	}
	for _, local := range locals {
		n := w.node(local.Name, local.Value, opts.Depth)
		if n == nil {
			break
		}
		vars = append(vars, n)
	}
	return w.result(vars), nil
}

func (i *inspector) Value(ctx context.Context, tgt target.Target, name string, v target.Value, opts Options) (*entity.Inspection, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	w := i.newWalker(ctx, tgt, opts)
	vars := []*entity.Node{}
	if n := w.node(name, v, opts.Depth); n != nil {
		vars = append(vars, n)
	}
	return w.result(vars), nil
}
