// Package app assembles the debug bridge Fx application.
package app

import (
	"context"
	"time"

	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/gateway"
	"github.com/uber/debug-bridge/src/bridge/handler"
	"github.com/uber/debug-bridge/src/bridge/internal/clock"
	"github.com/uber/debug-bridge/src/bridge/internal/core"
	"github.com/uber/debug-bridge/src/bridge/internal/jsonrpcfx"
	"github.com/uber/debug-bridge/src/bridge/internal/serverinfofile"
	"github.com/uber/debug-bridge/src/bridge/internal/symbolmap"
	"go.uber.org/fx"
)

const _reportInterval = 1 * time.Second

// Module defines the debug bridge application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	serverinfofile.Module,
	symbolmap.Module,
	clock.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(newRootScope),
	fx.Provide(newLogpointOutput),
	fx.Decorate(decorateConfigProvider),
)

func newRootScope(lc fx.Lifecycle) tally.Scope {
	rs, closer := tally.NewRootScope(tally.ScopeOptions{
		Tags: map[string]string{
			"service": "debug-bridge",
		},
	}, _reportInterval)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closer.Close()
		},
	})

	return rs
}
