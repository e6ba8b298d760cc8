// Package controller wires the debug bridge business logic.
package controller

import (
	"github.com/uber/debug-bridge/src/bridge/controller/debugger"
	"github.com/uber/debug-bridge/src/bridge/controller/inspector"
	"go.uber.org/fx"
)

// Module provides every controller.
var Module = fx.Options(
	fx.Provide(debugger.New),
	fx.Provide(inspector.New),
)
