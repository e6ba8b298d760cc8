package handler

import (
	"github.com/uber/debug-bridge/src/bridge/controller"
	"github.com/uber/debug-bridge/src/bridge/controller/debugger"
	"github.com/uber/debug-bridge/src/bridge/handler/bridge"
	"github.com/uber/debug-bridge/src/bridge/repository/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the bridge JSON-RPC surface into an Fx application.
var Module = fx.Options(
	controller.Module,
	session.Module,
	fx.Provide(bridge.New),
	fx.Invoke(logServedMethods),
	fx.Invoke(func(m debugger.Controller) {}),
)

func logServedMethods(h bridge.Handler, logger *zap.SugaredLogger) {
	logger.Infow("serving JSON-RPC methods", "methods", h.Methods())
}
