// Package gateway wires the outbound dependencies of the bridge.
package gateway

import (
	"github.com/uber/debug-bridge/src/bridge/gateway/journal"
	"github.com/uber/debug-bridge/src/bridge/gateway/notifier"
	"go.uber.org/fx"
)

// Module provides the notification journal and the controller notifier.
var Module = fx.Options(
	journal.Module,
	notifier.Module,
)
