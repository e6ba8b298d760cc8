package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/debug-bridge/src/bridge/handler/bridge"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticHandler []string

func (h staticHandler) Methods() []string { return h }

func TestLogServedMethods(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	logServedMethods(staticHandler{bridge.MethodAttach, bridge.MethodDetach}, zap.New(core).Sugar())

	entries := logs.FilterMessage("serving JSON-RPC methods").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []interface{}{bridge.MethodAttach, bridge.MethodDetach}, entries[0].ContextMap()["methods"])
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
