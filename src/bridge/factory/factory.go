// Package factory builds values for tests.
package factory

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"go.lsp.dev/jsonrpc2"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// SessionContext returns a context carrying the given session UUID.
func SessionContext(id uuid.UUID) context.Context {
	return context.WithValue(context.Background(), entity.SessionContextKey, id)
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
