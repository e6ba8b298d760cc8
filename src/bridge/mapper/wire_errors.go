package mapper

import (
	stderr "errors"

	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/yarpc/yarpcerrors"
)

// JSON-RPC codes in the server error range for bridge specific failures.
const (
	CodeInvalidState jsonrpc2.Code = -32010
	CodeDisconnected jsonrpc2.Code = -32011
	CodeNoSession    jsonrpc2.Code = -32012
)

var _wireCodes = map[yarpcerrors.Code]jsonrpc2.Code{
	yarpcerrors.CodeInvalidArgument:    jsonrpc2.InvalidParams,
	yarpcerrors.CodeFailedPrecondition: CodeInvalidState,
	yarpcerrors.CodeUnavailable:        CodeDisconnected,
	yarpcerrors.CodeNotFound:           CodeNoSession,
	yarpcerrors.CodeInternal:           jsonrpc2.InternalError,
}

// ErrorCode classifies a service domain error.
func ErrorCode(e error) yarpcerrors.Code {
	var noSession *errors.NoSessionFoundError
	switch {
	case e == nil:
		return yarpcerrors.CodeOK
	case errors.IsInvalidParams(e):
		return yarpcerrors.CodeInvalidArgument
	case errors.IsInvalidState(e):
		return yarpcerrors.CodeFailedPrecondition
	case errors.IsDisconnected(e):
		return yarpcerrors.CodeUnavailable
	case stderr.As(e, &noSession):
		return yarpcerrors.CodeNotFound
	case isUUIDNotFound(e):
		return yarpcerrors.CodeNotFound
	default:
		return yarpcerrors.CodeInternal
	}
}

// ToWireError translates service domain errors into JSON-RPC errors. Errors that already are JSON-RPC errors pass through.
func ToWireError(e error) error {
	if e == nil {
		return nil
	}
	var rpcError *jsonrpc2.Error
	if stderr.As(e, &rpcError) {
		return rpcError
	}
	return jsonrpc2.NewError(_wireCodes[ErrorCode(e)], e.Error())
}

func isUUIDNotFound(e error) bool {
	_, ok := errors.NotFoundUUID(e)
	return ok
}
