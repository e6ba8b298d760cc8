package model

import (
	"time"

	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

// Session is the repository layer model for a connected controller.
type Session struct {
	UUID        uuid.UUID
	Conn        jsonrpc2.Conn
	ConnectedAt time.Time
}
