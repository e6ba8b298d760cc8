// Package entity contains the domain types exchanged by the debug bridge.
package entity

import (
	"time"

	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// Session represents a single connected controller.
type Session struct {
	UUID        uuid.UUID     `json:"uuid" zap:"uuid"`
	Conn        jsonrpc2.Conn `json:"-" zap:"-"`
	ConnectedAt time.Time     `json:"connectedAt" zap:"connectedAt"`
}

// AttachRequest asks the bridge to attach to a target address.
type AttachRequest struct {
	Address string `json:"address"`
}

// AttachResult describes a successful attach.
type AttachResult struct {
	SessionID  uuid.UUID `json:"sessionId"`
	Address    string    `json:"address,omitempty"`
	AttachedAt time.Time `json:"attachedAt"`
}
