package domain

import "github.com/google/uuid"

// GroupKey identifies a shared viewing party. It is the customer id of the
// presenter's account, either the connection's own customer or the host
// customer a guest is shadowing.
type GroupKey string

// ConnectionID identifies one live websocket session. Ephemeral, owned by
// the transport; the registry only references it.
type ConnectionID string

func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.NewString())
}

// ConnectionContext carries everything the identity resolver may need for
// one connection, extracted from the HTTP upgrade request. It is passed
// explicitly per call, never stored as ambient state.
type ConnectionContext struct {
	ConnectionID ConnectionID
	// CustomerID is the authenticated principal, uuid.Nil when anonymous.
	CustomerID uuid.UUID
	// GuestCookie is the raw GuestCartAccess cookie value, empty if absent.
	GuestCookie string
}
