package domain

import (
	"encoding/base64"
	"encoding/json"

	"github.com/google/uuid"
)

// GuestCartAccess is the delegated identity a guest carries between the
// invite flow and the websocket join. The cookie itself is the full state,
// nothing is persisted server-side.
//
// The encoding is reversible and unsigned: any holder of the cookie can
// present any GuestOfCustomerId. That matches the original cookie contract
// and is a known gap, not something this codec tries to fix.
type GuestCartAccess struct {
	Name              string    `json:"Name"`
	GuestOfCustomerID uuid.UUID `json:"GuestOfCustomerId"`
}

// EncodeGuestAccess serializes the token as base64(JSON) for cookie
// transport.
func EncodeGuestAccess(name string, hostCustomerID uuid.UUID) (string, error) {
	data, err := json.Marshal(GuestCartAccess{Name: name, GuestOfCustomerID: hostCustomerID})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeGuestAccess parses a cookie value back into the token. Corrupt
// input (bad base64, bad JSON, zero host id) yields (zero, false) — the
// connect path must degrade to "no delegated identity", never fail.
func DecodeGuestAccess(cookie string) (GuestCartAccess, bool) {
	if cookie == "" {
		return GuestCartAccess{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(cookie)
	if err != nil {
		return GuestCartAccess{}, false
	}
	var access GuestCartAccess
	if err := json.Unmarshal(raw, &access); err != nil {
		return GuestCartAccess{}, false
	}
	if access.GuestOfCustomerID == uuid.Nil {
		return GuestCartAccess{}, false
	}
	return access, true
}
