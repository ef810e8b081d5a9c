package ws

import (
	"encoding/json"

	"coshop-lab/domain/event"
)

// Client-invocable method names.
const (
	MethodReconnect             = "Reconnect"
	MethodStartPresenterSession = "StartPresenterSession"
	MethodSignInAudience        = "SignInAudience"
	MethodSignOut               = "SignOut"
	MethodScrollTo              = "ScrollTo"
	MethodRedirectTo            = "RedirectTo"
	MethodAddToCart             = "AddToCart"
)

// Invocation is one client→server RPC frame.
type Invocation struct {
	ID     int64           `json:"id"`
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args"`
}

// Reply answers one Invocation. A rejected call carries Error and ok=false;
// the client is responsible for re-issuing, the server never retries.
type Reply struct {
	ID     int64  `json:"id"`
	OK     bool   `json:"ok"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// EventFrame is one server→client push.
type EventFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type GroupArgs struct {
	Group string `json:"group"`
}

type ScrollArgs struct {
	Position int `json:"position"`
}

type RedirectArgs struct {
	URL string `json:"url"`
}

type AddToCartArgs struct {
	Group     string `json:"group"`
	Email     string `json:"email"`
	ProductID string `json:"productId"`
}

type addToCartPayload struct {
	Email     string `json:"email"`
	ProductID string `json:"productId"`
}

// ToFrame maps a domain event onto its wire name and payload. The names are
// the ones the storefront script binds handlers to.
func ToFrame(evt event.DomainEvent) (EventFrame, bool) {
	switch e := evt.(type) {
	case event.ScrollMoved:
		return EventFrame{Event: "onScroll", Data: e.Position}, true
	case event.RedirectRequested:
		return EventFrame{Event: "onRedirect", Data: e.URL}, true
	case event.CartItemPushed:
		return EventFrame{Event: "addToCart", Data: addToCartPayload{Email: e.Email, ProductID: e.ProductCode}}, true
	case event.CartRefreshed:
		return EventFrame{Event: "refreshCart", Data: e.Cart}, true
	case event.HitRecorded:
		return EventFrame{Event: "onHitRecorded", Data: e.Count}, true
	default:
		return EventFrame{}, false
	}
}
