package services

import (
	"github.com/google/uuid"

	"coshop-lab/auth"
	"coshop-lab/contract"
	"coshop-lab/domain"
	"coshop-lab/runtime"
)

// ICoViewingService is the presenter/audience session manager, the RPC
// surface the websocket transport invokes. Every method is safe to call from
// independent connection goroutines.
type ICoViewingService interface {
	Connect(ctx domain.ConnectionContext, sink contract.EventSink) domain.GroupKey
	Reconnect(ctx domain.ConnectionContext, sink contract.EventSink) domain.GroupKey
	Disconnect(connID domain.ConnectionID)
	StartPresenterSession() string
	SignInAudience(connID domain.ConnectionID, sink contract.EventSink, group domain.GroupKey)
	SignOut(connID domain.ConnectionID, group domain.GroupKey)
	ScrollTo(group domain.GroupKey, position int)
	RedirectTo(group domain.GroupKey, url string)
	AddToCart(group domain.GroupKey, email, productCode string)
}

type CoViewingService struct {
	hub *runtime.Hub
}

func NewCoViewingService(hub *runtime.Hub) *CoViewingService {
	return &CoViewingService{hub: hub}
}

// Connect resolves the group identity from the connection context and
// registers the connection under it. A connection always lands in exactly
// one group here, guests shadow their host, anonymous visitors get an
// isolated group of their own.
func (s *CoViewingService) Connect(ctx domain.ConnectionContext, sink contract.EventSink) domain.GroupKey {
	group := auth.ResolveGroupKey(ctx)
	s.hub.Join(ctx.ConnectionID, group, sink)
	return group
}

// Reconnect re-establishes membership after a transport reconnect. The
// registry's Join is idempotent, so replaying it is harmless.
func (s *CoViewingService) Reconnect(ctx domain.ConnectionContext, sink contract.EventSink) domain.GroupKey {
	return s.Connect(ctx, sink)
}

// Disconnect drops the connection from every group. Invoked by the
// transport on close, never by the client.
func (s *CoViewingService) Disconnect(connID domain.ConnectionID) {
	s.hub.Drop(connID)
}

// StartPresenterSession mints an opaque token the presenter embeds into
// shareable links. The token is not persisted, it only has to be unique.
func (s *CoViewingService) StartPresenterSession() string {
	return uuid.NewString()
}

func (s *CoViewingService) SignInAudience(connID domain.ConnectionID, sink contract.EventSink, group domain.GroupKey) {
	s.hub.Join(connID, group, sink)
}

func (s *CoViewingService) SignOut(connID domain.ConnectionID, group domain.GroupKey) {
	s.hub.Leave(connID, group)
}

// ScrollTo forwards a raw scroll offset to the group. Fire-and-forget,
// every tick is relayed.
func (s *CoViewingService) ScrollTo(group domain.GroupKey, position int) {
	s.hub.Dispatch(domain.ScrollToCommand{GroupKey: group, Position: position})
}

func (s *CoViewingService) RedirectTo(group domain.GroupKey, url string) {
	s.hub.Dispatch(domain.RedirectToCommand{GroupKey: group, URL: url})
}

// AddToCart relays the presenter's instruction; email and product code are
// validated downstream by the cart mutation endpoint, not here.
func (s *CoViewingService) AddToCart(group domain.GroupKey, email, productCode string) {
	s.hub.Dispatch(domain.AddToCartCommand{GroupKey: group, Email: email, ProductCode: productCode})
}
