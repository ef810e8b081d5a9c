package ws

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"coshop-lab/domain"
	"coshop-lab/errors"
	"coshop-lab/services"
)

// LocalCustomerID is the fiber Locals key the upgrade middleware stores the
// authenticated customer id under.
const LocalCustomerID = "customerID"

// CoViewingHandler drives one websocket connection: it resolves the group
// on connect, pumps broadcast events out, and dispatches RPC invocations
// into the session manager. This method blocks until the client disconnects
// or a network error occurs; the deferred Disconnect keeps the registry
// leak-free.
type CoViewingHandler struct {
	log        *slog.Logger
	service    services.ICoViewingService
	bufferSize int
}

func NewCoViewingHandler(log *slog.Logger, service services.ICoViewingService, bufferSize int) *CoViewingHandler {
	return &CoViewingHandler{log: log, service: service, bufferSize: bufferSize}
}

func (h *CoViewingHandler) Handle(conn *websocket.Conn) {
	connID := domain.NewConnectionID()

	customerID := uuid.Nil
	if v, ok := conn.Locals(LocalCustomerID).(uuid.UUID); ok {
		customerID = v
	}

	connCtx := domain.ConnectionContext{
		ConnectionID: connID,
		CustomerID:   customerID,
		GuestCookie:  conn.Cookies("GuestCartAccess"),
	}

	sink := NewSink(h.bufferSize)
	group := h.service.Connect(connCtx, sink)
	defer h.service.Disconnect(connID)

	h.log.Debug("Connection established", "connection", connID, "group", group)

	// All writes to the socket go through a single pump, websocket
	// connections tolerate only one concurrent writer.
	replies := make(chan Reply, h.bufferSize)
	done := make(chan struct{})
	defer close(done)
	go h.writePump(conn, sink, replies, done)

	for {
		var inv Invocation
		if err := conn.ReadJSON(&inv); err != nil {
			h.log.Debug("Connection closed", "connection", connID, "err", err)
			return
		}

		reply := h.dispatch(&connCtx, &group, sink, inv)
		select {
		case replies <- reply:
		default:
			h.log.Warn("Reply buffer full, dropping reply", "connection", connID)
		}
	}
}

func (h *CoViewingHandler) writePump(conn *websocket.Conn, sink *Sink, replies <-chan Reply, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case reply := <-replies:
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		case evt := <-sink.Events:
			frame, ok := ToFrame(evt)
			if !ok {
				h.log.Debug(fmt.Sprintf("No wire mapping for event : %T", evt))
				continue
			}
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
	}
}

// dispatch executes one invocation. The current group pointer is updated by
// SignInAudience/SignOut so that presenter intents always target the group
// the connection is actually in.
func (h *CoViewingHandler) dispatch(connCtx *domain.ConnectionContext, group *domain.GroupKey, sink *Sink, inv Invocation) Reply {
	fail := func(err error) Reply {
		return Reply{ID: inv.ID, OK: false, Error: err.Error()}
	}
	succeed := func(result any) Reply {
		return Reply{ID: inv.ID, OK: true, Result: result}
	}

	switch inv.Method {
	case MethodReconnect:
		*group = h.service.Reconnect(*connCtx, sink)
		return succeed(string(*group))

	case MethodStartPresenterSession:
		return succeed(h.service.StartPresenterSession())

	case MethodSignInAudience:
		var args GroupArgs
		if err := json.Unmarshal(inv.Args, &args); err != nil {
			return fail(err)
		}
		*group = domain.GroupKey(args.Group)
		h.service.SignInAudience(connCtx.ConnectionID, sink, *group)
		return succeed(nil)

	case MethodSignOut:
		var args GroupArgs
		if err := json.Unmarshal(inv.Args, &args); err != nil {
			return fail(err)
		}
		h.service.SignOut(connCtx.ConnectionID, domain.GroupKey(args.Group))
		if *group == domain.GroupKey(args.Group) {
			*group = ""
		}
		return succeed(nil)

	case MethodScrollTo:
		var args ScrollArgs
		if err := json.Unmarshal(inv.Args, &args); err != nil {
			return fail(err)
		}
		if *group == "" {
			return fail(errors.ErrNotInGroup)
		}
		h.service.ScrollTo(*group, args.Position)
		return succeed(nil)

	case MethodRedirectTo:
		var args RedirectArgs
		if err := json.Unmarshal(inv.Args, &args); err != nil {
			return fail(err)
		}
		if *group == "" {
			return fail(errors.ErrNotInGroup)
		}
		h.service.RedirectTo(*group, args.URL)
		return succeed(nil)

	case MethodAddToCart:
		var args AddToCartArgs
		if err := json.Unmarshal(inv.Args, &args); err != nil {
			return fail(err)
		}
		h.service.AddToCart(domain.GroupKey(args.Group), args.Email, args.ProductID)
		return succeed(nil)

	default:
		return fail(fmt.Errorf("%w: %s", errors.ErrUnknownMethod, inv.Method))
	}
}
