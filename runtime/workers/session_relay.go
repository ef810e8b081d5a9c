package workers

import (
	"context"
	"fmt"
	"log/slog"

	"coshop-lab/domain"
	"coshop-lab/domain/event"
)

// SessionRelayWorker turns presenter commands into broadcast events. It sits
// between the RPC surface and the fanout so that a slow audience member
// never holds up the caller's RPC.
type SessionRelayWorker struct {
	commands <-chan domain.Command
	events   chan<- event.DomainEvent
	log      *slog.Logger
}

func NewSessionRelayWorker(commands <-chan domain.Command, events chan<- event.DomainEvent, log *slog.Logger) SessionRelayWorker {
	return SessionRelayWorker{commands: commands, events: events, log: log}
}

func (w SessionRelayWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping session relay worker")
			return nil
		case cmd, ok := <-w.commands:
			if !ok {
				return nil
			}
			evt := toEvent(cmd)
			if evt == nil {
				w.log.Warn(fmt.Sprintf("Unhandled command type : %T", cmd))
				continue
			}
			select {
			case <-ctx.Done():
				return nil
			case w.events <- evt:
			}
		}
	}
}

// Petite fonction de traduction, un commande donne au plus un événement.
func toEvent(cmd domain.Command) event.DomainEvent {
	switch c := cmd.(type) {
	case domain.ScrollToCommand:
		return event.ScrollMoved{GroupKey: c.GroupKey, Position: c.Position}
	case domain.RedirectToCommand:
		return event.RedirectRequested{GroupKey: c.GroupKey, URL: c.URL}
	case domain.AddToCartCommand:
		return event.CartItemPushed{GroupKey: c.GroupKey, Email: c.Email, ProductCode: c.ProductCode}
	case domain.MembershipChangedCommand:
		return event.HitRecorded{GroupKey: c.GroupKey, Count: c.Members}
	default:
		return nil
	}
}
