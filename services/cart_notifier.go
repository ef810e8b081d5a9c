package services

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"coshop-lab/domain"
	"coshop-lab/domain/event"
)

// CartLoader is the slice of the order repository the notifier reads from.
type CartLoader interface {
	LoadCart(customerID uuid.UUID, name string) (domain.Cart, error)
}

// EventPublisher is the slice of the hub the notifier writes to.
type EventPublisher interface {
	Publish(evt event.DomainEvent)
}

// CartNotifier bridges order repository mutations into the broadcast
// pipeline: any cart-type mutation ends up as one refreshCart event for the
// owning customer's group. Purchase orders and payment plans never do.
type CartNotifier struct {
	log    *slog.Logger
	orders CartLoader
	hub    EventPublisher
}

func NewCartNotifier(log *slog.Logger, orders CartLoader, hub EventPublisher) *CartNotifier {
	return &CartNotifier{log: log, orders: orders, hub: hub}
}

// OnMutated runs on the saving goroutine, so the actual load-and-broadcast
// is handed off. Any failure here is logged and swallowed; a broken
// broadcast must never surface into the order save that triggered it.
func (n *CartNotifier) OnMutated(mutation domain.OrderMutation) {
	if mutation.Reference.Type != domain.OrderTypeCart {
		return
	}
	if mutation.Kind != domain.MutationCreated && mutation.Kind != domain.MutationUpdated {
		return
	}

	ref := mutation.Reference
	go func() {
		cart, err := n.orders.LoadCart(ref.CustomerID, ref.Name)
		if err != nil {
			n.log.Warn(fmt.Sprintf("Cart refresh skipped for customer %s : %v", ref.CustomerID, err))
			return
		}
		n.hub.Publish(event.CartRefreshed{
			GroupKey: domain.GroupKey(ref.CustomerID.String()),
			Cart:     cart,
		})
	}()
}
