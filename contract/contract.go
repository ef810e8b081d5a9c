//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"github.com/google/uuid"

	"coshop-lab/domain"
	"coshop-lab/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
}

type WorkerName string

// Worker doesn't protect itself, the supervisor does.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// for logging and supervision, avoiding manual naming on the interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one delivery target, typically the write side of a websocket
// connection. Consume must not block longer than the context allows.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry owns the connection-to-group mapping. Membership is
// connection-scoped: Drop removes the connection from every group it joined.
type IRegistry interface {
	Join(connID domain.ConnectionID, group domain.GroupKey, sink EventSink)
	Leave(connID domain.ConnectionID, group domain.GroupKey)
	Drop(connID domain.ConnectionID) []domain.GroupKey
	SinksForGroup(group domain.GroupKey) []EventSink
	MemberCount(group domain.GroupKey) int
}

// IOrderRepository is the narrow surface of the order subsystem the
// co-shopping core consumes.
type IOrderRepository interface {
	LoadCart(customerID uuid.UUID, name string) (domain.Cart, error)
	SaveCart(cart domain.Cart) error
	RegisterCallback(cb OrderCallback)
}

// OrderCallback reacts to order repository mutations. Implementations must
// not block the save that triggered them.
type OrderCallback interface {
	OnMutated(mutation domain.OrderMutation)
}
