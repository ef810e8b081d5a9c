package ws

import (
	"context"
	"fmt"

	"coshop-lab/domain/event"
)

// Sink is the write side of one websocket connection. The fanout worker
// calls Consume, the connection's writer pump drains Events.
type Sink struct {
	Events chan event.DomainEvent
}

func NewSink(bufferSize int) *Sink {
	return &Sink{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume hands the event to the connection's writer. A full buffer means
// the client is not draining; the event is dropped and reported so the
// fanout can log it, the group's other members are unaffected.
func (s *Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("connection buffer full")
	}
}
