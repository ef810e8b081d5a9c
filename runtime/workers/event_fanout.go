package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"coshop-lab/contract"
	"coshop-lab/domain/event"
)

// EventFanoutWorker broadcasts domain events to the sinks of the target
// group.
//
// Delivery is best-effort with no guarantees regarding ordering across
// members, durability, or retries. A failing sink is logged and skipped, it
// never blocks delivery to the rest of the group.
type EventFanoutWorker struct {
	log         *slog.Logger
	registry    contract.IRegistry
	events      <-chan event.DomainEvent
	sinkTimeout time.Duration
}

func NewEventFanoutWorker(log *slog.Logger, registry contract.IRegistry,
	events <-chan event.DomainEvent, sinkTimeout time.Duration) *EventFanoutWorker {
	return &EventFanoutWorker{log: log, registry: registry, events: events, sinkTimeout: sinkTimeout}
}

func (w *EventFanoutWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		}
	}
}

// Fanout delivers one event to every sink currently registered under the
// event's group, concurrently. It returns once every delivery attempt has
// completed or timed out.
func (w *EventFanoutWorker) Fanout(ctx context.Context, evt event.DomainEvent) {
	sinks := w.registry.SinksForGroup(evt.Group())
	if len(sinks) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, sink := range sinks {
		wg.Add(1)
		go func(s contract.EventSink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := s.Consume(sinkCtx, evt); err != nil {
				w.log.Warn(fmt.Sprintf("Sink dropped event for group %s : %v", evt.Group(), err))
			}
		}(sink)
	}
	wg.Wait()
}
