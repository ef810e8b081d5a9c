package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coshop-lab/contract"
	"coshop-lab/domain"
	"coshop-lab/domain/event"
	"coshop-lab/runtime/workers"
)

// Hub wires the registry to the supervised worker pipeline. It is the single
// entry point the service layer talks to: membership changes go through
// Join/Leave/Drop, presenter intents through Dispatch, server-side state
// changes through Publish.
type Hub struct {
	log         *slog.Logger
	registry    contract.IRegistry
	supervisor  *workers.Supervisor
	commands    chan domain.Command
	events      chan event.DomainEvent
	sinkTimeout time.Duration
	interval    time.Duration
	stats       workers.HubStats
}

func NewHub(log *slog.Logger, registry contract.IRegistry, stats workers.HubStats,
	bufferSize int, sinkTimeout, metricInterval time.Duration) *Hub {
	return &Hub{
		log:         log,
		registry:    registry,
		supervisor:  workers.NewSupervisor(log),
		commands:    make(chan domain.Command, bufferSize),
		events:      make(chan event.DomainEvent, bufferSize),
		sinkTimeout: sinkTimeout,
		interval:    metricInterval,
		stats:       stats,
	}
}

// Start assembles the relay, fanout and telemetry workers and runs them
// under supervision. Returns immediately, the supervisor owns the
// goroutines until ctx is canceled or Stop is called.
func (h *Hub) Start(ctx context.Context) {
	h.supervisor.
		Add(workers.NewSessionRelayWorker(h.commands, h.events, h.log)).
		Add(workers.NewEventFanoutWorker(h.log, h.registry, h.events, h.sinkTimeout)).
		Add(workers.NewTelemetryWorker(h.log, h.interval, h.stats))

	go h.supervisor.Run(ctx)
}

func (h *Hub) Stop() {
	if h.supervisor.Cancel != nil {
		h.supervisor.Cancel()
	}
}

// Dispatch queues a presenter command for relay. Non-blocking: when the
// buffer is full the command is dropped with a warning, scroll ticks are
// plentiful and a presenter can always re-issue.
func (h *Hub) Dispatch(cmd domain.Command) {
	select {
	case h.commands <- cmd:
	default:
		h.log.Warn(fmt.Sprintf("Command channel full for group %s, dropping command", cmd.Group()))
	}
}

// Publish queues a server-originated event for fanout, bypassing the
// command relay. Non-blocking for the same reason as Dispatch; callers such
// as the order-save path must never wait on broadcast delivery.
func (h *Hub) Publish(evt event.DomainEvent) {
	select {
	case h.events <- evt:
	default:
		h.log.Warn(fmt.Sprintf("Event channel full for group %s, dropping event", evt.Group()))
	}
}

// Join registers the connection under the group and announces the new
// member count to the whole group.
func (h *Hub) Join(connID domain.ConnectionID, group domain.GroupKey, sink contract.EventSink) {
	h.registry.Join(connID, group, sink)
	h.Dispatch(domain.MembershipChangedCommand{GroupKey: group, Members: h.registry.MemberCount(group)})
}

// Leave removes the connection from the group. Unknown membership is a
// no-op, matching the registry.
func (h *Hub) Leave(connID domain.ConnectionID, group domain.GroupKey) {
	h.registry.Leave(connID, group)
	if count := h.registry.MemberCount(group); count > 0 {
		h.Dispatch(domain.MembershipChangedCommand{GroupKey: group, Members: count})
	}
}

// Drop evicts a disconnected connection from every group it belonged to.
func (h *Hub) Drop(connID domain.ConnectionID) {
	for _, group := range h.registry.Drop(connID) {
		if count := h.registry.MemberCount(group); count > 0 {
			h.Dispatch(domain.MembershipChangedCommand{GroupKey: group, Members: count})
		}
	}
}
