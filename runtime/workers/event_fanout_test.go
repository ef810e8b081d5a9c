package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"coshop-lab/contract"
	"coshop-lab/domain/event"
	"coshop-lab/mocks"
)

func TestEventFanoutWorker_Fanout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRegistry := mocks.NewMockIRegistry(ctrl)

	mockSink1 := mocks.NewMockEventSink(ctrl)
	mockSink2 := mocks.NewMockEventSink(ctrl)
	groupSinks := []contract.EventSink{mockSink1, mockSink2}

	fanoutWorker := NewEventFanoutWorker(log, mockRegistry, nil, 10*time.Second)

	var count atomic.Int32
	done := make(chan struct{})
	// Given two sinks registered under the group
	mockRegistry.EXPECT().SinksForGroup(gomock.Any()).Return(groupSinks).Times(1)
	// Given each sink consumes exactly once
	consume := func(ctx context.Context, evt event.DomainEvent) error {
		if count.Add(1) == 2 {
			close(done)
		}
		return nil
	}
	mockSink1.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(consume).Times(1)
	mockSink2.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(consume).Times(1)

	evt := event.ScrollMoved{GroupKey: "cust-1", Position: 450}

	// When an event is received and handled by worker
	fanoutWorker.Fanout(context.Background(), evt)

	// Then both sinks were reached
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		req.Fail("Goroutine did not terminated at time")
	}
}

func TestEventFanoutWorker_FailingSinkDoesNotBlockOthers(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRegistry := mocks.NewMockIRegistry(ctrl)

	failingSink := mocks.NewMockEventSink(ctrl)
	healthySink := mocks.NewMockEventSink(ctrl)
	groupSinks := []contract.EventSink{failingSink, healthySink}

	fanoutWorker := NewEventFanoutWorker(log, mockRegistry, nil, 10*time.Second)

	delivered := false
	// Given one sink fails and its neighbour is healthy
	mockRegistry.EXPECT().SinksForGroup(gomock.Any()).Return(groupSinks).Times(1)
	failingSink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("connection buffer full")).Times(1)
	healthySink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, evt event.DomainEvent) error {
			delivered = true
			return nil
		}).Times(1)

	evt := event.RedirectRequested{GroupKey: "cust-1", URL: "/products/42"}

	// When the event is fanned out
	fanoutWorker.Fanout(context.Background(), evt)

	// Then the healthy sink still got it
	req.True(delivered)
}

func TestEventFanoutWorker_SinkTimeout(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRegistry := mocks.NewMockIRegistry(ctrl)
	mockSink := mocks.NewMockEventSink(ctrl)
	groupSinks := []contract.EventSink{mockSink}

	sinkTimeout := 20 * time.Millisecond
	fanoutWorker := NewEventFanoutWorker(log, mockRegistry, nil, sinkTimeout)

	// Given a sink that never drains
	mockRegistry.EXPECT().SinksForGroup(gomock.Any()).Return(groupSinks).Times(1)
	mockSink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(
			func(ctx context.Context, evt event.DomainEvent) error {
				<-ctx.Done()     // Waiting for timeout to trigger cancellation
				return ctx.Err() // Sending back "context deadline exceeded"
			},
		).Times(1)

	evt := event.ScrollMoved{GroupKey: "cust-1", Position: 100}

	// When an event is received and handled by worker
	fanoutWorker.Fanout(context.Background(), evt)
}

func TestEventFanoutWorker_EmptyGroup(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRegistry := mocks.NewMockIRegistry(ctrl)
	fanoutWorker := NewEventFanoutWorker(log, mockRegistry, nil, time.Second)

	// Given nobody is registered under the group
	mockRegistry.EXPECT().SinksForGroup(gomock.Any()).Return(nil).Times(1)

	// When the event is fanned out, nothing happens
	fanoutWorker.Fanout(context.Background(), event.ScrollMoved{GroupKey: "cust-gone"})
}
