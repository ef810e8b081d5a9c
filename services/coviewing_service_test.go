package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"coshop-lab/domain"
	"coshop-lab/domain/event"
	"coshop-lab/runtime"
)

// chanSink collects everything fanned out to one connection.
type chanSink struct {
	events chan event.DomainEvent
}

func newChanSink() *chanSink {
	return &chanSink{events: make(chan event.DomainEvent, 32)}
}

func (s *chanSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// scrolls drains the sink for the given window and keeps only scroll events;
// membership announcements also travel through the same pipe.
func (s *chanSink) scrolls(window time.Duration) []event.ScrollMoved {
	var out []event.ScrollMoved
	deadline := time.After(window)
	for {
		select {
		case e := <-s.events:
			if scroll, ok := e.(event.ScrollMoved); ok {
				out = append(out, scroll)
			}
		case <-deadline:
			return out
		}
	}
}

func startTestHub(t *testing.T) *runtime.Hub {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := runtime.NewRegistry()
	hub := runtime.NewHub(log, registry, registry, 64, time.Second, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	hub.Start(ctx)
	t.Cleanup(cancel)
	return hub
}

func TestCoViewingService_ScrollReachesWholeGroupOnce(t *testing.T) {
	req := require.New(t)
	hub := startTestHub(t)
	svc := NewCoViewingService(hub)

	hostID := uuid.New()
	guestCookie, err := domain.EncodeGuestAccess("Bob", hostID)
	req.NoError(err)

	// Given a presenter authenticated as the host customer
	presenterSink := newChanSink()
	presenterGroup := svc.Connect(domain.ConnectionContext{
		ConnectionID: domain.NewConnectionID(),
		CustomerID:   hostID,
	}, presenterSink)

	// And an audience member carrying the host's guest token
	audienceSink := newChanSink()
	audienceGroup := svc.Connect(domain.ConnectionContext{
		ConnectionID: domain.NewConnectionID(),
		GuestCookie:  guestCookie,
	}, audienceSink)

	// And a stranger browsing in a group of their own
	strangerSink := newChanSink()
	strangerGroup := svc.Connect(domain.ConnectionContext{
		ConnectionID: domain.NewConnectionID(),
		CustomerID:   uuid.New(),
	}, strangerSink)

	req.Equal(presenterGroup, audienceGroup)
	req.NotEqual(presenterGroup, strangerGroup)

	// When the presenter scrolls
	svc.ScrollTo(presenterGroup, 450)

	// Then presenter and audience each see the scroll exactly once
	presenterScrolls := presenterSink.scrolls(300 * time.Millisecond)
	audienceScrolls := audienceSink.scrolls(300 * time.Millisecond)

	req.Len(presenterScrolls, 1)
	req.Equal(450, presenterScrolls[0].Position)
	req.Len(audienceScrolls, 1)
	req.Equal(450, audienceScrolls[0].Position)

	// And the stranger sees nothing
	req.Empty(strangerSink.scrolls(100 * time.Millisecond))
}

func TestCoViewingService_MembershipIsAnnounced(t *testing.T) {
	req := require.New(t)
	hub := startTestHub(t)
	svc := NewCoViewingService(hub)

	hostID := uuid.New()

	presenterSink := newChanSink()
	group := svc.Connect(domain.ConnectionContext{
		ConnectionID: domain.NewConnectionID(),
		CustomerID:   hostID,
	}, presenterSink)

	audienceSink := newChanSink()
	svc.SignInAudience(domain.NewConnectionID(), audienceSink, group)

	// Then the presenter hears the audience arrive
	var counts []int
	deadline := time.After(500 * time.Millisecond)
collect:
	for {
		select {
		case e := <-presenterSink.events:
			if hit, ok := e.(event.HitRecorded); ok {
				counts = append(counts, hit.Count)
				if hit.Count == 2 {
					break collect
				}
			}
		case <-deadline:
			break collect
		}
	}
	req.Contains(counts, 2)
}

func TestCoViewingService_DisconnectStopsDelivery(t *testing.T) {
	req := require.New(t)
	hub := startTestHub(t)
	svc := NewCoViewingService(hub)

	hostID := uuid.New()
	connID := domain.NewConnectionID()

	sink := newChanSink()
	group := svc.Connect(domain.ConnectionContext{
		ConnectionID: connID,
		CustomerID:   hostID,
	}, sink)

	// When the connection goes away
	svc.Disconnect(connID)

	// Then a later scroll never reaches it
	svc.ScrollTo(group, 999)
	req.Empty(sink.scrolls(150 * time.Millisecond))
}

func TestCoViewingService_ReconnectIsIdempotent(t *testing.T) {
	req := require.New(t)
	hub := startTestHub(t)
	svc := NewCoViewingService(hub)

	hostID := uuid.New()
	ctx := domain.ConnectionContext{
		ConnectionID: domain.NewConnectionID(),
		CustomerID:   hostID,
	}
	sink := newChanSink()

	group := svc.Connect(ctx, sink)
	regained := svc.Reconnect(ctx, sink)

	req.Equal(group, regained)

	// The replayed join must not duplicate delivery
	svc.ScrollTo(group, 120)
	req.Len(sink.scrolls(300*time.Millisecond), 1)
}

func TestCoViewingService_StartPresenterSessionMintsUniqueTokens(t *testing.T) {
	req := require.New(t)
	hub := startTestHub(t)
	svc := NewCoViewingService(hub)

	req.NotEqual(svc.StartPresenterSession(), svc.StartPresenterSession())
}
