package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coshop-lab/domain"
	"coshop-lab/domain/event"
)

func TestSessionRelayWorker_TranslatesCommands(t *testing.T) {
	req := require.New(t)
	commands := make(chan domain.Command, 8)
	events := make(chan event.DomainEvent, 8)
	worker := NewSessionRelayWorker(commands, events, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	commands <- domain.ScrollToCommand{GroupKey: "g", Position: 450}
	commands <- domain.RedirectToCommand{GroupKey: "g", URL: "/sale"}
	commands <- domain.AddToCartCommand{GroupKey: "g", Email: "friend@example.com", ProductCode: "SKU-1"}
	commands <- domain.MembershipChangedCommand{GroupKey: "g", Members: 2}

	expect := func() event.DomainEvent {
		select {
		case e := <-events:
			return e
		case <-time.After(time.Second):
			req.Fail("no event relayed in time")
			return nil
		}
	}

	scroll, ok := expect().(event.ScrollMoved)
	req.True(ok)
	req.Equal(450, scroll.Position)

	redirect, ok := expect().(event.RedirectRequested)
	req.True(ok)
	req.Equal("/sale", redirect.URL)

	pushed, ok := expect().(event.CartItemPushed)
	req.True(ok)
	req.Equal("SKU-1", pushed.ProductCode)

	hit, ok := expect().(event.HitRecorded)
	req.True(ok)
	req.Equal(2, hit.Count)
}
