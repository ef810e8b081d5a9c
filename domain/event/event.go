package event

import (
	"coshop-lab/domain"
)

// DomainEvent is anything broadcast to the members of a group.
type DomainEvent interface {
	Group() domain.GroupKey
}

// ScrollMoved mirrors the presenter's scroll offset (wire event "onScroll").
type ScrollMoved struct {
	GroupKey domain.GroupKey
	Position int
}

func (e ScrollMoved) Group() domain.GroupKey {
	return e.GroupKey
}

// RedirectRequested asks audience clients to navigate (wire "onRedirect").
// The delay before the local redirect is client-side smoothing, the server
// forwards the URL immediately.
type RedirectRequested struct {
	GroupKey domain.GroupKey
	URL      string
}

func (e RedirectRequested) Group() domain.GroupKey {
	return e.GroupKey
}

// CartItemPushed tells audience clients to submit the add-to-friends-cart
// form (wire "addToCart").
type CartItemPushed struct {
	GroupKey    domain.GroupKey
	Email       string
	ProductCode string
}

func (e CartItemPushed) Group() domain.GroupKey {
	return e.GroupKey
}

// CartRefreshed carries the current cart snapshot after a server-side cart
// mutation (wire "refreshCart"). This is the only server-initiated event.
type CartRefreshed struct {
	GroupKey domain.GroupKey
	Cart     domain.Cart
}

func (e CartRefreshed) Group() domain.GroupKey {
	return e.GroupKey
}

// HitRecorded publishes the group's member count (wire "onHitRecorded").
type HitRecorded struct {
	GroupKey domain.GroupKey
	Count    int
}

func (e HitRecorded) Group() domain.GroupKey {
	return e.GroupKey
}
