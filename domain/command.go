package domain

// Command is a presenter intent addressed to a group. Commands are queued on
// the hub's command channel and turned into broadcast events by the session
// relay worker, so RPC handlers never wait on delivery.
type Command interface {
	Group() GroupKey
}

type ScrollToCommand struct {
	GroupKey GroupKey
	// Position is a raw pixel offset. Every scroll tick is relayed as-is,
	// no bounds check and no debouncing.
	Position int
}

func (c ScrollToCommand) Group() GroupKey {
	return c.GroupKey
}

type RedirectToCommand struct {
	GroupKey GroupKey
	URL      string
}

func (c RedirectToCommand) Group() GroupKey {
	return c.GroupKey
}

// AddToCartCommand instructs every audience client to submit the
// add-to-friends-cart form. Email and product code are forwarded untouched,
// validation belongs to the cart mutation endpoint.
type AddToCartCommand struct {
	GroupKey    GroupKey
	Email       string
	ProductCode string
}

func (c AddToCartCommand) Group() GroupKey {
	return c.GroupKey
}

// MembershipChangedCommand is emitted by the hub itself whenever a
// connection joins or leaves a group, carrying the resulting member count.
type MembershipChangedCommand struct {
	GroupKey GroupKey
	Members  int
}

func (c MembershipChangedCommand) Group() GroupKey {
	return c.GroupKey
}
