package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"coshop-lab/domain"
	"coshop-lab/domain/event"
)

type Sink struct {
	id int
}

func (s Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	return nil
}

func TestRegistry_Join_One_Group_One_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := domain.NewConnectionID()
	group := domain.GroupKey("cust-1")
	sink := Sink{id: 1}

	// Given no connection is registered
	connections, groups := registry.Stats()
	req.Zero(connections)
	req.Zero(groups)

	// When a connection joins a group
	registry.Join(connID, group, sink)

	// Then
	connections, groups = registry.Stats()
	req.Equal(1, connections)
	req.Equal(1, groups)
	req.Equal(1, registry.MemberCount(group))

	req.Len(registry.SinksForGroup(group), 1)
	req.Contains(registry.SinksForGroup(group), sink)
}

func TestRegistry_Join_One_Group_Multiple_Connections(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID1 := domain.NewConnectionID()
	connID2 := domain.NewConnectionID()
	group := domain.GroupKey("cust-1")
	sink1 := Sink{id: 1}
	sink2 := Sink{id: 2}

	// When connections join a group
	registry.Join(connID1, group, sink1)
	registry.Join(connID2, group, sink2)

	// Then
	connections, groups := registry.Stats()
	req.Equal(2, connections)
	req.Equal(1, groups)
	req.Equal(2, registry.MemberCount(group))

	req.Len(registry.SinksForGroup(group), 2)
	req.Contains(registry.SinksForGroup(group), sink1)
	req.Contains(registry.SinksForGroup(group), sink2)
}

func TestRegistry_Join_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := domain.NewConnectionID()
	group := domain.GroupKey("cust-1")
	sink := Sink{id: 1}

	// When the same connection joins the same group twice
	registry.Join(connID, group, sink)
	registry.Join(connID, group, sink)

	// Then it counts once
	req.Equal(1, registry.MemberCount(group))
	req.Len(registry.SinksForGroup(group), 1)
}

func TestRegistry_Leave_One_Group_One_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := domain.NewConnectionID()
	group := domain.GroupKey("cust-1")
	sink := Sink{id: 1}

	// Given a connection joined a group
	registry.Join(connID, group, sink)

	// When the connection leaves the group
	registry.Leave(connID, group)

	// Then the group doesn't exist anymore
	req.Zero(registry.MemberCount(group))
	req.Nil(registry.SinksForGroup(group))

	// And the connection itself is still live
	connections, groups := registry.Stats()
	req.Equal(1, connections)
	req.Zero(groups)
}

func TestRegistry_Leave_One_Group_Multiple_Connections(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID1 := domain.NewConnectionID()
	connID2 := domain.NewConnectionID()
	group := domain.GroupKey("cust-1")
	sink1 := Sink{id: 1}
	sink2 := Sink{id: 2}

	// Given connections joined a group
	registry.Join(connID1, group, sink1)
	registry.Join(connID2, group, sink2)

	// When one connection leaves the group
	registry.Leave(connID1, group)

	// Then only one member is left
	req.Equal(1, registry.MemberCount(group))

	req.Len(registry.SinksForGroup(group), 1)
	req.Contains(registry.SinksForGroup(group), sink2)
}

func TestRegistry_Drop_Removes_From_All_Groups(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := domain.NewConnectionID()
	otherID := domain.NewConnectionID()
	group1 := domain.GroupKey("cust-1")
	group2 := domain.GroupKey("cust-2")
	sink := Sink{id: 1}
	otherSink := Sink{id: 2}

	// Given a connection joined two groups, the second one shared
	registry.Join(connID, group1, sink)
	registry.Join(connID, group2, sink)
	registry.Join(otherID, group2, otherSink)

	// When the connection drops
	affected := registry.Drop(connID)

	// Then both groups reported the departure
	req.ElementsMatch([]domain.GroupKey{group1, group2}, affected)

	// And the connection is gone everywhere, the survivor stays
	req.Zero(registry.MemberCount(group1))
	req.Equal(1, registry.MemberCount(group2))
	req.Contains(registry.SinksForGroup(group2), otherSink)

	connections, groups := registry.Stats()
	req.Equal(1, connections)
	req.Equal(1, groups)
}

func TestRegistry_Drop_Unknown_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// When an unknown connection drops
	affected := registry.Drop(domain.NewConnectionID())

	// Then nothing was affected
	req.Empty(affected)
}
