// Package runtime owns event propagation between connections: the group
// membership registry, the hub and its supervised workers. No commerce or
// transport logic lives here.
package runtime

import (
	"sync"

	"github.com/samber/lo"

	"coshop-lab/contract"
	"coshop-lab/domain"
)

type connSet map[domain.ConnectionID]struct{}
type groupSet map[domain.GroupKey]struct{}

// Registry is the shared connection-to-group mapping, mutated concurrently
// by every connection goroutine and read by the fanout worker.
type Registry struct {
	mu sync.RWMutex
	// sinks resolves a connection into its delivery channel. One entry per
	// live connection, whatever the number of groups it joined.
	sinks map[domain.ConnectionID]contract.EventSink
	// groupMembers maps a group to the connections registered under it.
	groupMembers map[domain.GroupKey]connSet
	// connGroups is the reverse index, so a transport disconnect can drop
	// the connection from every group without the caller naming them.
	connGroups map[domain.ConnectionID]groupSet
}

func NewRegistry() *Registry {
	return &Registry{
		sinks:        make(map[domain.ConnectionID]contract.EventSink),
		groupMembers: make(map[domain.GroupKey]connSet),
		connGroups:   make(map[domain.ConnectionID]groupSet),
	}
}

// Join registers a connection under a group. Idempotent: joining a group the
// connection is already a member of is a no-op, not an error, which also
// makes Reconnect safe to replay.
func (r *Registry) Join(connID domain.ConnectionID, group domain.GroupKey, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sinks[connID] = sink

	if _, ok := r.groupMembers[group]; !ok {
		r.groupMembers[group] = make(connSet)
	}
	r.groupMembers[group][connID] = struct{}{}

	if _, ok := r.connGroups[connID]; !ok {
		r.connGroups[connID] = make(groupSet)
	}
	r.connGroups[connID][group] = struct{}{}
}

// Leave removes a connection from one group. Absent membership is a no-op.
// The sink stays registered, the connection is still live and may belong to
// other groups.
func (r *Registry) Leave(connID domain.ConnectionID, group domain.GroupKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeMembership(connID, group)
}

// Drop removes a connection from every group it joined and forgets its
// sink. Called on transport disconnect, no explicit leave required. Returns
// the groups the connection was dropped from so membership changes can be
// announced.
func (r *Registry) Drop(connID domain.ConnectionID) []domain.GroupKey {
	r.mu.Lock()
	defer r.mu.Unlock()

	var affected []domain.GroupKey
	for group := range r.connGroups[connID] {
		affected = append(affected, group)
		r.removeMembership(connID, group)
	}
	delete(r.connGroups, connID)
	delete(r.sinks, connID)
	return affected
}

// removeMembership expects the write lock to be held. Empty sets are pruned
// so abandoned groups don't accumulate.
func (r *Registry) removeMembership(connID domain.ConnectionID, group domain.GroupKey) {
	if members, ok := r.groupMembers[group]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.groupMembers, group)
		}
	}
	if groups, ok := r.connGroups[connID]; ok {
		delete(groups, group)
		if len(groups) == 0 {
			delete(r.connGroups, connID)
		}
	}
}

// SinksForGroup resolves the current members of a group into their delivery
// channels. Returns nil for an unknown or empty group.
func (r *Registry) SinksForGroup(group domain.GroupKey) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.groupMembers[group]
	if !ok {
		return nil
	}
	return lo.FilterMap(lo.Keys(members), func(connID domain.ConnectionID, _ int) (contract.EventSink, bool) {
		sink, exists := r.sinks[connID]
		return sink, exists
	})
}

func (r *Registry) MemberCount(group domain.GroupKey) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.groupMembers[group])
}

// Stats feeds the telemetry worker.
func (r *Registry) Stats() (connections, groups int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sinks), len(r.groupMembers)
}
