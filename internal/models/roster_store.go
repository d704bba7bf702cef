package models

import (
	"sync"
)

// RosterStore owns the ordered, deduplicated list of tracked streamers.
// The slice holds display order; the active subset is derived from IsActive.
// All reads return copies so callers cannot mutate shared state.
type RosterStore struct {
	mu        sync.RWMutex
	streamers []Streamer
}

func NewRosterStore() *RosterStore {
	return &RosterStore{
		streamers: make([]Streamer, 0),
	}
}

// Add inserts a new streamer at the head of display order with IsActive
// forced to true. Returns false without mutation if the uuid is already
// present.
func (rs *RosterStore) Add(s Streamer) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.indexOf(s.Uuid) >= 0 {
		return false
	}

	next := s.Clone()
	next.IsActive = true
	rs.streamers = append([]Streamer{next}, rs.streamers...)
	return true
}

// Remove drops the streamer from both display order and the active subset.
// Returns false if the uuid is unknown.
func (rs *RosterStore) Remove(uuid string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	idx := rs.indexOf(uuid)
	if idx < 0 {
		return false
	}
	rs.streamers = append(rs.streamers[:idx], rs.streamers[idx+1:]...)
	return true
}

// ToggleActive flips the IsActive preference and repartitions the roster
// active-first, keeping the relative order inside each group. Returns the
// updated streamer so callers can decide whether the change needs server
// propagation (only followed streamers do).
func (rs *RosterStore) ToggleActive(uuid string) (Streamer, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	idx := rs.indexOf(uuid)
	if idx < 0 {
		return Streamer{}, false
	}

	rs.streamers[idx].IsActive = !rs.streamers[idx].IsActive
	updated := rs.streamers[idx].Clone()
	rs.streamers = PartitionActive(rs.streamers)
	return updated, true
}

// Get returns a copy of the streamer with the given uuid.
func (rs *RosterStore) Get(uuid string) (Streamer, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	idx := rs.indexOf(uuid)
	if idx < 0 {
		return Streamer{}, false
	}
	return rs.streamers[idx].Clone(), true
}

// ActiveUuids returns the ordered uuids of the active subset, reflecting the
// latest synchronous state. Downstream queries (schedule fetches) key off it.
func (rs *RosterStore) ActiveUuids() []string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	uuids := make([]string, 0, len(rs.streamers))
	for _, s := range rs.streamers {
		if s.IsActive {
			uuids = append(uuids, s.Uuid)
		}
	}
	return uuids
}

// Uuids returns all roster uuids in display order.
func (rs *RosterStore) Uuids() []string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	uuids := make([]string, len(rs.streamers))
	for i, s := range rs.streamers {
		uuids[i] = s.Uuid
	}
	return uuids
}

// All returns a copy of the roster in display order.
func (rs *RosterStore) All() []Streamer {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return cloneStreamers(rs.streamers)
}

func (rs *RosterStore) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.streamers)
}

// ActiveLen returns the size of the active subset.
func (rs *RosterStore) ActiveLen() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	n := 0
	for _, s := range rs.streamers {
		if s.IsActive {
			n++
		}
	}
	return n
}

// ReconcileOnLogin merges the server's authoritative follow list into the
// roster. See MergeOnLogin for the ordering and preference rules.
func (rs *RosterStore) ReconcileOnLogin(server []Streamer) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.streamers = MergeOnLogin(rs.streamers, server)
}

// RefreshFromServer replaces every field except IsActive for streamers
// present both locally and in updated, then repartitions active-first.
// Unknown uuids are ignored; this call never adds or removes entries.
// An empty update list is a no-op.
func (rs *RosterStore) RefreshFromServer(updated []Streamer) {
	if len(updated) == 0 {
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	byUuid := make(map[string]Streamer, len(updated))
	for _, s := range updated {
		byUuid[s.Uuid] = s
	}

	for i, current := range rs.streamers {
		next, ok := byUuid[current.Uuid]
		if !ok {
			continue
		}
		refreshed := next.Clone()
		refreshed.IsActive = current.IsActive
		rs.streamers[i] = refreshed
	}

	rs.streamers = PartitionActive(rs.streamers)
}

// Restore replaces the whole roster, used when loading a persisted snapshot.
func (rs *RosterStore) Restore(streamers []Streamer) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.streamers = cloneStreamers(streamers)
}

// Snapshot returns a copy of the roster for persistence.
func (rs *RosterStore) Snapshot() []Streamer {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return cloneStreamers(rs.streamers)
}

// indexOf must be called with rs.mu held.
func (rs *RosterStore) indexOf(uuid string) int {
	for i, s := range rs.streamers {
		if s.Uuid == uuid {
			return i
		}
	}
	return -1
}
