package models

import "sync"

// OverlayEntry is a local override of a server-supplied (flag, count) pair,
// e.g. followed/followCount or liked/likeCount.
type OverlayEntry struct {
	Flag  bool
	Count int
}

// OverlayStore maps uuid -> local (flag, count) override pending
// reconciliation. At most one entry exists per uuid; repeated toggles
// overwrite the slot, they never stack.
type OverlayStore struct {
	mu      sync.RWMutex
	entries map[string]OverlayEntry
}

func NewOverlayStore() *OverlayStore {
	return &OverlayStore{
		entries: make(map[string]OverlayEntry),
	}
}

// SetOverride unconditionally replaces any existing override for uuid.
func (os *OverlayStore) SetOverride(uuid string, flag bool, count int) {
	os.mu.Lock()
	defer os.mu.Unlock()
	os.entries[uuid] = OverlayEntry{Flag: flag, Count: count}
}

// ClearOverride removes the override, reverting reads to the baseline.
func (os *OverlayStore) ClearOverride(uuid string) {
	os.mu.Lock()
	defer os.mu.Unlock()
	delete(os.entries, uuid)
}

// Resolve is the only sanctioned read path: the override wins while it
// exists, otherwise the caller's baseline is returned unchanged.
func (os *OverlayStore) Resolve(uuid string, baselineFlag bool, baselineCount int) (bool, int) {
	os.mu.RLock()
	defer os.mu.RUnlock()

	if entry, ok := os.entries[uuid]; ok {
		return entry.Flag, entry.Count
	}
	return baselineFlag, baselineCount
}

// Toggle flips the effective flag and moves the count by one (floored at
// zero), writing the result as the new override. originalFlag/originalCount
// are the values captured at the start of the interaction session, so a
// rapid double toggle lands back exactly on the session baseline.
func (os *OverlayStore) Toggle(uuid string, originalFlag bool, originalCount int) (bool, int) {
	os.mu.Lock()
	defer os.mu.Unlock()

	currentFlag, currentCount := originalFlag, originalCount
	if entry, ok := os.entries[uuid]; ok {
		currentFlag, currentCount = entry.Flag, entry.Count
	}

	newFlag := !currentFlag
	newCount := currentCount - 1
	if newFlag {
		newCount = currentCount + 1
	}
	if newCount < 0 {
		newCount = 0
	}

	os.entries[uuid] = OverlayEntry{Flag: newFlag, Count: newCount}
	return newFlag, newCount
}

// Override returns the raw override entry, if present.
func (os *OverlayStore) Override(uuid string) (OverlayEntry, bool) {
	os.mu.RLock()
	defer os.mu.RUnlock()
	entry, ok := os.entries[uuid]
	return entry, ok
}

func (os *OverlayStore) Len() int {
	os.mu.RLock()
	defer os.mu.RUnlock()
	return len(os.entries)
}
