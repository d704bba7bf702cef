package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterWith(streamers ...Streamer) *RosterStore {
	rs := NewRosterStore()
	rs.Restore(streamers)
	return rs
}

func TestRosterStore_AddInsertsAtHead(t *testing.T) {
	rs := rosterWith(Streamer{Uuid: "a", IsActive: true})

	ok := rs.Add(Streamer{Uuid: "b", Name: "B"})
	require.True(t, ok)

	assert.Equal(t, []string{"b", "a"}, rs.Uuids())
}

func TestRosterStore_AddForcesActive(t *testing.T) {
	rs := NewRosterStore()

	rs.Add(Streamer{Uuid: "a", IsActive: false})

	s, ok := rs.Get("a")
	require.True(t, ok)
	assert.True(t, s.IsActive)
}

func TestRosterStore_AddDuplicateRejected(t *testing.T) {
	rs := NewRosterStore()
	require.True(t, rs.Add(Streamer{Uuid: "a", Name: "first"}))

	ok := rs.Add(Streamer{Uuid: "a", Name: "second"})
	assert.False(t, ok)
	assert.Equal(t, 1, rs.Len())

	s, _ := rs.Get("a")
	assert.Equal(t, "first", s.Name)
}

func TestRosterStore_RemoveUnknown(t *testing.T) {
	rs := NewRosterStore()
	assert.False(t, rs.Remove("ghost"))
}

func TestRosterStore_RemoveDropsFromActiveSubset(t *testing.T) {
	rs := rosterWith(
		Streamer{Uuid: "a", IsActive: true},
		Streamer{Uuid: "b", IsActive: true},
	)

	require.True(t, rs.Remove("a"))
	assert.Equal(t, []string{"b"}, rs.ActiveUuids())
	assert.Equal(t, 1, rs.Len())
}

func TestRosterStore_ToggleActiveRepartitions(t *testing.T) {
	rs := rosterWith(
		Streamer{Uuid: "a", IsActive: true},
		Streamer{Uuid: "b", IsActive: true},
		Streamer{Uuid: "c", IsActive: false},
	)

	updated, ok := rs.ToggleActive("a")
	require.True(t, ok)
	assert.False(t, updated.IsActive)

	// a moved behind the remaining active entry, inactive order preserved
	assert.Equal(t, []string{"b", "a", "c"}, rs.Uuids())
	assert.Equal(t, []string{"b"}, rs.ActiveUuids())
}

func TestRosterStore_ToggleActiveBackToFront(t *testing.T) {
	rs := rosterWith(
		Streamer{Uuid: "a", IsActive: true},
		Streamer{Uuid: "b", IsActive: false},
	)

	updated, ok := rs.ToggleActive("b")
	require.True(t, ok)
	assert.True(t, updated.IsActive)
	assert.Equal(t, []string{"a", "b"}, rs.ActiveUuids())
}

func TestRosterStore_ToggleActiveUnknown(t *testing.T) {
	rs := NewRosterStore()
	_, ok := rs.ToggleActive("ghost")
	assert.False(t, ok)
}

func TestRosterStore_ToggleVisibleToImmediateRead(t *testing.T) {
	rs := rosterWith(Streamer{Uuid: "a", IsActive: true})

	rs.ToggleActive("a")
	assert.Empty(t, rs.ActiveUuids())

	rs.ToggleActive("a")
	assert.Equal(t, []string{"a"}, rs.ActiveUuids())
}

func TestRosterStore_AllReturnsCopy(t *testing.T) {
	rs := rosterWith(Streamer{Uuid: "a", Name: "orig", Platforms: []PlatformInfo{{PlatformName: "chzzk"}}})

	out := rs.All()
	out[0].Name = "mutated"
	out[0].Platforms[0].PlatformName = "mutated"

	s, _ := rs.Get("a")
	assert.Equal(t, "orig", s.Name)
	assert.Equal(t, "chzzk", s.Platforms[0].PlatformName)
}

func TestRosterStore_RefreshFromServerPreservesActive(t *testing.T) {
	rs := rosterWith(
		Streamer{Uuid: "a", Name: "old-a", FollowCount: 1, IsActive: false},
		Streamer{Uuid: "b", Name: "old-b", FollowCount: 2, IsActive: true},
	)

	rs.RefreshFromServer([]Streamer{
		{Uuid: "a", Name: "new-a", FollowCount: 10, IsActive: true},
		{Uuid: "b", Name: "new-b", FollowCount: 20, IsActive: false},
	})

	a, _ := rs.Get("a")
	assert.Equal(t, "new-a", a.Name)
	assert.Equal(t, 10, a.FollowCount)
	assert.False(t, a.IsActive)

	b, _ := rs.Get("b")
	assert.Equal(t, "new-b", b.Name)
	assert.True(t, b.IsActive)

	// active-first after refresh
	assert.Equal(t, []string{"b", "a"}, rs.Uuids())
}

func TestRosterStore_RefreshFromServerEmptyIsNoop(t *testing.T) {
	rs := rosterWith(
		Streamer{Uuid: "b", Name: "b", IsActive: false},
		Streamer{Uuid: "a", Name: "a", IsActive: true},
	)

	rs.RefreshFromServer(nil)

	// order untouched, not even repartitioned
	assert.Equal(t, []string{"b", "a"}, rs.Uuids())
}

func TestRosterStore_RefreshFromServerNeverAdds(t *testing.T) {
	rs := rosterWith(Streamer{Uuid: "a", IsActive: true})

	rs.RefreshFromServer([]Streamer{
		{Uuid: "a", Name: "a"},
		{Uuid: "stranger", Name: "stranger"},
	})

	assert.Equal(t, 1, rs.Len())
	_, ok := rs.Get("stranger")
	assert.False(t, ok)
}

func TestRosterStore_ReconcileOnLogin(t *testing.T) {
	rs := rosterWith(
		Streamer{Uuid: "local1", IsActive: false},
		Streamer{Uuid: "both", IsActive: false},
	)

	rs.ReconcileOnLogin([]Streamer{
		{Uuid: "both", IsFollowed: true},
		{Uuid: "server1", IsFollowed: true},
	})

	assert.Equal(t, []string{"both", "server1", "local1"}, rs.Uuids())

	both, _ := rs.Get("both")
	assert.False(t, both.IsActive, "known entry keeps local preference")

	fresh, _ := rs.Get("server1")
	assert.True(t, fresh.IsActive, "new server entry defaults to active")
}

func TestRosterStore_SnapshotRestoreRoundTrip(t *testing.T) {
	rs := rosterWith(
		Streamer{Uuid: "a", Name: "A", IsActive: true},
		Streamer{Uuid: "b", Name: "B"},
	)

	snap := rs.Snapshot()

	other := NewRosterStore()
	other.Restore(snap)

	assert.Equal(t, rs.All(), other.All())
}

func TestRosterStore_ActiveLen(t *testing.T) {
	rs := rosterWith(
		Streamer{Uuid: "a", IsActive: true},
		Streamer{Uuid: "b"},
		Streamer{Uuid: "c", IsActive: true},
	)
	assert.Equal(t, 2, rs.ActiveLen())
	assert.Equal(t, 3, rs.Len())
}
