package models

// MergeOnLogin reconciles a locally held roster with the server's list of
// streamers already associated with the account.
//
// Server entries come first, in server order. An entry the client already
// knows keeps its local IsActive preference; a new entry defaults to active.
// Local-only entries follow in their original order. The merge is idempotent:
// applying it twice with the same server list yields the same roster.
func MergeOnLogin(local, server []Streamer) []Streamer {
	localByUuid := make(map[string]Streamer, len(local))
	for _, s := range local {
		localByUuid[s.Uuid] = s
	}

	merged := make([]Streamer, 0, len(server)+len(local))
	serverUuids := make(map[string]struct{}, len(server))
	for _, sv := range server {
		serverUuids[sv.Uuid] = struct{}{}
		next := sv.Clone()
		if existing, ok := localByUuid[sv.Uuid]; ok {
			next.IsActive = existing.IsActive
		} else {
			next.IsActive = true
		}
		merged = append(merged, next)
	}

	for _, s := range local {
		if _, ok := serverUuids[s.Uuid]; !ok {
			merged = append(merged, s.Clone())
		}
	}

	return merged
}

// PartitionActive reorders the roster so active streamers come first. The
// relative order inside each group is preserved (stable partition).
func PartitionActive(streamers []Streamer) []Streamer {
	out := make([]Streamer, 0, len(streamers))
	for _, s := range streamers {
		if s.IsActive {
			out = append(out, s)
		}
	}
	for _, s := range streamers {
		if !s.IsActive {
			out = append(out, s)
		}
	}
	return out
}
