package models

// RosterSnapshotVersion is the current on-disk snapshot format version.
const RosterSnapshotVersion = 2

// RosterSnapshot is the V2 persistence envelope with an explicit version
// field. V1 files are a bare JSON array of streamers and unmarshal via the
// legacy path in the file manager.
type RosterSnapshot struct {
	Version   int        `json:"version"`
	Streamers []Streamer `json:"streamers"`
}
