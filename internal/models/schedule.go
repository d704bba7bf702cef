package models

type ScheduleStatus string

const (
	StatusScheduled ScheduleStatus = "SCHEDULED"
	StatusBreak     ScheduleStatus = "BREAK"
	StatusTimeTBD   ScheduleStatus = "TIME_TBD"
)

// Schedule is a collaboratively edited record. LastUpdatedAt is an opaque
// version marker issued by the server at read time and echoed back unmodified
// on write; the client only ever compares it for equality.
type Schedule struct {
	Uuid          string         `json:"uuid"`
	Title         string         `json:"title"`
	ScheduleDate  string         `json:"scheduleDate"`
	StartTime     string         `json:"startTime,omitempty"`
	Status        ScheduleStatus `json:"status"`
	Description   string         `json:"description,omitempty"`
	StreamerUuid  string         `json:"streamerUuid"`
	Version       int            `json:"version"`
	LastUpdatedAt string         `json:"lastUpdatedAt"`
}

// PendingMutation is one entry of the deferred active-toggle batch; keyed by
// StreamerUuid in the queue, last write within the debounce window wins.
type PendingMutation struct {
	StreamerUuid string `json:"streamerUuid"`
	IsActive     bool   `json:"isActive"`
}
