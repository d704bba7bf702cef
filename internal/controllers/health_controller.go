package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"rostersync/internal/roster/interfaces"
	"rostersync/internal/services"
)

type HealthController struct {
	roster    services.RosterServiceInterface
	follows   services.FollowServiceInterface
	schedules services.ScheduleServiceInterface
	queue     interfaces.QueueInterface
	startTime time.Time
}

type healthResponse struct {
	Status           string  `json:"status"`
	Uptime           string  `json:"uptime"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	RosterSize       int     `json:"roster_size"`
	ActiveSize       int     `json:"active_size"`
	PendingMutations int     `json:"pending_mutations"`
	OverlayEntries   int     `json:"overlay_entries"`
	EditorState      string  `json:"editor_state"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:           "ok",
		Uptime:           formatDuration(uptime),
		UptimeSeconds:    uptime.Seconds(),
		RosterSize:       hc.roster.Len(),
		ActiveSize:       hc.roster.ActiveLen(),
		PendingMutations: hc.queue.PendingLen(),
		OverlayEntries:   hc.follows.OverlayLen(),
		EditorState:      string(hc.schedules.State()),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(roster services.RosterServiceInterface, follows services.FollowServiceInterface, schedules services.ScheduleServiceInterface, queue interfaces.QueueInterface) *HealthController {
	return &HealthController{
		roster:    roster,
		follows:   follows,
		schedules: schedules,
		queue:     queue,
		startTime: time.Now(),
	}
}
