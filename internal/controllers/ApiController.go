package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"rostersync/internal/models"
	"rostersync/internal/providers"
	"rostersync/internal/roster/interfaces"
	"rostersync/internal/services"
)

// ApiController exposes the read-only introspection surface. Mutations never
// come through HTTP; they stay in-process so the optimistic pipeline keeps
// its synchronous guarantees.
type ApiController struct {
	logger providers.Logger
	roster services.RosterServiceInterface
	queue  interfaces.QueueInterface
}

func NewApiController(logger providers.Logger, roster services.RosterServiceInterface, queue interfaces.QueueInterface) *ApiController {
	return &ApiController{
		logger: logger,
		roster: roster,
		queue:  queue,
	}
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetRoster returns the full roster in display order.
func (ac *ApiController) GetRoster(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, struct {
		Streamers []models.Streamer `json:"streamers"`
	}{Streamers: ac.roster.Streamers()})
}

// GetActive returns the ordered active subset uuids, the same sequence
// downstream schedule fetches consume.
func (ac *ApiController) GetActive(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, struct {
		Uuids []string `json:"uuids"`
	}{Uuids: ac.roster.ActiveUuids()})
}

// GetPending reports the current debounce window.
func (ac *ApiController) GetPending(w http.ResponseWriter, r *http.Request) {
	ac.writeJSON(w, struct {
		PendingMutations int `json:"pendingMutations"`
	}{PendingMutations: ac.queue.PendingLen()})
}
