package gateway

import (
	"context"
	"net/http"

	"rostersync/internal/models"
)

type CreateScheduleRequest struct {
	Title        string                `json:"title"`
	ScheduleDate string                `json:"scheduleDate"`
	StartTime    string                `json:"startTime,omitempty"`
	Status       models.ScheduleStatus `json:"status"`
	Description  string                `json:"description,omitempty"`
	StreamerUuid string                `json:"streamerUuid"`
}

// ModifyScheduleRequest echoes LastUpdatedAt unmodified; the server is the
// final arbiter and answers 409 when the marker is stale.
type ModifyScheduleRequest struct {
	Title         string                `json:"title"`
	StartTime     string                `json:"startTime,omitempty"`
	Status        models.ScheduleStatus `json:"status"`
	Description   string                `json:"description,omitempty"`
	LastUpdatedAt string                `json:"lastUpdatedAt"`
}

// FetchSchedule reads the freshest version of a schedule, including its
// current LastUpdatedAt marker.
func (c *Client) FetchSchedule(ctx context.Context, scheduleUuid string) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := c.call(ctx, http.MethodGet, endpointSchedule(scheduleUuid), nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (c *Client) CreateSchedule(ctx context.Context, req *CreateScheduleRequest) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := c.call(ctx, http.MethodPost, endpointSchedules, req, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (c *Client) ModifySchedule(ctx context.Context, scheduleUuid string, req *ModifyScheduleRequest) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := c.call(ctx, http.MethodPatch, endpointSchedule(scheduleUuid), req, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}
