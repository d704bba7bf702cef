package gateway

import (
	"context"
	"net/http"

	"rostersync/internal/models"
)

// FetchFollowedStreamers returns the server's authoritative list of
// streamers already associated with the account. Used once at login.
func (c *Client) FetchFollowedStreamers(ctx context.Context) ([]models.Streamer, error) {
	var streamers []models.Streamer
	if err := c.call(ctx, http.MethodGet, endpointFollows, nil, &streamers); err != nil {
		return nil, err
	}
	for i := range streamers {
		streamers[i].IsFollowed = true
	}
	return streamers, nil
}

// FetchStreamersBatch fetches refreshed metadata for the given uuids.
func (c *Client) FetchStreamersBatch(ctx context.Context, uuids []string) ([]models.Streamer, error) {
	if len(uuids) == 0 {
		return nil, nil
	}

	payload := struct {
		Uuids []string `json:"uuids"`
	}{Uuids: uuids}

	var streamers []models.Streamer
	if err := c.call(ctx, http.MethodPost, endpointStreamersBatch, payload, &streamers); err != nil {
		return nil, err
	}
	return streamers, nil
}

// CommitBatch propagates coalesced active-toggle flips in one call. Failure
// is a single error for the whole batch; there is no partial-success report.
func (c *Client) CommitBatch(ctx context.Context, updates []models.PendingMutation) error {
	payload := struct {
		Updates []models.PendingMutation `json:"updates"`
	}{Updates: updates}

	return c.call(ctx, http.MethodPatch, endpointFollowingBatch, payload, nil)
}

func (c *Client) Follow(ctx context.Context, streamerUuid string) error {
	return c.call(ctx, http.MethodPost, endpointFollow(streamerUuid), nil, nil)
}

func (c *Client) Unfollow(ctx context.Context, streamerUuid string) error {
	return c.call(ctx, http.MethodDelete, endpointFollow(streamerUuid), nil, nil)
}
