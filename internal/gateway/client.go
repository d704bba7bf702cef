package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"rostersync/internal/models"
	"rostersync/internal/providers"
	"rostersync/internal/structures"
)

// ApiError is the typed rejection for any non-2xx response. Status 409 marks
// a version conflict and is surfaced to the user with the server's own
// message instead of a generic failure.
type ApiError struct {
	Status        int
	Code          string
	Message       string
	CorrelationId string
}

func (e *ApiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d (%s)", e.Status, e.Code)
}

// IsConflict reports whether err is a server-side version conflict.
func IsConflict(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

// ClientInterface is the remote authority consumed by the services. No call
// is ever retried here; failure handling is the caller's decision.
type ClientInterface interface {
	FetchFollowedStreamers(ctx context.Context) ([]models.Streamer, error)
	FetchStreamersBatch(ctx context.Context, uuids []string) ([]models.Streamer, error)
	CommitBatch(ctx context.Context, updates []models.PendingMutation) error
	Follow(ctx context.Context, streamerUuid string) error
	Unfollow(ctx context.Context, streamerUuid string) error
	FetchSchedule(ctx context.Context, scheduleUuid string) (*models.Schedule, error)
	CreateSchedule(ctx context.Context, req *CreateScheduleRequest) (*models.Schedule, error)
	ModifySchedule(ctx context.Context, scheduleUuid string, req *ModifyScheduleRequest) (*models.Schedule, error)
}

type Client struct {
	baseUrl    string
	token      string
	httpClient *http.Client
	logger     providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger) ClientInterface {
	return &Client{
		baseUrl:    conf.Api.BaseUrl,
		token:      conf.Api.Token,
		httpClient: &http.Client{Timeout: conf.Api.Timeout},
		logger:     logger,
	}
}

// envelope is the server's response wrapper; payloads live under "content".
type envelope struct {
	Content json.RawMessage `json:"content"`
}

// call issues one request and decodes the response content into out (when
// out is non-nil). Every request carries a fresh correlation id for tracing.
func (c *Client) call(ctx context.Context, method, endpoint string, payload any, out any) error {
	correlationId := uuid.New().String()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Correlation-ID", correlationId)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf(providers.TypeApi, "%s %s failed cid=%s: %s", method, endpoint, correlationId, err)
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debugf(providers.TypeApi, "%s %s -> %d in %s cid=%s",
		method, endpoint, resp.StatusCode, time.Since(start), correlationId)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeApiError(resp.StatusCode, raw, correlationId)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Content) > 0 {
		raw = env.Content
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response content: %w", err)
	}
	return nil
}

// decodeApiError parses the server's error body tolerantly: field types vary
// between endpoints (status as number or string), so coercion goes through
// cast rather than a rigid struct.
func decodeApiError(status int, raw []byte, correlationId string) *ApiError {
	apiErr := &ApiError{
		Status:        status,
		CorrelationId: correlationId,
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		if v, ok := body["status"]; ok {
			if code := cast.ToInt(v); code != 0 {
				apiErr.Status = code
			}
		}
		apiErr.Code = cast.ToString(body["error"])
		apiErr.Message = cast.ToString(body["message"])
	}

	return apiErr
}
