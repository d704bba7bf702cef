package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gookit/validate"

	"rostersync/internal/gateway"
	"rostersync/internal/models"
	"rostersync/internal/providers"
)

type EditorState string

const (
	EditorClosed     EditorState = "closed"
	EditorLoading    EditorState = "loading"
	EditorEditing    EditorState = "editing"
	EditorLoadFailed EditorState = "load_failed"
	EditorSubmitting EditorState = "submitting"
)

type EditorMode string

const (
	ModeCreate EditorMode = "create"
	ModeEdit   EditorMode = "edit"
)

// ErrConflict marks a submission blocked because someone else edited the
// record; the remediation (reload and retry) differs from a plain failure.
var ErrConflict = errors.New("schedule was edited by someone else")

// ErrImmutableField marks an attempt to change an identity field in edit
// mode. The UI disables those inputs but the guard cannot rely on that.
var ErrImmutableField = errors.New("field is immutable in edit mode")

// ScheduleForm carries the editable fields. Identity fields (streamer uuid
// and date) are settable in create mode only.
type ScheduleForm struct {
	Title        string `json:"title" validate:"required" message:"required:schedule title must not be empty"`
	ScheduleDate string `json:"scheduleDate" validate:"required" message:"required:schedule date must not be empty"`
	StartTime    string `json:"startTime"`
	Status       string `json:"status" validate:"required|in:SCHEDULED,BREAK,TIME_TBD"`
	Description  string `json:"description"`
	StreamerUuid string `json:"streamerUuid" validate:"required" message:"required:a streamer must be selected"`
}

// ConflictCheck is the outcome of the client-side conflict guard.
type ConflictCheck struct {
	Ok     bool
	Reason string
}

// CheckBeforeSubmit compares the editor's captured version marker against
// the freshest one the client knows. Markers are opaque: only equality
// matters. A missing marker on either side cannot prove staleness, so the
// check passes and the server stays the final arbiter.
func CheckBeforeSubmit(record models.Schedule, knownLastUpdatedAt string) ConflictCheck {
	if record.LastUpdatedAt == "" || knownLastUpdatedAt == "" {
		return ConflictCheck{Ok: true}
	}
	if record.LastUpdatedAt != knownLastUpdatedAt {
		return ConflictCheck{
			Ok:     false,
			Reason: "this schedule was edited by someone else, reload and try again",
		}
	}
	return ConflictCheck{Ok: true}
}

type ScheduleServiceInterface interface {
	State() EditorState
	Mode() EditorMode
	Form() ScheduleForm
	ConflictMessage() string
	OpenCreate()
	OpenEdit(ctx context.Context, scheduleUuid string) error
	SetTitle(title string) error
	SetDate(date string) error
	SetStartTime(startTime string) error
	SetStatus(status string) error
	SetDescription(description string) error
	SetStreamer(streamerUuid string) error
	Submit(ctx context.Context) error
	Close() bool
}

// ScheduleService drives the edit dialog state machine:
//
//	Closed -> Loading -> {Editing, LoadFailed}
//	Editing -> Submitting -> {Closed, Editing}
//
// A failed submission returns to Editing with the error surfaced and the
// user's input intact.
type ScheduleService struct {
	mu          sync.Mutex
	state       EditorState
	mode        EditorMode
	form        ScheduleForm
	record      *models.Schedule
	conflictMsg string

	client   gateway.ClientInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	notifier providers.NotifierInterface
}

func NewScheduleService(client gateway.ClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface, notifier providers.NotifierInterface) ScheduleServiceInterface {
	return &ScheduleService{
		state:    EditorClosed,
		mode:     ModeCreate,
		client:   client,
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
	}
}

func (ss *ScheduleService) State() EditorState {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.state
}

func (ss *ScheduleService) Mode() EditorMode {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.mode
}

func (ss *ScheduleService) Form() ScheduleForm {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.form
}

func (ss *ScheduleService) ConflictMessage() string {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.conflictMsg
}

// OpenCreate opens the dialog with an empty form. Create mode has no record
// to load, so the machine goes straight to Editing.
func (ss *ScheduleService) OpenCreate() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.state = EditorEditing
	ss.mode = ModeCreate
	ss.form = ScheduleForm{Status: string(models.StatusScheduled)}
	ss.record = nil
	ss.conflictMsg = ""
}

// OpenEdit loads the freshest record version and seeds the form from it. The
// LastUpdatedAt captured here is what the conflict guard later compares.
func (ss *ScheduleService) OpenEdit(ctx context.Context, scheduleUuid string) error {
	ss.mu.Lock()
	ss.state = EditorLoading
	ss.mode = ModeEdit
	ss.conflictMsg = ""
	ss.mu.Unlock()

	record, err := ss.client.FetchSchedule(ctx, scheduleUuid)

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if err != nil {
		ss.state = EditorLoadFailed
		ss.notifier.Notify(providers.NotifyError, "Failed to load schedule")
		return fmt.Errorf("load schedule %s: %w", scheduleUuid, err)
	}

	ss.record = record
	ss.form = ScheduleForm{
		Title:        record.Title,
		ScheduleDate: record.ScheduleDate,
		StartTime:    record.StartTime,
		Status:       string(record.Status),
		Description:  record.Description,
		StreamerUuid: record.StreamerUuid,
	}
	ss.state = EditorEditing
	return nil
}

func (ss *ScheduleService) SetTitle(title string) error {
	return ss.setField(func() { ss.form.Title = title })
}

// SetDate changes the schedule date; rejected in edit mode because the date
// identifies the record.
func (ss *ScheduleService) SetDate(date string) error {
	if err := ss.requireMutableIdentity(); err != nil {
		return err
	}
	return ss.setField(func() { ss.form.ScheduleDate = date })
}

func (ss *ScheduleService) SetStartTime(startTime string) error {
	return ss.setField(func() { ss.form.StartTime = startTime })
}

// SetStatus updates the status; BREAK and TIME_TBD carry no start time, so
// switching to either clears it.
func (ss *ScheduleService) SetStatus(status string) error {
	return ss.setField(func() {
		ss.form.Status = status
		if status == string(models.StatusBreak) || status == string(models.StatusTimeTBD) {
			ss.form.StartTime = ""
		}
	})
}

func (ss *ScheduleService) SetDescription(description string) error {
	return ss.setField(func() { ss.form.Description = description })
}

// SetStreamer changes the owning streamer; rejected in edit mode.
func (ss *ScheduleService) SetStreamer(streamerUuid string) error {
	if err := ss.requireMutableIdentity(); err != nil {
		return err
	}
	return ss.setField(func() { ss.form.StreamerUuid = streamerUuid })
}

// Submit validates the form, runs the conflict guard (edit mode) and issues
// the create or modify call. Only reachable from Editing.
func (ss *ScheduleService) Submit(ctx context.Context) error {
	ss.mu.Lock()
	if ss.state != EditorEditing {
		ss.mu.Unlock()
		return fmt.Errorf("cannot submit from state %q", ss.state)
	}

	form := ss.form
	mode := ss.mode
	record := ss.record
	ss.mu.Unlock()

	v := validate.Struct(&form)
	if !v.Validate() {
		msg := v.Errors.One()
		ss.notifier.Notify(providers.NotifyWarning, msg)
		return fmt.Errorf("schedule form invalid: %s", msg)
	}

	if mode == ModeEdit {
		if blocked := ss.guardEdit(ctx, record); blocked != nil {
			return blocked
		}
	}

	ss.mu.Lock()
	ss.state = EditorSubmitting
	ss.mu.Unlock()

	err := ss.send(ctx, mode, form, record)

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if err != nil {
		// Back to Editing: user input is never discarded on failure.
		ss.state = EditorEditing
		if gateway.IsConflict(err) {
			ss.conflictMsg = conflictMessage(err)
			ss.metrics.IncEditConflicts()
			ss.notifier.Notify(providers.NotifyWarning, ss.conflictMsg)
			return fmt.Errorf("%w: %s", ErrConflict, ss.conflictMsg)
		}
		ss.notifier.Notify(providers.NotifyError, "Failed to save schedule")
		return err
	}

	ss.state = EditorClosed
	ss.record = nil
	ss.conflictMsg = ""
	ss.notifier.Notify(providers.NotifySuccess, "Schedule saved")
	return nil
}

// Close dismisses the dialog. Ignored while a submission is on the wire so
// the session boundary stays well defined.
func (ss *ScheduleService) Close() bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.state == EditorSubmitting {
		return false
	}
	ss.state = EditorClosed
	ss.record = nil
	ss.conflictMsg = ""
	return true
}

// guardEdit runs the client-side conflict check against the freshest marker
// available. When the deep fetch fails the check is skipped rather than
// blocking: the server remains the final arbiter and answers 409 on a truly
// stale write.
func (ss *ScheduleService) guardEdit(ctx context.Context, record *models.Schedule) error {
	if record == nil {
		return nil
	}

	latest, err := ss.client.FetchSchedule(ctx, record.Uuid)
	if err != nil {
		ss.logger.Warnf(providers.TypeApi, "Conflict pre-check fetch failed for %s, deferring to server: %s", record.Uuid, err)
		return nil
	}

	check := CheckBeforeSubmit(*record, latest.LastUpdatedAt)
	if check.Ok {
		return nil
	}

	ss.mu.Lock()
	ss.conflictMsg = check.Reason
	ss.mu.Unlock()

	ss.metrics.IncEditConflicts()
	ss.notifier.Notify(providers.NotifyWarning, check.Reason)
	return fmt.Errorf("%w: %s", ErrConflict, check.Reason)
}

func (ss *ScheduleService) send(ctx context.Context, mode EditorMode, form ScheduleForm, record *models.Schedule) error {
	if mode == ModeCreate {
		_, err := ss.client.CreateSchedule(ctx, &gateway.CreateScheduleRequest{
			Title:        form.Title,
			ScheduleDate: form.ScheduleDate,
			StartTime:    form.StartTime,
			Status:       models.ScheduleStatus(form.Status),
			Description:  form.Description,
			StreamerUuid: form.StreamerUuid,
		})
		return err
	}

	_, err := ss.client.ModifySchedule(ctx, record.Uuid, &gateway.ModifyScheduleRequest{
		Title:         form.Title,
		StartTime:     form.StartTime,
		Status:        models.ScheduleStatus(form.Status),
		Description:   form.Description,
		LastUpdatedAt: record.LastUpdatedAt,
	})
	return err
}

// setField applies a form mutation; only legal in Editing. Any edit clears a
// standing conflict message since the user is reacting to it.
func (ss *ScheduleService) setField(apply func()) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.state != EditorEditing {
		return fmt.Errorf("cannot edit form in state %q", ss.state)
	}
	apply()
	ss.conflictMsg = ""
	return nil
}

func (ss *ScheduleService) requireMutableIdentity() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.mode == ModeEdit {
		return ErrImmutableField
	}
	return nil
}

func conflictMessage(err error) string {
	var apiErr *gateway.ApiError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "this schedule was edited by someone else, reload and try again"
}
