package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rostersync/internal/gateway"
	"rostersync/internal/models"
	"rostersync/internal/providers"
	"rostersync/internal/testutil"
)

type scheduleFixture struct {
	service  ScheduleServiceInterface
	gateway  *testutil.MockGateway
	metrics  *testutil.MockMetrics
	notifier *testutil.MockNotifier
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()
	gw := &testutil.MockGateway{}
	metrics := testutil.NewMockMetrics()
	notifier := &testutil.MockNotifier{}
	svc := NewScheduleService(gw, &testutil.MockLogger{}, metrics, notifier)
	return &scheduleFixture{service: svc, gateway: gw, metrics: metrics, notifier: notifier}
}

func sampleRecord() *models.Schedule {
	return &models.Schedule{
		Uuid:          "sch-1",
		Title:         "Morning stream",
		ScheduleDate:  "2026-08-29",
		StartTime:     "10:00",
		Status:        models.StatusScheduled,
		StreamerUuid:  "str-1",
		Version:       3,
		LastUpdatedAt: "T1",
	}
}

func validCreateForm(f *scheduleFixture, t *testing.T) {
	t.Helper()
	f.service.OpenCreate()
	require.NoError(t, f.service.SetTitle("New stream"))
	require.NoError(t, f.service.SetDate("2026-09-01"))
	require.NoError(t, f.service.SetStreamer("str-1"))
}

func TestConflictCheck_EqualMarkersPass(t *testing.T) {
	record := models.Schedule{LastUpdatedAt: "T1"}
	assert.True(t, CheckBeforeSubmit(record, "T1").Ok)
}

func TestConflictCheck_DifferentMarkersBlock(t *testing.T) {
	record := models.Schedule{LastUpdatedAt: "T1"}
	check := CheckBeforeSubmit(record, "T2")
	assert.False(t, check.Ok)
	assert.NotEmpty(t, check.Reason)
}

func TestConflictCheck_MissingMarkersPass(t *testing.T) {
	assert.True(t, CheckBeforeSubmit(models.Schedule{}, "T1").Ok)
	assert.True(t, CheckBeforeSubmit(models.Schedule{LastUpdatedAt: "T1"}, "").Ok)
	assert.True(t, CheckBeforeSubmit(models.Schedule{}, "").Ok)
}

func TestScheduleService_OpenCreate(t *testing.T) {
	f := newScheduleFixture(t)

	f.service.OpenCreate()

	assert.Equal(t, EditorEditing, f.service.State())
	assert.Equal(t, ModeCreate, f.service.Mode())
	assert.Equal(t, string(models.StatusScheduled), f.service.Form().Status)
	assert.Equal(t, 0, f.gateway.NetworkCalls())
}

func TestScheduleService_OpenEditLoadsFreshRecord(t *testing.T) {
	f := newScheduleFixture(t)
	f.gateway.ScheduleResult = sampleRecord()

	require.NoError(t, f.service.OpenEdit(context.Background(), "sch-1"))

	assert.Equal(t, EditorEditing, f.service.State())
	assert.Equal(t, ModeEdit, f.service.Mode())

	form := f.service.Form()
	assert.Equal(t, "Morning stream", form.Title)
	assert.Equal(t, "2026-08-29", form.ScheduleDate)
	assert.Equal(t, "10:00", form.StartTime)
	assert.Equal(t, []string{"sch-1"}, f.gateway.FetchScheduleCalls)
}

func TestScheduleService_OpenEditLoadFailure(t *testing.T) {
	f := newScheduleFixture(t)
	f.gateway.ScheduleErr = assert.AnError

	require.Error(t, f.service.OpenEdit(context.Background(), "sch-1"))
	assert.Equal(t, EditorLoadFailed, f.service.State())

	last, ok := f.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, providers.NotifyError, last.Kind)
}

func TestScheduleService_SetFieldsOnlyWhileEditing(t *testing.T) {
	f := newScheduleFixture(t)

	assert.Error(t, f.service.SetTitle("nope"), "closed editor rejects edits")

	f.service.OpenCreate()
	assert.NoError(t, f.service.SetTitle("ok"))
	assert.Equal(t, "ok", f.service.Form().Title)
}

func TestScheduleService_IdentityFieldsImmutableInEdit(t *testing.T) {
	f := newScheduleFixture(t)
	f.gateway.ScheduleResult = sampleRecord()
	require.NoError(t, f.service.OpenEdit(context.Background(), "sch-1"))

	assert.ErrorIs(t, f.service.SetDate("2026-12-31"), ErrImmutableField)
	assert.ErrorIs(t, f.service.SetStreamer("str-2"), ErrImmutableField)
	assert.NoError(t, f.service.SetTitle("renamed"))

	form := f.service.Form()
	assert.Equal(t, "2026-08-29", form.ScheduleDate)
	assert.Equal(t, "str-1", form.StreamerUuid)
}

func TestScheduleService_BreakStatusClearsStartTime(t *testing.T) {
	f := newScheduleFixture(t)
	f.service.OpenCreate()
	require.NoError(t, f.service.SetStartTime("20:00"))

	require.NoError(t, f.service.SetStatus(string(models.StatusBreak)))
	assert.Empty(t, f.service.Form().StartTime)

	require.NoError(t, f.service.SetStartTime("21:00"))
	require.NoError(t, f.service.SetStatus(string(models.StatusTimeTBD)))
	assert.Empty(t, f.service.Form().StartTime)

	require.NoError(t, f.service.SetStartTime("22:00"))
	require.NoError(t, f.service.SetStatus(string(models.StatusScheduled)))
	assert.Equal(t, "22:00", f.service.Form().StartTime)
}

func TestScheduleService_SubmitCreate(t *testing.T) {
	f := newScheduleFixture(t)
	f.gateway.CreateResult = sampleRecord()
	validCreateForm(f, t)

	require.NoError(t, f.service.Submit(context.Background()))

	assert.Equal(t, EditorClosed, f.service.State())
	require.Len(t, f.gateway.CreateCalls, 1)
	assert.Equal(t, "New stream", f.gateway.CreateCalls[0].Title)

	last, _ := f.notifier.Last()
	assert.Equal(t, providers.NotifySuccess, last.Kind)
}

func TestScheduleService_SubmitValidation(t *testing.T) {
	f := newScheduleFixture(t)
	f.service.OpenCreate()
	// title and streamer missing

	err := f.service.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, EditorEditing, f.service.State(), "invalid form stays editable")
	assert.Equal(t, 0, f.gateway.NetworkCalls())
}

func TestScheduleService_SubmitOnlyFromEditing(t *testing.T) {
	f := newScheduleFixture(t)
	assert.Error(t, f.service.Submit(context.Background()))
}

func TestScheduleService_SubmitEditEchoesMarker(t *testing.T) {
	f := newScheduleFixture(t)
	f.gateway.ScheduleResult = sampleRecord()
	f.gateway.ModifyResult = sampleRecord()
	require.NoError(t, f.service.OpenEdit(context.Background(), "sch-1"))
	require.NoError(t, f.service.SetTitle("renamed"))

	require.NoError(t, f.service.Submit(context.Background()))

	require.Len(t, f.gateway.ModifyCalls, 1)
	assert.Equal(t, "T1", f.gateway.ModifyCalls[0].LastUpdatedAt, "marker echoed unmodified")
	assert.Equal(t, "renamed", f.gateway.ModifyCalls[0].Title)
	assert.Equal(t, EditorClosed, f.service.State())
}

func TestScheduleService_GuardBlocksStaleEdit(t *testing.T) {
	f := newScheduleFixture(t)
	f.gateway.ScheduleResult = sampleRecord()
	require.NoError(t, f.service.OpenEdit(context.Background(), "sch-1"))
	require.NoError(t, f.service.SetTitle("mine"))

	// someone else saved in the meantime
	fresher := sampleRecord()
	fresher.LastUpdatedAt = "T2"
	f.gateway.ScheduleResult = fresher

	err := f.service.Submit(context.Background())
	require.ErrorIs(t, err, ErrConflict)

	assert.Empty(t, f.gateway.ModifyCalls, "stale edit never reaches the server")
	assert.Equal(t, EditorEditing, f.service.State())
	assert.Equal(t, "mine", f.service.Form().Title, "user input preserved")
	assert.NotEmpty(t, f.service.ConflictMessage())
	assert.Equal(t, 1, f.metrics.EditConflicts)
}

func TestScheduleService_GuardSkipsWhenPrecheckFetchFails(t *testing.T) {
	f := newScheduleFixture(t)
	f.gateway.ScheduleResult = sampleRecord()
	require.NoError(t, f.service.OpenEdit(context.Background(), "sch-1"))
	require.NoError(t, f.service.SetTitle("mine"))

	f.gateway.ScheduleErr = assert.AnError
	f.gateway.ModifyResult = sampleRecord()

	require.NoError(t, f.service.Submit(context.Background()))
	assert.Len(t, f.gateway.ModifyCalls, 1, "server stays the arbiter when the pre-check cannot run")
}

func TestScheduleService_ServerConflictSurfacesMessage(t *testing.T) {
	f := newScheduleFixture(t)
	f.gateway.ScheduleResult = sampleRecord()
	require.NoError(t, f.service.OpenEdit(context.Background(), "sch-1"))
	require.NoError(t, f.service.SetTitle("mine"))

	f.gateway.ModifyErr = &gateway.ApiError{
		Status:  http.StatusConflict,
		Code:    "CONFLICT",
		Message: "schedule version is stale",
	}

	err := f.service.Submit(context.Background())
	require.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, EditorEditing, f.service.State())
	assert.Equal(t, "schedule version is stale", f.service.ConflictMessage())
	assert.Equal(t, 1, f.metrics.EditConflicts)

	last, _ := f.notifier.Last()
	assert.Equal(t, providers.NotifyWarning, last.Kind)
}

func TestScheduleService_PlainFailureReturnsToEditing(t *testing.T) {
	f := newScheduleFixture(t)
	f.gateway.CreateErr = errors.New("boom")
	validCreateForm(f, t)

	err := f.service.Submit(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, EditorEditing, f.service.State())

	last, _ := f.notifier.Last()
	assert.Equal(t, providers.NotifyError, last.Kind)
}

func TestScheduleService_EditingClearsConflictMessage(t *testing.T) {
	f := newScheduleFixture(t)
	f.gateway.ScheduleResult = sampleRecord()
	require.NoError(t, f.service.OpenEdit(context.Background(), "sch-1"))

	f.gateway.ModifyErr = &gateway.ApiError{Status: http.StatusConflict, Message: "stale"}
	_ = f.service.Submit(context.Background())
	require.NotEmpty(t, f.service.ConflictMessage())

	require.NoError(t, f.service.SetTitle("reacting to the warning"))
	assert.Empty(t, f.service.ConflictMessage())
}

func TestScheduleService_Close(t *testing.T) {
	f := newScheduleFixture(t)
	f.service.OpenCreate()

	assert.True(t, f.service.Close())
	assert.Equal(t, EditorClosed, f.service.State())
}
