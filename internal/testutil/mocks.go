package testutil

import (
	"context"
	"sync"
	"time"

	"rostersync/internal/gateway"
	"rostersync/internal/models"
	"rostersync/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// ErrorCount returns the number of error-level entries recorded so far.
func (m *MockLogger) ErrorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == "error" {
			n++
		}
	}
	return n
}

// MockNotifier implements providers.NotifierInterface and records messages.
type MockNotifier struct {
	mu            sync.Mutex
	Notifications []Notification
}

type Notification struct {
	Kind    providers.NotifyKind
	Message string
}

func (m *MockNotifier) Notify(kind providers.NotifyKind, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, Notification{Kind: kind, Message: message})
}

func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Notifications)
}

func (m *MockNotifier) Last() (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Notifications) == 0 {
		return Notification{}, false
	}
	return m.Notifications[len(m.Notifications)-1], true
}

// MockGateway implements gateway.ClientInterface with injectable responses
// and recorded calls. Every counter is the exact number of network calls a
// scenario produced, which the overlay tests assert on directly.
type MockGateway struct {
	mu sync.Mutex

	FollowedStreamers []models.Streamer
	FollowedErr       error
	BatchStreamers    []models.Streamer
	BatchErr          error
	CommitErr         error
	FollowErr         error
	UnfollowErr       error
	ScheduleResult    *models.Schedule
	ScheduleErr       error
	CreateResult      *models.Schedule
	CreateErr         error
	ModifyResult      *models.Schedule
	ModifyErr         error

	FetchFollowedCalls int
	FetchBatchCalls    [][]string
	CommitCalls        [][]models.PendingMutation
	FollowCalls        []string
	UnfollowCalls      []string
	FetchScheduleCalls []string
	CreateCalls        []*gateway.CreateScheduleRequest
	ModifyCalls        []*gateway.ModifyScheduleRequest
}

func (m *MockGateway) FetchFollowedStreamers(_ context.Context) ([]models.Streamer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchFollowedCalls++
	if m.FollowedErr != nil {
		return nil, m.FollowedErr
	}
	return m.FollowedStreamers, nil
}

func (m *MockGateway) FetchStreamersBatch(_ context.Context, uuids []string) ([]models.Streamer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchBatchCalls = append(m.FetchBatchCalls, uuids)
	if m.BatchErr != nil {
		return nil, m.BatchErr
	}
	return m.BatchStreamers, nil
}

func (m *MockGateway) CommitBatch(_ context.Context, updates []models.PendingMutation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CommitCalls = append(m.CommitCalls, updates)
	return m.CommitErr
}

func (m *MockGateway) Follow(_ context.Context, streamerUuid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FollowCalls = append(m.FollowCalls, streamerUuid)
	return m.FollowErr
}

func (m *MockGateway) Unfollow(_ context.Context, streamerUuid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnfollowCalls = append(m.UnfollowCalls, streamerUuid)
	return m.UnfollowErr
}

func (m *MockGateway) FetchSchedule(_ context.Context, scheduleUuid string) (*models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchScheduleCalls = append(m.FetchScheduleCalls, scheduleUuid)
	if m.ScheduleErr != nil {
		return nil, m.ScheduleErr
	}
	return m.ScheduleResult, nil
}

func (m *MockGateway) CreateSchedule(_ context.Context, req *gateway.CreateScheduleRequest) (*models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, req)
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.CreateResult, nil
}

func (m *MockGateway) ModifySchedule(_ context.Context, scheduleUuid string, req *gateway.ModifyScheduleRequest) (*models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ModifyCalls = append(m.ModifyCalls, req)
	if m.ModifyErr != nil {
		return nil, m.ModifyErr
	}
	return m.ModifyResult, nil
}

// CommitCount returns the number of CommitBatch calls so far. Safe to poll
// from a test while the queue commits on its own goroutine.
func (m *MockGateway) CommitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CommitCalls)
}

// CommitCall returns a copy of the i-th committed batch.
func (m *MockGateway) CommitCall(i int) []models.PendingMutation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.PendingMutation, len(m.CommitCalls[i]))
	copy(out, m.CommitCalls[i])
	return out
}

// NetworkCalls is the total number of gateway calls issued, across all
// endpoints.
func (m *MockGateway) NetworkCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchFollowedCalls + len(m.FetchBatchCalls) + len(m.CommitCalls) +
		len(m.FollowCalls) + len(m.UnfollowCalls) + len(m.FetchScheduleCalls) +
		len(m.CreateCalls) + len(m.ModifyCalls)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                 sync.Mutex
	BatchCommits       map[string]int
	BatchMutations     int
	OverlayReconciles  map[string]int
	EditConflicts      int
	CacheHits          int
	CacheMisses        int
	PersistenceObs     int
	RosterTotal        int
	RosterActive       int
	PendingGauge       int
	RequestsTotal      int
	RequestDurationObs int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		BatchCommits:      make(map[string]int),
		OverlayReconciles: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsTotal++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestDurationObs++
}

func (m *MockMetrics) IncBatchCommits(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchCommits[result]++
}

func (m *MockMetrics) AddBatchMutations(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchMutations += count
}

func (m *MockMetrics) IncOverlayReconciles(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OverlayReconciles[result]++
}

func (m *MockMetrics) IncEditConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EditConflicts++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceObs++
}

func (m *MockMetrics) SetRosterSize(total, active int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RosterTotal = total
	m.RosterActive = active
}

func (m *MockMetrics) SetPendingMutations(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PendingGauge = count
}

func (m *MockMetrics) GetBatchCommits(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.BatchCommits[result]
}

func (m *MockMetrics) GetOverlayReconciles(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.OverlayReconciles[result]
}

// MockQueue implements interfaces.QueueInterface and records enqueues in
// arrival order, keeping only the last value per streamer like the real
// queue does.
type MockQueue struct {
	mu       sync.Mutex
	Enqueued []models.PendingMutation
	Flushes  int
	Stopped  bool
}

func (m *MockQueue) Enqueue(streamerUuid string, isActive bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Enqueued = append(m.Enqueued, models.PendingMutation{StreamerUuid: streamerUuid, IsActive: isActive})
}

func (m *MockQueue) PendingLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	for _, e := range m.Enqueued {
		seen[e.StreamerUuid] = true
	}
	return len(seen)
}

func (m *MockQueue) Flush(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flushes++
}

func (m *MockQueue) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stopped = true
}
