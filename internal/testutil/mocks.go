package testutil

import (
	"context"
	"hyperstat/internal/models"
	"hyperstat/internal/providers"
	"sync"
	"time"
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

// Entries returns the recorded calls at the given level.
func (m *MockLogger) Entries(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Logs {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
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

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu        sync.Mutex
	Requests  int
	Hits      int
	Misses    int
	Outcomes  map[string]int
	Durations int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Hits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Misses++
}
func (m *MockMetrics) IncUpstreamRequests(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Outcomes == nil {
		m.Outcomes = make(map[string]int)
	}
	m.Outcomes[outcome]++
}
func (m *MockMetrics) ObserveUpstreamDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations++
}

// Outcome returns how many upstream calls ended with outcome.
func (m *MockMetrics) Outcome(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Outcomes[outcome]
}

// MockNexonClient implements clients.NexonClientInterface with injectable behavior.
type MockNexonClient struct {
	mu       sync.Mutex
	Calls    []NexonCall
	Snapshot *models.StatSnapshot
	Err      error
}

type NexonCall struct {
	OCID   string
	Date   string
	APIKey string
}

func (m *MockNexonClient) GetCharacterHyperStat(_ context.Context, ocid, date, apiKey string) (*models.StatSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, NexonCall{OCID: ocid, Date: date, APIKey: apiKey})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Snapshot, nil
}
