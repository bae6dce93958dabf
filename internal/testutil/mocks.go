package testutil

import (
	"context"
	"mcstatus/internal/models"
	"mcstatus/internal/providers"
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

// HasLog reports whether a log line with the given level was recorded.
func (m *MockLogger) HasLog(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if l.Level == level {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu           sync.Mutex
	Probes       map[string]int
	ProbeFails   map[string]int
	Resolves     map[string]int
	Persistences int
	CacheHits    int
	CacheMisses  int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Probes:     make(map[string]int),
		ProbeFails: make(map[string]int),
		Resolves:   make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) ObserveProbeDuration(_ string, _ time.Duration)   {}

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

func (m *MockMetrics) IncProbesTotal(protocol string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Probes[protocol]++
	if !success {
		m.ProbeFails[protocol]++
	}
}

func (m *MockMetrics) IncResolvesTotal(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resolves[outcome]++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistences++
}

// FakeCoordinator answers probes with ProbeFn and records every call.
type FakeCoordinator struct {
	mu      sync.Mutex
	ProbeFn func(ctx context.Context, address string, timeout time.Duration, protocol models.ProtocolType) (*models.ServerInfo, error)
	Calls   []ProbeCall
}

type ProbeCall struct {
	Address  string
	Timeout  time.Duration
	Protocol models.ProtocolType
}

func (f *FakeCoordinator) Probe(ctx context.Context, address string, timeout time.Duration, protocol models.ProtocolType) (*models.ServerInfo, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, ProbeCall{Address: address, Timeout: timeout, Protocol: protocol})
	fn := f.ProbeFn
	f.mu.Unlock()
	if fn == nil {
		return nil, context.DeadlineExceeded
	}
	return fn(ctx, address, timeout, protocol)
}

func (f *FakeCoordinator) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// FakeIdenticons returns a fixed icon per protocol and address.
type FakeIdenticons struct {
	Fail bool
}

func (f *FakeIdenticons) Generate(protocol models.ProtocolType, address string) (string, bool) {
	if f.Fail {
		return "", false
	}
	return "identicon:" + protocol.String() + ":" + address, true
}
