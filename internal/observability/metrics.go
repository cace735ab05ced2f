package observability

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu             sync.Mutex
	requestCount   map[string]int64
	errorCount     map[string]int64
	operationCount map[string]int64
	operationTime  map[string]time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		errorCount:     make(map[string]int64),
		operationCount: make(map[string]int64),
		operationTime:  make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordOperation counts a data-access call by operation and outcome ("ok" or an error code).
func (m *Metrics) RecordOperation(operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	key := operation + "|" + outcome
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operationCount[key]++
	m.operationTime[operation] += duration
}

// OperationCount returns how often operation finished with outcome.
func (m *Metrics) OperationCount(operation, outcome string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operationCount[operation+"|"+outcome]
}

// Snapshot copies the counters, sorted by key. Accumulated operation time is
// reported in milliseconds under "operation_ms|<operation>".
func (m *Metrics) Snapshot() []Counter {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Counter, 0, len(m.operationCount)+len(m.operationTime)+len(m.requestCount)+len(m.errorCount))
	for k, v := range m.operationCount {
		out = append(out, Counter{Key: "operation|" + k, Value: v})
	}
	for k, v := range m.operationTime {
		out = append(out, Counter{Key: "operation_ms|" + k, Value: v.Milliseconds()})
	}
	for k, v := range m.requestCount {
		out = append(out, Counter{Key: "request|" + k, Value: v})
	}
	for k, v := range m.errorCount {
		out = append(out, Counter{Key: "error|" + k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Counter is a named counter value.
type Counter struct {
	Key   string
	Value int64
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
