package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordOperation(t *testing.T) {
	m := NewMetrics()
	m.RecordOperation("create", "ok", time.Millisecond)
	m.RecordOperation("create", "ok", time.Millisecond)
	m.RecordOperation("get", "NOT_FOUND", 3*time.Millisecond)

	assert.Equal(t, int64(2), m.OperationCount("create", "ok"))
	assert.Equal(t, int64(1), m.OperationCount("get", "NOT_FOUND"))
	assert.Equal(t, int64(0), m.OperationCount("delete", "ok"))

	snapshot := m.Snapshot()
	assert.Equal(t, []Counter{
		{Key: "operation_ms|create", Value: 2},
		{Key: "operation_ms|get", Value: 3},
		{Key: "operation|create|ok", Value: 2},
		{Key: "operation|get|NOT_FOUND", Value: 1},
	}, snapshot)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordOperation("create", "ok", 0)
	m.RecordRequest("/employees", "GET", 200, 0)
	m.RecordError("/employees", "GET", "NOT_FOUND")
	assert.Zero(t, m.OperationCount("create", "ok"))
	assert.Nil(t, m.Snapshot())
}
