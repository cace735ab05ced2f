package service

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/staffdesk/employee-manager/internal/config"
	"github.com/staffdesk/employee-manager/internal/events"
	"github.com/staffdesk/employee-manager/internal/persistence"
)

func TestNotificationServiceLogsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	n := NewNotificationService(dispatcher, zap.New(core), nil, "employees.events")
	n.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.NewEvent(events.EventEmployeeDeleted, 4, nil))
	require.NoError(t, err)

	entries := logs.FilterMessage(string(events.EventEmployeeDeleted)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(4), entries[0].ContextMap()["employee_id"])
}

func TestNotificationServiceForwardsToRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redis := persistence.NewRedis(config.RedisConfig{Addr: addr}, zap.NewNop())
	defer redis.Close()

	sub := redis.Client.Subscribe(ctx, "employees.test")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.NewNop(), redis, "employees.test").RegisterHandlers()
	event := events.NewEvent(events.EventEmployeeCreated, 1, events.EmployeeSnapshotPayload{Name: "Alice", Salary: 1})
	require.NoError(t, dispatcher.Publish(ctx, event))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var got events.Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, events.EventEmployeeCreated, got.Type)
}
