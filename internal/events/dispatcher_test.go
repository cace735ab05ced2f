package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	boom := errors.New("boom")

	d.Subscribe(EventEmployeeCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return boom
	})
	d.Subscribe(EventEmployeeCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventEmployeeDeleted, func(ctx context.Context, e Event) error {
		calls = append(calls, "deleted")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventEmployeeCreated, 1, nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventEmployeeUpdated, 2, nil)))
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventEmployeeDeleted, 9, nil)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, EventEmployeeDeleted, e.Type)
	assert.Equal(t, int64(9), e.EmployeeID)
	assert.False(t, e.Timestamp.IsZero())
}
