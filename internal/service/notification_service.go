package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/staffdesk/employee-manager/internal/events"
	"github.com/staffdesk/employee-manager/internal/persistence"
)

// NotificationService logs employee change events and forwards them to Redis
// when a client is configured.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *persistence.Redis
	channel    string
}

// NewNotificationService creates the service. redis may be nil.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, redis *persistence.Redis, channel string) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		redis:      redis,
		channel:    channel,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventEmployeeCreated, n.handleEmployeeChanged)
	n.dispatcher.Subscribe(events.EventEmployeeUpdated, n.handleEmployeeChanged)
	n.dispatcher.Subscribe(events.EventEmployeeDeleted, n.handleEmployeeChanged)
}

func (n *NotificationService) handleEmployeeChanged(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.Int64("employee_id", event.EmployeeID),
		zap.Any("payload", event.Payload))
	return n.forward(ctx, event)
}

func (n *NotificationService) forward(ctx context.Context, event events.Event) error {
	if n.redis == nil || n.channel == "" {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := n.redis.Publish(ctx, n.channel, body); err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	n.logger.Debug("event forwarded", zap.String("channel", n.channel), zap.String("event_id", event.ID))
	return nil
}
