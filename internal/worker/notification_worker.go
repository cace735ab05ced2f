package worker

import (
	"go.uber.org/zap"

	"github.com/staffdesk/employee-manager/internal/config"
	"github.com/staffdesk/employee-manager/internal/events"
	"github.com/staffdesk/employee-manager/internal/persistence"
	"github.com/staffdesk/employee-manager/internal/service"
)

// StartNotificationWorker subscribes the employee change notifier to dispatcher.
// Events are forwarded to Redis only when redis is non-nil.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger, redis *persistence.Redis, cfg config.RedisConfig) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	notifier := service.NewNotificationService(dispatcher, logger, redis, cfg.Channel)
	notifier.RegisterHandlers()
	if redis != nil {
		logger.Info("forwarding employee events", zap.String("channel", cfg.Channel))
	}
	return notifier
}
