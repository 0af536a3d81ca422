package app

import (
	"context"
	"strings"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/events"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"
)

// notifier publishes domain events and records activity entries on behalf of the services.
// Neither failure is reported to the caller.
type notifier struct {
	publisher    events.Publisher
	activityRepo activities.ActivityRepository
	logger       logger.Logger
}

func (n *notifier) publish(ctx context.Context, name string, data map[string]interface{}) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, events.New(name, data)); err != nil {
		n.logger.Warn("Failed to publish event ", name, ": ", err)
	}
}

func (n *notifier) record(ctx context.Context, customerDBID *int64, activityType, message string) {
	if n.activityRepo == nil {
		return
	}
	activity := &activities.Activity{
		CustomerID: customerDBID,
		Message:    message,
		Type:       activityType,
	}
	if err := n.activityRepo.Create(ctx, activity); err != nil {
		n.logger.Warn("Failed to record activity: ", err)
	}
}

func displayName(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}
