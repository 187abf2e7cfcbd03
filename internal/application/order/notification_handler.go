package order

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notifier sends order notifications to the customer. Implementations
// report success as a bare bool; a failed notification is never allowed to
// affect the order workflow.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, event *order.OrderPlacedEvent) bool
	NotifyOrderStatusChanged(ctx context.Context, event *order.OrderStatusChangedEvent) bool
	NotifyOrderCancelled(ctx context.Context, event *order.OrderCancelledEvent) bool
}

// NotificationHandler listens for order lifecycle events and fires customer
// notifications. Delivery failures are logged and swallowed.
type NotificationHandler struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifier Notifier, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *NotificationHandler) EventTypes() []string {
	return []string{
		order.EventOrderPlaced,
		order.EventOrderStatusChanged,
		order.EventOrderCancelled,
	}
}

// Handle dispatches an order event to the notifier. It always returns nil
// for delivery failures; only an unexpected event type is an error.
func (h *NotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var (
		delivered   bool
		orderNumber string
	)

	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		delivered = h.notifier.NotifyOrderPlaced(ctx, e)
		orderNumber = e.OrderNumber
	case *order.OrderStatusChangedEvent:
		delivered = h.notifier.NotifyOrderStatusChanged(ctx, e)
		orderNumber = e.OrderNumber
	case *order.OrderCancelledEvent:
		delivered = h.notifier.NotifyOrderCancelled(ctx, e)
		orderNumber = e.OrderNumber
	default:
		h.logger.Error("unexpected event type",
			zap.String("event_type", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	if !delivered {
		h.logger.Warn("order notification not delivered",
			zap.String("event_type", event.EventType()),
			zap.String("order_number", orderNumber),
		)
		return nil
	}

	h.logger.Debug("order notification sent",
		zap.String("event_type", event.EventType()),
		zap.String("order_number", orderNumber),
	)

	return nil
}

// Ensure NotificationHandler implements shared.EventHandler
var _ shared.EventHandler = (*NotificationHandler)(nil)
