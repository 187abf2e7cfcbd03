package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/analytics"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderRecorder folds order lifecycle events into the daily rollup store.
// A placed order increments today's counters and breakdowns; a cancellation
// increments the cancelled counter only. Nothing here recomputes history;
// summaries are derived at read time.
type OrderRecorder struct {
	statRepo  analytics.DailyStatRepository
	orderRepo order.OrderRepository
	logger    *zap.Logger
}

// NewOrderRecorder creates a new OrderRecorder
func NewOrderRecorder(statRepo analytics.DailyStatRepository, orderRepo order.OrderRepository, logger *zap.Logger) *OrderRecorder {
	return &OrderRecorder{
		statRepo:  statRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderRecorder) EventTypes() []string {
	return []string{
		order.EventOrderPlaced,
		order.EventOrderCancelled,
	}
}

// Handle applies an order event to today's rollup document
func (h *OrderRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		return h.recordPlaced(ctx, e)
	case *order.OrderCancelledEvent:
		return h.recordCancelled(ctx, e)
	default:
		h.logger.Error("unexpected event type",
			zap.String("event_type", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

func (h *OrderRecorder) recordPlaced(ctx context.Context, e *order.OrderPlacedEvent) error {
	products := make([]analytics.ProductStat, 0, len(e.Items))
	for _, item := range e.Items {
		products = append(products, analytics.ProductStat{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  int64(item.Quantity),
			Revenue:   item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	// First order for this user marks a new customer. The count includes
	// the order just placed.
	orderCount, err := h.orderRepo.CountByUser(ctx, e.UserID)
	if err != nil {
		h.logger.Warn("could not determine order count for new-customer flag",
			zap.String("user_id", e.UserID.String()),
			zap.Error(err),
		)
		orderCount = 0
	}

	delta := analytics.OrderDelta{
		Occurred:      e.OccurredAt(),
		Amount:        e.TotalAmount,
		City:          e.City,
		PaymentMethod: e.Payment,
		NewCustomer:   orderCount <= 1,
		Products:      products,
	}

	if err := h.statRepo.RecordOrder(ctx, delta); err != nil {
		h.logger.Error("failed to record order in daily rollup",
			zap.String("order_number", e.OrderNumber),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("order recorded in daily rollup",
		zap.String("order_number", e.OrderNumber),
		zap.String("amount", e.TotalAmount.String()),
	)

	return nil
}

func (h *OrderRecorder) recordCancelled(ctx context.Context, e *order.OrderCancelledEvent) error {
	if err := h.statRepo.RecordCancellation(ctx, e.OccurredAt()); err != nil {
		h.logger.Error("failed to record cancellation in daily rollup",
			zap.String("order_number", e.OrderNumber),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Ensure OrderRecorder implements shared.EventHandler
var _ shared.EventHandler = (*OrderRecorder)(nil)
