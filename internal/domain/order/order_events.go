package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Event types for the order context
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
)

// OrderEventItem is the item payload carried on order events
type OrderEventItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func eventItems(o *Order) []OrderEventItem {
	items := make([]OrderEventItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderEventItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return items
}

// OrderPlacedEvent is published after an order is committed
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string           `json:"order_number"`
	UserID      uuid.UUID        `json:"user_id"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	City        string           `json:"city"`
	Payment     string           `json:"payment_method"`
	Items       []OrderEventItem `json:"items"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderPlaced, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		City:            o.ShippingAddress.City(),
		Payment:         string(o.PaymentMethod),
		Items:           eventItems(o),
	}
}

// OrderStatusChangedEvent is published when the status actually changes
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber    string      `json:"order_number"`
	UserID         uuid.UUID   `json:"user_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	NewStatus      OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates an OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, previous OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderStatusChanged, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		PreviousStatus:  previous,
		NewStatus:       o.Status,
	}
}

// OrderCancelledEvent is published when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber    string          `json:"order_number"`
	UserID         uuid.UUID       `json:"user_id"`
	PreviousStatus OrderStatus     `json:"previous_status"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Reason         string          `json:"reason"`
}

// NewOrderCancelledEvent creates an OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, previous OrderStatus) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderCancelled, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		PreviousStatus:  previous,
		TotalAmount:     o.TotalAmount,
		Reason:          o.CancelReason,
	}
}
