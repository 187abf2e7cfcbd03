package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func testAddress(t *testing.T) valueobject.ShippingAddress {
	addr, err := valueobject.NewShippingAddress("Jane Doe", "1 Main St", "Springfield", "IL", "62701", "555-0100")
	require.NoError(t, err)
	return addr
}

func testCart(t *testing.T) *cart.Cart {
	c, err := cart.NewCart(uuid.New())
	require.NoError(t, err)
	require.NoError(t, c.AddItem(uuid.New(), "Widget", decimal.NewFromFloat(19.99), "widget.jpg", 2))
	require.NoError(t, c.AddItem(uuid.New(), "Gadget", decimal.NewFromFloat(5.50), "", 1))
	return c
}

func testOrder(t *testing.T) *Order {
	o, err := NewOrderFromCart("ORD-2026-00001", testCart(t), testAddress(t), PaymentMethodCOD)
	require.NoError(t, err)
	return o
}

// ============================================
// OrderStatus Tests
// ============================================

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		isValid bool
	}{
		{OrderStatusPending, true},
		{OrderStatusProcessing, true},
		{OrderStatusShipped, true},
		{OrderStatusDelivered, true},
		{OrderStatusCancelled, true},
		{OrderStatus("INVALID"), false},
		{OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		// From Pending
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		// From Processing
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusProcessing, OrderStatusDelivered, false},
		// From Shipped
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusProcessing, false},
		// From Delivered (terminal)
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusProcessing, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		// From Cancelled (terminal)
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusCancelled, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Run("is case-insensitive", func(t *testing.T) {
		status, err := ParseOrderStatus("processing")
		require.NoError(t, err)
		assert.Equal(t, OrderStatusProcessing, status)

		status, err = ParseOrderStatus("  SHIPPED ")
		require.NoError(t, err)
		assert.Equal(t, OrderStatusShipped, status)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		_, err := ParseOrderStatus("refunded")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown order status")
	})
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusProcessing.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

// ============================================
// NewOrderFromCart Tests
// ============================================

func TestNewOrderFromCart(t *testing.T) {
	t.Run("snapshots the cart into a Pending order", func(t *testing.T) {
		c := testCart(t)
		order, err := NewOrderFromCart("ORD-2026-00001", c, testAddress(t), PaymentMethodCOD)
		require.NoError(t, err)
		require.NotNil(t, order)

		assert.Equal(t, "ORD-2026-00001", order.OrderNumber)
		assert.Equal(t, c.UserID, order.UserID)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, PaymentMethodCOD, order.PaymentMethod)
		require.Len(t, order.Items, 2)
		assert.True(t, order.TotalAmount.Equal(c.Total))
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(45.48))) // 2*19.99 + 5.50
		assert.Nil(t, order.ProcessingAt)
		assert.Nil(t, order.CancelledAt)
	})

	t.Run("copies line items as snapshots", func(t *testing.T) {
		c := testCart(t)
		order, err := NewOrderFromCart("ORD-2026-00002", c, testAddress(t), PaymentMethodCOD)
		require.NoError(t, err)

		item := order.Items[0]
		assert.Equal(t, c.Items[0].ProductID, item.ProductID)
		assert.Equal(t, "Widget", item.Name)
		assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(19.99)))
		assert.Equal(t, 2, item.Quantity)
		assert.Equal(t, order.ID, item.OrderID)
	})

	t.Run("publishes OrderPlaced event", func(t *testing.T) {
		order := testOrder(t)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventOrderPlaced, events[0].EventType())

		event, ok := events[0].(*OrderPlacedEvent)
		require.True(t, ok)
		assert.Equal(t, order.OrderNumber, event.OrderNumber)
		assert.Equal(t, "Springfield", event.City)
		assert.Len(t, event.Items, 2)
	})

	t.Run("fails with empty cart", func(t *testing.T) {
		c, err := cart.NewCart(uuid.New())
		require.NoError(t, err)

		_, err = NewOrderFromCart("ORD-2026-00003", c, testAddress(t), PaymentMethodCOD)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("fails with nil cart", func(t *testing.T) {
		_, err := NewOrderFromCart("ORD-2026-00004", nil, testAddress(t), PaymentMethodCOD)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("fails with zero address", func(t *testing.T) {
		_, err := NewOrderFromCart("ORD-2026-00005", testCart(t), valueobject.ShippingAddress{}, PaymentMethodCOD)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Shipping address is required")
	})

	t.Run("fails with empty order number", func(t *testing.T) {
		_, err := NewOrderFromCart("", testCart(t), testAddress(t), PaymentMethodCOD)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Order number cannot be empty")
	})

	t.Run("defaults payment method to cod", func(t *testing.T) {
		order, err := NewOrderFromCart("ORD-2026-00006", testCart(t), testAddress(t), "")
		require.NoError(t, err)
		assert.Equal(t, PaymentMethodCOD, order.PaymentMethod)
	})
}

// ============================================
// TransitionTo Tests
// ============================================

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("walks the happy path and stamps timestamps", func(t *testing.T) {
		order := testOrder(t)

		require.NoError(t, order.TransitionTo(OrderStatusProcessing))
		assert.Equal(t, OrderStatusProcessing, order.Status)
		assert.NotNil(t, order.ProcessingAt)

		require.NoError(t, order.TransitionTo(OrderStatusShipped))
		assert.NotNil(t, order.ShippedAt)

		require.NoError(t, order.TransitionTo(OrderStatusDelivered))
		assert.NotNil(t, order.DeliveredAt)
		assert.True(t, order.IsTerminal())
	})

	t.Run("same status is a no-op and emits no event", func(t *testing.T) {
		order := testOrder(t)
		order.ClearDomainEvents()

		require.NoError(t, order.TransitionTo(OrderStatusPending))
		assert.Empty(t, order.GetDomainEvents())
	})

	t.Run("rejects illegal transitions", func(t *testing.T) {
		order := testOrder(t)

		err := order.TransitionTo(OrderStatusDelivered)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot transition order from Pending to Delivered")
		assert.Equal(t, OrderStatusPending, order.Status)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		order := testOrder(t)

		err := order.TransitionTo(OrderStatus("Refunded"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown order status")
	})

	t.Run("publishes status changed event", func(t *testing.T) {
		order := testOrder(t)
		order.ClearDomainEvents()

		require.NoError(t, order.TransitionTo(OrderStatusProcessing))

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*OrderStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, OrderStatusPending, event.PreviousStatus)
		assert.Equal(t, OrderStatusProcessing, event.NewStatus)
	})
}

// ============================================
// Cancel Tests
// ============================================

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels a pending order", func(t *testing.T) {
		order := testOrder(t)

		require.NoError(t, order.Cancel("changed my mind"))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Equal(t, "changed my mind", order.CancelReason)
		assert.NotNil(t, order.CancelledAt)
	})

	t.Run("cancels a processing order", func(t *testing.T) {
		order := testOrder(t)
		require.NoError(t, order.TransitionTo(OrderStatusProcessing))

		require.NoError(t, order.Cancel(""))
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})

	t.Run("cannot cancel a shipped order", func(t *testing.T) {
		order := testOrder(t)
		require.NoError(t, order.TransitionTo(OrderStatusProcessing))
		require.NoError(t, order.TransitionTo(OrderStatusShipped))

		err := order.Cancel("too late")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot cancel order in Shipped status")
		assert.Equal(t, OrderStatusShipped, order.Status)
	})

	t.Run("publishes cancelled event with the reason", func(t *testing.T) {
		order := testOrder(t)
		order.ClearDomainEvents()

		require.NoError(t, order.Cancel("out of stock"))

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*OrderCancelledEvent)
		require.True(t, ok)
		assert.Equal(t, OrderStatusPending, event.PreviousStatus)
		assert.Equal(t, "out of stock", event.Reason)
	})
}

// ============================================
// Query helper Tests
// ============================================

func TestOrder_Queries(t *testing.T) {
	order := testOrder(t)

	assert.True(t, order.IsOwnedBy(order.UserID))
	assert.False(t, order.IsOwnedBy(uuid.New()))

	assert.Equal(t, 2, order.ItemCount())
	assert.Equal(t, 3, order.TotalQuantity())

	assert.True(t, order.ContainsProduct(order.Items[0].ProductID))
	assert.False(t, order.ContainsProduct(uuid.New()))
}

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"", "cod", "COD", "cash_on_delivery"} {
		method, err := ParsePaymentMethod(s)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethodCOD, method)
	}

	_, err := ParsePaymentMethod("credit_card")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported payment method")
}
