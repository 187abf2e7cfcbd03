package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// CreateFromCart persists the order, decrements product stock for every
	// snapshot line and empties the user's cart in a single transaction.
	// Either everything commits or nothing does.
	CreateFromCart(ctx context.Context, o *Order) error

	// Save persists status changes on an existing order
	Save(ctx context.Context, o *Order) error

	// GenerateOrderNumber returns the next order number in the per-year
	// sequence (ORD-YYYY-NNNNN)
	GenerateOrderNumber(ctx context.Context) (string, error)

	// HasDeliveredOrderWithProduct reports whether the user has at least one
	// Delivered order containing the product. Used for the certified-buyer
	// flag on reviews.
	HasDeliveredOrderWithProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}
