package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines persistence operations for carts
type CartRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id uuid.UUID) error
}
