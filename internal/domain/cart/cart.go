package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartItem represents a line item in a shopping cart.
// Name, UnitPrice and Image are snapshots taken when the item was added;
// they do not follow later catalog changes.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Image     string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subtotal returns UnitPrice * Quantity for this line
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart represents a user's shopping cart aggregate root.
// There is at most one cart per user. Total is a cached value that is
// recomputed from the items after every mutation, never maintained
// incrementally.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID
	Items  []CartItem
	Total  decimal.Decimal
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
		Total:             decimal.Zero,
	}, nil
}

// AddItem adds a product to the cart, capturing name, price and image as a
// snapshot. If the product is already present the quantities are merged.
func (c *Cart) AddItem(productID uuid.UUID, name string, unitPrice decimal.Decimal, image string, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity += quantity
			c.Items[idx].UpdatedAt = now
			c.recalculateTotal()
			c.UpdatedAt = now
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Image:     image,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	c.recalculateTotal()
	c.UpdatedAt = now

	return nil
}

// UpdateItemQuantity sets the quantity of an existing line item.
// A quantity of zero or below removes the line entirely; this is the
// deletion path, not an error.
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			if quantity <= 0 {
				c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			} else {
				c.Items[idx].Quantity = quantity
				c.Items[idx].UpdatedAt = time.Now()
			}
			c.recalculateTotal()
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// RemoveItem removes a line item from the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.recalculateTotal()
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// Clear removes every item and zeroes the total
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.Total = decimal.Zero
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true when the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the number of line items
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// GetItem returns the line item for a product, or nil
func (c *Cart) GetItem(productID uuid.UUID) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}

// recalculateTotal recomputes the cached total from the item list.
// Always a full fold over the items; an incremental running total would
// drift the moment any path forgot to update it.
func (c *Cart) recalculateTotal() {
	total := decimal.Zero
	for idx := range c.Items {
		total = total.Add(c.Items[idx].Subtotal())
	}
	c.Total = total
}
