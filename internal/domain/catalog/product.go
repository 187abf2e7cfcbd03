package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Product represents a catalog product aggregate root.
// Rating and ReviewCount are derived values owned by the review subsystem;
// they are recomputed from the canonical review store, never incremented.
type Product struct {
	shared.BaseAggregateRoot
	SKU         string
	Slug        string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	Tags        []string
	Images      []string
	Rating      float64
	ReviewCount int
	Active      bool
}

// NewProduct creates a new product
func NewProduct(sku, slug, name string, price decimal.Decimal) (*Product, error) {
	sku = strings.TrimSpace(sku)
	slug = strings.TrimSpace(slug)
	name = strings.TrimSpace(name)

	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 200 {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 200 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Slug:              slug,
		Name:              name,
		Price:             price,
		Tags:              make([]string, 0),
		Images:            make([]string, 0),
		Active:            true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// UpdateDetails updates the product's descriptive fields
func (p *Product) UpdateDetails(name, description, category string, tags, images []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}

	p.Name = name
	p.Description = description
	p.Category = strings.TrimSpace(category)
	if tags != nil {
		p.Tags = tags
	}
	if images != nil {
		p.Images = images
	}
	p.UpdatedAt = time.Now()

	return nil
}

// ChangePrice sets a new price
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if price.Equal(p.Price) {
		return nil
	}

	old := p.Price
	p.Price = price
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, old))

	return nil
}

// SetStock replaces the stock count
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

// AdjustStock applies a delta to the stock count, clamping at zero.
// The storefront never enforced stock bounds at add-to-cart time, so a
// placement can legitimately drive the counter to the floor.
func (p *Product) AdjustStock(delta int) {
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.UpdatedAt = time.Now()
}

// ApplyRating replaces the cached rating summary.
// The average must already be rounded to one decimal place by the caller.
func (p *Product) ApplyRating(average float64, count int) error {
	if average < 0 || average > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	if count < 0 {
		return shared.NewDomainError("INVALID_RATING", "Review count cannot be negative")
	}
	p.Rating = average
	p.ReviewCount = count
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the product from the public catalog without deleting it
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Activate returns the product to the public catalog
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// FirstImage returns the primary image URL, or empty when none is set
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// InStock returns true when at least one unit is available
func (p *Product) InStock() bool {
	return p.Stock > 0
}
