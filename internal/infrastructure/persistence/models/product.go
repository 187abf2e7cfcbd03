package models

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	AggregateModel
	SKU         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Slug        string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
	Category    string          `gorm:"type:varchar(100);index"`
	Tags        pq.StringArray  `gorm:"type:text[]"`
	Images      pq.StringArray  `gorm:"type:text[]"`
	Rating      float64         `gorm:"not null;default:0"`
	ReviewCount int             `gorm:"not null;default:0"`
	Active      bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	product := &catalog.Product{
		SKU:         m.SKU,
		Slug:        m.Slug,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		Category:    m.Category,
		Tags:        []string(m.Tags),
		Images:      []string(m.Images),
		Rating:      m.Rating,
		ReviewCount: m.ReviewCount,
		Active:      m.Active,
	}
	product.BaseAggregateRoot = shared.BaseAggregateRoot{}
	m.PopulateAggregateRoot(&product.BaseAggregateRoot)
	return product
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.SKU = p.SKU
	m.Slug = p.Slug
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Stock = p.Stock
	m.Category = p.Category
	m.Tags = pq.StringArray(p.Tags)
	m.Images = pq.StringArray(p.Images)
	m.Rating = p.Rating
	m.ReviewCount = p.ReviewCount
	m.Active = p.Active
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
