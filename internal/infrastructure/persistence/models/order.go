package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OrderModel is the persistence model for the Order aggregate root.
// The shipping address is stored as a JSONB document; item lines live in
// their own table and never change after the order is created.
type OrderModel struct {
	AggregateModel
	OrderNumber     string                      `gorm:"type:varchar(50);not null;uniqueIndex"`
	UserID          uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Items           []OrderItemModel            `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount     decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0"`
	Status          order.OrderStatus           `gorm:"type:varchar(20);not null;default:'Pending';index"`
	ShippingAddress valueobject.ShippingAddress `gorm:"type:jsonb;not null"`
	PaymentMethod   order.PaymentMethod         `gorm:"type:varchar(30);not null;default:'cod'"`
	ProcessingAt    *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		OrderNumber:     m.OrderNumber,
		UserID:          m.UserID,
		TotalAmount:     m.TotalAmount,
		Status:          m.Status,
		ShippingAddress: m.ShippingAddress,
		PaymentMethod:   m.PaymentMethod,
		ProcessingAt:    m.ProcessingAt,
		ShippedAt:       m.ShippedAt,
		DeliveredAt:     m.DeliveredAt,
		CancelledAt:     m.CancelledAt,
		CancelReason:    m.CancelReason,
		Items:           make([]order.OrderItem, len(m.Items)),
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)
	for i, item := range m.Items {
		o.Items[i] = item.ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.UserID = o.UserID
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.ShippingAddress = o.ShippingAddress
	m.PaymentMethod = o.PaymentMethod
	m.ProcessingAt = o.ProcessingAt
	m.ShippedAt = o.ShippedAt
	m.DeliveredAt = o.DeliveredAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModelFromDomain(item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line snapshot.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Image     string          `gorm:"type:varchar(500)"`
	Quantity  int             `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() order.OrderItem {
	return order.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Name:      m.Name,
		UnitPrice: m.UnitPrice,
		Image:     m.Image,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem
func OrderItemModelFromDomain(item order.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Image:     item.Image,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
	}
}

// OrderSequenceModel backs the per-year order number sequence. One row per
// year; NextValue is bumped under a row lock so numbers are monotonic even
// with concurrent placements.
type OrderSequenceModel struct {
	Year      int       `gorm:"primary_key"`
	NextValue int64     `gorm:"not null;default:1"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderSequenceModel) TableName() string {
	return "order_sequences"
}
