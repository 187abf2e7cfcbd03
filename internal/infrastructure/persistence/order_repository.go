package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds an order by its public order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser finds a user's orders matching the filter
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID),
		filter,
	)
	return r.findOrders(query, filter)
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	return r.findOrders(query, filter)
}

func (r *GormOrderRepository) findOrders(query *gorm.DB, filter shared.Filter) ([]order.Order, error) {
	var rows []models.OrderModel
	query = applySort(query, filter, OrderSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Preload("Items").Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByUser counts all orders ever placed by a user
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateFromCart persists the order, decrements stock for every snapshot
// line and empties the user's cart, all in one transaction.
func (r *GormOrderRepository) CreateFromCart(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&model).Error; err != nil {
			return err
		}
		for i := range model.Items {
			if err := tx.Create(&model.Items[i]).Error; err != nil {
				return err
			}
		}

		// Stock floors at zero; the catalog never blocked adding more units
		// than are on hand
		for _, item := range o.Items {
			if err := tx.Model(&models.ProductModel{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", item.Quantity)).Error; err != nil {
				return err
			}
		}

		var userCart models.CartModel
		if err := tx.First(&userCart, "user_id = ?", o.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("cart_id = ?", userCart.ID).
			Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		return tx.Model(&userCart).
			Updates(map[string]interface{}{"total": 0, "updated_at": time.Now()}).Error
	})
}

// Save persists status changes on an existing order. Item lines are a
// snapshot and never rewritten.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Omit("Items").Save(&model).Error
}

// GenerateOrderNumber returns the next number in the per-year sequence
// (ORD-YYYY-NNNNN). The sequence row is locked for the duration of the
// transaction, so concurrent placements get strictly increasing numbers.
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	year := time.Now().UTC().Year()
	var value int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq models.OrderSequenceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "year = ?", year).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			seq = models.OrderSequenceModel{Year: year, NextValue: 1, UpdatedAt: time.Now()}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		}

		value = seq.NextValue
		seq.NextValue++
		seq.UpdatedAt = time.Now()
		return tx.Save(&seq).Error
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("ORD-%d-%05d", year, value), nil
}

// HasDeliveredOrderWithProduct reports whether the user has a Delivered
// order containing the product
func (r *GormOrderRepository) HasDeliveredOrderWithProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			userID, order.OrderStatusDelivered, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies status and date filters to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"].(string); ok {
		query = query.Where("status = ?", status)
	}
	if start, ok := filter.Filters["start_date"].(time.Time); ok {
		query = query.Where("created_at >= ?", start)
	}
	if end, ok := filter.Filters["end_date"].(time.Time); ok {
		query = query.Where("created_at <= ?", end)
	}
	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ order.OrderRepository = (*GormOrderRepository)(nil)
