package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements review.ReviewRepository using GORM.
// Every write recomputes the product's cached rating from the full review
// set inside the same transaction as the review row itself.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserAndProduct finds a user's review for a product
func (r *GormReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*review.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).
		First(&model, "user_id = ? AND product_id = ?", userID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct finds a product's reviews matching the filter
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]review.Review, error) {
	var rows []models.ReviewModel
	query := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("product_id = ?", productID)
	query = applySort(query, filter, ReviewSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	reviews := make([]review.Review, len(rows))
	for i := range rows {
		reviews[i] = *rows[i].ToDomain()
	}
	return reviews, nil
}

// CountByProduct counts a product's reviews
func (r *GormReviewRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByUserAndProduct checks if the user already reviewed the product
func (r *GormReviewRepository) ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a review and recomputes the product's cached rating.
// The unique (user_id, product_id) index backstops the service's duplicate
// check; losing that race surfaces as the same already-reviewed error.
func (r *GormReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	model := models.ReviewModelFromDomain(rev)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			if isUniqueViolation(err) {
				return review.ErrAlreadyReviewed
			}
			return err
		}
		return r.refreshProductRating(tx, rev.ProductID)
	})
}

// Update saves a review and recomputes the product's cached rating
func (r *GormReviewRepository) Update(ctx context.Context, rev *review.Review) error {
	model := models.ReviewModelFromDomain(rev)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return r.refreshProductRating(tx, rev.ProductID)
	})
}

// Delete removes a review and recomputes the product's cached rating
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ReviewModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&models.ReviewModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		return r.refreshProductRating(tx, model.ProductID)
	})
}

// refreshProductRating recomputes the cached rating from the canonical
// review rows. Deriving instead of incrementing keeps the cache from
// drifting no matter which write path ran.
func (r *GormReviewRepository) refreshProductRating(tx *gorm.DB, productID uuid.UUID) error {
	var ratings []int
	if err := tx.Model(&models.ReviewModel{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error; err != nil {
		return err
	}

	average := review.AverageRating(ratings)
	return tx.Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":       average,
			"review_count": len(ratings),
		}).Error
}

// Ensure GormReviewRepository implements ReviewRepository
var _ review.ReviewRepository = (*GormReviewRepository)(nil)
