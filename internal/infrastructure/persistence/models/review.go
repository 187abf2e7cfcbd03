package models

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/review"
)

// ReviewModel is the persistence model for a Review. The unique index on
// (user_id, product_id) backs the one-review-per-user-per-product rule.
type ReviewModel struct {
	BaseModel
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product,priority:1"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product,priority:2;index"`
	Rating         int       `gorm:"not null"`
	Comment        string    `gorm:"type:varchar(2000)"`
	CertifiedBuyer bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		BaseEntity:     m.BaseModel.ToDomain(),
		UserID:         m.UserID,
		ProductID:      m.ProductID,
		Rating:         m.Rating,
		Comment:        m.Comment,
		CertifiedBuyer: m.CertifiedBuyer,
	}
}

// FromDomain populates the persistence model from a domain Review
func (m *ReviewModel) FromDomain(r *review.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.UserID = r.UserID
	m.ProductID = r.ProductID
	m.Rating = r.Rating
	m.Comment = r.Comment
	m.CertifiedBuyer = r.CertifiedBuyer
}

// ReviewModelFromDomain creates a new persistence model from a domain Review
func ReviewModelFromDomain(r *review.Review) *ReviewModel {
	m := &ReviewModel{}
	m.FromDomain(r)
	return m
}
