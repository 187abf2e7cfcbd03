package review

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Review represents a product review. A user may have at most one review
// per product. CertifiedBuyer is evaluated once at creation time and is
// never recomputed when the underlying order later changes status.
type Review struct {
	shared.BaseEntity
	UserID         uuid.UUID
	ProductID      uuid.UUID
	Rating         int
	Comment        string
	CertifiedBuyer bool
}

const commentMaxLen = 2000

// ErrAlreadyReviewed is returned when a user submits a second review for
// the same product
var ErrAlreadyReviewed = shared.NewDomainError("REVIEW_EXISTS", "You have already reviewed this product")

// NewReview creates a new review
func NewReview(userID, productID uuid.UUID, rating int, comment string, certifiedBuyer bool) (*Review, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > commentMaxLen {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment is too long")
	}

	return &Review{
		BaseEntity:     shared.NewBaseEntity(),
		UserID:         userID,
		ProductID:      productID,
		Rating:         rating,
		Comment:        comment,
		CertifiedBuyer: certifiedBuyer,
	}, nil
}

// Update changes the rating and comment. Ownership is checked by the
// application service; CertifiedBuyer is deliberately left untouched.
func (r *Review) Update(rating int, comment string) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > commentMaxLen {
		return shared.NewDomainError("INVALID_COMMENT", "Comment is too long")
	}

	r.Rating = rating
	r.Comment = comment
	r.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy returns true when the review belongs to the given user
func (r *Review) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}

// AverageRating computes the arithmetic mean of the given ratings rounded
// to one decimal place. An empty set yields exactly 0.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10
}
