package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
)

// ReviewService handles product review operations. The repository runs each
// review write together with the product's cached-rating recompute in one
// transaction, so the cached rating can never drift from the review store.
type ReviewService struct {
	reviewRepo  review.ReviewRepository
	productRepo catalog.ProductRepository
	orderRepo   order.OrderRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo review.ReviewRepository, productRepo catalog.ProductRepository, orderRepo order.OrderRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Create adds a review for a product. A user may review a product once;
// the certified-buyer flag is evaluated here, at creation time, and never
// again.
func (s *ReviewService) Create(ctx context.Context, userID, productID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, review.ErrAlreadyReviewed
	}

	certified, err := s.orderRepo.HasDeliveredOrderWithProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	r, err := review.NewReview(userID, productID, req.Rating, req.Comment, certified)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// Update edits the caller's own review
func (s *ReviewService) Update(ctx context.Context, reviewID, userID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !r.IsOwnedBy(userID) {
		return nil, shared.ErrForbidden
	}

	if err := r.Update(req.Rating, req.Comment); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// Delete removes a review. Owners can delete their own; admins can delete
// any.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID uuid.UUID, isAdmin bool) error {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !isAdmin && !r.IsOwnedBy(userID) {
		return shared.ErrForbidden
	}

	return s.reviewRepo.Delete(ctx, r.ID)
}

// ListByProduct retrieves a product's reviews with pagination
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, filter ReviewListFilter) ([]ReviewResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.reviewRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}

	return ToReviewResponses(reviews), total, nil
}

// GetUserReview returns the caller's review for a product, if any
func (s *ReviewService) GetUserReview(ctx context.Context, userID, productID uuid.UUID) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	response := ToReviewResponse(r)
	return &response, nil
}
