package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReviewRepository is a mock implementation of review.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CreateFromCart(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) HasDeliveredOrderWithProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func newTestProduct(t *testing.T) *catalog.Product {
	p, err := catalog.NewProduct("SKU-001", "widget", "Widget", decimal.NewFromFloat(19.99))
	require.NoError(t, err)
	return p
}

func TestReviewService_Create(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("creates a review with the certified buyer flag", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		orderRepo := new(MockOrderRepository)
		service := NewReviewService(reviewRepo, productRepo, orderRepo)

		productRepo.On("FindByID", mock.Anything, productID).Return(newTestProduct(t), nil)
		reviewRepo.On("ExistsByUserAndProduct", mock.Anything, userID, productID).Return(false, nil)
		orderRepo.On("HasDeliveredOrderWithProduct", mock.Anything, userID, productID).Return(true, nil)
		reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*review.Review")).Return(nil)

		resp, err := service.Create(context.Background(), userID, productID, CreateReviewRequest{
			Rating:  5,
			Comment: "Great product",
		})
		require.NoError(t, err)

		assert.Equal(t, 5, resp.Rating)
		assert.True(t, resp.CertifiedBuyer)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("not certified without a delivered order", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		orderRepo := new(MockOrderRepository)
		service := NewReviewService(reviewRepo, productRepo, orderRepo)

		productRepo.On("FindByID", mock.Anything, productID).Return(newTestProduct(t), nil)
		reviewRepo.On("ExistsByUserAndProduct", mock.Anything, userID, productID).Return(false, nil)
		orderRepo.On("HasDeliveredOrderWithProduct", mock.Anything, userID, productID).Return(false, nil)
		reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*review.Review")).Return(nil)

		resp, err := service.Create(context.Background(), userID, productID, CreateReviewRequest{Rating: 3})
		require.NoError(t, err)
		assert.False(t, resp.CertifiedBuyer)
	})

	t.Run("rejects a second review for the same product", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		orderRepo := new(MockOrderRepository)
		service := NewReviewService(reviewRepo, productRepo, orderRepo)

		productRepo.On("FindByID", mock.Anything, productID).Return(newTestProduct(t), nil)
		reviewRepo.On("ExistsByUserAndProduct", mock.Anything, userID, productID).Return(true, nil)

		_, err := service.Create(context.Background(), userID, productID, CreateReviewRequest{Rating: 4})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "REVIEW_EXISTS", domainErr.Code)
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("reviewing an absent product is not found", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		service := NewReviewService(reviewRepo, productRepo, new(MockOrderRepository))

		productRepo.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(context.Background(), userID, productID, CreateReviewRequest{Rating: 5})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		reviewRepo.AssertNotCalled(t, "ExistsByUserAndProduct", mock.Anything, mock.Anything, mock.Anything)
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("losing the duplicate race surfaces as already reviewed", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		orderRepo := new(MockOrderRepository)
		service := NewReviewService(reviewRepo, productRepo, orderRepo)

		productRepo.On("FindByID", mock.Anything, productID).Return(newTestProduct(t), nil)
		reviewRepo.On("ExistsByUserAndProduct", mock.Anything, userID, productID).Return(false, nil)
		orderRepo.On("HasDeliveredOrderWithProduct", mock.Anything, userID, productID).Return(false, nil)
		reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*review.Review")).
			Return(review.ErrAlreadyReviewed)

		_, err := service.Create(context.Background(), userID, productID, CreateReviewRequest{Rating: 4})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "REVIEW_EXISTS", domainErr.Code)
	})

	t.Run("invalid rating never reaches the repository", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		orderRepo := new(MockOrderRepository)
		service := NewReviewService(reviewRepo, productRepo, orderRepo)

		productRepo.On("FindByID", mock.Anything, productID).Return(newTestProduct(t), nil)
		reviewRepo.On("ExistsByUserAndProduct", mock.Anything, userID, productID).Return(false, nil)
		orderRepo.On("HasDeliveredOrderWithProduct", mock.Anything, userID, productID).Return(false, nil)

		_, err := service.Create(context.Background(), userID, productID, CreateReviewRequest{Rating: 6})
		require.Error(t, err)
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReviewService_Update(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("owner can edit, certified flag is untouched", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository), new(MockOrderRepository))

		existing, err := review.NewReview(userID, productID, 4, "Good", true)
		require.NoError(t, err)

		reviewRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		reviewRepo.On("Update", mock.Anything, existing).Return(nil)

		resp, err := service.Update(context.Background(), existing.ID, userID, UpdateReviewRequest{
			Rating:  2,
			Comment: "Broke after a week",
		})
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Rating)
		assert.Equal(t, "Broke after a week", resp.Comment)
		assert.True(t, resp.CertifiedBuyer)
	})

	t.Run("another user cannot edit", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository), new(MockOrderRepository))

		existing, err := review.NewReview(userID, productID, 4, "Good", false)
		require.NoError(t, err)
		reviewRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

		_, err = service.Update(context.Background(), existing.ID, uuid.New(), UpdateReviewRequest{Rating: 1})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestReviewService_Delete(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("owner can delete", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository), new(MockOrderRepository))

		existing, err := review.NewReview(userID, productID, 4, "", false)
		require.NoError(t, err)
		reviewRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		reviewRepo.On("Delete", mock.Anything, existing.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), existing.ID, userID, false))
		reviewRepo.AssertExpectations(t)
	})

	t.Run("admin can delete any review", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository), new(MockOrderRepository))

		existing, err := review.NewReview(userID, productID, 4, "", false)
		require.NoError(t, err)
		reviewRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		reviewRepo.On("Delete", mock.Anything, existing.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), existing.ID, uuid.New(), true))
	})

	t.Run("another user cannot delete", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository), new(MockOrderRepository))

		existing, err := review.NewReview(userID, productID, 4, "", false)
		require.NoError(t, err)
		reviewRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

		err = service.Delete(context.Background(), existing.ID, uuid.New(), false)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestReviewService_ListByProduct(t *testing.T) {
	productID := uuid.New()

	reviewRepo := new(MockReviewRepository)
	service := NewReviewService(reviewRepo, new(MockProductRepository), new(MockOrderRepository))

	first, err := review.NewReview(uuid.New(), productID, 5, "Excellent", true)
	require.NoError(t, err)
	second, err := review.NewReview(uuid.New(), productID, 3, "Average", false)
	require.NoError(t, err)

	reviewRepo.On("FindByProduct", mock.Anything, productID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return([]review.Review{*first, *second}, nil)
	reviewRepo.On("CountByProduct", mock.Anything, productID).Return(int64(2), nil)

	responses, total, err := service.ListByProduct(context.Background(), productID, ReviewListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, responses, 2)
	assert.Equal(t, 5, responses[0].Rating)
}
