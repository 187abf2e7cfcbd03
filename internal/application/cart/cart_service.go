package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartService handles shopping cart operations. Each user has at most one
// cart, created lazily on first access.
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get returns the user's cart, creating an empty one if none exists yet
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	userCart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(userCart)
	return &response, nil
}

// AddItem adds a product to the user's cart. The product's current name,
// price and image are captured as a snapshot on the line item.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available")
	}

	userCart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := userCart.AddItem(product.ID, product.Name, product.Price, product.FirstImage(), req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	response := ToCartResponse(userCart)
	return &response, nil
}

// UpdateItem sets the quantity of a cart line. Quantity zero or below
// removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := userCart.UpdateItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	response := ToCartResponse(userCart)
	return &response, nil
}

// RemoveItem removes a product's line from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := userCart.RemoveItem(productID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	response := ToCartResponse(userCart)
	return &response, nil
}

// Clear empties the user's cart. Clearing a cart that was never created is
// not an error.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.Get(ctx, userID)
		}
		return nil, err
	}

	userCart.Clear()

	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	response := ToCartResponse(userCart)
	return &response, nil
}

func (s *CartService) getOrCreate(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return userCart, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	userCart, err = cart.NewCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}
	return userCart, nil
}
