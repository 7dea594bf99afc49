package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mvalodim/pet_shop/internal/models"
	"github.com/mvalodim/pet_shop/internal/repo"
	"github.com/mvalodim/pet_shop/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

// GetItems returns the cart enriched with each product's current state; a row
// whose product has been deleted keeps a null product instead of vanishing.
func (s *CartService) GetItems(ctx context.Context, userID string) ([]transport.CartItemResponse, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.CartItemResponse, 0, len(items))
	for _, item := range items {
		resp := transport.CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}

		product, err := s.Repo.GetProduct(ctx, item.ProductID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if product != nil {
			p := transport.ProductFromModel(product)
			resp.Product = &p
		}

		out = append(out, resp)
	}
	return out, nil
}

func (s *CartService) AddItem(ctx context.Context, userID string, req transport.AddCartItemRequest) (*models.CartItem, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("product_id required: %w", ErrValidation)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be >= 1: %w", ErrValidation)
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID uint) error {
	err := s.Repo.RemoveCartItem(ctx, itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
	}
	return err
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID string, itemID uint, quantity uint) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be >= 1: %w", ErrValidation)
	}

	item, err := s.Repo.UpdateCartItemQuantity(ctx, itemID, userID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.Repo.ClearCart(ctx, userID)
}
