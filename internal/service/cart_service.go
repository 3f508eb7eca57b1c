package service

import (
	"context"

	"shopflow/internal/models"
	"shopflow/internal/repository"

	"github.com/google/uuid"
)

type CartService struct {
	repo *repository.Repository
}

func NewCartService(repo *repository.Repository) *CartService {
	return &CartService{repo: repo}
}

// Items returns the cart of userID. Admins may read any cart, everyone else
// only their own.
func (s *CartService) Items(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	caller, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin && caller.ID != userID {
		return nil, ErrForbidden
	}
	return s.repo.CartItems.ListByUser(ctx, userID)
}

// Add puts quantity units of a product into the cart. An existing
// (user, product) row is merged by incrementing its quantity.
func (s *CartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	caller, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return nil, err
	}
	if caller.ID != userID {
		return nil, ErrForbidden
	}
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	product, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	existing, err := s.repo.CartItems.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		newQty := existing.Quantity + quantity
		if err := s.repo.CartItems.UpdateQuantity(ctx, existing.ID, newQty); err != nil {
			return nil, err
		}
		existing.Quantity = newQty
		return existing, nil
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.repo.CartItems.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets the absolute quantity of an existing cart row.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	caller, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return nil, err
	}
	if caller.ID != userID {
		return nil, ErrForbidden
	}
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	item, err := s.repo.CartItems.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	if err := s.repo.CartItems.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	caller, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return err
	}
	if caller.ID != userID {
		return ErrForbidden
	}

	ok, err := s.repo.CartItems.DeleteByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	caller, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return err
	}
	if caller.ID != userID {
		return ErrForbidden
	}

	_, err = s.repo.CartItems.ClearByUser(ctx, userID)
	return err
}
