package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopflow/internal/models"
	"shopflow/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// orderNumberAttempts bounds the retry loop on order-number collisions. The
// number is unique-indexed, so two same-day creations racing to the same
// sequence make one of them collide and re-run the transaction.
const orderNumberAttempts = 3

type CreateOrderItem struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderInput struct {
	ShippingAddress string
	Status          models.OrderStatus // empty means pending
	Items           []CreateOrderItem
	ClearCart       bool
}

type OrderListFilter struct {
	Status     *models.OrderStatus
	CustomerID *uuid.UUID // admin only; ignored for customers
}

type OrderService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) *OrderService {
	return &OrderService{
		repo: repo,
		now:  time.Now,
		log:  log,
	}
}

// Create validates every line item, then commits the order, its item
// snapshots, the stock decrements and the optional cart clear in one
// transaction. A failure anywhere rolls back everything.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	caller, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return nil, err
	}

	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}

	status := in.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	var order *models.Order
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order, err = s.createOnce(ctx, caller, status, in)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		s.log.Warn("order number collision, retrying", zap.Int("attempt", attempt+1))
	}
	return nil, err
}

func (s *OrderService) createOnce(ctx context.Context, caller *models.User, status models.OrderStatus, in CreateOrderInput) (*models.Order, error) {
	var order *models.Order

	err := s.repo.Orders.WithTx(ctx, func(tx *repository.Repository) error {
		// Phase one: validate every line item before touching anything.
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			if it.Quantity <= 0 {
				return ErrQuantityInvalid
			}
			p, err := tx.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil || !p.IsActive {
				return ErrProductNotFound
			}
			if p.StockQuantity < it.Quantity {
				return ErrInsufficientStock
			}

			lineTotal := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			total = total.Add(lineTotal)

			items = append(items, models.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				ProductSKU:  p.SKU,
				Quantity:    it.Quantity,
				UnitPrice:   p.Price,
				TotalPrice:  lineTotal,
			})
		}

		number, err := s.nextOrderNumber(ctx, tx)
		if err != nil {
			return err
		}

		// Phase two: commit. The unique order_number index may still fire
		// here under a same-day race; the caller retries the whole tx.
		order = &models.Order{
			OrderNumber:     number,
			CustomerID:      caller.ID,
			CustomerName:    caller.FullName(),
			CustomerEmail:   caller.Email,
			Status:          status,
			TotalAmount:     total,
			ShippingAddress: in.ShippingAddress,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.OrderItems.BulkCreate(ctx, items); err != nil {
			return err
		}
		order.Items = items

		for _, it := range items {
			ok, err := tx.Products.DecrementStock(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// Stock moved under us between validation and commit.
				return ErrInsufficientStock
			}
		}

		if in.ClearCart {
			if _, err := tx.CartItems.ClearByUser(ctx, caller.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("customerId", order.CustomerID.String()),
		zap.String("total", order.TotalAmount.String()))
	return order, nil
}

// nextOrderNumber builds ORD-YYYYMMDD-NNN where NNN is the count of orders
// created since local midnight, plus one.
func (s *OrderService) nextOrderNumber(ctx context.Context, tx *repository.Repository) (string, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := tx.Orders.CountCreatedSince(ctx, midnight)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%03d", now.Format("20060102"), count+1), nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	caller, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if caller.Role != models.RoleAdmin && ord.CustomerID != caller.ID {
		return nil, ErrForbidden
	}
	return ord, nil
}

func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	caller, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if caller.Role != models.RoleAdmin && ord.CustomerID != caller.ID {
		return nil, ErrForbidden
	}
	return ord, nil
}

func (s *OrderService) List(ctx context.Context, f OrderListFilter) ([]models.Order, error) {
	caller, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return nil, err
	}

	filter := repository.OrderListFilter{Status: f.Status}
	if caller.Role == models.RoleAdmin {
		filter.CustomerID = f.CustomerID
	} else {
		filter.CustomerID = &caller.ID
	}
	return s.repo.Orders.List(ctx, filter)
}

// UpdateStatus sets any of the five valid statuses. Transitions are
// deliberately unconstrained for admins; only cancellation has state rules.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if _, err := requireAdmin(ctx, s.repo.Users); err != nil {
		return nil, err
	}
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.repo.Orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.Orders.GetByID(ctx, id)
}

// Cancel moves a non-terminal order to cancelled and restores the stock its
// items consumed. Restore is best effort per item: a product that has since
// vanished is skipped, not fatal.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	caller, err := currentUser(ctx, s.repo.Users)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if caller.Role != models.RoleAdmin && ord.CustomerID != caller.ID {
		return nil, ErrForbidden
	}
	if ord.Status.IsTerminal() {
		return nil, ErrOrderNotCancellable
	}

	err = s.repo.Orders.WithTx(ctx, func(tx *repository.Repository) error {
		if ord.Status == models.OrderStatusPending || ord.Status == models.OrderStatusProcessing {
			for _, item := range ord.Items {
				ok, err := tx.Products.IncrementStock(ctx, item.ProductID, item.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					s.log.Warn("skipping stock restore for missing product",
						zap.String("productId", item.ProductID.String()))
				}
			}
		}
		return tx.Orders.UpdateStatus(ctx, id, models.OrderStatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order cancelled", zap.String("orderNumber", ord.OrderNumber))
	return s.repo.Orders.GetByID(ctx, id)
}
