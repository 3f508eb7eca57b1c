package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopflow/internal/models"
	"shopflow/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func activeProduct(price string, stock int) *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		Name:          "Wireless Headphones",
		SKU:           "HP-001",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestOrderService_Create(t *testing.T) {
	customer := customerFixture()
	product := activeProduct("299.99", 15)

	var created *models.Order
	var bulkItems []models.OrderItem
	var decremented int
	var cartCleared bool

	orders := &MockOrderRepo{
		CreateFunc: func(_ context.Context, o *models.Order) error {
			o.ID = uuid.New()
			created = o
			return nil
		},
		CountCreatedSinceFunc: func(_ context.Context, _ time.Time) (int64, error) {
			return 4, nil
		},
	}
	products := &MockProductRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*models.Product, error) {
			if id == product.ID {
				return product, nil
			}
			return nil, nil
		},
		DecrementStockFunc: func(_ context.Context, id uuid.UUID, qty int) (bool, error) {
			decremented += qty
			return true, nil
		},
	}
	carts := &MockCartRepo{
		ClearByUserFunc: func(_ context.Context, userID uuid.UUID) (int64, error) {
			cartCleared = true
			return 1, nil
		},
	}
	items := &MockOrderItemRepo{
		BulkCreateFunc: func(_ context.Context, its []models.OrderItem) error {
			bulkItems = its
			return nil
		},
	}

	repo := testRepository(singleUser(customer), products, carts, orders, items)
	svc := NewOrderService(repo, zap.NewNop())
	svc.now = fixedClock(time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC))

	ctx := WithUserID(context.Background(), customer.ID)
	order, err := svc.Create(ctx, CreateOrderInput{
		ShippingAddress: "1 Main St",
		Items:           []CreateOrderItem{{ProductID: product.ID, Quantity: 3}},
		ClearCart:       true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if order.OrderNumber != "ORD-20240515-005" {
		t.Errorf("order number = %q, want ORD-20240515-005", order.OrderNumber)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("899.97")) {
		t.Errorf("total = %s, want 899.97", order.TotalAmount)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if order.CustomerName != "John Doe" || order.CustomerEmail != customer.Email {
		t.Errorf("customer snapshot = %q/%q", order.CustomerName, order.CustomerEmail)
	}
	if created == nil {
		t.Fatal("order row was never created")
	}
	if len(bulkItems) != 1 {
		t.Fatalf("order items = %d, want 1", len(bulkItems))
	}
	it := bulkItems[0]
	if it.OrderID != created.ID {
		t.Errorf("item order id = %s, want %s", it.OrderID, created.ID)
	}
	if it.ProductName != product.Name || it.ProductSKU != product.SKU {
		t.Errorf("item snapshot = %q/%q", it.ProductName, it.ProductSKU)
	}
	if !it.UnitPrice.Equal(product.Price) || !it.TotalPrice.Equal(decimal.RequireFromString("899.97")) {
		t.Errorf("item prices = %s/%s", it.UnitPrice, it.TotalPrice)
	}
	if decremented != 3 {
		t.Errorf("decremented stock = %d, want 3", decremented)
	}
	if !cartCleared {
		t.Error("cart was not cleared")
	}
}

func TestOrderService_Create_EmptyItems(t *testing.T) {
	customer := customerFixture()
	repo := testRepository(singleUser(customer), nil, nil, nil, nil)
	svc := NewOrderService(repo, zap.NewNop())

	ctx := WithUserID(context.Background(), customer.ID)
	if _, err := svc.Create(ctx, CreateOrderInput{ShippingAddress: "1 Main St"}); !errors.Is(err, ErrEmptyItems) {
		t.Fatalf("err = %v, want ErrEmptyItems", err)
	}
}

func TestOrderService_Create_Unauthenticated(t *testing.T) {
	repo := testRepository(nil, nil, nil, nil, nil)
	svc := NewOrderService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateOrderInput{
		Items: []CreateOrderItem{{ProductID: uuid.New(), Quantity: 1}},
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestOrderService_Create_InvalidStatus(t *testing.T) {
	customer := customerFixture()
	repo := testRepository(singleUser(customer), nil, nil, nil, nil)
	svc := NewOrderService(repo, zap.NewNop())

	ctx := WithUserID(context.Background(), customer.ID)
	_, err := svc.Create(ctx, CreateOrderInput{
		Status: "archived",
		Items:  []CreateOrderItem{{ProductID: uuid.New(), Quantity: 1}},
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestOrderService_Create_InsufficientStock(t *testing.T) {
	customer := customerFixture()
	product := activeProduct("129.99", 2)

	createCalled := false
	orders := &MockOrderRepo{
		CreateFunc: func(_ context.Context, _ *models.Order) error {
			createCalled = true
			return nil
		},
	}
	products := &MockProductRepo{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*models.Product, error) {
			return product, nil
		},
	}

	repo := testRepository(singleUser(customer), products, nil, orders, nil)
	svc := NewOrderService(repo, zap.NewNop())

	ctx := WithUserID(context.Background(), customer.ID)
	_, err := svc.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItem{{ProductID: product.ID, Quantity: 3}},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if createCalled {
		t.Error("order row created despite failed validation")
	}
}

func TestOrderService_Create_InvalidQuantity(t *testing.T) {
	customer := customerFixture()
	repo := testRepository(singleUser(customer), nil, nil, nil, nil)
	svc := NewOrderService(repo, zap.NewNop())

	ctx := WithUserID(context.Background(), customer.ID)
	_, err := svc.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItem{{ProductID: uuid.New(), Quantity: 0}},
	})
	if !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("err = %v, want ErrQuantityInvalid", err)
	}
}

func TestOrderService_Create_InactiveProduct(t *testing.T) {
	customer := customerFixture()
	product := activeProduct("99.99", 10)
	product.IsActive = false

	products := &MockProductRepo{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*models.Product, error) {
			return product, nil
		},
	}
	repo := testRepository(singleUser(customer), products, nil, nil, nil)
	svc := NewOrderService(repo, zap.NewNop())

	ctx := WithUserID(context.Background(), customer.ID)
	_, err := svc.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestOrderService_Create_RetriesOnNumberCollision(t *testing.T) {
	customer := customerFixture()
	product := activeProduct("49.99", 10)

	attempts := 0
	orders := &MockOrderRepo{
		CreateFunc: func(_ context.Context, o *models.Order) error {
			attempts++
			if attempts == 1 {
				return gorm.ErrDuplicatedKey
			}
			o.ID = uuid.New()
			return nil
		},
		CountCreatedSinceFunc: func(_ context.Context, _ time.Time) (int64, error) {
			// As if another order landed between the two attempts.
			return int64(attempts), nil
		},
	}
	products := &MockProductRepo{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*models.Product, error) {
			return product, nil
		},
	}

	repo := testRepository(singleUser(customer), products, nil, orders, nil)
	svc := NewOrderService(repo, zap.NewNop())
	svc.now = fixedClock(time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC))

	ctx := WithUserID(context.Background(), customer.ID)
	order, err := svc.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if order.OrderNumber != "ORD-20240515-002" {
		t.Errorf("order number = %q, want ORD-20240515-002", order.OrderNumber)
	}
}

func TestOrderService_Create_GivesUpAfterRepeatedCollisions(t *testing.T) {
	customer := customerFixture()
	product := activeProduct("49.99", 10)

	attempts := 0
	orders := &MockOrderRepo{
		CreateFunc: func(_ context.Context, _ *models.Order) error {
			attempts++
			return gorm.ErrDuplicatedKey
		},
	}
	products := &MockProductRepo{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*models.Product, error) {
			return product, nil
		},
	}

	repo := testRepository(singleUser(customer), products, nil, orders, nil)
	svc := NewOrderService(repo, zap.NewNop())

	ctx := WithUserID(context.Background(), customer.ID)
	_, err := svc.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("err = %v, want duplicated key", err)
	}
	if attempts != orderNumberAttempts {
		t.Errorf("attempts = %d, want %d", attempts, orderNumberAttempts)
	}
}

func TestOrderService_Get_OwnershipEnforced(t *testing.T) {
	owner := customerFixture()
	stranger := customerFixture()
	admin := adminFixture()

	order := &models.Order{ID: uuid.New(), OrderNumber: "ORD-20240515-001", CustomerID: owner.ID}
	orders := &MockOrderRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*models.Order, error) {
			if id == order.ID {
				return order, nil
			}
			return nil, nil
		},
	}

	lookup := func(users ...*models.User) *MockUserRepo {
		return &MockUserRepo{
			GetByIDFunc: func(_ context.Context, id uuid.UUID) (*models.User, error) {
				for _, u := range users {
					if u.ID == id {
						return u, nil
					}
				}
				return nil, nil
			},
		}
	}

	repo := testRepository(lookup(owner, stranger, admin), nil, nil, orders, nil)
	svc := NewOrderService(repo, zap.NewNop())

	if _, err := svc.Get(WithUserID(context.Background(), owner.ID), order.ID); err != nil {
		t.Errorf("owner get: %v", err)
	}
	if _, err := svc.Get(WithUserID(context.Background(), admin.ID), order.ID); err != nil {
		t.Errorf("admin get: %v", err)
	}
	if _, err := svc.Get(WithUserID(context.Background(), stranger.ID), order.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger get err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(WithUserID(context.Background(), owner.ID), uuid.New()); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("missing order err = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderService_List_CustomerScopedToSelf(t *testing.T) {
	customer := customerFixture()
	other := uuid.New()

	var gotFilter repository.OrderListFilter
	orders := &MockOrderRepo{
		ListFunc: func(_ context.Context, f repository.OrderListFilter) ([]models.Order, error) {
			gotFilter = f
			return nil, nil
		},
	}
	repo := testRepository(singleUser(customer), nil, nil, orders, nil)
	svc := NewOrderService(repo, zap.NewNop())

	ctx := WithUserID(context.Background(), customer.ID)
	if _, err := svc.List(ctx, OrderListFilter{CustomerID: &other}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotFilter.CustomerID == nil || *gotFilter.CustomerID != customer.ID {
		t.Errorf("filter customer = %v, want caller's own id", gotFilter.CustomerID)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	admin := adminFixture()
	customer := customerFixture()
	order := &models.Order{ID: uuid.New(), CustomerID: customer.ID, Status: models.OrderStatusPending}

	var updatedTo models.OrderStatus
	orders := &MockOrderRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*models.Order, error) {
			if id == order.ID {
				return order, nil
			}
			return nil, nil
		},
		UpdateStatusFunc: func(_ context.Context, _ uuid.UUID, status models.OrderStatus) error {
			updatedTo = status
			return nil
		},
	}

	lookup := &MockUserRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			switch id {
			case admin.ID:
				return admin, nil
			case customer.ID:
				return customer, nil
			}
			return nil, nil
		},
	}
	repo := testRepository(lookup, nil, nil, orders, nil)
	svc := NewOrderService(repo, zap.NewNop())

	adminCtx := WithUserID(context.Background(), admin.ID)
	if _, err := svc.UpdateStatus(adminCtx, order.ID, models.OrderStatusShipped); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updatedTo != models.OrderStatusShipped {
		t.Errorf("updated to %s, want shipped", updatedTo)
	}

	if _, err := svc.UpdateStatus(adminCtx, order.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("invalid status err = %v, want ErrInvalidStatus", err)
	}

	customerCtx := WithUserID(context.Background(), customer.ID)
	if _, err := svc.UpdateStatus(customerCtx, order.ID, models.OrderStatusShipped); !errors.Is(err, ErrForbidden) {
		t.Errorf("customer err = %v, want ErrForbidden", err)
	}
}

func TestOrderService_Cancel_RestoresStock(t *testing.T) {
	customer := customerFixture()
	productID := uuid.New()
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Status:     models.OrderStatusPending,
		Items:      []models.OrderItem{{ProductID: productID, Quantity: 3}},
	}

	restored := 0
	var finalStatus models.OrderStatus
	orders := &MockOrderRepo{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*models.Order, error) {
			return order, nil
		},
		UpdateStatusFunc: func(_ context.Context, _ uuid.UUID, status models.OrderStatus) error {
			finalStatus = status
			return nil
		},
	}
	products := &MockProductRepo{
		IncrementStockFunc: func(_ context.Context, id uuid.UUID, qty int) (bool, error) {
			if id != productID {
				t.Errorf("restored wrong product %s", id)
			}
			restored += qty
			return true, nil
		},
	}

	repo := testRepository(singleUser(customer), products, nil, orders, nil)
	svc := NewOrderService(repo, zap.NewNop())

	ctx := WithUserID(context.Background(), customer.ID)
	if _, err := svc.Cancel(ctx, order.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if restored != 3 {
		t.Errorf("restored = %d, want 3", restored)
	}
	if finalStatus != models.OrderStatusCancelled {
		t.Errorf("status = %s, want cancelled", finalStatus)
	}
}

func TestOrderService_Cancel_ShippedSkipsRestore(t *testing.T) {
	customer := customerFixture()
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Status:     models.OrderStatusShipped,
		Items:      []models.OrderItem{{ProductID: uuid.New(), Quantity: 2}},
	}

	orders := &MockOrderRepo{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*models.Order, error) {
			return order, nil
		},
	}
	products := &MockProductRepo{
		IncrementStockFunc: func(_ context.Context, _ uuid.UUID, _ int) (bool, error) {
			t.Error("stock restored for a shipped order")
			return true, nil
		},
	}

	repo := testRepository(singleUser(customer), products, nil, orders, nil)
	svc := NewOrderService(repo, zap.NewNop())

	ctx := WithUserID(context.Background(), customer.ID)
	if _, err := svc.Cancel(ctx, order.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
}

func TestOrderService_Cancel_TerminalRejected(t *testing.T) {
	customer := customerFixture()
	for _, status := range []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusCancelled} {
		order := &models.Order{ID: uuid.New(), CustomerID: customer.ID, Status: status}
		orders := &MockOrderRepo{
			GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*models.Order, error) {
				return order, nil
			},
		}
		repo := testRepository(singleUser(customer), nil, nil, orders, nil)
		svc := NewOrderService(repo, zap.NewNop())

		ctx := WithUserID(context.Background(), customer.ID)
		if _, err := svc.Cancel(ctx, order.ID); !errors.Is(err, ErrOrderNotCancellable) {
			t.Errorf("cancel %s err = %v, want ErrOrderNotCancellable", status, err)
		}
	}
}

func TestOrderService_Cancel_ForbiddenForStranger(t *testing.T) {
	owner := customerFixture()
	stranger := customerFixture()
	order := &models.Order{ID: uuid.New(), CustomerID: owner.ID, Status: models.OrderStatusPending}

	orders := &MockOrderRepo{
		GetByIDFunc: func(_ context.Context, _ uuid.UUID) (*models.Order, error) {
			return order, nil
		},
	}
	repo := testRepository(singleUser(stranger), nil, nil, orders, nil)
	svc := NewOrderService(repo, zap.NewNop())

	ctx := WithUserID(context.Background(), stranger.ID)
	if _, err := svc.Cancel(ctx, order.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}
