package service

import (
	"context"
	"time"

	"shopflow/internal/models"
	"shopflow/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Hand-rolled mocks: any unset func field falls back to a harmless default.

// testRepository assembles a Repository from mocks, filling in empty mocks
// for whatever the test does not care about. The order mock gets a back
// reference so its default WithTx hands the same repository to callbacks.
func testRepository(users *MockUserRepo, products *MockProductRepo, carts *MockCartRepo, orders *MockOrderRepo, items *MockOrderItemRepo) *repository.Repository {
	if users == nil {
		users = &MockUserRepo{}
	}
	if products == nil {
		products = &MockProductRepo{}
	}
	if carts == nil {
		carts = &MockCartRepo{}
	}
	if orders == nil {
		orders = &MockOrderRepo{}
	}
	if items == nil {
		items = &MockOrderItemRepo{}
	}
	repo := &repository.Repository{
		Users:      users,
		Products:   products,
		CartItems:  carts,
		Orders:     orders,
		OrderItems: items,
	}
	orders.Repo = repo
	return repo
}

// singleUser returns a user repo mock that resolves exactly one user by ID.
func singleUser(u *models.User) *MockUserRepo {
	return &MockUserRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			if u != nil && id == u.ID {
				return u, nil
			}
			return nil, nil
		},
	}
}

func adminFixture() *models.User {
	return &models.User{
		ID:        uuid.New(),
		Username:  "admin",
		Email:     "admin@example.com",
		FirstName: "Ada",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
	}
}

func customerFixture() *models.User {
	return &models.User{
		ID:        uuid.New(),
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		FirstName: "John",
		LastName:  "Doe",
		Role:      models.RoleCustomer,
	}
}

type MockUserRepo struct {
	CreateFunc           func(ctx context.Context, u *models.User) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsernameFunc    func(ctx context.Context, username string) (*models.User, error)
	ExistsByUsernameFunc func(ctx context.Context, username string) (bool, error)
	ExistsByEmailFunc    func(ctx context.Context, email string) (bool, error)
	UpdatePasswordFunc   func(ctx context.Context, id uuid.UUID, hash string) error
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFunc != nil {
		return m.ExistsByUsernameFunc(ctx, username)
	}
	return false, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, hash)
	}
	return nil
}

type MockProductRepo struct {
	CreateFunc         func(ctx context.Context, p *models.Product) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySKUFunc       func(ctx context.Context, sku string) (*models.Product, error)
	ListFunc           func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, error)
	UpdateFieldsFunc   func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	SetStockFunc       func(ctx context.Context, id uuid.UUID, quantity int) error
	DecrementStockFunc func(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	IncrementStockFunc func(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	ListLowStockFunc   func(ctx context.Context, threshold int) ([]models.Product, error)
	CountLowStockFunc  func(ctx context.Context, threshold int) (int64, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	if m.GetBySKUFunc != nil {
		return m.GetBySKUFunc(ctx, sku)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, nil
}

func (m *MockProductRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProductRepo) SetStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if m.SetStockFunc != nil {
		return m.SetStockFunc(ctx, id, quantity)
	}
	return nil
}

func (m *MockProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, id, qty)
	}
	return true, nil
}

func (m *MockProductRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	if m.IncrementStockFunc != nil {
		return m.IncrementStockFunc(ctx, id, qty)
	}
	return true, nil
}

func (m *MockProductRepo) ListLowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	if m.ListLowStockFunc != nil {
		return m.ListLowStockFunc(ctx, threshold)
	}
	return nil, nil
}

func (m *MockProductRepo) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	if m.CountLowStockFunc != nil {
		return m.CountLowStockFunc(ctx, threshold)
	}
	return 0, nil
}

type MockCartRepo struct {
	ListByUserFunc             func(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	GetByUserAndProductFunc    func(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	CreateFunc                 func(ctx context.Context, item *models.CartItem) error
	UpdateQuantityFunc         func(ctx context.Context, id uuid.UUID, quantity int) error
	DeleteByUserAndProductFunc func(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	ClearByUserFunc            func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (m *MockCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCartRepo) GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	if m.GetByUserAndProductFunc != nil {
		return m.GetByUserAndProductFunc(ctx, userID, productID)
	}
	return nil, nil
}

func (m *MockCartRepo) Create(ctx context.Context, item *models.CartItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *MockCartRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if m.UpdateQuantityFunc != nil {
		return m.UpdateQuantityFunc(ctx, id, quantity)
	}
	return nil
}

func (m *MockCartRepo) DeleteByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if m.DeleteByUserAndProductFunc != nil {
		return m.DeleteByUserAndProductFunc(ctx, userID, productID)
	}
	return false, nil
}

func (m *MockCartRepo) ClearByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.ClearByUserFunc != nil {
		return m.ClearByUserFunc(ctx, userID)
	}
	return 0, nil
}

type MockOrderRepo struct {
	// Repo is handed to WithTx callbacks, standing in for the tx-scoped
	// repository set.
	Repo *repository.Repository

	CreateFunc            func(ctx context.Context, o *models.Order) error
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByNumberFunc       func(ctx context.Context, orderNumber string) (*models.Order, error)
	ListFunc              func(ctx context.Context, f repository.OrderListFilter) ([]models.Order, error)
	UpdateStatusFunc      func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	CountCreatedSinceFunc func(ctx context.Context, since time.Time) (int64, error)
	CountFunc             func(ctx context.Context) (int64, error)
	CountByStatusFunc     func(ctx context.Context, status models.OrderStatus) (int64, error)
	SumTotalAmountFunc    func(ctx context.Context) (decimal.Decimal, error)
	WithTxFunc            func(ctx context.Context, fn func(tx *repository.Repository) error) error
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	o.ID = uuid.New()
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, orderNumber)
	}
	return nil, nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]models.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountCreatedSinceFunc != nil {
		return m.CountCreatedSinceFunc(ctx, since)
	}
	return 0, nil
}

func (m *MockOrderRepo) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockOrderRepo) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *MockOrderRepo) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	if m.SumTotalAmountFunc != nil {
		return m.SumTotalAmountFunc(ctx)
	}
	return decimal.Zero, nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(m.Repo)
}

type MockOrderItemRepo struct {
	BulkCreateFunc   func(ctx context.Context, items []models.OrderItem) error
	GetByOrderIDFunc func(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
}

func (m *MockOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	return nil
}

func (m *MockOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}
