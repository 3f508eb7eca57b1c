package dto

import (
	"time"

	"shopflow/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=80"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        *models.User `json:"user"`
}

type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description" binding:"required"`
	SKU           string           `json:"sku" binding:"required"`
	Price         decimal.Decimal  `json:"price" binding:"required"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	StockQuantity int              `json:"stockQuantity"`
	Category      string           `json:"category" binding:"required"`
	ImageURL      string           `json:"imageUrl" binding:"required"`
	Rating        decimal.Decimal  `json:"rating"`
}

// UpdateProductRequest carries only the fields to change; absent keys leave
// the stored value untouched.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	StockQuantity *int             `json:"stockQuantity"`
	Category      *string          `json:"category"`
	ImageURL      *string          `json:"imageUrl"`
	Rating        *decimal.Decimal `json:"rating"`
	IsActive      *bool            `json:"isActive"`
}

type UpdateStockRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type AddCartItemRequest struct {
	UserID    uuid.UUID `json:"userId" binding:"required"`
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type CreateOrderRequest struct {
	Order     OrderInfo          `json:"order" binding:"required"`
	Items     []OrderItemRequest `json:"items" binding:"required"`
	ClearCart bool               `json:"clearCart"`
}

type OrderInfo struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	Status          string `json:"status"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MetricsResponse struct {
	TotalOrders     int64   `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingOrders   int64   `json:"pendingOrders"`
	CompletedOrders int64   `json:"completedOrders"`
	LowStockCount   int64   `json:"lowStockCount"`
}
