package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string    `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:120;not null;uniqueIndex" json:"email"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:text;not null;default:'customer';index" json:"role"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) FullName() string { return u.FirstName + " " + u.LastName }

type Product struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string              `gorm:"size:200;not null" json:"name"`
	Description   string              `gorm:"type:text;not null" json:"description"`
	SKU           string              `gorm:"size:50;not null;uniqueIndex" json:"sku"`
	Price         decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"price"`
	OriginalPrice decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"originalPrice"`
	StockQuantity int                 `gorm:"not null;default:0" json:"stockQuantity"`
	Category      string              `gorm:"size:100;not null;index" json:"category"`
	ImageURL      string              `gorm:"size:500;not null" json:"imageUrl"`
	Rating        decimal.Decimal     `gorm:"type:numeric(2,1);not null;default:0" json:"rating"`
	IsActive      bool                `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt     time.Time           `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt     time.Time           `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// IsLowStock reports whether stock is positive but at or under threshold.
func (p *Product) IsLowStock(threshold int) bool {
	return p.StockQuantity > 0 && p.StockQuantity <= threshold
}

func (p *Product) IsOutOfStock() bool { return p.StockQuantity == 0 }

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_cart_items_user_product" json:"userId"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_user_product" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string { return "cart_items" }

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the five known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber string      `gorm:"size:50;not null;uniqueIndex" json:"orderNumber"`
	CustomerID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"customerId"`
	// Snapshot of the customer at order time; deliberately not kept in sync
	// with later profile edits.
	CustomerName    string          `gorm:"size:200;not null" json:"customerName"`
	CustomerEmail   string          `gorm:"size:120;not null" json:"customerEmail"`
	Status          OrderStatus     `gorm:"type:text;not null;default:'pending';index" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"totalAmount"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shippingAddress"`
	CreatedAt       time.Time       `gorm:"not null;default:now();index" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"not null;default:now()" json:"updatedAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	// Product snapshot at order time.
	ProductName string          `gorm:"size:200;not null" json:"productName"`
	ProductSKU  string          `gorm:"size:50;not null" json:"productSku"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unitPrice"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"totalPrice"`
	CreatedAt   time.Time       `gorm:"not null;default:now()" json:"-"`
}

func (OrderItem) TableName() string { return "order_items" }
