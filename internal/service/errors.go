package service

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("forbidden")

	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrInvalidRole   = errors.New("invalid role")

	ErrProductNotFound  = errors.New("product not found")
	ErrSKUAlreadyExists = errors.New("sku already exists")
	ErrNegativeStock    = errors.New("stock quantity cannot be negative")

	ErrCartItemNotFound = errors.New("cart item not found")
	ErrQuantityInvalid  = errors.New("quantity must be > 0")

	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyItems          = errors.New("order must contain at least one item")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrOrderNotCancellable = errors.New("cannot cancel this order")
)
