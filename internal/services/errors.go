package services

import (
	"errors"
	"fmt"
)

// Validation
var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrMissingShippingAddress = errors.New("shipping address is required")
	ErrInvalidQuantity        = errors.New("quantity must be a positive integer")
	ErrMissingProduct         = errors.New("product reference is required")
	ErrInvalidItemStatus      = errors.New("status must be accepted or rejected")
	ErrInvalidRating          = errors.New("rating must be between 1 and 5")
	ErrEmptyComment           = errors.New("comment content is required")
	ErrEmptyQuery             = errors.New("search query is required")
	ErrEmptyMessage           = errors.New("message is required")
	ErrInvalidPrice           = errors.New("price must be greater than zero")
	ErrMissingProductName     = errors.New("product name is required")
	ErrShopNameRequired       = errors.New("shop name is required for vendors")
)

// Not found
var (
	ErrOrderItemNotFound = errors.New("item not found for this vendor")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrUserNotFound      = errors.New("user not found")
)

// Authorization and state
var (
	ErrNotVendor          = errors.New("only vendors can perform this action")
	ErrForbidden          = errors.New("not allowed to modify this resource")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrItemAlreadyDecided = errors.New("order item has already been accepted or rejected")
	ErrEmailTaken         = errors.New("email is already registered")
)

// Chat
var (
	ErrChatUnavailable   = errors.New("chat assistant is not configured")
	ErrChatQuotaExceeded = errors.New("chat quota exceeded")
)

// ProductNotFoundError names the product id that could not be resolved.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}
