package model

// Standard error codes for API responses.
const (
	ErrCodeCartNotFound      = "CART_NOT_FOUND"
	ErrCodeItemNotFound      = "ITEM_NOT_FOUND"
	ErrCodeBrandNotFound     = "BRAND_NOT_FOUND"
	ErrCodeTypeNotFound      = "TYPE_NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeQuantityTooLow    = "QUANTITY_TOO_LOW"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeInvalidReference  = "INVALID_REFERENCE"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation carrying a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors.
var (
	ErrCartNotFound      = NewDomainError(ErrCodeCartNotFound, "Cart not found")
	ErrItemNotInCart     = NewDomainError(ErrCodeItemNotFound, "Item not found in cart")
	ErrItemNotFound      = NewDomainError(ErrCodeItemNotFound, "Item not found")
	ErrBrandNotFound     = NewDomainError(ErrCodeBrandNotFound, "Brand not found")
	ErrTypeNotFound      = NewDomainError(ErrCodeTypeNotFound, "Type not found")
	ErrUserNotFound      = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart is empty or not found")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrQuantityTooLow    = NewDomainError(ErrCodeQuantityTooLow, "Quantity cannot be less than 1")
	ErrInvalidCredential = NewDomainError(ErrCodeUnauthorised, "Invalid email or password")
	ErrUnauthorised      = NewDomainError(ErrCodeUnauthorised, "Authentication required")
	ErrForbidden         = NewDomainError(ErrCodeForbidden, "Administrator rights required")
	ErrBrandExists       = NewDomainError(ErrCodeAlreadyExists, "Brand already exists")
	ErrTypeExists        = NewDomainError(ErrCodeAlreadyExists, "Type already exists")
	ErrEmailInUse        = NewDomainError(ErrCodeAlreadyExists, "Email already in use")
)
