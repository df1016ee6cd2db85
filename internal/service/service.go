package service

import (
	"context"

	"pourpal/internal/model"
)

// CartService defines the cart accessor and the four mutation operations.
// Every operation resolves the cart first: a missing, absent, or expired cart
// is replaced by a fresh empty one before the operation proceeds.
type CartService interface {
	// GetCart resolves the cart for the given identifier, creating or
	// replacing it as needed, and refreshes its expiration.
	GetCart(ctx context.Context, cartID string) (*model.CartView, error)

	// IncrementItem raises an existing line's quantity by one.
	IncrementItem(ctx context.Context, cartID, itemID string) (*model.CartView, error)

	// DecrementItem lowers an existing line's quantity by one. A quantity-1
	// line is refused, not removed.
	DecrementItem(ctx context.Context, cartID, itemID string) (*model.CartView, error)

	// SetItemQuantity overwrites an existing line's quantity, or appends a
	// new line at the catalog item's current unit price.
	SetItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (*model.CartView, error)

	// RemoveItem deletes a line from the cart entirely.
	RemoveItem(ctx context.Context, cartID, itemID string) (*model.CartView, error)
}

// OrderService defines checkout and order listing.
type OrderService interface {
	// CreateOrder converts a cart into a pending order: stock validation,
	// inventory decrement, order-number allocation, persistence and cart
	// removal. A nil userID is a guest checkout.
	CreateOrder(ctx context.Context, cartID string, userID *string, delivery model.DeliveryInformation) (*model.Order, error)

	// ListOrders retrieves all orders, newest first.
	ListOrders(ctx context.Context, page model.PageRequest) (*model.OrderPage, error)

	// ListUserOrders retrieves one user's orders, newest first.
	ListUserOrders(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error)
}

// ItemService defines catalog item management.
type ItemService interface {
	List(ctx context.Context, filter model.ItemFilter, page model.PageRequest) (*model.ItemPage, error)

	// Get retrieves a single item, or nil when absent.
	Get(ctx context.Context, itemID string) (*model.Item, error)

	Create(ctx context.Context, req *model.ItemRequest) (*model.Item, error)
	Update(ctx context.Context, itemID string, req *model.ItemRequest) error
	Delete(ctx context.Context, itemID string) error
}

// CatalogService defines brand, type and country reference data management.
type CatalogService interface {
	ListBrands(ctx context.Context) ([]model.Brand, error)
	CreateBrand(ctx context.Context, name string) (*model.Brand, error)
	RenameBrand(ctx context.Context, brandID, name string) error
	DeleteBrand(ctx context.Context, brandID string) error

	ListTypes(ctx context.Context) ([]model.BeverageType, error)
	CreateType(ctx context.Context, name string) (*model.BeverageType, error)
	RenameType(ctx context.Context, typeID, name string) error
	DeleteType(ctx context.Context, typeID string) error

	ListCountries(ctx context.Context) ([]model.Country, error)
}

// AuthService defines login, registration and profile retrieval.
type AuthService interface {
	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, email, password string, rec model.LoginRecord) (string, error)

	// RegisterCustomer self-registers a customer account.
	RegisterCustomer(ctx context.Context, email, password string) (*model.User, error)

	// RegisterAdmin creates an admin account with a generated password,
	// delivered out of band.
	RegisterAdmin(ctx context.Context, email string) (*model.User, error)

	// Profile retrieves the public profile for a user.
	Profile(ctx context.Context, userID string) (*model.Profile, error)
}
