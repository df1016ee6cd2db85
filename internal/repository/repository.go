package repository

import (
	"context"
	"errors"
	"time"

	"pourpal/internal/model"
)

// ErrStockConflict is returned by DecrementStock when the guarded update
// matches no document, i.e. the item is gone or its stock is short.
var ErrStockConflict = errors.New("insufficient stock")

// CartRepository defines data access for cart documents.
type CartRepository interface {
	// FindByID retrieves a cart by its identifier, or nil when absent.
	FindByID(ctx context.Context, cartID string) (*model.Cart, error)

	// Insert persists a freshly created cart.
	Insert(ctx context.Context, cart *model.Cart) error

	// UpdateItems replaces the cart's line items and refreshes its
	// expiration and updated_at timestamps.
	UpdateItems(ctx context.Context, cartID string, items []model.CartItem, expiration time.Time) error

	// UpdateExpiration slides the cart's expiration forward.
	UpdateExpiration(ctx context.Context, cartID string, expiration time.Time) error

	// Delete removes a cart. Deleting an absent cart is not an error.
	Delete(ctx context.Context, cartID string) error
}

// ItemRepository defines data access for catalog items.
type ItemRepository interface {
	// List retrieves one page of items matching the filter, plus the total
	// match count.
	List(ctx context.Context, filter model.ItemFilter, page model.PageRequest) ([]model.Item, int64, error)

	// FindByID retrieves a single item, or nil when absent.
	FindByID(ctx context.Context, itemID string) (*model.Item, error)

	// Insert persists a new catalog item.
	Insert(ctx context.Context, item *model.Item) error

	// Update replaces an existing item's fields. Returns model.ErrItemNotFound
	// when no document matches.
	Update(ctx context.Context, item *model.Item) error

	// Delete removes an item. Returns model.ErrItemNotFound when absent.
	Delete(ctx context.Context, itemID string) error

	// DecrementStock atomically subtracts n from the item's stock, guarded so
	// stock can never go negative. Returns ErrStockConflict when the item is
	// absent or short.
	DecrementStock(ctx context.Context, itemID string, n int) error

	// IncrementStock adds n back to the item's stock (compensation path).
	IncrementStock(ctx context.Context, itemID string, n int) error
}

// OrderRepository defines data access for orders and order numbering.
type OrderRepository interface {
	// NextOrderNumber atomically allocates the next 9-digit zero-padded
	// sequential order number.
	NextOrderNumber(ctx context.Context) (string, error)

	// Insert persists a new order.
	Insert(ctx context.Context, order *model.Order) error

	// List retrieves one page of orders sorted by creation time descending,
	// plus the total count. A non-nil userID restricts to that user's orders.
	List(ctx context.Context, userID *string, page model.PageRequest) ([]model.Order, int64, error)
}

// BrandRepository defines data access for beverage brands.
type BrandRepository interface {
	List(ctx context.Context) ([]model.Brand, error)

	// FindByName retrieves a brand by exact name, ignoring the brand with
	// excludeID when non-empty. Returns nil when absent.
	FindByName(ctx context.Context, name, excludeID string) (*model.Brand, error)

	FindByID(ctx context.Context, brandID string) (*model.Brand, error)
	Insert(ctx context.Context, brand *model.Brand) error

	// UpdateName renames a brand. Returns model.ErrBrandNotFound when absent.
	UpdateName(ctx context.Context, brandID, name string) error

	// Delete removes a brand. Returns model.ErrBrandNotFound when absent.
	Delete(ctx context.Context, brandID string) error
}

// TypeRepository defines data access for beverage types.
type TypeRepository interface {
	List(ctx context.Context) ([]model.BeverageType, error)
	FindByName(ctx context.Context, name, excludeID string) (*model.BeverageType, error)
	FindByID(ctx context.Context, typeID string) (*model.BeverageType, error)
	Insert(ctx context.Context, bt *model.BeverageType) error
	UpdateName(ctx context.Context, typeID, name string) error
	Delete(ctx context.Context, typeID string) error
}

// CountryRepository defines data access for countries of origin.
type CountryRepository interface {
	List(ctx context.Context) ([]model.Country, error)
	FindByCode(ctx context.Context, code string) (*model.Country, error)
	Upsert(ctx context.Context, country *model.Country) error
}

// UserRepository defines data access for user accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, userID string) (*model.User, error)
	Insert(ctx context.Context, user *model.User) error

	// RecordLogin appends a login record to the user's authorization history.
	RecordLogin(ctx context.Context, userID string, rec model.LoginRecord) error
}
