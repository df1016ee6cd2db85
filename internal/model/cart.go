package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line in a cart (or, once checked out, in an order).
// Invariant: TotalPrice.Amount == round(Quantity × UnitPrice.Amount, 2) after
// every mutation.
type CartItem struct {
	ItemID     string `json:"item_id" bson:"item_id"`
	Quantity   int    `json:"quantity" bson:"quantity"`
	UnitPrice  Money  `json:"unit_price" bson:"unit_price"`
	TotalPrice Money  `json:"total_price" bson:"total_price"`
}

// NewCartItem builds a line for the given catalog item at its current unit
// price, with the line total derived immediately.
func NewCartItem(itemID string, quantity int, unitPrice Money) CartItem {
	return CartItem{
		ItemID:     itemID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: LineTotal(quantity, unitPrice),
	}
}

// Cart is a transient collection of prospective order lines, identified by an
// opaque client-held token and kept alive by a sliding expiration.
type Cart struct {
	CartID         string     `json:"cart_id" bson:"cart_id"`
	CartItems      []CartItem `json:"cart_items" bson:"cart_items"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
	ExpirationTime time.Time  `json:"expiration_time" bson:"expiration_time"`
}

// NewCart creates an empty cart with a fresh identifier expiring at now+ttl.
func NewCart(now time.Time, ttl time.Duration) *Cart {
	return &Cart{
		CartID:         uuid.NewString(),
		CartItems:      []CartItem{},
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpirationTime: now.Add(ttl),
	}
}

// Expired reports whether the cart's expiration time has passed.
func (c *Cart) Expired(now time.Time) bool {
	return !now.Before(c.ExpirationTime)
}

// FindItem returns the index of the line with the given item id, or -1.
func (c *Cart) FindItem(itemID string) int {
	for i, item := range c.CartItems {
		if item.ItemID == itemID {
			return i
		}
	}
	return -1
}

// TotalPrice is the decimal sum of all line totals.
func (c *Cart) TotalPrice() Decimal {
	total := decimal.Zero
	for _, item := range c.CartItems {
		total = total.Add(item.TotalPrice.Amount.Decimal)
	}
	return Decimal{total}
}

// CartView is the response shape shared by the cart accessor and all four
// mutation operations.
type CartView struct {
	NewCart        bool       `json:"new_cart"`
	CartID         string     `json:"cart_id"`
	CartItems      []CartItem `json:"cart_items"`
	TotalCartPrice string     `json:"total_cart_price"`
}

// NewCartView renders a cart with its aggregate total formatted to exactly
// two decimal places.
func NewCartView(c *Cart, created bool) *CartView {
	items := c.CartItems
	if items == nil {
		items = []CartItem{}
	}
	return &CartView{
		NewCart:        created,
		CartID:         c.CartID,
		CartItems:      items,
		TotalCartPrice: c.TotalPrice().StringFixed(2),
	}
}
