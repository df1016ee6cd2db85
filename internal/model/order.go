package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks an order through its lifecycle. Orders are created as
// pending and are never deleted, only transitioned.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusReturned  OrderStatus = "returned"
)

// DeliveryInformation is the recipient detail supplied at checkout.
type DeliveryInformation struct {
	RecipientName          string `json:"recipient_name" bson:"recipient_name"`
	RecipientPhone         string `json:"recipient_phone" bson:"recipient_phone"`
	RecipientCity          string `json:"recipient_city" bson:"recipient_city"`
	RecipientStreetAddress string `json:"recipient_street_address" bson:"recipient_street_address"`
	Comment                string `json:"comment,omitempty" bson:"comment,omitempty"`
}

// Order is an immutable-once-created record of a completed checkout. UserID
// is nil for guest checkouts.
type Order struct {
	OrderID             string               `json:"order_id" bson:"order_id"`
	OrderNumber         string               `json:"order_number" bson:"order_number"`
	UserID              *string              `json:"user_id" bson:"user_id"`
	Status              OrderStatus          `json:"status" bson:"status"`
	DeliveryInformation *DeliveryInformation `json:"delivery_information" bson:"delivery_information"`
	OrderItems          []CartItem           `json:"order_items" bson:"order_items"`
	TotalPrice          Money                `json:"total_price" bson:"total_price"`
	CreatedAt           time.Time            `json:"created_at" bson:"created_at"`
}

// NewOrder assembles a pending order from a checked-out cart.
func NewOrder(number string, userID *string, delivery DeliveryInformation, items []CartItem, total Money) *Order {
	return &Order{
		OrderID:             uuid.NewString(),
		OrderNumber:         number,
		UserID:              userID,
		Status:              OrderStatusPending,
		DeliveryInformation: &delivery,
		OrderItems:          items,
		TotalPrice:          total,
		CreatedAt:           time.Now().UTC(),
	}
}

// OrderPage is a page of orders with its paging envelope.
type OrderPage struct {
	Orders []Order `json:"orders"`
	Paging Paging  `json:"paging"`
}
