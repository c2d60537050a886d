// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/thequick-backend/internal/domain/cart"
)

// Status represents the order status
type Status string

const (
	StatusPlaced    Status = "placed"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusPicked    Status = "picked"
	StatusOnTheWay  Status = "on_the_way"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// progression is the fixed delivery sequence. Cancelled sits outside
// it and is reachable from any non-terminal status.
var progression = []Status{
	StatusPlaced,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusPicked,
	StatusOnTheWay,
	StatusDelivered,
}

// statusMessages are the human-readable timeline messages per status
var statusMessages = map[Status]string{
	StatusPlaced:    "Order placed successfully",
	StatusConfirmed: "Restaurant confirmed your order",
	StatusPreparing: "Kitchen started preparing your food",
	StatusReady:     "Food is ready for pickup",
	StatusPicked:    "Delivery partner picked up your order",
	StatusOnTheWay:  "Order is on the way",
	StatusDelivered: "Order delivered successfully",
	StatusCancelled: "Order cancelled",
}

// Next returns the following status in the delivery sequence and
// false when the status has no successor
func (s Status) Next() (Status, bool) {
	for i, st := range progression {
		if st == s && i < len(progression)-1 {
			return progression[i+1], true
		}
	}
	return s, false
}

// IsTerminal reports whether no further transitions are legal
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Message returns the canned timeline message for the status
func (s Status) Message() string {
	return statusMessages[s]
}

// PaymentMethod represents how the order is paid
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentWallet PaymentMethod = "wallet"
)

// Valid reports whether the payment method is a known value
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentWallet:
		return true
	}
	return false
}

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// DeliveryAddress is the address snapshot frozen into the order
type DeliveryAddress struct {
	Label       string  `json:"label"`
	FullAddress string  `json:"full_address" binding:"required"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// OrderItem is an immutable snapshot of a cart line at placement time
type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// TimelineEvent is an append-only audit record of a status change
type TimelineEvent struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Order represents a placed order. It is exclusively owned by the
// Tracker once created; the live cart has no further claim on it.
type Order struct {
	ID          string           `json:"id"`
	OrderNumber string           `json:"order_number"`
	UserID      string           `json:"user_id"`
	Service     cart.ServiceType `json:"service_type"`

	// Origin identity: the restaurant, or QuickMart for grocery orders
	RestaurantID   string `json:"restaurant_id,omitempty"`
	RestaurantName string `json:"restaurant_name"`

	Items  []OrderItem `json:"items"`
	Status Status      `json:"status"`

	// Totals frozen at placement time
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	PlatformFee int64 `json:"platform_fee"`
	Discount    int64 `json:"discount"`
	Total       int64 `json:"total"`

	DeliveryAddress DeliveryAddress `json:"delivery_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`

	PlacedAt    time.Time  `json:"placed_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	// Estimated delivery time in minutes, surcharge-adjusted at placement
	EstimatedDeliveryTime int `json:"estimated_delivery_time"`

	Timeline []TimelineEvent `json:"timeline"`
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return !o.Status.IsTerminal()
}

// Clone returns a deep copy so callers can read the order without
// racing the tracker's progression
func (o *Order) Clone() *Order {
	dup := *o
	dup.Items = append([]OrderItem(nil), o.Items...)
	dup.Timeline = append([]TimelineEvent(nil), o.Timeline...)
	if o.DeliveredAt != nil {
		at := *o.DeliveredAt
		dup.DeliveredAt = &at
	}
	return &dup
}
