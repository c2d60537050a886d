// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/thequick-backend/internal/config"
)

// ServiceType distinguishes the restaurant food flow from the grocery
// product flow. A cart never mixes the two.
type ServiceType string

const (
	ServiceRestaurant ServiceType = "restaurant"
	ServiceProduct    ServiceType = "product"
)

// Valid reports whether the service type is a known value
func (s ServiceType) Valid() bool {
	return s == ServiceRestaurant || s == ServiceProduct
}

// ItemCandidate is a catalog entry being added to the cart
type ItemCandidate struct {
	ID             string      `json:"id" binding:"required"`
	Name           string      `json:"name" binding:"required"`
	Price          int64       `json:"price" binding:"required,min=1"`
	Image          string      `json:"image"`
	Service        ServiceType `json:"type" binding:"required,oneof=restaurant product"`
	RestaurantID   string      `json:"restaurant_id"`
	RestaurantName string      `json:"restaurant_name"`
}

// CartItem represents one line in the cart
type CartItem struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Price          int64       `json:"price"` // Price at time of adding
	Image          string      `json:"image,omitempty"`
	Service        ServiceType `json:"type"`
	RestaurantID   string      `json:"restaurant_id,omitempty"`
	RestaurantName string      `json:"restaurant_name,omitempty"`
	Quantity       int         `json:"quantity"`
}

// Totals represents calculated cart totals. They are always derived
// from the current items and never stored independently.
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of unique items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	Subtotal      int64 `json:"subtotal"`
	DeliveryFee   int64 `json:"delivery_fee"`
	PlatformFee   int64 `json:"platform_fee"`
	Discount      int64 `json:"discount"`
	Total         int64 `json:"total"`
}

// Cart represents one session's working order
type Cart struct {
	SessionID      string      `json:"session_id"`
	Items          []CartItem  `json:"items"`
	Service        ServiceType `json:"service_type,omitempty"`
	RestaurantID   string      `json:"restaurant_id,omitempty"`
	RestaurantName string      `json:"restaurant_name,omitempty"`
	Totals         Totals      `json:"totals"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// addItem appends the candidate or increments an existing line. The
// first item locks the cart's service type; adding across services is
// rejected.
func (c *Cart) addItem(cand ItemCandidate) error {
	if c.Service != "" && c.Service != cand.Service {
		return ErrServiceMismatch
	}

	for i := range c.Items {
		if c.Items[i].ID == cand.ID {
			c.Items[i].Quantity++
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		ID:             cand.ID,
		Name:           cand.Name,
		Price:          cand.Price,
		Image:          cand.Image,
		Service:        cand.Service,
		RestaurantID:   cand.RestaurantID,
		RestaurantName: cand.RestaurantName,
		Quantity:       1,
	})

	c.Service = cand.Service
	if cand.RestaurantID != "" {
		c.RestaurantID = cand.RestaurantID
		c.RestaurantName = cand.RestaurantName
	}

	return nil
}

// removeItem drops the line entirely. Emptying the cart also clears
// the service type and restaurant context.
func (c *Cart) removeItem(itemID string) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			if len(c.Items) == 0 {
				c.Service = ""
				c.RestaurantID = ""
				c.RestaurantName = ""
			}
			return nil
		}
	}
	return ErrItemNotFound
}

// updateQuantity sets the quantity exactly. Zero or below behaves as
// removal.
func (c *Cart) updateQuantity(itemID string, quantity int) error {
	if quantity <= 0 {
		return c.removeItem(itemID)
	}

	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

// clear empties items, totals and context atomically
func (c *Cart) clear() {
	c.Items = nil
	c.Service = ""
	c.RestaurantID = ""
	c.RestaurantName = ""
	c.Totals = Totals{}
}

// recalculate derives the totals from the current items. The delivery
// fee base comes from the threshold table and is then run through the
// surcharge policy, which is the single source of truth for fee
// adjustment.
func (c *Cart) recalculate(rules config.PricingConfig, adjust FeeAdjuster) {
	var t Totals

	t.ItemCount = len(c.Items)
	for _, item := range c.Items {
		t.TotalQuantity += item.Quantity
		t.Subtotal += item.Price * int64(item.Quantity)
	}

	var baseFee int64
	switch c.Service {
	case ServiceProduct:
		if t.Subtotal < rules.ProductFreeDeliveryAbove {
			baseFee = rules.ProductDeliveryFee
		}
	case ServiceRestaurant:
		if t.Subtotal < rules.RestaurantFreeDeliveryAbove {
			baseFee = rules.RestaurantDeliveryFee
		}
		t.PlatformFee = rules.PlatformFee
	}

	if baseFee > 0 {
		t.DeliveryFee = adjust.AdjustedFee(baseFee)
	}

	// Discount is an extension point; no promotion engine exists yet
	t.Discount = 0
	t.Total = t.Subtotal + t.DeliveryFee + t.PlatformFee - t.Discount

	c.Totals = t
}
