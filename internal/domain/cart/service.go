// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/thequick-backend/internal/config"
	"github.com/your-org/thequick-backend/internal/pkg/clock"
)

// Store persists one cart per session as a named blob
type Store interface {
	LoadCart(ctx context.Context, sessionID string) (*Cart, error)
	SaveCart(ctx context.Context, c *Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// FeeAdjuster applies the surcharge policy to a base delivery fee.
// Implemented by the pricing service.
type FeeAdjuster interface {
	AdjustedFee(baseFee int64) int64
}

// Service handles cart business logic. Every mutation recomputes the
// totals before the cart is saved, so a reader never observes items
// and totals out of step.
type Service struct {
	store   Store
	pricing FeeAdjuster
	cfg     *config.Config
	clock   clock.Clock
	log     *logrus.Entry
}

// NewService creates a new cart service
func NewService(store Store, pricing FeeAdjuster, cfg *config.Config, clk clock.Clock, log *logrus.Logger) *Service {
	return &Service{
		store:   store,
		pricing: pricing,
		cfg:     cfg,
		clock:   clk,
		log:     log.WithField("component", "cart"),
	}
}

// UpdateQuantityRequest represents an update cart item request
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// GetCart retrieves the session's cart, or a fresh empty one
func (s *Service) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	return s.loadOrCreate(ctx, sessionID)
}

// AddItem adds a catalog entry to the cart, incrementing the quantity
// when the item is already present
func (s *Service) AddItem(ctx context.Context, sessionID string, cand ItemCandidate) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.addItem(cand)
	})
}

// UpdateQuantity sets a line's quantity exactly; zero removes the line
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*Cart, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.updateQuantity(itemID, quantity)
	})
}

// RemoveItem drops a line from the cart
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		return c.removeItem(itemID)
	})
}

// ClearCart empties the session's cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) error {
		c.clear()
		return nil
	})
}

func (s *Service) loadOrCreate(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	c, err := s.store.LoadCart(ctx, sessionID)
	if errors.Is(err, ErrCartNotFound) {
		now := s.clock.Now()
		return &Cart{
			SessionID: sessionID,
			Items:     []CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return c, nil
}

// mutate applies op and recomputes totals in the same logical
// transaction, then persists the result
func (s *Service) mutate(ctx context.Context, sessionID string, op func(*Cart) error) (*Cart, error) {
	c, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := op(c); err != nil {
		return nil, err
	}

	c.recalculate(s.cfg.Pricing, s.pricing)
	c.UpdatedAt = s.clock.Now()

	if err := s.store.SaveCart(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"items":      c.Totals.ItemCount,
		"total":      c.Totals.Total,
	}).Debug("Cart updated")

	return c, nil
}
