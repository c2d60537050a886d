// internal/domain/order/tracker.go
package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/thequick-backend/internal/config"
	"github.com/your-org/thequick-backend/internal/domain/cart"
	"github.com/your-org/thequick-backend/internal/pkg/clock"
)

// ETAAdjuster applies the surcharge policy to a base ETA. Implemented
// by the pricing service.
type ETAAdjuster interface {
	AdjustedETA(baseETA int) int
}

// CreateOrderRequest represents checkout data
type CreateOrderRequest struct {
	UserID          string
	Cart            *cart.Cart
	DeliveryAddress DeliveryAddress
	PaymentMethod   PaymentMethod
}

// Tracker owns all placed orders for the session and drives each one
// through the delivery sequence on a fixed cadence. Orders are held in
// memory and survive until the tracker is torn down; terminal states
// simply stop the timers.
type Tracker struct {
	cfg     *config.Config
	pricing ETAAdjuster
	clock   clock.Clock
	log     *logrus.Entry

	mu        sync.Mutex
	orders    map[string]*Order
	sequence  []string // insertion order, for listing
	nextSeq   int
	currentID string
	cancels   map[string]context.CancelFunc
	closed    bool
}

// NewTracker creates an order lifecycle tracker
func NewTracker(cfg *config.Config, pricing ETAAdjuster, clk clock.Clock, log *logrus.Logger) *Tracker {
	return &Tracker{
		cfg:     cfg,
		pricing: pricing,
		clock:   clk,
		log:     log.WithField("component", "order-tracker"),
		orders:  make(map[string]*Order),
		nextSeq: 1001,
		cancels: make(map[string]context.CancelFunc),
	}
}

// CreateOrder produces a new order in the placed state from a cart
// snapshot, freezing the cart's totals, and begins auto-progression.
// The live cart is not referenced afterwards. A new order supersedes
// the previously tracked one and stops its timer.
func (t *Tracker) CreateOrder(req CreateOrderRequest) (*Order, error) {
	if req.Cart == nil || req.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	now := t.clock.Now()

	items := make([]OrderItem, len(req.Cart.Items))
	for i, line := range req.Cart.Items {
		items[i] = OrderItem{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		}
	}

	origin := req.Cart.RestaurantName
	baseETA := t.cfg.Pricing.RestaurantBaseETA
	if req.Cart.Service == cart.ServiceProduct {
		origin = "QuickMart"
		baseETA = t.cfg.Pricing.ProductBaseETA
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, fmt.Errorf("tracker is closed")
	}

	ord := &Order{
		ID:             uuid.New().String(),
		OrderNumber:    fmt.Sprintf("QB-%d", t.nextSeq),
		UserID:         req.UserID,
		Service:        req.Cart.Service,
		RestaurantID:   req.Cart.RestaurantID,
		RestaurantName: origin,
		Items:          items,
		Status:         StatusPlaced,
		Subtotal:       req.Cart.Totals.Subtotal,
		DeliveryFee:    req.Cart.Totals.DeliveryFee,
		PlatformFee:    req.Cart.Totals.PlatformFee,
		Discount:       req.Cart.Totals.Discount,
		Total:          req.Cart.Totals.Total,

		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   PaymentStatusPaid,

		PlacedAt:              now,
		EstimatedDeliveryTime: t.pricing.AdjustedETA(baseETA),
		Timeline: []TimelineEvent{{
			Status:    StatusPlaced,
			Timestamp: now,
			Message:   StatusPlaced.Message(),
		}},
	}
	t.nextSeq++

	t.orders[ord.ID] = ord
	t.sequence = append(t.sequence, ord.ID)

	// A new order supersedes the in-progress one
	t.stopProgressionLocked(t.currentID)
	t.currentID = ord.ID
	t.startProgressionLocked(ord.ID)

	t.mu.Unlock()

	t.log.WithFields(logrus.Fields{
		"order_id":     ord.ID,
		"order_number": ord.OrderNumber,
		"user_id":      ord.UserID,
		"total":        ord.Total,
	}).Info("Order placed")

	return ord.Clone(), nil
}

// Advance moves the order to the next status in the fixed sequence
// and appends the matching timeline event. Advancing an unknown order
// or past a terminal state is rejected and leaves state unchanged.
func (t *Tracker) Advance(orderID string) (*Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ord, ok := t.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if ord.Status.IsTerminal() {
		return nil, ErrTerminalState
	}

	next, ok := ord.Status.Next()
	if !ok {
		return nil, ErrTerminalState
	}

	now := t.clock.Now()
	ord.Status = next
	ord.Timeline = append(ord.Timeline, TimelineEvent{
		Status:    next,
		Timestamp: now,
		Message:   next.Message(),
	})

	if next == StatusDelivered {
		ord.DeliveredAt = &now
		t.stopProgressionLocked(orderID)
	}

	t.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   next,
	}).Info("Order advanced")

	return ord.Clone(), nil
}

// Cancel moves a non-terminal order to the cancelled state and stops
// its progression timer. A non-empty userID restricts cancellation to
// that owner's orders; staff callers pass an empty userID.
func (t *Tracker) Cancel(userID, orderID, reason string) (*Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ord, ok := t.orders[orderID]
	if !ok || (userID != "" && ord.UserID != userID) {
		return nil, ErrOrderNotFound
	}
	if !ord.CanBeCancelled() {
		return nil, ErrTerminalState
	}

	message := StatusCancelled.Message()
	if reason != "" {
		message = fmt.Sprintf("%s: %s", message, reason)
	}

	ord.Status = StatusCancelled
	ord.Timeline = append(ord.Timeline, TimelineEvent{
		Status:    StatusCancelled,
		Timestamp: t.clock.Now(),
		Message:   message,
	})
	t.stopProgressionLocked(orderID)

	t.log.WithField("order_id", orderID).Info("Order cancelled")

	return ord.Clone(), nil
}

// GetOrder retrieves a single order by ID. A non-empty userID scopes
// the lookup to that owner, so order ids do not leak other users'
// orders; staff callers pass an empty userID.
func (t *Tracker) GetOrder(userID, orderID string) (*Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ord, ok := t.orders[orderID]
	if !ok || (userID != "" && ord.UserID != userID) {
		return nil, ErrOrderNotFound
	}
	return ord.Clone(), nil
}

// CurrentOrder returns the most recently placed order
func (t *Tracker) CurrentOrder() (*Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ord, ok := t.orders[t.currentID]
	if !ok {
		return nil, ErrNoCurrentOrder
	}
	return ord.Clone(), nil
}

// ListOrders returns orders filtered by user and/or status, oldest
// first
func (t *Tracker) ListOrders(userID string, status Status) []*Order {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*Order, 0, len(t.sequence))
	for _, id := range t.sequence {
		ord := t.orders[id]
		if userID != "" && ord.UserID != userID {
			continue
		}
		if status != "" && ord.Status != status {
			continue
		}
		out = append(out, ord.Clone())
	}
	return out
}

// Close stops every progression timer. Orders remain readable.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	for id, cancel := range t.cancels {
		cancel()
		delete(t.cancels, id)
	}
}

// startProgressionLocked launches the cancellable periodic task that
// advances the order until it reaches a terminal state. The cancel
// handle is retained so superseding orders and teardown can clear it.
// The ticker is created here, not in the goroutine, so the clock has
// it registered before CreateOrder returns. Caller must hold t.mu.
func (t *Tracker) startProgressionLocked(orderID string) {
	ctx, cancel := context.WithCancel(context.Background())
	t.cancels[orderID] = cancel

	ticker := t.clock.NewTicker(t.cfg.Tracking.AdvanceInterval)

	go t.runProgression(ctx, ticker, orderID)
}

// stopProgressionLocked cancels and clears a retained timer handle, if
// any. Caller must hold t.mu.
func (t *Tracker) stopProgressionLocked(orderID string) {
	if cancel, ok := t.cancels[orderID]; ok {
		cancel()
		delete(t.cancels, orderID)
	}
}

func (t *Tracker) runProgression(ctx context.Context, ticker clock.Ticker, orderID string) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			// A tick can race with cancellation; recheck before acting
			if ctx.Err() != nil {
				return
			}
			ord, err := t.Advance(orderID)
			if err != nil {
				// Terminal or superseded; the timer is done
				return
			}
			if ord.Status.IsTerminal() {
				return
			}
		}
	}
}
