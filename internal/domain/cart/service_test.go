// internal/domain/cart/service_test.go
package cart

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/thequick-backend/internal/config"
	"github.com/your-org/thequick-backend/internal/pkg/clock"
)

// memCartStore is an in-memory Store for tests
type memCartStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string]*Cart)}
}

func (m *memCartStore) LoadCart(ctx context.Context, sessionID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[sessionID]
	if !ok {
		return nil, ErrCartNotFound
	}
	cp := *c
	cp.Items = append([]CartItem(nil), c.Items...)
	return &cp, nil
}

func (m *memCartStore) SaveCart(ctx context.Context, c *Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	cp.Items = append([]CartItem(nil), c.Items...)
	m.carts[c.SessionID] = &cp
	return nil
}

func (m *memCartStore) DeleteCart(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}

// identityAdjuster passes the base fee through unchanged
type identityAdjuster struct{}

func (identityAdjuster) AdjustedFee(baseFee int64) int64 { return baseFee }

// surgeAdjuster simulates rain plus high demand
type surgeAdjuster struct{}

func (surgeAdjuster) AdjustedFee(baseFee int64) int64 {
	return int64(float64(baseFee)*1.2*1.1 + 0.5)
}

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{
		RestaurantFreeDeliveryAbove: 300,
		RestaurantDeliveryFee:       35,
		ProductFreeDeliveryAbove:    500,
		ProductDeliveryFee:          29,
		PlatformFee:                 15,
		RestaurantBaseETA:           35,
		ProductBaseETA:              15,
	}
}

func newTestService(store Store, adjust FeeAdjuster) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{Pricing: testPricingConfig()}
	clk := clock.NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	return NewService(store, adjust, cfg, clk, log)
}

func dish(id string, price int64) ItemCandidate {
	return ItemCandidate{
		ID:             id,
		Name:           "Dish " + id,
		Price:          price,
		Service:        ServiceRestaurant,
		RestaurantID:   "rest_001",
		RestaurantName: "Spice Symphony",
	}
}

func grocery(id string, price int64) ItemCandidate {
	return ItemCandidate{
		ID:      id,
		Name:    "Product " + id,
		Price:   price,
		Service: ServiceProduct,
	}
}

func TestGetCartReturnsEmptyForNewSession(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})

	c, err := svc.GetCart(context.Background(), "sess-1")
	require.NoError(t, err)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, Totals{}, c.Totals)
	assert.Empty(t, c.Service)
}

func TestGetCartRequiresSessionID(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})

	_, err := svc.GetCart(context.Background(), "")
	assert.Error(t, err)
}

func TestAddItemComputesRestaurantTotals(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "sess-1", dish("menu_001", 180))
	require.NoError(t, err)

	assert.Equal(t, ServiceRestaurant, c.Service)
	assert.Equal(t, "rest_001", c.RestaurantID)
	assert.Equal(t, int64(180), c.Totals.Subtotal)
	assert.Equal(t, int64(35), c.Totals.DeliveryFee)
	assert.Equal(t, int64(15), c.Totals.PlatformFee)
	assert.Equal(t, int64(230), c.Totals.Total)
}

func TestAddItemComputesProductTotals(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "sess-1", grocery("prod_001", 120))
	require.NoError(t, err)

	assert.Equal(t, ServiceProduct, c.Service)
	assert.Equal(t, int64(29), c.Totals.DeliveryFee)
	assert.Zero(t, c.Totals.PlatformFee, "platform fee is restaurant-only")
	assert.Equal(t, int64(149), c.Totals.Total)
}

func TestFreeDeliveryThresholds(t *testing.T) {
	tests := []struct {
		name     string
		cand     ItemCandidate
		quantity int
		wantFee  int64
	}{
		{"restaurant one below threshold", dish("d1", 299), 1, 35},
		{"restaurant exactly at threshold", dish("d1", 300), 1, 0},
		{"restaurant above threshold", dish("d1", 150), 3, 0},
		{"product one below threshold", grocery("p1", 499), 1, 29},
		{"product exactly at threshold", grocery("p1", 500), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMemCartStore(), identityAdjuster{})
			ctx := context.Background()

			_, err := svc.AddItem(ctx, "sess-1", tt.cand)
			require.NoError(t, err)

			c, err := svc.UpdateQuantity(ctx, "sess-1", tt.cand.ID, tt.quantity)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFee, c.Totals.DeliveryFee)
		})
	}
}

func TestAddTwiceEqualsQuantityTwo(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", dish("menu_001", 180))
	require.NoError(t, err)
	added, err := svc.AddItem(ctx, "sess-1", dish("menu_001", 180))
	require.NoError(t, err)

	require.Len(t, added.Items, 1)
	assert.Equal(t, 2, added.Items[0].Quantity)

	svc2 := newTestService(newMemCartStore(), identityAdjuster{})
	_, err = svc2.AddItem(ctx, "sess-2", dish("menu_001", 180))
	require.NoError(t, err)
	set, err := svc2.UpdateQuantity(ctx, "sess-2", "menu_001", 2)
	require.NoError(t, err)

	assert.Equal(t, added.Totals, set.Totals)
}

func TestAddItemRejectsServiceMismatch(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", dish("menu_001", 180))
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "sess-1", grocery("prod_001", 60))
	assert.ErrorIs(t, err, ErrServiceMismatch)

	// The cart is untouched
	c, err := svc.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, ServiceRestaurant, c.Service)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", dish("menu_001", 180))
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "sess-1", "menu_001", 0)
	require.NoError(t, err)

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Service, "emptying the cart releases the service lock")
	assert.Empty(t, c.RestaurantID)
	assert.Equal(t, Totals{}, c.Totals)
}

func TestUpdateQuantityRejectsNegative(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})

	_, err := svc.UpdateQuantity(context.Background(), "sess-1", "menu_001", -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})

	_, err := svc.UpdateQuantity(context.Background(), "sess-1", "ghost", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItemUnknown(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})

	_, err := svc.RemoveItem(context.Background(), "sess-1", "ghost")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveLastItemClearsContext(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", dish("menu_001", 180))
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, "sess-1", "menu_001")
	require.NoError(t, err)

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Service)
	assert.Empty(t, c.RestaurantName)
}

func TestClearCartResetsEverything(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", dish("menu_001", 180))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", dish("menu_002", 220))
	require.NoError(t, err)

	c, err := svc.ClearCart(ctx, "sess-1")
	require.NoError(t, err)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, Totals{}, c.Totals)
	assert.Empty(t, c.Service)
}

func TestSurchargeAppliesOnlyToNonZeroBaseFee(t *testing.T) {
	svc := newTestService(newMemCartStore(), surgeAdjuster{})
	ctx := context.Background()

	// Below the free delivery threshold the surge multiplies the base
	c, err := svc.AddItem(ctx, "sess-1", dish("menu_001", 180))
	require.NoError(t, err)
	assert.Equal(t, int64(46), c.Totals.DeliveryFee) // 35 * 1.2 * 1.1

	// Above it the fee is zero and stays zero
	c, err = svc.UpdateQuantity(ctx, "sess-1", "menu_001", 2)
	require.NoError(t, err)
	assert.Zero(t, c.Totals.DeliveryFee)
}

func TestCartSurvivesReload(t *testing.T) {
	store := newMemCartStore()
	svc := newTestService(store, identityAdjuster{})
	ctx := context.Background()

	saved, err := svc.AddItem(ctx, "sess-1", dish("menu_001", 180))
	require.NoError(t, err)

	// A second service over the same store sees the same cart
	svc2 := newTestService(store, identityAdjuster{})
	loaded, err := svc2.GetCart(ctx, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, saved.Items, loaded.Items)
	assert.Equal(t, saved.Totals, loaded.Totals)
}

func TestTotalsAlwaysConsistentWithItems(t *testing.T) {
	svc := newTestService(newMemCartStore(), identityAdjuster{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", dish("menu_001", 180))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", dish("menu_002", 220))
	require.NoError(t, err)
	c, err := svc.UpdateQuantity(ctx, "sess-1", "menu_001", 3)
	require.NoError(t, err)

	var subtotal int64
	var quantity int
	for _, item := range c.Items {
		subtotal += item.Price * int64(item.Quantity)
		quantity += item.Quantity
	}

	assert.Equal(t, subtotal, c.Totals.Subtotal)
	assert.Equal(t, quantity, c.Totals.TotalQuantity)
	assert.Equal(t, len(c.Items), c.Totals.ItemCount)
	assert.Equal(t, c.Totals.Subtotal+c.Totals.DeliveryFee+c.Totals.PlatformFee-c.Totals.Discount, c.Totals.Total)
}
