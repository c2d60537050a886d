// internal/domain/catalog/service_test.go
package catalog

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/thequick-backend/internal/pkg/clock"
)

func newTestCatalog(t *testing.T, at time.Time) *Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	svc, err := NewService(clock.NewMock(at), log)
	require.NoError(t, err)
	return svc
}

func noon() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestFixturesLoadAndValidate(t *testing.T) {
	svc := newTestCatalog(t, noon())

	assert.Len(t, svc.Restaurants(RestaurantQuery{}), 4)
	assert.Len(t, svc.Menu(""), 12)
	assert.Len(t, svc.Products(ProductQuery{}), 10)
}

func TestRestaurantLookup(t *testing.T) {
	svc := newTestCatalog(t, noon())

	r, err := svc.Restaurant("rest_001")
	require.NoError(t, err)
	assert.Equal(t, "Spice Symphony", r.Name)

	_, err = svc.Restaurant("rest_999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestaurantOpenStatus(t *testing.T) {
	// rest_001 opens 10:00 and closes 23:00
	tests := []struct {
		name       string
		at         time.Time
		wantOpen   bool
		wantStatus RestaurantStatus
	}{
		{"midday is open", noon(), true, StatusOpen},
		{"before opening is closed", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), false, StatusClosed},
		{"after closing is closed", time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC), false, StatusClosed},
		{"last half hour is closing soon", time.Date(2026, 3, 1, 22, 45, 0, 0, time.UTC), true, StatusClosingSoon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestCatalog(t, tt.at)

			r, err := svc.Restaurant("rest_001")
			require.NoError(t, err)
			assert.Equal(t, tt.wantOpen, r.IsOpen)
			assert.Equal(t, tt.wantStatus, r.Status)
		})
	}
}

func TestBusyModeOverridesOpen(t *testing.T) {
	svc := newTestCatalog(t, noon())

	r, err := svc.Restaurant("rest_003")
	require.NoError(t, err)
	assert.True(t, r.IsOpen)
	assert.Equal(t, StatusBusy, r.Status)
}

func TestRestaurantSearchAndFilter(t *testing.T) {
	svc := newTestCatalog(t, noon())

	byName := svc.Restaurants(RestaurantQuery{Search: "dosa"})
	require.Len(t, byName, 1)
	assert.Equal(t, "rest_002", byName[0].ID)

	byCuisine := svc.Restaurants(RestaurantQuery{Cuisine: "chinese"})
	require.Len(t, byCuisine, 1)
	assert.Equal(t, "rest_003", byCuisine[0].ID)

	assert.Empty(t, svc.Restaurants(RestaurantQuery{Search: "sushi"}))
}

func TestRestaurantSorting(t *testing.T) {
	svc := newTestCatalog(t, noon())

	byRating := svc.Restaurants(RestaurantQuery{Sort: "rating"})
	require.Len(t, byRating, 4)
	for i := 1; i < len(byRating); i++ {
		assert.GreaterOrEqual(t, byRating[i-1].Rating, byRating[i].Rating)
	}

	byTime := svc.Restaurants(RestaurantQuery{Sort: "deliveryTime"})
	for i := 1; i < len(byTime); i++ {
		assert.LessOrEqual(t, byTime[i-1].DeliveryTime, byTime[i].DeliveryTime)
	}

	byDistance := svc.Restaurants(RestaurantQuery{Sort: "distance"})
	for i := 1; i < len(byDistance); i++ {
		assert.LessOrEqual(t, byDistance[i-1].Distance, byDistance[i].Distance)
	}
}

func TestMenuScopedToRestaurant(t *testing.T) {
	svc := newTestCatalog(t, noon())

	items := svc.Menu("rest_001")
	require.NotEmpty(t, items)
	for _, m := range items {
		assert.Equal(t, "rest_001", m.RestaurantID)
	}

	assert.Empty(t, svc.Menu("rest_999"))
}

func TestMenuItemLookup(t *testing.T) {
	svc := newTestCatalog(t, noon())

	m, err := svc.MenuItem("menu_001")
	require.NoError(t, err)
	assert.NotEmpty(t, m.Name)
	assert.Positive(t, m.Price)

	_, err = svc.MenuItem("menu_999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductFiltersAndSorting(t *testing.T) {
	svc := newTestCatalog(t, noon())

	milk := svc.Products(ProductQuery{Search: "milk"})
	require.NotEmpty(t, milk)

	asc := svc.Products(ProductQuery{Sort: "price_asc"})
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
	}

	desc := svc.Products(ProductQuery{Sort: "price_desc"})
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price)
	}
}

func TestProductLookup(t *testing.T) {
	svc := newTestCatalog(t, noon())

	p, err := svc.Product("prod_001")
	require.NoError(t, err)
	assert.Positive(t, p.Price)

	_, err = svc.Product("prod_999")
	assert.ErrorIs(t, err, ErrNotFound)
}
