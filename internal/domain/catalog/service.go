// internal/domain/catalog/service.go
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/thequick-backend/internal/pkg/clock"
)

//go:embed data/*.json
var fixtures embed.FS

// ErrNotFound is returned for lookups of unknown catalog entries
var ErrNotFound = errors.New("catalog entry not found")

// Service serves the static restaurant, menu and product catalog.
// The data is fixture-backed and read-only; every payload is decoded
// and validated once at startup rather than trusted lazily.
type Service struct {
	restaurants []Restaurant
	menu        []MenuItem
	products    []Product
	clock       clock.Clock
}

// NewService loads and validates the embedded fixture catalog
func NewService(clk clock.Clock, log *logrus.Logger) (*Service, error) {
	s := &Service{clock: clk}

	if err := loadFixture("data/restaurants.json", &s.restaurants); err != nil {
		return nil, err
	}
	if err := loadFixture("data/menus.json", &s.menu); err != nil {
		return nil, err
	}
	if err := loadFixture("data/products.json", &s.products); err != nil {
		return nil, err
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("catalog fixtures invalid: %w", err)
	}

	log.WithFields(logrus.Fields{
		"restaurants": len(s.restaurants),
		"menu_items":  len(s.menu),
		"products":    len(s.products),
	}).Info("Catalog loaded")

	return s, nil
}

func loadFixture(name string, dest interface{}) error {
	raw, err := fixtures.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", name, err)
	}
	return nil
}

// validate enforces the record shapes at the boundary instead of
// trusting the fixture JSON verbatim
func (s *Service) validate() error {
	ids := make(map[string]struct{})
	for _, r := range s.restaurants {
		if r.ID == "" || r.Name == "" {
			return fmt.Errorf("restaurant missing id or name")
		}
		if _, dup := ids[r.ID]; dup {
			return fmt.Errorf("duplicate restaurant id %s", r.ID)
		}
		ids[r.ID] = struct{}{}
		if _, _, err := parseClock(r.OpeningTime); err != nil {
			return fmt.Errorf("restaurant %s: bad opening time: %w", r.ID, err)
		}
		if _, _, err := parseClock(r.ClosingTime); err != nil {
			return fmt.Errorf("restaurant %s: bad closing time: %w", r.ID, err)
		}
	}
	for _, m := range s.menu {
		if m.ID == "" || m.Price <= 0 {
			return fmt.Errorf("menu item %q missing id or price", m.Name)
		}
		if _, ok := ids[m.RestaurantID]; !ok {
			return fmt.Errorf("menu item %s references unknown restaurant %s", m.ID, m.RestaurantID)
		}
	}
	for _, p := range s.products {
		if p.ID == "" || p.Price <= 0 {
			return fmt.Errorf("product %q missing id or price", p.Name)
		}
	}
	return nil
}

// RestaurantQuery represents restaurant listing filters
type RestaurantQuery struct {
	Search  string `form:"q"`
	Cuisine string `form:"cuisine"`
	Sort    string `form:"sort"` // rating | deliveryTime | distance
}

// Restaurants lists restaurants with filters, sorting and computed
// open status
func (s *Service) Restaurants(q RestaurantQuery) []RestaurantView {
	filtered := make([]Restaurant, 0, len(s.restaurants))
	search := strings.ToLower(q.Search)

	for _, r := range s.restaurants {
		if search != "" && !matchesRestaurant(r, search) {
			continue
		}
		if q.Cuisine != "" && !hasCuisine(r, q.Cuisine) {
			continue
		}
		filtered = append(filtered, r)
	}

	switch q.Sort {
	case "rating":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Rating > filtered[j].Rating })
	case "deliveryTime":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].DeliveryTime < filtered[j].DeliveryTime })
	case "distance":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Distance < filtered[j].Distance })
	}

	views := make([]RestaurantView, len(filtered))
	for i, r := range filtered {
		views[i] = s.view(r)
	}
	return views
}

// Restaurant retrieves a single restaurant by ID
func (s *Service) Restaurant(id string) (*RestaurantView, error) {
	for _, r := range s.restaurants {
		if r.ID == id {
			v := s.view(r)
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

// Menu lists a restaurant's menu, or the full menu when no
// restaurant is given
func (s *Service) Menu(restaurantID string) []MenuItem {
	if restaurantID == "" {
		return append([]MenuItem(nil), s.menu...)
	}
	items := make([]MenuItem, 0)
	for _, m := range s.menu {
		if m.RestaurantID == restaurantID {
			items = append(items, m)
		}
	}
	return items
}

// MenuItem retrieves a single menu item by ID
func (s *Service) MenuItem(id string) (*MenuItem, error) {
	for _, m := range s.menu {
		if m.ID == id {
			item := m
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

// ProductQuery represents product listing filters
type ProductQuery struct {
	Search   string `form:"q"`
	Category string `form:"category"`
	Sort     string `form:"sort"` // price_asc | price_desc
}

// Products lists QuickMart products with filters
func (s *Service) Products(q ProductQuery) []Product {
	filtered := make([]Product, 0, len(s.products))
	search := strings.ToLower(q.Search)

	for _, p := range s.products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch q.Sort {
	case "price_asc":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "price_desc":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}

	return filtered
}

// Product retrieves a single product by ID
func (s *Service) Product(id string) (*Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			prod := p
			return &prod, nil
		}
	}
	return nil, ErrNotFound
}

// view computes the open/closed display status from opening hours
func (s *Service) view(r Restaurant) RestaurantView {
	now := s.clock.Now()
	minutes := now.Hour()*60 + now.Minute()

	openH, openM, _ := parseClock(r.OpeningTime)
	closeH, closeM, _ := parseClock(r.ClosingTime)
	openMinutes := openH*60 + openM
	closeMinutes := closeH*60 + closeM

	isOpen := minutes >= openMinutes && minutes < closeMinutes
	closingSoon := minutes >= closeMinutes-30 && minutes < closeMinutes

	status := StatusClosed
	switch {
	case !isOpen:
		status = StatusClosed
	case r.BusyMode:
		status = StatusBusy
	case closingSoon:
		status = StatusClosingSoon
	default:
		status = StatusOpen
	}

	return RestaurantView{Restaurant: r, IsOpen: isOpen, Status: status}
}

func matchesRestaurant(r Restaurant, search string) bool {
	if strings.Contains(strings.ToLower(r.Name), search) {
		return true
	}
	for _, c := range r.Cuisine {
		if strings.Contains(strings.ToLower(c), search) {
			return true
		}
	}
	return false
}

func hasCuisine(r Restaurant, cuisine string) bool {
	for _, c := range r.Cuisine {
		if strings.EqualFold(c, cuisine) {
			return true
		}
	}
	return false
}

func parseClock(v string) (int, int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("bad hour in %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("bad minute in %q", v)
	}
	return h, m, nil
}
