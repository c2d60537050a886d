// internal/domain/catalog/entity.go
package catalog

// Restaurant represents a partner restaurant from the fixture catalog
type Restaurant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Cuisine      []string `json:"cuisine"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"review_count"`
	DeliveryTime int      `json:"delivery_time"` // minutes
	DeliveryFee  int64    `json:"delivery_fee"`
	MinOrder     int64    `json:"min_order"`
	Image        string   `json:"image"`
	Address      string   `json:"address"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	OpeningTime  string   `json:"opening_time"` // "HH:MM"
	ClosingTime  string   `json:"closing_time"`
	BusyMode     bool     `json:"busy_mode"`
	Distance     float64  `json:"distance"` // km
	Tags         []string `json:"tags"`
}

// RestaurantStatus is the display status derived from opening hours
// and busy mode
type RestaurantStatus string

const (
	StatusOpen        RestaurantStatus = "open"
	StatusBusy        RestaurantStatus = "busy"
	StatusClosingSoon RestaurantStatus = "closing_soon"
	StatusClosed      RestaurantStatus = "closed"
)

// RestaurantView is a restaurant with its computed open/closed status
type RestaurantView struct {
	Restaurant
	IsOpen bool             `json:"is_open"`
	Status RestaurantStatus `json:"status"`
}

// MenuItem represents a dish on a restaurant's menu
type MenuItem struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Image        string `json:"image"`
	Category     string `json:"category"`
	Veg          bool   `json:"veg"`
	Available    bool   `json:"available"`
	Popular      bool   `json:"popular"`
	Calories     int    `json:"calories,omitempty"`
}

// Product represents a QuickMart grocery product
type Product struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"original_price,omitempty"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	InStock       bool   `json:"in_stock"`
	Quantity      int    `json:"quantity"`
}
