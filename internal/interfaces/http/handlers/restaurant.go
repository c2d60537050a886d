// internal/interfaces/http/handlers/restaurant.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/thequick-backend/internal/domain/catalog"
)

// RestaurantHandler handles restaurant and menu endpoints
type RestaurantHandler struct {
	catalog *catalog.Service
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(svcs *Services) *RestaurantHandler {
	return &RestaurantHandler{catalog: svcs.Catalog}
}

// GetRestaurants handles GET /restaurants
func (h *RestaurantHandler) GetRestaurants(c *gin.Context) {
	var q catalog.RestaurantQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Restaurants retrieved successfully",
		"data":    h.catalog.Restaurants(q),
	})
}

// GetRestaurant handles GET /restaurants/:id
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	r, err := h.catalog.Restaurant(c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Restaurant not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve restaurant",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Restaurant retrieved successfully",
		"data":    r,
	})
}

// GetRestaurantMenu handles GET /restaurants/:id/menu
func (h *RestaurantHandler) GetRestaurantMenu(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.catalog.Restaurant(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Restaurant not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data":    h.catalog.Menu(id),
	})
}

// GetMenu handles GET /menu with an optional restaurant filter
func (h *RestaurantHandler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data":    h.catalog.Menu(c.Query("restaurant_id")),
	})
}
