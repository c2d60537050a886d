// internal/interfaces/http/handlers/services.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/thequick-backend/internal/domain/cart"
	"github.com/your-org/thequick-backend/internal/domain/catalog"
	"github.com/your-org/thequick-backend/internal/domain/order"
	"github.com/your-org/thequick-backend/internal/domain/pricing"
	"github.com/your-org/thequick-backend/internal/domain/user"
	"github.com/your-org/thequick-backend/internal/pkg/pdf"
)

// Services bundles the service objects constructed once at startup
// and injected into the handlers
type Services struct {
	Catalog *catalog.Service
	Cart    *cart.Service
	Orders  *order.Tracker
	Pricing *pricing.Service
	Users   *user.Service
	PDF     *pdf.Service
}

// getOrCreateSessionID gets the session ID from the cookie or creates
// a new one. The session keys the cart and auth blobs.
func getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		// Generate new session ID
		sessionID = uuid.New().String()

		// Set session cookie (24 hours)
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}
