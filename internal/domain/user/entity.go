// internal/domain/user/entity.go
package user

import "time"

// Role distinguishes the demo accounts
type Role string

const (
	RoleUser           Role = "user"
	RoleRider          Role = "rider"
	RoleQuickBiteAdmin Role = "quickbite_admin"
	RoleQuickMartAdmin Role = "quickmart_admin"
)

// IsAdmin reports whether the role carries admin privileges
func (r Role) IsAdmin() bool {
	return r == RoleQuickBiteAdmin || r == RoleQuickMartAdmin
}

// IsStaff reports whether the role belongs to platform personnel.
// Riders drive order progression from their dashboard, so they count
// alongside the admins.
func (r Role) IsStaff() bool {
	return r == RoleRider || r.IsAdmin()
}

// Address represents a saved delivery address
type Address struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	FullAddress string  `json:"full_address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	IsDefault   bool    `json:"is_default"`
}

// User represents a demo platform account
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Don't return in JSON
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	Addresses    []Address `json:"addresses"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents a logged-in identity persisted per session
type Session struct {
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Role    Role      `json:"role"`
	LoginAt time.Time `json:"login_at"`
}
