// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/thequick-backend/internal/config"
	"github.com/your-org/thequick-backend/internal/pkg/auth"
)

// DemoPassword is the shared password for every fixture account. This
// is demo authentication, not a security boundary.
const DemoPassword = "123456"

var (
	// ErrInvalidCredentials is returned when email or password do not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned for lookups of unknown users
	ErrUserNotFound = errors.New("user not found")
)

// SessionStore persists the logged-in identity per session
type SessionStore interface {
	SaveSession(ctx context.Context, sessionID string, s Session) error
	LoadSession(ctx context.Context, sessionID string) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Service handles the demo account directory and login checks
type Service struct {
	users    []User
	sessions SessionStore
	password *auth.PasswordManager
	log      *logrus.Entry
}

// NewService creates the user service, hashing the fixture passwords
// with bcrypt at startup
func NewService(cfg *config.Config, sessions SessionStore, log *logrus.Logger) (*Service, error) {
	pm := auth.NewPasswordManager(cfg)

	hash, err := pm.HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	users := fixtureUsers()
	for i := range users {
		users[i].PasswordHash = hash
	}

	return &Service{
		users:    users,
		sessions: sessions,
		password: pm,
		log:      log.WithField("component", "user"),
	}, nil
}

// Authenticate checks email and password against the demo directory
func (s *Service) Authenticate(email, password string) (*User, error) {
	u, err := s.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.password.VerifyPassword(password, u.PasswordHash); err != nil {
		s.log.WithField("email", email).Warn("Failed login attempt")
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// GetByID retrieves a user by id
func (s *Service) GetByID(id string) (*User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetByEmail retrieves a user by email, case-insensitively
func (s *Service) GetByEmail(email string) (*User, error) {
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// StartSession records the logged-in identity. Logging out later does
// not touch the cart blob; the two are independent.
func (s *Service) StartSession(ctx context.Context, sessionID string, u *User, at time.Time) error {
	return s.sessions.SaveSession(ctx, sessionID, Session{
		UserID:  u.ID,
		Email:   u.Email,
		Role:    u.Role,
		LoginAt: at,
	})
}

// EndSession clears the session's identity blob
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	return s.sessions.DeleteSession(ctx, sessionID)
}

// fixtureUsers returns the four demo accounts
func fixtureUsers() []User {
	return []User{
		{
			ID:    "user_001",
			Email: "user@quickbite.com",
			Name:  "Rahul Sharma",
			Phone: "+91 9876543210",
			Role:  RoleUser,
			Addresses: []Address{
				{
					ID:          "addr_001",
					Label:       "Home",
					FullAddress: "Flat 201, Green Valley Apartments, Nashik",
					Lat:         20.0100,
					Lng:         73.7850,
					IsDefault:   true,
				},
			},
			CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "rider_001",
			Email:     "rider@quickbite.com",
			Name:      "Vikram Jadhav",
			Phone:     "+91 9876543211",
			Role:      RoleRider,
			Addresses: []Address{},
			CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "admin_qb_001",
			Email:     "quickbite@admin.com",
			Name:      "Sanjay Patil",
			Phone:     "+91 9876543212",
			Role:      RoleQuickBiteAdmin,
			Addresses: []Address{},
			CreatedAt: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "admin_qm_001",
			Email:     "quickmart@admin.com",
			Name:      "Priya Desai",
			Phone:     "+91 9876543213",
			Role:      RoleQuickMartAdmin,
			Addresses: []Address{},
			CreatedAt: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}
