// internal/infrastructure/database/redis/stores.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/thequick-backend/internal/domain/cart"
	"github.com/your-org/thequick-backend/internal/domain/pricing"
	"github.com/your-org/thequick-backend/internal/domain/user"
)

// The session state lives in three independent named blobs. No
// cross-referential integrity is enforced between them: logging out
// does not clear the cart.
const (
	cartKeyPrefix = "thequick-cart:"
	authKeyPrefix = "thequick-auth:"
	systemKey     = "thequick-system"
)

// CartStore persists carts as per-session JSON blobs
type CartStore struct {
	client *Client
	ttl    time.Duration
}

// NewCartStore creates a cart store with the configured session TTL
func NewCartStore(client *Client, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl}
}

// LoadCart retrieves a session's cart blob
func (s *CartStore) LoadCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	var c cart.Cart
	err := s.client.GetJSON(ctx, cartKeyPrefix+sessionID, &c)
	if errors.Is(err, goredis.Nil) {
		return nil, cart.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart blob: %w", err)
	}
	return &c, nil
}

// SaveCart writes the cart blob, refreshing its TTL
func (s *CartStore) SaveCart(ctx context.Context, c *cart.Cart) error {
	return s.client.SetJSON(ctx, cartKeyPrefix+c.SessionID, c, s.ttl)
}

// DeleteCart removes a session's cart blob
func (s *CartStore) DeleteCart(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKeyPrefix+sessionID)
}

// SessionStore persists the logged-in identity per session
type SessionStore struct {
	client *Client
	ttl    time.Duration
}

// NewSessionStore creates an auth session store
func NewSessionStore(client *Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// SaveSession writes the identity blob
func (s *SessionStore) SaveSession(ctx context.Context, sessionID string, sess user.Session) error {
	return s.client.SetJSON(ctx, authKeyPrefix+sessionID, sess, s.ttl)
}

// LoadSession retrieves the identity blob
func (s *SessionStore) LoadSession(ctx context.Context, sessionID string) (*user.Session, error) {
	var sess user.Session
	err := s.client.GetJSON(ctx, authKeyPrefix+sessionID, &sess)
	if errors.Is(err, goredis.Nil) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session blob: %w", err)
	}
	return &sess, nil
}

// DeleteSession removes the identity blob
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, authKeyPrefix+sessionID)
}

// ConditionsStore persists the platform-wide delivery conditions
type ConditionsStore struct {
	client *Client
}

// NewConditionsStore creates a delivery conditions store
func NewConditionsStore(client *Client) *ConditionsStore {
	return &ConditionsStore{client: client}
}

// LoadConditions retrieves the saved conditions; nil when none exist
func (s *ConditionsStore) LoadConditions(ctx context.Context) (*pricing.Conditions, error) {
	var cond pricing.Conditions
	err := s.client.GetJSON(ctx, systemKey, &cond)
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conditions blob: %w", err)
	}
	return &cond, nil
}

// SaveConditions writes the conditions blob. Conditions are
// platform-wide, so no TTL.
func (s *ConditionsStore) SaveConditions(ctx context.Context, cond pricing.Conditions) error {
	return s.client.SetJSON(ctx, systemKey, cond, 0)
}
