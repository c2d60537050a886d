// internal/domain/user/service_test.go
package user

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/thequick-backend/internal/config"
)

// memSessionStore is an in-memory SessionStore for tests
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]Session)}
}

func (m *memSessionStore) SaveSession(ctx context.Context, sessionID string, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = s
	return nil
}

func (m *memSessionStore) LoadSession(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func newTestService(t *testing.T) (*Service, *memSessionStore) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	// Low cost keeps the fixture hashing fast in tests
	cfg := &config.Config{Security: config.SecurityConfig{BcryptCost: 4}}
	store := newMemSessionStore()

	svc, err := NewService(cfg, store, log)
	require.NoError(t, err)
	return svc, store
}

func TestAuthenticateDemoAccounts(t *testing.T) {
	svc, _ := newTestService(t)

	emails := []string{
		"user@quickbite.com",
		"rider@quickbite.com",
		"quickbite@admin.com",
		"quickmart@admin.com",
	}

	for _, email := range emails {
		u, err := svc.Authenticate(email, DemoPassword)
		require.NoError(t, err, email)
		assert.Equal(t, email, u.Email)
	}
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate("user@quickbite.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate("nobody@quickbite.com", DemoPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateEmailIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.Authenticate("User@QuickBite.com", DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, "user_001", u.ID)
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.GetByID("rider_001")
	require.NoError(t, err)
	assert.Equal(t, "Vikram Jadhav", u.Name)
	assert.Equal(t, RoleRider, u.Role)

	_, err = svc.GetByID("ghost_001")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminRoles(t *testing.T) {
	svc, _ := newTestService(t)

	qb, err := svc.GetByID("admin_qb_001")
	require.NoError(t, err)
	assert.True(t, qb.Role.IsAdmin())

	qm, err := svc.GetByID("admin_qm_001")
	require.NoError(t, err)
	assert.True(t, qm.Role.IsAdmin())

	u, err := svc.GetByID("user_001")
	require.NoError(t, err)
	assert.False(t, u.Role.IsAdmin())
}

func TestStaffRoles(t *testing.T) {
	// Riders count as staff so they can drive order progression,
	// but they are not admins
	assert.True(t, RoleRider.IsStaff())
	assert.False(t, RoleRider.IsAdmin())

	assert.True(t, RoleQuickBiteAdmin.IsStaff())
	assert.True(t, RoleQuickMartAdmin.IsStaff())
	assert.False(t, RoleUser.IsStaff())
}

func TestSessionLifecycle(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	u, err := svc.GetByEmail("user@quickbite.com")
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.StartSession(ctx, "sess-1", u, at))

	saved, err := store.LoadSession(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, u.ID, saved.UserID)
	assert.Equal(t, u.Role, saved.Role)
	assert.Equal(t, at, saved.LoginAt)

	require.NoError(t, svc.EndSession(ctx, "sess-1"))
	gone, err := store.LoadSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPasswordHashIsNotSerialized(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.GetByID("user_001")
	require.NoError(t, err)
	require.NotEmpty(t, u.PasswordHash)

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), u.PasswordHash)
}
