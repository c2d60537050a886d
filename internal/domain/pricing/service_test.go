// internal/domain/pricing/service_test.go
package pricing

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/thequick-backend/internal/config"
)

// mockConditionsStore is an in-memory Store with error injection
type mockConditionsStore struct {
	mu      sync.Mutex
	saved   *Conditions
	saveErr error
}

func (m *mockConditionsStore) LoadConditions(ctx context.Context) (*Conditions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved, nil
}

func (m *mockConditionsStore) SaveConditions(ctx context.Context, cond Conditions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &cond
	return nil
}

func testConfig() *config.Config {
	return &config.Config{Surcharge: testSurchargeConfig()}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestServiceStartsWithDefaults(t *testing.T) {
	svc := NewService(testConfig(), &mockConditionsStore{}, testLogger())

	assert.Equal(t, DefaultConditions(), svc.Conditions())
}

func TestServiceRestoresSavedConditions(t *testing.T) {
	store := &mockConditionsStore{
		saved: &Conditions{RainMode: true, DemandLevel: DemandHigh},
	}

	svc := NewService(testConfig(), store, testLogger())

	cond := svc.Conditions()
	assert.True(t, cond.RainMode)
	assert.Equal(t, DemandHigh, cond.DemandLevel)
}

func TestServiceTogglesPersist(t *testing.T) {
	store := &mockConditionsStore{}
	svc := NewService(testConfig(), store, testLogger())
	ctx := context.Background()

	cond, err := svc.SetRainMode(ctx, true)
	require.NoError(t, err)
	assert.True(t, cond.RainMode)

	cond, err = svc.SetTrafficDelay(ctx, true)
	require.NoError(t, err)
	assert.True(t, cond.TrafficDelay)

	cond, err = svc.SetDemandLevel(ctx, DemandHigh)
	require.NoError(t, err)
	assert.Equal(t, DemandHigh, cond.DemandLevel)

	// The store saw the final state
	require.NotNil(t, store.saved)
	assert.Equal(t, cond, *store.saved)

	// A fresh service restores it
	restored := NewService(testConfig(), store, testLogger())
	assert.Equal(t, cond, restored.Conditions())
}

func TestServiceRejectsInvalidDemandLevel(t *testing.T) {
	svc := NewService(testConfig(), &mockConditionsStore{}, testLogger())

	_, err := svc.SetDemandLevel(context.Background(), DemandLevel("EXTREME"))
	require.Error(t, err)
	assert.Equal(t, DemandNormal, svc.Conditions().DemandLevel)
}

func TestServiceSaveFailureSurfaces(t *testing.T) {
	store := &mockConditionsStore{saveErr: errors.New("redis down")}
	svc := NewService(testConfig(), store, testLogger())

	_, err := svc.SetRainMode(context.Background(), true)
	assert.Error(t, err)
}

func TestServiceAdjustsUnderCurrentConditions(t *testing.T) {
	svc := NewService(testConfig(), &mockConditionsStore{}, testLogger())
	ctx := context.Background()

	assert.Equal(t, int64(35), svc.AdjustedFee(35))
	assert.Equal(t, 35, svc.AdjustedETA(35))

	_, err := svc.SetRainMode(ctx, true)
	require.NoError(t, err)
	_, err = svc.SetDemandLevel(ctx, DemandHigh)
	require.NoError(t, err)
	_, err = svc.SetTrafficDelay(ctx, true)
	require.NoError(t, err)

	assert.Equal(t, int64(46), svc.AdjustedFee(35))
	assert.Equal(t, 48, svc.AdjustedETA(35))
}
