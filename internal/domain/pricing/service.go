// internal/domain/pricing/service.go
package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/thequick-backend/internal/config"
)

// Store persists the delivery conditions between sessions
type Store interface {
	LoadConditions(ctx context.Context) (*Conditions, error)
	SaveConditions(ctx context.Context, cond Conditions) error
}

// Service owns the current delivery conditions and is the single
// source of truth for fee and ETA adjustment across the platform
type Service struct {
	policy *Policy
	store  Store
	log    *logrus.Entry

	mu   sync.RWMutex
	cond Conditions
}

// NewService creates a pricing service, restoring previously saved
// conditions when the store has them
func NewService(cfg *config.Config, store Store, log *logrus.Logger) *Service {
	s := &Service{
		policy: NewPolicy(cfg.Surcharge),
		store:  store,
		log:    log.WithField("component", "pricing"),
		cond:   DefaultConditions(),
	}

	if saved, err := store.LoadConditions(context.Background()); err == nil && saved != nil {
		s.cond = *saved
	}

	return s
}

// Conditions returns a copy of the current delivery conditions
func (s *Service) Conditions() Conditions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cond
}

// SetRainMode toggles the adverse weather flag
func (s *Service) SetRainMode(ctx context.Context, enabled bool) (Conditions, error) {
	return s.update(ctx, func(c *Conditions) { c.RainMode = enabled })
}

// SetTrafficDelay toggles the traffic delay flag
func (s *Service) SetTrafficDelay(ctx context.Context, enabled bool) (Conditions, error) {
	return s.update(ctx, func(c *Conditions) { c.TrafficDelay = enabled })
}

// SetDemandLevel sets the demand level
func (s *Service) SetDemandLevel(ctx context.Context, level DemandLevel) (Conditions, error) {
	if !level.Valid() {
		return s.Conditions(), fmt.Errorf("invalid demand level: %s", level)
	}
	return s.update(ctx, func(c *Conditions) { c.DemandLevel = level })
}

// AdjustedFee applies the surcharge policy to a base fee under the
// current conditions
func (s *Service) AdjustedFee(baseFee int64) int64 {
	return s.policy.AdjustFee(s.Conditions(), baseFee)
}

// AdjustedETA applies the surcharge policy to a base ETA under the
// current conditions
func (s *Service) AdjustedETA(baseETA int) int {
	return s.policy.AdjustETA(s.Conditions(), baseETA)
}

func (s *Service) update(ctx context.Context, mutate func(*Conditions)) (Conditions, error) {
	s.mu.Lock()
	mutate(&s.cond)
	cond := s.cond
	s.mu.Unlock()

	if err := s.store.SaveConditions(ctx, cond); err != nil {
		return cond, fmt.Errorf("failed to save delivery conditions: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"rain_mode":     cond.RainMode,
		"demand_level":  cond.DemandLevel,
		"traffic_delay": cond.TrafficDelay,
	}).Info("Delivery conditions updated")

	return cond, nil
}
