// internal/domain/pricing/policy.go
package pricing

import (
	"math"

	"github.com/your-org/thequick-backend/internal/config"
)

// Policy computes fee and ETA adjustments from delivery conditions.
// It is pure: the same conditions and base always produce the same
// output. Fee multipliers compose multiplicatively, weather first then
// demand; ETA boosts are additive and independent of each other.
type Policy struct {
	cfg config.SurchargeConfig
}

// NewPolicy creates a surcharge policy from configuration
func NewPolicy(cfg config.SurchargeConfig) *Policy {
	return &Policy{cfg: cfg}
}

// AdjustFee applies the surcharge multipliers to a base fee and rounds
// to the nearest whole currency unit
func (p *Policy) AdjustFee(cond Conditions, baseFee int64) int64 {
	fee := float64(baseFee)
	if cond.RainMode {
		fee *= p.cfg.WeatherFeeMultiplier
	}
	if cond.DemandLevel == DemandHigh {
		fee *= p.cfg.HighDemandFeeMultiplier
	}
	return int64(math.Round(fee))
}

// AdjustETA applies the flat ETA boosts, in minutes. All three boosts
// can stack.
func (p *Policy) AdjustETA(cond Conditions, baseETA int) int {
	eta := baseETA
	if cond.RainMode {
		eta += p.cfg.WeatherETABoost
	}
	if cond.DemandLevel == DemandHigh {
		eta += p.cfg.HighDemandETABoost
	}
	if cond.TrafficDelay {
		eta += p.cfg.TrafficETABoost
	}
	return eta
}
