// internal/domain/pricing/entity.go
package pricing

// DemandLevel represents simulated order volume pressure
type DemandLevel string

const (
	DemandLow    DemandLevel = "LOW"
	DemandNormal DemandLevel = "NORMAL"
	DemandHigh   DemandLevel = "HIGH"
)

// Valid reports whether the level is one of the three known values
func (d DemandLevel) Valid() bool {
	return d == DemandLow || d == DemandNormal || d == DemandHigh
}

// Conditions are the external flags the surcharge policy is a function of
type Conditions struct {
	RainMode     bool        `json:"rain_mode"`
	DemandLevel  DemandLevel `json:"demand_level"`
	TrafficDelay bool        `json:"traffic_delay"`
}

// DefaultConditions returns the neutral state: clear weather, normal
// demand, no traffic delay
func DefaultConditions() Conditions {
	return Conditions{DemandLevel: DemandNormal}
}
