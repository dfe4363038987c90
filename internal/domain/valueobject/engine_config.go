// Package valueobject contains domain value objects for the Goal Planner system.
package valueobject

// EngineConfig contains the tunable knobs of the allocation engine. It is
// passed explicitly into every allocation and simulation call so that
// callers can vary weights per run without touching shared state.
//
// The default factor values are empirically chosen, not derived; treat them
// as tuning parameters.
type EngineConfig struct {
	// Urgency weights. Normalized before scoring if they do not sum to 1.
	PriorityWeight float64 // 0.5
	TimeWeight     float64 // 0.3
	ProgressWeight float64 // 0.2

	// SafetyMarginPercent of monthly income withheld from goal allocation
	// on top of the minimum living budget. 0.10 = 10%.
	SafetyMarginPercent float64

	// Dependency throttling. A goal whose prerequisite is incomplete gets
	// its raw allocation multiplied by DefaultFactor, or PartialFactor once
	// the prerequisite's progress reaches PartialThreshold of its target.
	DependencyDefaultFactor    float64 // 0.3
	DependencyPartialFactor    float64 // 0.6
	DependencyPartialThreshold float64 // 0.5

	// MaxRedistributionPasses bounds the optimizer's redistribution loop.
	// 0 means "one pass per goal", which is always enough for the loop to
	// stabilize since every pass caps at least one goal.
	MaxRedistributionPasses int
}

// DefaultEngineConfig returns the engine configuration with default weights
// and factors.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		PriorityWeight:             0.5,
		TimeWeight:                 0.3,
		ProgressWeight:             0.2,
		SafetyMarginPercent:        0.10,
		DependencyDefaultFactor:    0.3,
		DependencyPartialFactor:    0.6,
		DependencyPartialThreshold: 0.5,
	}
}

// Normalized returns a copy with degenerate values replaced: non-positive
// weight sums fall back to defaults, factors are clamped into (0,1].
func (c EngineConfig) Normalized() EngineConfig {
	defaults := DefaultEngineConfig()

	sum := c.PriorityWeight + c.TimeWeight + c.ProgressWeight
	if sum <= 0 {
		c.PriorityWeight = defaults.PriorityWeight
		c.TimeWeight = defaults.TimeWeight
		c.ProgressWeight = defaults.ProgressWeight
	} else if sum != 1 {
		c.PriorityWeight /= sum
		c.TimeWeight /= sum
		c.ProgressWeight /= sum
	}

	if c.SafetyMarginPercent < 0 || c.SafetyMarginPercent >= 1 {
		c.SafetyMarginPercent = defaults.SafetyMarginPercent
	}

	c.DependencyDefaultFactor = clampFactor(c.DependencyDefaultFactor, defaults.DependencyDefaultFactor)
	c.DependencyPartialFactor = clampFactor(c.DependencyPartialFactor, defaults.DependencyPartialFactor)
	if c.DependencyPartialThreshold <= 0 || c.DependencyPartialThreshold > 1 {
		c.DependencyPartialThreshold = defaults.DependencyPartialThreshold
	}

	if c.MaxRedistributionPasses < 0 {
		c.MaxRedistributionPasses = 0
	}

	return c
}

func clampFactor(v, fallback float64) float64 {
	if v <= 0 || v > 1 {
		return fallback
	}
	return v
}
