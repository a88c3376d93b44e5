package engine

import (
	"math"
	"time"

	"github.com/clickgrow/growcore/pkg/domain"
)

// Hourly stat loss while the plant is left alone.
const (
	HappinessDecayPerHour = 2.0
	HealthDecayPerHour    = 1.0

	// DefaultDeathAfter is how long a plant survives without any interaction.
	DefaultDeathAfter = 7 * 24 * time.Hour
)

// DecayResult reports what one decay pass changed.
type DecayResult struct {
	Elapsed   time.Duration `json:"elapsed"`
	Happiness float64       `json:"happiness"`
	Health    float64       `json:"health"`
	Died      bool          `json:"died"`
}

// ApplyOfflineDecay drains happiness and health for the time since the last decay pass
// and kills the plant once deathAfter has passed since the last interaction.
// A dead plant is never mutated.
func ApplyOfflineDecay(p *domain.PlayerState, now time.Time, deathAfter time.Duration) DecayResult {
	if p.Dead {
		return DecayResult{}
	}
	if deathAfter <= 0 {
		deathAfter = DefaultDeathAfter
	}

	if now.Sub(p.LastInteractionAt) >= deathAfter {
		p.Dead = true
		p.LastDecayAt = now
		return DecayResult{Elapsed: now.Sub(p.LastInteractionAt), Died: true}
	}

	elapsed := now.Sub(p.LastDecayAt)
	if elapsed <= 0 {
		return DecayResult{}
	}
	hours := elapsed.Hours()

	before := DecayResult{Happiness: p.Happiness, Health: p.Health}
	p.Happiness = clampStat(p.Happiness - HappinessDecayPerHour*hours)
	p.Health = clampStat(p.Health - HealthDecayPerHour*hours)
	p.LastDecayAt = now

	return DecayResult{
		Elapsed:   elapsed,
		Happiness: p.Happiness - before.Happiness,
		Health:    p.Health - before.Health,
	}
}

func clampStat(v float64) float64 {
	return math.Max(0, math.Min(domain.MaxStat, v))
}
