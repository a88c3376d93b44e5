package engine

import (
	"time"

	"github.com/clickgrow/growcore/pkg/domain"
)

// CooldownGate enforces a fixed minimum interval between two actions of the same type.
type CooldownGate struct {
	durations map[domain.ActionType]time.Duration
}

// NewCooldownGate creates a gate from per-action durations. Actions missing from
// the map have no cooldown.
func NewCooldownGate(durations map[domain.ActionType]time.Duration) *CooldownGate {
	d := make(map[domain.ActionType]time.Duration, len(durations))
	for action, v := range durations {
		d[action] = v
	}
	return &CooldownGate{durations: d}
}

// Duration returns the configured cooldown of action.
func (g *CooldownGate) Duration(action domain.ActionType) time.Duration {
	return g.durations[action]
}

// Remaining returns how long until action is eligible, or 0 if it is eligible now.
// An action that was never performed is eligible.
func (g *CooldownGate) Remaining(p *domain.PlayerState, action domain.ActionType, now time.Time) time.Duration {
	last, ok := p.LastActionAt[action]
	if !ok || last.IsZero() {
		return 0
	}
	remaining := g.durations[action] - now.Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanAct reports whether now - lastActionAt[action] ≥ cooldown[action].
func (g *CooldownGate) CanAct(p *domain.PlayerState, action domain.ActionType, now time.Time) bool {
	return g.Remaining(p, action, now) == 0
}

// Record starts the cooldown of action at now.
// Call it only once the action is known to succeed.
func (g *CooldownGate) Record(p *domain.PlayerState, action domain.ActionType, now time.Time) {
	p.LastActionAt[action] = now
}
