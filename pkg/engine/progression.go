package engine

import (
	"log/slog"

	"github.com/clickgrow/growcore/pkg/domain"
)

// RequiredExpForLevel returns the experience needed to advance from level-1 to level.
//
// The curve is piecewise linear with a steeper multiplier per band:
//
//	level ≤ 10  → 100·level
//	level ≤ 25  → 150·level
//	level ≤ 50  → 200·level
//	level ≤ 100 → 300·level
//	level ≤ 150 → 400·level
//	level ≤ 200 → 500·level
//	otherwise   → 600·level
//
// Saved games depend on this table. Do not change it.
func RequiredExpForLevel(level int) int64 {
	l := int64(level)
	switch {
	case level <= 10:
		return l * 100
	case level <= 25:
		return l * 150
	case level <= 50:
		return l * 200
	case level <= 100:
		return l * 300
	case level <= 150:
		return l * 400
	case level <= 200:
		return l * 500
	default:
		return l * 600
	}
}

// LevelReward returns the coins and gems granted on reaching level.
func LevelReward(level int) (coins, gems int64) {
	return int64(level) * 10, int64(level / 10)
}

// Progression applies experience, currency and level-up rules to a PlayerState.
// It mutates the state in place and performs no I/O.
type Progression struct {
	logger *slog.Logger
}

// NewProgression creates a Progression.
func NewProgression(logger *slog.Logger) *Progression {
	return &Progression{logger: logger}
}

// AddExperience adds amount to both the per-level and total experience, then resolves level-ups.
// Non-positive amounts are ignored.
func (g *Progression) AddExperience(p *domain.PlayerState, amount int64) []domain.LevelUp {
	if amount <= 0 {
		return nil
	}
	p.Experience += amount
	p.TotalExperience += amount
	return g.ResolveLevelUps(p)
}

// ResolveLevelUps advances the level while the banked experience covers the next threshold.
// After it returns, experience < RequiredExpForLevel(level+1) unless the level is capped.
func (g *Progression) ResolveLevelUps(p *domain.PlayerState) []domain.LevelUp {
	var ups []domain.LevelUp
	for p.Level < domain.MaxLevel {
		required := RequiredExpForLevel(p.Level + 1)
		if p.Experience < required {
			break
		}
		p.Experience -= required
		p.Level++

		coins, gems := LevelReward(p.Level)
		g.AddCurrency(p, domain.ResourceCoins, coins)
		g.AddCurrency(p, domain.ResourceGems, gems)

		ups = append(ups, domain.LevelUp{Level: p.Level, Coins: coins, Gems: gems})
		g.logger.Info("Level up",
			"level", p.Level,
			"coins", coins,
			"gems", gems,
		)
	}
	return ups
}

// AddCurrency credits coins or gems. Coins also count toward total coins earned.
// Experience is routed to AddExperience so level-ups are never skipped.
func (g *Progression) AddCurrency(p *domain.PlayerState, kind domain.ResourceKind, amount int64) []domain.LevelUp {
	if amount <= 0 {
		return nil
	}
	switch kind {
	case domain.ResourceCoins:
		p.Coins += amount
		p.TotalCoinsEarned += amount
	case domain.ResourceGems:
		p.Gems += amount
	case domain.ResourceExperience:
		return g.AddExperience(p, amount)
	}
	return nil
}

// Grant applies a reward list. Currencies are credited before experience so the
// level rewards of any resulting level-up land on top of them.
func (g *Progression) Grant(p *domain.PlayerState, rewards []domain.Reward) []domain.LevelUp {
	var exp int64
	for _, r := range rewards {
		switch r.Kind {
		case domain.ResourceCoins, domain.ResourceGems:
			g.AddCurrency(p, r.Kind, r.Amount)
		case domain.ResourceExperience:
			if r.Amount > 0 {
				exp += r.Amount
			}
		}
	}
	return g.AddExperience(p, exp)
}
