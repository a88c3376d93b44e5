package engine

import (
	"github.com/shopspring/decimal"

	"github.com/clickgrow/growcore/pkg/domain"
)

// ActionEffect is the unscaled outcome of one care action.
type ActionEffect struct {
	Experience int64
	Coins      int64
	Happiness  int64
	Health     int64
	Growth     int64
}

var actionEffects = map[domain.ActionType]ActionEffect{
	domain.ActionWater:      {Experience: 10, Coins: 5, Happiness: 5, Health: 3, Growth: 1},
	domain.ActionFertilizer: {Experience: 15, Coins: 8, Happiness: 3, Health: 5, Growth: 2},
	domain.ActionSunlight:   {Experience: 12, Coins: 6, Happiness: 4, Health: 2, Growth: 2},
	domain.ActionMusic:      {Experience: 8, Coins: 4, Happiness: 6, Health: 0, Growth: 1},
}

// BaseEffect returns the table entry of action.
func BaseEffect(action domain.ActionType) (ActionEffect, bool) {
	e, ok := actionEffects[action]
	return e, ok
}

const (
	boosterFactor = 2

	// a completed mini-game pays one bonus coin per this many points
	bonusCoinDivisor = 25
)

var hundred = decimal.NewFromInt(100)

// ScaleByScore returns floor(base × (100 + score) / 100).
func ScaleByScore(base int64, score int) int64 {
	if score < 0 {
		score = 0
	}
	return decimal.NewFromInt(base).
		Mul(decimal.NewFromInt(int64(100 + score))).
		Div(hundred).
		Floor().
		IntPart()
}

// MinigameBonusCoins returns the flat coin bonus of a completed mini-game.
func MinigameBonusCoins(score int) int64 {
	if score <= 0 {
		return 0
	}
	return int64(score / bonusCoinDivisor)
}

// RewardBreakdown is the numeric result of a resolved action, for display.
type RewardBreakdown struct {
	Score int `json:"score"`

	Experience int64 `json:"experience"`
	Coins      int64 `json:"coins"`
	BonusCoins int64 `json:"bonusCoins"`

	Happiness float64 `json:"happiness"`
	Health    float64 `json:"health"`
	Growth    float64 `json:"growth"`

	ExperienceBoosted bool `json:"experienceBoosted"`
	CoinsBoosted      bool `json:"coinsBoosted"`
}

// ComputeReward scales the base effect of action by score and by any booster held in inventory.
// Health and growth are not score dependent.
func ComputeReward(action domain.ActionType, score int, inventory map[string]int64) (RewardBreakdown, bool) {
	base, ok := BaseEffect(action)
	if !ok {
		return RewardBreakdown{}, false
	}

	r := RewardBreakdown{
		Score:      score,
		Experience: ScaleByScore(base.Experience, score),
		Coins:      ScaleByScore(base.Coins, score),
		BonusCoins: MinigameBonusCoins(score),
		Happiness:  float64(ScaleByScore(base.Happiness, score)),
		Health:     float64(base.Health),
		Growth:     float64(base.Growth),
	}

	if inventory[domain.ItemExperienceMultiplier] > 0 {
		r.Experience *= boosterFactor
		r.ExperienceBoosted = true
	}
	if inventory[domain.ItemCoinMultiplier] > 0 {
		r.Coins *= boosterFactor
		r.CoinsBoosted = true
	}
	return r, true
}
