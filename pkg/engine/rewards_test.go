package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickgrow/growcore/pkg/domain"
)

func TestScaleByScore(t *testing.T) {
	tests := []struct {
		name     string
		base     int64
		score    int
		expected int64
	}{
		{"zero score keeps base", 10, 0, 10},
		{"half bonus", 10, 50, 15},
		{"floors fractions", 5, 50, 7},
		{"double", 8, 100, 16},
		{"big score", 12, 275, 45},
		{"negative score treated as zero", 10, -40, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScaleByScore(tt.base, tt.score))
		})
	}
}

func TestMinigameBonusCoins(t *testing.T) {
	assert.Equal(t, int64(0), MinigameBonusCoins(0))
	assert.Equal(t, int64(0), MinigameBonusCoins(24))
	assert.Equal(t, int64(1), MinigameBonusCoins(25))
	assert.Equal(t, int64(4), MinigameBonusCoins(110))
	assert.Equal(t, int64(0), MinigameBonusCoins(-30))
}

func TestComputeReward(t *testing.T) {
	t.Run("base table", func(t *testing.T) {
		for _, action := range domain.AllActions {
			base, ok := BaseEffect(action)
			require.True(t, ok)

			r, ok := ComputeReward(action, 0, nil)
			require.True(t, ok)
			assert.Equal(t, base.Experience, r.Experience)
			assert.Equal(t, base.Coins, r.Coins)
			assert.Equal(t, float64(base.Happiness), r.Happiness)
			assert.Equal(t, float64(base.Health), r.Health)
			assert.Equal(t, float64(base.Growth), r.Growth)
		}
	})

	t.Run("score scaling", func(t *testing.T) {
		r, ok := ComputeReward(domain.ActionFertilizer, 50, nil)
		require.True(t, ok)

		assert.Equal(t, int64(22), r.Experience) // floor(15 * 1.5)
		assert.Equal(t, int64(12), r.Coins)      // floor(8 * 1.5)
		assert.Equal(t, int64(2), r.BonusCoins)
		assert.Equal(t, 4.0, r.Happiness) // floor(3 * 1.5)
		assert.Equal(t, 5.0, r.Health)
		assert.False(t, r.ExperienceBoosted)
		assert.False(t, r.CoinsBoosted)
	})

	t.Run("boosters double while held", func(t *testing.T) {
		inventory := map[string]int64{
			domain.ItemExperienceMultiplier: 1,
			domain.ItemCoinMultiplier:       2,
		}
		r, ok := ComputeReward(domain.ActionWater, 0, inventory)
		require.True(t, ok)

		assert.Equal(t, int64(20), r.Experience)
		assert.Equal(t, int64(10), r.Coins)
		assert.True(t, r.ExperienceBoosted)
		assert.True(t, r.CoinsBoosted)
	})

	t.Run("empty booster slot does nothing", func(t *testing.T) {
		r, _ := ComputeReward(domain.ActionWater, 0, map[string]int64{domain.ItemCoinMultiplier: 0})
		assert.Equal(t, int64(5), r.Coins)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, ok := ComputeReward(domain.ActionType("dance"), 10, nil)
		assert.False(t, ok)
	})
}
