package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickgrow/growcore/pkg/domain"
)

func TestRequiredExpForLevel(t *testing.T) {
	tests := []struct {
		level    int
		expected int64
	}{
		{1, 100},
		{2, 200},
		{10, 1000},
		{11, 1650},
		{25, 3750},
		{26, 5200},
		{50, 10000},
		{51, 15300},
		{100, 30000},
		{101, 40400},
		{150, 60000},
		{151, 75500},
		{200, 100000},
		{201, 120600},
		{240, 144000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RequiredExpForLevel(tt.level), "level %d", tt.level)
	}
}

func TestRequiredExpForLevel_StrictlyIncreasing(t *testing.T) {
	for level := 1; level < domain.MaxLevel; level++ {
		assert.Greater(t, RequiredExpForLevel(level+1), RequiredExpForLevel(level), "level %d", level)
	}
}

func TestProgression_AddExperience(t *testing.T) {
	g := NewProgression(testLogger())

	t.Run("exact threshold levels up with zero remainder", func(t *testing.T) {
		p := domain.NewPlayerState(t0)

		ups := g.AddExperience(p, RequiredExpForLevel(2))

		assert.Equal(t, 2, p.Level)
		assert.Equal(t, int64(0), p.Experience)
		assert.Equal(t, int64(200), p.TotalExperience)
		require.Len(t, ups, 1)
		assert.Equal(t, domain.LevelUp{Level: 2, Coins: 20, Gems: 0}, ups[0])
		assert.Equal(t, int64(domain.StartingCoins+20), p.Coins)
	})

	t.Run("below threshold", func(t *testing.T) {
		p := domain.NewPlayerState(t0)

		ups := g.AddExperience(p, 199)

		assert.Empty(t, ups)
		assert.Equal(t, 1, p.Level)
		assert.Equal(t, int64(199), p.Experience)
	})

	t.Run("multiple levels in one grant", func(t *testing.T) {
		p := domain.NewPlayerState(t0)
		// 200 + 300 + 400 = 900 reaches level 4, 50 left over
		ups := g.AddExperience(p, 950)

		require.Len(t, ups, 3)
		assert.Equal(t, 4, p.Level)
		assert.Equal(t, int64(50), p.Experience)
		assert.Less(t, p.Experience, RequiredExpForLevel(p.Level+1))
	})

	t.Run("gems every tenth level", func(t *testing.T) {
		p := domain.NewPlayerState(t0)
		p.Level = 9

		ups := g.AddExperience(p, RequiredExpForLevel(10))

		require.Len(t, ups, 1)
		assert.Equal(t, int64(1), ups[0].Gems)
		assert.Equal(t, int64(1), p.Gems)
	})

	t.Run("capped at max level", func(t *testing.T) {
		p := domain.NewPlayerState(t0)
		p.Level = domain.MaxLevel - 1

		g.AddExperience(p, 10_000_000)

		assert.Equal(t, domain.MaxLevel, p.Level)
		assert.Equal(t, int64(10_000_000)-RequiredExpForLevel(domain.MaxLevel), p.Experience)
	})

	t.Run("non-positive amounts ignored", func(t *testing.T) {
		p := domain.NewPlayerState(t0)

		assert.Nil(t, g.AddExperience(p, 0))
		assert.Nil(t, g.AddExperience(p, -50))
		assert.Equal(t, int64(0), p.TotalExperience)
	})
}

func TestProgression_TotalExperienceMonotonic(t *testing.T) {
	g := NewProgression(testLogger())
	p := domain.NewPlayerState(t0)

	var last int64
	for i := 0; i < 200; i++ {
		g.AddExperience(p, int64(37*i))
		assert.GreaterOrEqual(t, p.TotalExperience, last)
		last = p.TotalExperience
		assert.Less(t, p.Experience, RequiredExpForLevel(p.Level+1))
	}
}

func TestProgression_AddCurrency(t *testing.T) {
	g := NewProgression(testLogger())
	p := domain.NewPlayerState(t0)

	g.AddCurrency(p, domain.ResourceCoins, 40)
	g.AddCurrency(p, domain.ResourceGems, 3)
	g.AddCurrency(p, domain.ResourceCoins, -10)

	assert.Equal(t, int64(140), p.Coins)
	assert.Equal(t, int64(40), p.TotalCoinsEarned)
	assert.Equal(t, int64(3), p.Gems)

	ups := g.AddCurrency(p, domain.ResourceExperience, 200)
	assert.Len(t, ups, 1)
}

func TestProgression_Grant(t *testing.T) {
	g := NewProgression(testLogger())
	p := domain.NewPlayerState(t0)

	ups := g.Grant(p, []domain.Reward{
		{Kind: domain.ResourceExperience, Amount: 150},
		{Kind: domain.ResourceCoins, Amount: 50},
		{Kind: domain.ResourceExperience, Amount: 50},
		{Kind: domain.ResourceGems, Amount: 2},
	})

	require.Len(t, ups, 1)
	assert.Equal(t, 2, p.Level)
	// 100 start + 50 reward + 20 level reward
	assert.Equal(t, int64(170), p.Coins)
	assert.Equal(t, int64(70), p.TotalCoinsEarned)
	assert.Equal(t, int64(2), p.Gems)
}
