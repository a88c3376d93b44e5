package cache

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickgrow/growcore/pkg/config"
	"github.com/clickgrow/growcore/pkg/domain"
)

var _ CatalogCache = (*InMemoryCatalogCache)(nil)

func createTestCatalog() *config.Catalog {
	return &config.Catalog{
		Achievements: []*domain.AchievementDefinition{
			{ID: "a1", Name: "A1", Requirement: domain.Requirement{Kind: domain.RequirementLevel, Value: 5}},
			{ID: "a2", Name: "A2", Requirement: domain.Requirement{Kind: domain.RequirementAchievementsUnlocked, Value: 1}},
		},
		Challenges: []*domain.ChallengeDefinition{
			{ID: "daily_water", Type: domain.ChallengeTypeDaily, Target: 3,
				Tracking: domain.Tracking{Mode: domain.TrackingIncrement, Source: domain.EventSourceAction, Code: "water"}},
			{ID: "monthly_any", Type: domain.ChallengeTypeMonthly, Target: 100,
				Tracking: domain.Tracking{Mode: domain.TrackingIncrement, Source: domain.EventSourceAction}},
			{ID: "weekly_games", Type: domain.ChallengeTypeWeekly, Target: 10,
				Tracking: domain.Tracking{Mode: domain.TrackingIncrement, Source: domain.EventSourceMinigame}},
			{ID: "special_level", Type: domain.ChallengeTypeSpecial, Target: 10,
				Tracking: domain.Tracking{Mode: domain.TrackingAbsolute, Source: domain.EventSourceStat, Code: "level"}},
		},
		ShopItems: []*domain.ShopItem{
			{ID: "happinessPotion", Price: 100, Currency: domain.ResourceCoins, Effect: domain.EffectRestoreHappiness},
		},
	}
}

func newTestCache(t *testing.T) *InMemoryCatalogCache {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewInMemoryCatalogCache(createTestCatalog(), "", logger)
}

func TestInMemoryCatalogCache_Lookups(t *testing.T) {
	cache := newTestCache(t)

	t.Run("achievements", func(t *testing.T) {
		require.NotNil(t, cache.GetAchievement("a2"))
		assert.Nil(t, cache.GetAchievement("missing"))

		all := cache.GetAllAchievements()
		require.Len(t, all, 2)
		assert.Equal(t, "a1", all[0].ID)
	})

	t.Run("challenges", func(t *testing.T) {
		require.NotNil(t, cache.GetChallenge("weekly_games"))
		assert.Nil(t, cache.GetChallenge("missing"))
		assert.Len(t, cache.GetAllChallenges(), 4)
		assert.Len(t, cache.GetChallengesByType(domain.ChallengeTypeDaily), 1)
		assert.Empty(t, cache.GetChallengesByType(domain.ChallengeTypeAchievement))
	})

	t.Run("shop items", func(t *testing.T) {
		require.NotNil(t, cache.GetShopItem("happinessPotion"))
		assert.Nil(t, cache.GetShopItem("missing"))
		assert.Len(t, cache.GetAllShopItems(), 1)
	})
}

func TestInMemoryCatalogCache_GetChallengesBySource(t *testing.T) {
	cache := newTestCache(t)

	tests := []struct {
		name    string
		source  domain.EventSource
		code    string
		wantIDs []string
	}{
		{"water matches specific and wildcard", domain.EventSourceAction, "water", []string{"daily_water", "monthly_any"}},
		{"sunlight matches wildcard only", domain.EventSourceAction, "sunlight", []string{"monthly_any"}},
		{"minigame", domain.EventSourceMinigame, "", []string{"weekly_games"}},
		{"no route", domain.EventSourceLevelUp, "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cache.GetChallengesBySource(tt.source, tt.code)
			ids := make([]string, 0, len(got))
			for _, def := range got {
				ids = append(ids, def.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestInMemoryCatalogCache_GetAbsoluteChallenges(t *testing.T) {
	cache := newTestCache(t)

	abs := cache.GetAbsoluteChallenges()
	require.Len(t, abs, 1)
	assert.Equal(t, "special_level", abs[0].ID)
}

func TestInMemoryCatalogCache_Reload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("embedded catalog", func(t *testing.T) {
		cache := NewInMemoryCatalogCache(createTestCatalog(), "", logger)

		require.NoError(t, cache.Reload())
		assert.Len(t, cache.GetAllAchievements(), 45)
		assert.NotNil(t, cache.GetChallenge("monthly_streak_30"))
	})

	t.Run("invalid file keeps old indexes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"achievements": []}`), 0o600))

		cache := NewInMemoryCatalogCache(createTestCatalog(), path, logger)

		assert.Error(t, cache.Reload())
		assert.Len(t, cache.GetAllAchievements(), 2)
	})
}

func TestInMemoryCatalogCache_ConcurrentAccess(t *testing.T) {
	cache := newTestCache(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = cache.GetChallengesBySource(domain.EventSourceAction, "water")
				_ = cache.GetAchievement("a1")
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = cache.Reload()
	}()
	wg.Wait()
}
