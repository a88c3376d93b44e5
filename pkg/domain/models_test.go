package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionType_IsValid(t *testing.T) {
	tests := []struct {
		action ActionType
		want   bool
	}{
		{ActionWater, true},
		{ActionFertilizer, true},
		{ActionSunlight, true},
		{ActionMusic, true},
		{"dance", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			if got := tt.action.IsValid(); got != tt.want {
				t.Errorf("ActionType(%q).IsValid() = %v, want %v", tt.action, got, tt.want)
			}
		})
	}
}

func TestEnums_IsValid(t *testing.T) {
	assert.True(t, ResourceGems.IsValid())
	assert.False(t, ResourceKind("stars").IsValid())

	assert.True(t, RequirementAchievementsUnlocked.IsValid())
	assert.False(t, RequirementKind("speed").IsValid())

	assert.True(t, ChallengeTypeAchievement.IsValid())
	assert.False(t, ChallengeType("yearly").IsValid())

	assert.True(t, ChallengeStatusExpired.IsValid())
	assert.False(t, ChallengeStatus("paused").IsValid())

	assert.True(t, TrackingAbsolute.IsValid())
	assert.False(t, TrackingMode("").IsValid())

	assert.True(t, EventSourceLevelUp.IsValid())
	assert.False(t, EventSource("login").IsValid())

	assert.True(t, EffectRestoreHappiness.IsValid())
	assert.False(t, ItemEffect("teleport").IsValid())
}

func TestChallengeType_IsPeriodic(t *testing.T) {
	assert.True(t, ChallengeTypeDaily.IsPeriodic())
	assert.True(t, ChallengeTypeWeekly.IsPeriodic())
	assert.True(t, ChallengeTypeMonthly.IsPeriodic())
	assert.False(t, ChallengeTypeSpecial.IsPeriodic())
	assert.False(t, ChallengeTypeAchievement.IsPeriodic())
}

func TestChallengeDefinition_IsOneTime(t *testing.T) {
	daily := &ChallengeDefinition{Type: ChallengeTypeDaily}
	special := &ChallengeDefinition{Type: ChallengeTypeSpecial}

	assert.False(t, daily.IsOneTime())
	assert.True(t, special.IsOneTime())
}

func TestNewPlayerState(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p := NewPlayerState(now)

	assert.Equal(t, CurrentSchemaVersion, p.SchemaVersion)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(StartingCoins), p.Coins)
	assert.Equal(t, MaxStat, p.Happiness)
	assert.Equal(t, MaxStat, p.Health)
	assert.Equal(t, now, p.LastInteractionAt)
	assert.NotNil(t, p.ActionCounts)
	assert.NotNil(t, p.Inventory)
	assert.NotNil(t, p.Challenges.Progress)
	assert.False(t, p.Dead)
}

func TestPlayerState_Counters(t *testing.T) {
	p := NewPlayerState(time.Now())
	p.ActionCounts[ActionWater] = 3
	p.ActionCounts[ActionSunlight] = 2
	p.UnlockedAchievements = append(p.UnlockedAchievements, "first_sprout")
	p.Challenges.History = append(p.Challenges.History, CompletionRecord{ChallengeID: "daily_water_10"})
	p.Challenges.CompletedOneTime = append(p.Challenges.CompletedOneTime, "special_first_plant")

	assert.Equal(t, int64(5), p.TotalActions())
	assert.True(t, p.HasAchievement("first_sprout"))
	assert.False(t, p.HasAchievement("young_tree"))
	assert.Equal(t, int64(1), p.ChallengesCompleted())
	assert.True(t, p.HasCompletedOneTime("special_first_plant"))
}

func TestPlayerState_Clone(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p := NewPlayerState(now)
	p.ActionCounts[ActionWater] = 1
	p.Inventory[ItemCoinMultiplier] = 1
	p.Challenges.Progress["daily_water_10"] = &ChallengeProgress{
		Current:         4,
		Status:          ChallengeStatusActive,
		ActivatedAt:     now,
		LastIncrementAt: &now,
	}

	c := p.Clone()
	require.Equal(t, p, c)

	c.ActionCounts[ActionWater] = 99
	c.Inventory[ItemCoinMultiplier] = 0
	c.Challenges.Progress["daily_water_10"].Current = 9
	*c.Challenges.Progress["daily_water_10"].LastIncrementAt = now.Add(time.Hour)
	c.UnlockedAchievements = append(c.UnlockedAchievements, "x")

	assert.Equal(t, int64(1), p.ActionCounts[ActionWater])
	assert.Equal(t, int64(1), p.Inventory[ItemCoinMultiplier])
	assert.Equal(t, int64(4), p.Challenges.Progress["daily_water_10"].Current)
	assert.Equal(t, now, *p.Challenges.Progress["daily_water_10"].LastIncrementAt)
	assert.Empty(t, p.UnlockedAchievements)

	var nilState *PlayerState
	assert.Nil(t, nilState.Clone())
}

func TestPlayerState_JSONRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	completed := now.Add(time.Hour)

	p := NewPlayerState(now)
	p.Level = 12
	p.Experience = 40
	p.TotalExperience = 9000
	p.Coins = 321
	p.Gems = 4
	p.ActionCounts[ActionFertilizer] = 7
	p.LastActionAt[ActionFertilizer] = now
	p.UnlockedAchievements = []string{"first_sprout", "first_achievement"}
	p.Challenges.Progress["weekly_games_10"] = &ChallengeProgress{
		Current:     10,
		Status:      ChallengeStatusCompleted,
		ActivatedAt: now,
		CompletedAt: &completed,
	}
	p.Challenges.History = []CompletionRecord{{ID: "r1", ChallengeID: "weekly_games_10", ActivatedAt: now, CompletedAt: completed}}
	p.Challenges.LastReset = ResetTimestamps{Daily: now, Weekly: now, Monthly: now}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded PlayerState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, &decoded)
}
