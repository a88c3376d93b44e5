package domain

import "time"

const (
	// MaxLevel is the highest level a plant can reach.
	MaxLevel = 240

	// MaxStat is the upper bound for happiness, health and growth.
	MaxStat = 100.0

	// CurrentSchemaVersion is stamped on every saved snapshot.
	// Bump it together with a migration step in the repository package.
	CurrentSchemaVersion = 2

	// StartingCoins is the coin balance of a freshly planted seed.
	StartingCoins = 100
)

// ActionType identifies one of the player-triggered care verbs.
type ActionType string

const (
	ActionWater      ActionType = "water"
	ActionFertilizer ActionType = "fertilizer"
	ActionSunlight   ActionType = "sunlight"
	ActionMusic      ActionType = "music"
)

// AllActions lists the action types in display order.
var AllActions = []ActionType{ActionWater, ActionFertilizer, ActionSunlight, ActionMusic}

// IsValid returns true if the action type is a known care action.
func (a ActionType) IsValid() bool {
	switch a {
	case ActionWater, ActionFertilizer, ActionSunlight, ActionMusic:
		return true
	default:
		return false
	}
}

// ResourceKind is the discriminator of a Reward.
type ResourceKind string

const (
	// ResourceCoins is the primary, spendable currency.
	ResourceCoins ResourceKind = "coins"
	// ResourceGems is the premium currency. It has no total-earned counter.
	ResourceGems ResourceKind = "gems"
	// ResourceExperience feeds the level curve.
	ResourceExperience ResourceKind = "experience"
)

// IsValid returns true if the resource kind is known.
func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourceCoins, ResourceGems, ResourceExperience:
		return true
	default:
		return false
	}
}

// Reward is a single resource grant. Achievements and challenges both carry a list of them.
type Reward struct {
	Kind   ResourceKind `json:"kind" yaml:"kind"`
	Amount int64        `json:"amount" yaml:"amount"`
}

// LevelUp describes one level transition and the level reward that came with it.
type LevelUp struct {
	Level int   `json:"level"`
	Coins int64 `json:"coins"`
	Gems  int64 `json:"gems"`
}

// PlayerState is the single mutable record persisted per player.
// Every field must survive a JSON round trip unchanged.
type PlayerState struct {
	SchemaVersion int       `json:"schemaVersion"`
	PlantName     string    `json:"plantName"`
	CreatedAt     time.Time `json:"createdAt"`

	Level           int   `json:"level"`
	Experience      int64 `json:"experience"`      // progress toward next level, reset on level-up
	TotalExperience int64 `json:"totalExperience"` // monotonic

	Coins            int64 `json:"coins"`
	Gems             int64 `json:"gems"`
	TotalCoinsEarned int64 `json:"totalCoinsEarned"` // monotonic

	Happiness float64 `json:"happiness"`
	Health    float64 `json:"health"`
	Growth    float64 `json:"growth"`

	ActionCounts          map[ActionType]int64     `json:"actionCounts"`
	LastActionAt          map[ActionType]time.Time `json:"lastActionAt"`
	MinigamesCompleted    int64                    `json:"minigamesCompleted"`
	TotalActionsPerformed int64                    `json:"totalActionsPerformed"`

	Inventory map[string]int64 `json:"inventory"`

	UnlockedAchievements []string `json:"unlockedAchievements"` // append-only

	Challenges ChallengeState `json:"challenges"`

	LastInteractionAt time.Time `json:"lastInteractionAt"`
	LastDecayAt       time.Time `json:"lastDecayAt"`
	Dead              bool      `json:"dead"`
}

// ChallengeState holds per-challenge progress, completion history and reset markers.
type ChallengeState struct {
	Progress         map[string]*ChallengeProgress `json:"progress"`
	History          []CompletionRecord            `json:"history"`
	CompletedOneTime []string                      `json:"completedOneTime"`
	LastReset        ResetTimestamps               `json:"lastReset"`
}

// ResetTimestamps records when each periodic challenge family was last reset.
type ResetTimestamps struct {
	Daily   time.Time `json:"daily"`
	Weekly  time.Time `json:"weekly"`
	Monthly time.Time `json:"monthly"`
}

// ChallengeStatus represents where a challenge instance is in its lifecycle.
type ChallengeStatus string

const (
	// ChallengeStatusInactive is used for challenges that have no progress record yet.
	ChallengeStatusInactive ChallengeStatus = "inactive"
	// ChallengeStatusActive accepts progress.
	ChallengeStatusActive ChallengeStatus = "active"
	// ChallengeStatusCompleted means the target was reached and rewards were granted.
	ChallengeStatusCompleted ChallengeStatus = "completed"
	// ChallengeStatusExpired means the activation window closed before completion.
	ChallengeStatusExpired ChallengeStatus = "expired"
)

// IsValid returns true if the status is a known challenge status.
func (s ChallengeStatus) IsValid() bool {
	switch s {
	case ChallengeStatusInactive, ChallengeStatusActive, ChallengeStatusCompleted, ChallengeStatusExpired:
		return true
	default:
		return false
	}
}

// ChallengeProgress tracks one challenge within its current activation window.
// Records are created lazily the first time the challenge is looked at.
type ChallengeProgress struct {
	Current         int64           `json:"current"`
	Status          ChallengeStatus `json:"status"`
	ActivatedAt     time.Time       `json:"activatedAt"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
	LastIncrementAt *time.Time      `json:"lastIncrementAt,omitempty"` // for daily-once tracking
}

// IsActive returns true if the challenge accepts progress.
func (p *ChallengeProgress) IsActive() bool {
	return p.Status == ChallengeStatusActive
}

// IsCompleted returns true if the challenge reached its target in this window.
func (p *ChallengeProgress) IsCompleted() bool {
	return p.Status == ChallengeStatusCompleted
}

// CompletionRecord is appended once per completed activation window and kept indefinitely.
type CompletionRecord struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challengeId"`
	ActivatedAt time.Time `json:"activatedAt"`
	CompletedAt time.Time `json:"completedAt"`
}

// NewPlayerState returns the defaults for a fresh install.
func NewPlayerState(now time.Time) *PlayerState {
	return &PlayerState{
		SchemaVersion:        CurrentSchemaVersion,
		CreatedAt:            now,
		Level:                1,
		Coins:                StartingCoins,
		Happiness:            MaxStat,
		Health:               MaxStat,
		ActionCounts:         make(map[ActionType]int64),
		LastActionAt:         make(map[ActionType]time.Time),
		Inventory:            make(map[string]int64),
		UnlockedAchievements: []string{},
		Challenges: ChallengeState{
			Progress:         make(map[string]*ChallengeProgress),
			History:          []CompletionRecord{},
			CompletedOneTime: []string{},
		},
		LastInteractionAt: now,
		LastDecayAt:       now,
	}
}

// HasAchievement returns true if the achievement id was unlocked.
func (p *PlayerState) HasAchievement(id string) bool {
	for _, unlocked := range p.UnlockedAchievements {
		if unlocked == id {
			return true
		}
	}
	return false
}

// TotalActions sums the per-type action counters.
func (p *PlayerState) TotalActions() int64 {
	var total int64
	for _, n := range p.ActionCounts {
		total += n
	}
	return total
}

// ChallengesCompleted counts every completed activation window across all challenges.
func (p *PlayerState) ChallengesCompleted() int64 {
	return int64(len(p.Challenges.History))
}

// HasCompletedOneTime returns true if a one-time challenge was already completed.
func (p *PlayerState) HasCompletedOneTime(id string) bool {
	for _, done := range p.Challenges.CompletedOneTime {
		if done == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand to the presentation layer.
func (p *PlayerState) Clone() *PlayerState {
	if p == nil {
		return nil
	}
	c := *p

	c.ActionCounts = make(map[ActionType]int64, len(p.ActionCounts))
	for k, v := range p.ActionCounts {
		c.ActionCounts[k] = v
	}
	c.LastActionAt = make(map[ActionType]time.Time, len(p.LastActionAt))
	for k, v := range p.LastActionAt {
		c.LastActionAt[k] = v
	}
	c.Inventory = make(map[string]int64, len(p.Inventory))
	for k, v := range p.Inventory {
		c.Inventory[k] = v
	}
	c.UnlockedAchievements = append([]string{}, p.UnlockedAchievements...)

	c.Challenges.Progress = make(map[string]*ChallengeProgress, len(p.Challenges.Progress))
	for id, prog := range p.Challenges.Progress {
		if prog == nil {
			continue
		}
		cp := *prog
		if prog.CompletedAt != nil {
			t := *prog.CompletedAt
			cp.CompletedAt = &t
		}
		if prog.LastIncrementAt != nil {
			t := *prog.LastIncrementAt
			cp.LastIncrementAt = &t
		}
		c.Challenges.Progress[id] = &cp
	}
	c.Challenges.History = append([]CompletionRecord{}, p.Challenges.History...)
	c.Challenges.CompletedOneTime = append([]string{}, p.Challenges.CompletedOneTime...)

	return &c
}
