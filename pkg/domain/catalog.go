package domain

// RequirementKind is the discriminator of an achievement Requirement.
type RequirementKind string

const (
	RequirementLevel                RequirementKind = "level"
	RequirementActionCount          RequirementKind = "action_count"
	RequirementTotalExperience      RequirementKind = "total_experience"
	RequirementTotalCoins           RequirementKind = "total_coins"
	RequirementMinigamesCompleted   RequirementKind = "minigames_completed"
	RequirementChallengesCompleted  RequirementKind = "challenges_completed"
	RequirementAchievementsUnlocked RequirementKind = "achievements_unlocked"
	RequirementTotalActions         RequirementKind = "total_actions"
)

// IsValid returns true if the requirement kind is known.
func (k RequirementKind) IsValid() bool {
	switch k {
	case RequirementLevel, RequirementActionCount, RequirementTotalExperience,
		RequirementTotalCoins, RequirementMinigamesCompleted, RequirementChallengesCompleted,
		RequirementAchievementsUnlocked, RequirementTotalActions:
		return true
	default:
		return false
	}
}

// Requirement is the unlock predicate of an achievement.
// Action is only meaningful for RequirementActionCount.
type Requirement struct {
	Kind   RequirementKind `json:"kind" yaml:"kind"`
	Action ActionType      `json:"action,omitempty" yaml:"action,omitempty"`
	Value  int64           `json:"value" yaml:"value"`
}

// AchievementDefinition is one entry of the static achievement catalog.
type AchievementDefinition struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Icon        string      `json:"icon" yaml:"icon"`
	Category    string      `json:"category" yaml:"category"`
	Rarity      string      `json:"rarity" yaml:"rarity"`
	Requirement Requirement `json:"requirement" yaml:"requirement"`
	Rewards     []Reward    `json:"rewards" yaml:"rewards"`
}

// ChallengeType defines the activation window family of a challenge.
type ChallengeType string

const (
	ChallengeTypeDaily       ChallengeType = "daily"
	ChallengeTypeWeekly      ChallengeType = "weekly"
	ChallengeTypeMonthly     ChallengeType = "monthly"
	ChallengeTypeSpecial     ChallengeType = "special"
	ChallengeTypeAchievement ChallengeType = "achievement"
)

// IsValid returns true if the challenge type is known.
func (t ChallengeType) IsValid() bool {
	switch t {
	case ChallengeTypeDaily, ChallengeTypeWeekly, ChallengeTypeMonthly,
		ChallengeTypeSpecial, ChallengeTypeAchievement:
		return true
	default:
		return false
	}
}

// IsPeriodic returns true for challenge types that reset every day, week or month.
func (t ChallengeType) IsPeriodic() bool {
	switch t {
	case ChallengeTypeDaily, ChallengeTypeWeekly, ChallengeTypeMonthly:
		return true
	default:
		return false
	}
}

// TrackingMode defines how progress is accumulated for a challenge.
//
//   - increment: current += 1 per matching event
//   - absolute: current = value of a player metric
type TrackingMode string

const (
	TrackingIncrement TrackingMode = "increment"
	TrackingAbsolute  TrackingMode = "absolute"
)

// IsValid returns true if the tracking mode is known.
func (m TrackingMode) IsValid() bool {
	return m == TrackingIncrement || m == TrackingAbsolute
}

// EventSource defines which signal drives a challenge.
type EventSource string

const (
	// EventSourceAction fires once per resolved care action. Code filters by action type; empty matches all.
	EventSourceAction EventSource = "action"
	// EventSourceMinigame fires once per completed mini-game.
	EventSourceMinigame EventSource = "minigame"
	// EventSourceLevelUp fires once per level gained.
	EventSourceLevelUp EventSource = "level_up"
	// EventSourceAchievement fires once per unlocked achievement.
	EventSourceAchievement EventSource = "achievement"
	// EventSourceStat is used by absolute challenges. Code names the metric.
	EventSourceStat EventSource = "stat"
)

// IsValid returns true if the event source is known.
func (s EventSource) IsValid() bool {
	switch s {
	case EventSourceAction, EventSourceMinigame, EventSourceLevelUp, EventSourceAchievement, EventSourceStat:
		return true
	default:
		return false
	}
}

// Stat codes understood by absolute challenges. "actions.<type>" is also accepted.
const (
	StatLevel           = "level"
	StatCoins           = "coins"
	StatGems            = "gems"
	StatTotalActions    = "total_actions"
	StatTotalExperience = "total_experience"
	StatActionPrefix    = "actions."
)

// Tracking routes events to a challenge.
type Tracking struct {
	Mode   TrackingMode `json:"mode" yaml:"mode"`
	Source EventSource  `json:"source" yaml:"source"`
	Code   string       `json:"code,omitempty" yaml:"code,omitempty"`
	Daily  bool         `json:"daily,omitempty" yaml:"daily,omitempty"` // increment at most once per local day
}

// ChallengeDefinition is one entry of the static challenge catalog.
type ChallengeDefinition struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Icon        string        `json:"icon" yaml:"icon"`
	Category    string        `json:"category" yaml:"category"`
	Type        ChallengeType `json:"type" yaml:"type"`
	Difficulty  int           `json:"difficulty" yaml:"difficulty"`
	Target      int64         `json:"target" yaml:"target"`
	DurationMs  *int64        `json:"durationMs" yaml:"durationMs"` // nil = no expiry
	OneTime     bool          `json:"oneTime" yaml:"oneTime"`
	Tracking    Tracking      `json:"tracking" yaml:"tracking"`
	Rewards     []Reward      `json:"rewards" yaml:"rewards"`
}

// IsOneTime returns true for challenges that never reactivate once completed.
func (c *ChallengeDefinition) IsOneTime() bool {
	return c.OneTime || !c.Type.IsPeriodic()
}

// ItemEffect describes what holding or using a shop item does.
type ItemEffect string

const (
	EffectNone                 ItemEffect = "none"
	EffectExperienceMultiplier ItemEffect = "experience_multiplier"
	EffectCoinMultiplier       ItemEffect = "coin_multiplier"
	EffectRestoreHappiness     ItemEffect = "restore_happiness"
)

// IsValid returns true if the effect is known.
func (e ItemEffect) IsValid() bool {
	switch e {
	case EffectNone, EffectExperienceMultiplier, EffectCoinMultiplier, EffectRestoreHappiness:
		return true
	default:
		return false
	}
}

// ShopItem is one purchasable inventory entry.
type ShopItem struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Icon        string       `json:"icon" yaml:"icon"`
	Price       int64        `json:"price" yaml:"price"`
	Currency    ResourceKind `json:"currency" yaml:"currency"`
	Category    string       `json:"category" yaml:"category"`
	Effect      ItemEffect   `json:"effect" yaml:"effect"`
}

// Inventory item ids with built-in meaning.
const (
	ItemExperienceMultiplier = "experienceMultiplier"
	ItemCoinMultiplier       = "coinMultiplier"
	ItemHappinessPotion      = "happinessPotion"
)
