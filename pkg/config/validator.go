package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clickgrow/growcore/pkg/domain"
)

// Validator validates catalog files.
// It ensures all content rules are met before the game starts.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate performs comprehensive validation of the catalog.
// It checks for:
//   - At least one achievement and one challenge
//   - Unique ids within each section
//   - Known requirement kinds, challenge types and tracking routes
//   - Positive targets and non-negative rewards
//
// Returns an error describing the first validation failure encountered.
func (v *Validator) Validate(catalog *Catalog) error {
	if len(catalog.Achievements) == 0 {
		return errors.New("catalog must have at least one achievement")
	}
	if len(catalog.Challenges) == 0 {
		return errors.New("catalog must have at least one challenge")
	}

	achievementIDs := make(map[string]bool)
	for _, def := range catalog.Achievements {
		if err := v.validateAchievement(def, len(catalog.Achievements)); err != nil {
			return fmt.Errorf("invalid achievement '%s': %w", def.ID, err)
		}
		if achievementIDs[def.ID] {
			return fmt.Errorf("duplicate achievement ID: %s", def.ID)
		}
		achievementIDs[def.ID] = true
	}

	challengeIDs := make(map[string]bool)
	for _, def := range catalog.Challenges {
		if err := v.validateChallenge(def); err != nil {
			return fmt.Errorf("invalid challenge '%s': %w", def.ID, err)
		}
		if challengeIDs[def.ID] {
			return fmt.Errorf("duplicate challenge ID: %s", def.ID)
		}
		challengeIDs[def.ID] = true
	}

	itemIDs := make(map[string]bool)
	for _, item := range catalog.ShopItems {
		if err := v.validateShopItem(item); err != nil {
			return fmt.Errorf("invalid shop item '%s': %w", item.ID, err)
		}
		if itemIDs[item.ID] {
			return fmt.Errorf("duplicate shop item ID: %s", item.ID)
		}
		itemIDs[item.ID] = true
	}

	return nil
}

// validateAchievement validates a single achievement definition.
func (v *Validator) validateAchievement(def *domain.AchievementDefinition, catalogSize int) error {
	if def.ID == "" {
		return errors.New("achievement ID cannot be empty")
	}
	if def.Name == "" {
		return errors.New("achievement name cannot be empty")
	}

	req := def.Requirement
	if !req.Kind.IsValid() {
		return fmt.Errorf("invalid requirement kind '%s'", req.Kind)
	}
	if req.Value <= 0 {
		return errors.New("requirement value must be positive")
	}
	switch req.Kind {
	case domain.RequirementActionCount:
		if !req.Action.IsValid() {
			return fmt.Errorf("action_count requirement has invalid action '%s'", req.Action)
		}
	case domain.RequirementLevel:
		if req.Value > domain.MaxLevel {
			return fmt.Errorf("level requirement %d exceeds max level %d", req.Value, domain.MaxLevel)
		}
	case domain.RequirementAchievementsUnlocked:
		// an achievement cannot count itself
		if req.Value > int64(catalogSize-1) {
			return fmt.Errorf("achievements_unlocked requirement %d is unreachable with %d achievements", req.Value, catalogSize)
		}
	}

	return validateRewards(def.Rewards)
}

// validateChallenge validates a single challenge definition.
func (v *Validator) validateChallenge(def *domain.ChallengeDefinition) error {
	if def.ID == "" {
		return errors.New("challenge ID cannot be empty")
	}
	if def.Name == "" {
		return errors.New("challenge name cannot be empty")
	}
	if !def.Type.IsValid() {
		return fmt.Errorf("invalid challenge type '%s'", def.Type)
	}
	if def.Target <= 0 {
		return errors.New("target must be positive")
	}
	if def.Difficulty < 1 || def.Difficulty > 5 {
		return fmt.Errorf("difficulty %d out of range (must be 1-5)", def.Difficulty)
	}
	if def.DurationMs != nil && *def.DurationMs < 0 {
		return errors.New("durationMs cannot be negative")
	}
	if def.Type.IsPeriodic() && def.OneTime {
		return fmt.Errorf("%s challenges cannot be one-time", def.Type)
	}

	if err := validateTracking(def.Tracking); err != nil {
		return err
	}
	return validateRewards(def.Rewards)
}

func validateTracking(t domain.Tracking) error {
	if !t.Mode.IsValid() {
		return fmt.Errorf("invalid tracking mode '%s' (must be 'increment' or 'absolute')", t.Mode)
	}
	if !t.Source.IsValid() {
		return fmt.Errorf("invalid tracking source '%s'", t.Source)
	}

	switch t.Mode {
	case domain.TrackingAbsolute:
		if t.Source != domain.EventSourceStat {
			return fmt.Errorf("absolute tracking requires source 'stat' (got '%s')", t.Source)
		}
		if !isKnownStat(t.Code) {
			return fmt.Errorf("unknown stat code '%s'", t.Code)
		}
		if t.Daily {
			return errors.New("daily flag can only be true for increment tracking")
		}
	case domain.TrackingIncrement:
		if t.Source == domain.EventSourceStat {
			return errors.New("increment tracking cannot use source 'stat'")
		}
		if t.Source == domain.EventSourceAction && t.Code != "" && !domain.ActionType(t.Code).IsValid() {
			return fmt.Errorf("action tracking has invalid action '%s'", t.Code)
		}
	}
	return nil
}

func isKnownStat(code string) bool {
	switch code {
	case domain.StatLevel, domain.StatCoins, domain.StatGems, domain.StatTotalActions, domain.StatTotalExperience:
		return true
	}
	if action, ok := strings.CutPrefix(code, domain.StatActionPrefix); ok {
		return domain.ActionType(action).IsValid()
	}
	return false
}

func validateRewards(rewards []domain.Reward) error {
	for _, r := range rewards {
		if !r.Kind.IsValid() {
			return fmt.Errorf("unsupported reward kind '%s' (must be 'coins', 'gems' or 'experience')", r.Kind)
		}
		if r.Amount < 0 {
			return errors.New("reward amount cannot be negative")
		}
	}
	return nil
}

// validateShopItem validates a single shop item.
func (v *Validator) validateShopItem(item *domain.ShopItem) error {
	if item.ID == "" {
		return errors.New("item ID cannot be empty")
	}
	if item.Price <= 0 {
		return errors.New("price must be positive")
	}
	if item.Currency != domain.ResourceCoins && item.Currency != domain.ResourceGems {
		return fmt.Errorf("unsupported currency '%s' (only 'coins' or 'gems' allowed)", item.Currency)
	}
	if !item.Effect.IsValid() {
		return fmt.Errorf("invalid effect '%s'", item.Effect)
	}
	return nil
}
