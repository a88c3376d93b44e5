package engine

import (
	"log/slog"

	"github.com/clickgrow/growcore/pkg/cache"
	"github.com/clickgrow/growcore/pkg/domain"
	"github.com/clickgrow/growcore/pkg/errors"
)

// Progress is a {current, target} projection for presentation.
type Progress struct {
	Current int64 `json:"current"`
	Target  int64 `json:"target"`
}

// Done reports whether current reached target.
func (p Progress) Done() bool {
	return p.Current >= p.Target
}

// AchievementEvaluator unlocks achievements whose requirement is met.
type AchievementEvaluator struct {
	catalog     cache.CatalogCache
	progression *Progression
	logger      *slog.Logger
}

// NewAchievementEvaluator creates an evaluator over the cached catalog.
func NewAchievementEvaluator(catalog cache.CatalogCache, progression *Progression, logger *slog.Logger) *AchievementEvaluator {
	return &AchievementEvaluator{
		catalog:     catalog,
		progression: progression,
		logger:      logger,
	}
}

// CheckAll evaluates every locked achievement once, in catalog order, and unlocks
// the satisfied ones. The achievements_unlocked requirement reads the live set, so an
// unlock earlier in the pass counts for later entries of the same pass.
//
// Rewards are granted as each achievement unlocks; the level-ups they cause are returned.
// Calling CheckAll again on unchanged state unlocks nothing.
func (e *AchievementEvaluator) CheckAll(p *domain.PlayerState) ([]*domain.AchievementDefinition, []domain.LevelUp) {
	var (
		unlocked []*domain.AchievementDefinition
		levelUps []domain.LevelUp
	)

	for _, def := range e.catalog.GetAllAchievements() {
		if p.HasAchievement(def.ID) {
			continue
		}
		if measure(def.Requirement, p) < def.Requirement.Value {
			continue
		}

		p.UnlockedAchievements = append(p.UnlockedAchievements, def.ID)
		levelUps = append(levelUps, e.progression.Grant(p, def.Rewards)...)
		unlocked = append(unlocked, def)

		e.logger.Info("Achievement unlocked",
			"achievement_id", def.ID,
			"rarity", def.Rarity,
		)
	}
	return unlocked, levelUps
}

// ProgressOf returns how far p is toward achievement id, reading the same field as the unlock check.
func (e *AchievementEvaluator) ProgressOf(id string, p *domain.PlayerState) (Progress, error) {
	def := e.catalog.GetAchievement(id)
	if def == nil {
		return Progress{}, errors.ErrUnknownAchievement(id)
	}
	return Progress{Current: measure(def.Requirement, p), Target: def.Requirement.Value}, nil
}

func measure(req domain.Requirement, p *domain.PlayerState) int64 {
	switch req.Kind {
	case domain.RequirementLevel:
		return int64(p.Level)
	case domain.RequirementActionCount:
		return p.ActionCounts[req.Action]
	case domain.RequirementTotalExperience:
		return p.TotalExperience
	case domain.RequirementTotalCoins:
		return p.TotalCoinsEarned
	case domain.RequirementMinigamesCompleted:
		return p.MinigamesCompleted
	case domain.RequirementChallengesCompleted:
		return p.ChallengesCompleted()
	case domain.RequirementAchievementsUnlocked:
		return int64(len(p.UnlockedAchievements))
	case domain.RequirementTotalActions:
		return p.TotalActions()
	default:
		return 0
	}
}
