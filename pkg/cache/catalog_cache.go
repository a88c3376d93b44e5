package cache

import "github.com/clickgrow/growcore/pkg/domain"

// CatalogCache provides O(1) in-memory lookups over the static game catalog.
// It is built once at startup. All lookups are read-only and thread-safe.
type CatalogCache interface {
	// GetAchievement retrieves an achievement by id. Returns nil if it does not exist.
	GetAchievement(id string) *domain.AchievementDefinition

	// GetAllAchievements returns achievements in catalog order.
	// The evaluator relies on this order being stable.
	GetAllAchievements() []*domain.AchievementDefinition

	// GetChallenge retrieves a challenge by id. Returns nil if it does not exist.
	GetChallenge(id string) *domain.ChallengeDefinition

	// GetAllChallenges returns challenges in catalog order.
	GetAllChallenges() []*domain.ChallengeDefinition

	// GetChallengesByType returns the challenges of one type in catalog order.
	GetChallengesByType(t domain.ChallengeType) []*domain.ChallengeDefinition

	// GetChallengesBySource returns increment challenges fed by an event source.
	// For action events, code is the action type; challenges with an empty code match every action.
	GetChallengesBySource(source domain.EventSource, code string) []*domain.ChallengeDefinition

	// GetAbsoluteChallenges returns challenges that mirror a player metric.
	GetAbsoluteChallenges() []*domain.ChallengeDefinition

	// GetShopItem retrieves a shop item by id. Returns nil if it does not exist.
	GetShopItem(id string) *domain.ShopItem

	// GetAllShopItems returns shop items in catalog order.
	GetAllShopItems() []*domain.ShopItem

	// Reload rebuilds the cache from the catalog source.
	Reload() error
}
