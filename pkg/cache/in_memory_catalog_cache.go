package cache

import (
	"log/slog"
	"sync"

	"github.com/clickgrow/growcore/pkg/config"
	"github.com/clickgrow/growcore/pkg/domain"
)

// InMemoryCatalogCache provides O(1) lookups over a validated catalog.
// All indexes are rebuilt together under the write lock.
type InMemoryCatalogCache struct {
	achievementsByID map[string]*domain.AchievementDefinition
	achievements     []*domain.AchievementDefinition // catalog order

	challengesByID     map[string]*domain.ChallengeDefinition
	challengesByType   map[domain.ChallengeType][]*domain.ChallengeDefinition
	challengesBySource map[string][]*domain.ChallengeDefinition // "source:code" -> increment challenges
	absolute           []*domain.ChallengeDefinition
	challenges         []*domain.ChallengeDefinition // catalog order

	shopItemsByID map[string]*domain.ShopItem
	shopItems     []*domain.ShopItem

	catalogPath string // "" = embedded catalog
	mu          sync.RWMutex
	logger      *slog.Logger
}

// NewInMemoryCatalogCache creates a new cache from the provided catalog.
// The cache is immediately built and ready for lookups.
//
// Parameters:
//   - catalog: Validated catalog
//   - catalogPath: Path used by Reload; "" reloads the embedded catalog
//   - logger: Structured logger for operational logging
func NewInMemoryCatalogCache(catalog *config.Catalog, catalogPath string, logger *slog.Logger) *InMemoryCatalogCache {
	cache := &InMemoryCatalogCache{
		catalogPath: catalogPath,
		logger:      logger,
	}

	cache.buildCache(catalog)

	return cache
}

func sourceKey(source domain.EventSource, code string) string {
	return string(source) + ":" + code
}

// buildCache replaces all indexes with ones built from catalog.
func (c *InMemoryCatalogCache) buildCache(catalog *config.Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.achievementsByID = make(map[string]*domain.AchievementDefinition, len(catalog.Achievements))
	c.achievements = make([]*domain.AchievementDefinition, 0, len(catalog.Achievements))
	for _, def := range catalog.Achievements {
		c.achievementsByID[def.ID] = def
		c.achievements = append(c.achievements, def)
	}

	c.challengesByID = make(map[string]*domain.ChallengeDefinition, len(catalog.Challenges))
	c.challengesByType = make(map[domain.ChallengeType][]*domain.ChallengeDefinition)
	c.challengesBySource = make(map[string][]*domain.ChallengeDefinition)
	c.absolute = nil
	c.challenges = make([]*domain.ChallengeDefinition, 0, len(catalog.Challenges))
	for _, def := range catalog.Challenges {
		c.challengesByID[def.ID] = def
		c.challenges = append(c.challenges, def)
		c.challengesByType[def.Type] = append(c.challengesByType[def.Type], def)

		if def.Tracking.Mode == domain.TrackingAbsolute {
			c.absolute = append(c.absolute, def)
			continue
		}
		key := sourceKey(def.Tracking.Source, def.Tracking.Code)
		c.challengesBySource[key] = append(c.challengesBySource[key], def)
	}

	c.shopItemsByID = make(map[string]*domain.ShopItem, len(catalog.ShopItems))
	c.shopItems = make([]*domain.ShopItem, 0, len(catalog.ShopItems))
	for _, item := range catalog.ShopItems {
		c.shopItemsByID[item.ID] = item
		c.shopItems = append(c.shopItems, item)
	}

	c.logger.Info("Catalog cache built successfully",
		"achievements", len(c.achievements),
		"challenges", len(c.challenges),
		"event_routes", len(c.challengesBySource),
		"shop_items", len(c.shopItems),
	)
}

// GetAchievement retrieves an achievement by id.
func (c *InMemoryCatalogCache) GetAchievement(id string) *domain.AchievementDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.achievementsByID[id]
}

// GetAllAchievements returns achievements in catalog order.
func (c *InMemoryCatalogCache) GetAllAchievements() []*domain.AchievementDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Definitions are immutable after load
	return c.achievements
}

// GetChallenge retrieves a challenge by id.
func (c *InMemoryCatalogCache) GetChallenge(id string) *domain.ChallengeDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.challengesByID[id]
}

// GetAllChallenges returns challenges in catalog order.
func (c *InMemoryCatalogCache) GetAllChallenges() []*domain.ChallengeDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.challenges
}

// GetChallengesByType returns the challenges of one type in catalog order.
func (c *InMemoryCatalogCache) GetChallengesByType(t domain.ChallengeType) []*domain.ChallengeDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	defs := c.challengesByType[t]
	if defs == nil {
		return []*domain.ChallengeDefinition{}
	}
	return defs
}

// GetChallengesBySource returns increment challenges fed by source.
// Action events also match challenges that track every action (empty code).
func (c *InMemoryCatalogCache) GetChallengesBySource(source domain.EventSource, code string) []*domain.ChallengeDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	specific := c.challengesBySource[sourceKey(source, code)]
	if code == "" {
		if specific == nil {
			return []*domain.ChallengeDefinition{}
		}
		return specific
	}

	wildcard := c.challengesBySource[sourceKey(source, "")]
	out := make([]*domain.ChallengeDefinition, 0, len(specific)+len(wildcard))
	out = append(out, specific...)
	out = append(out, wildcard...)
	return out
}

// GetAbsoluteChallenges returns challenges that mirror a player metric.
func (c *InMemoryCatalogCache) GetAbsoluteChallenges() []*domain.ChallengeDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.absolute
}

// GetShopItem retrieves a shop item by id.
func (c *InMemoryCatalogCache) GetShopItem(id string) *domain.ShopItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.shopItemsByID[id]
}

// GetAllShopItems returns shop items in catalog order.
func (c *InMemoryCatalogCache) GetAllShopItems() []*domain.ShopItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.shopItems
}

// Reload reloads the catalog from its source and rebuilds every index.
// The old indexes stay in place if loading fails.
func (c *InMemoryCatalogCache) Reload() error {
	loader := config.NewCatalogLoader(c.catalogPath, c.logger)
	catalog, err := loader.LoadCatalog()
	if err != nil {
		return err
	}

	c.buildCache(catalog)

	c.logger.Info("Catalog cache reloaded successfully")

	return nil
}
