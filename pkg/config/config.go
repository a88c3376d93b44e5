package config

import (
	"embed"

	"github.com/clickgrow/growcore/pkg/domain"
)

// Catalog represents the static game content: achievements, challenges and shop items.
// It is parsed from YAML or JSON and validated during application startup.
type Catalog struct {
	Achievements []*domain.AchievementDefinition `json:"achievements" yaml:"achievements"`
	Challenges   []*domain.ChallengeDefinition   `json:"challenges" yaml:"challenges"`
	ShopItems    []*domain.ShopItem              `json:"shopItems" yaml:"shopItems"`
}

// defaultCatalogFS holds the catalog shipped with the binary.
//
//go:embed catalog/*.yaml
var defaultCatalogFS embed.FS

var defaultCatalogFiles = []string{
	"catalog/achievements.yaml",
	"catalog/challenges.yaml",
	"catalog/shop.yaml",
}

// merge appends the non-empty sections of other into c.
func (c *Catalog) merge(other *Catalog) {
	c.Achievements = append(c.Achievements, other.Achievements...)
	c.Challenges = append(c.Challenges, other.Challenges...)
	c.ShopItems = append(c.ShopItems, other.ShopItems...)
}
