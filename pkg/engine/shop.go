package engine

import (
	"log/slog"

	"github.com/clickgrow/growcore/pkg/cache"
	"github.com/clickgrow/growcore/pkg/domain"
	"github.com/clickgrow/growcore/pkg/errors"
)

// Shop sells catalog items for coins or gems and applies consumable effects.
type Shop struct {
	catalog cache.CatalogCache
	logger  *slog.Logger
}

// NewShop creates a shop over the cached catalog.
func NewShop(catalog cache.CatalogCache, logger *slog.Logger) *Shop {
	return &Shop{catalog: catalog, logger: logger}
}

// Purchase debits the item price and adds one unit to the inventory.
func (s *Shop) Purchase(p *domain.PlayerState, itemID string) (*domain.ShopItem, error) {
	item := s.catalog.GetShopItem(itemID)
	if item == nil {
		return nil, errors.ErrUnknownItem(itemID)
	}

	balance := &p.Coins
	if item.Currency == domain.ResourceGems {
		balance = &p.Gems
	}
	if *balance < item.Price {
		return nil, errors.ErrInsufficientFunds(string(item.Currency), *balance, item.Price)
	}

	*balance -= item.Price
	p.Inventory[item.ID]++

	s.logger.Info("Item purchased",
		"item_id", item.ID,
		"price", item.Price,
		"currency", item.Currency,
	)
	return item, nil
}

// UseItem consumes one unit of itemID and applies its effect.
// Multipliers work while held, so using one only spends it.
func (s *Shop) UseItem(p *domain.PlayerState, itemID string) (*domain.ShopItem, error) {
	item := s.catalog.GetShopItem(itemID)
	if item == nil {
		return nil, errors.ErrUnknownItem(itemID)
	}
	if p.Inventory[item.ID] <= 0 {
		return nil, errors.ErrNoItems(item.ID)
	}

	p.Inventory[item.ID]--
	if p.Inventory[item.ID] == 0 {
		delete(p.Inventory, item.ID)
	}

	if item.Effect == domain.EffectRestoreHappiness {
		p.Happiness = domain.MaxStat
	}

	s.logger.Info("Item used", "item_id", item.ID, "effect", item.Effect)
	return item, nil
}
