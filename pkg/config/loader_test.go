package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clickgrow/growcore/pkg/domain"
)

func TestCatalogLoader_LoadCatalog(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("embedded default", func(t *testing.T) {
		catalog, err := NewCatalogLoader("", logger).LoadCatalog()
		if err != nil {
			t.Fatalf("LoadCatalog() unexpected error = %v", err)
		}

		if len(catalog.Achievements) != 45 {
			t.Errorf("expected 45 achievements, got %d", len(catalog.Achievements))
		}
		if len(catalog.Challenges) != 16 {
			t.Errorf("expected 16 challenges, got %d", len(catalog.Challenges))
		}
		if len(catalog.ShopItems) != 7 {
			t.Errorf("expected 7 shop items, got %d", len(catalog.ShopItems))
		}

		// Catalog order drives evaluation order
		if catalog.Achievements[0].ID != "first_sprout" {
			t.Errorf("expected first achievement 'first_sprout', got %q", catalog.Achievements[0].ID)
		}
		last := catalog.Achievements[len(catalog.Achievements)-1]
		if last.ID != "achievement_god" {
			t.Errorf("expected last achievement 'achievement_god', got %q", last.ID)
		}
	})

	t.Run("embedded special challenges are one-time without expiry", func(t *testing.T) {
		catalog, err := LoadDefault(logger)
		if err != nil {
			t.Fatalf("LoadDefault() unexpected error = %v", err)
		}

		for _, def := range catalog.Challenges {
			if def.Type.IsPeriodic() {
				if def.DurationMs == nil {
					t.Errorf("periodic challenge %s has no duration", def.ID)
				}
				continue
			}
			if !def.OneTime {
				t.Errorf("challenge %s should be one-time", def.ID)
			}
			if def.DurationMs != nil {
				t.Errorf("challenge %s should never expire", def.ID)
			}
		}
	})

	t.Run("json file", func(t *testing.T) {
		path := writeTempCatalog(t, "catalog.json", `{
			"achievements": [
				{"id": "a1", "name": "A1", "requirement": {"kind": "level", "value": 2}, "rewards": [{"kind": "coins", "amount": 5}]},
				{"id": "a2", "name": "A2", "requirement": {"kind": "achievements_unlocked", "value": 1}, "rewards": []}
			],
			"challenges": [
				{"id": "c1", "name": "C1", "type": "daily", "difficulty": 1, "target": 3, "durationMs": 86400000,
				 "tracking": {"source": "action", "code": "water"}, "rewards": [{"kind": "gems", "amount": 1}]}
			]
		}`)

		catalog, err := NewCatalogLoader(path, logger).LoadCatalog()
		if err != nil {
			t.Fatalf("LoadCatalog() unexpected error = %v", err)
		}
		if len(catalog.Achievements) != 2 {
			t.Errorf("expected 2 achievements, got %d", len(catalog.Achievements))
		}
		// Tracking mode defaults to increment
		if catalog.Challenges[0].Tracking.Mode != domain.TrackingIncrement {
			t.Errorf("expected default tracking mode increment, got %q", catalog.Challenges[0].Tracking.Mode)
		}
	})

	t.Run("yaml file", func(t *testing.T) {
		path := writeTempCatalog(t, "catalog.yaml", `
achievements:
  - id: a1
    name: A1
    requirement: {kind: total_coins, value: 10}
    rewards: [{kind: experience, amount: 5}]
challenges:
  - id: s1
    name: S1
    type: special
    difficulty: 2
    target: 10
    durationMs: null
    tracking: {mode: absolute, source: stat, code: level}
    rewards: [{kind: coins, amount: 1}]
shopItems:
  - id: potion
    name: Potion
    price: 10
    effect: restore_happiness
`)

		catalog, err := NewCatalogLoader(path, logger).LoadCatalog()
		if err != nil {
			t.Fatalf("LoadCatalog() unexpected error = %v", err)
		}
		if !catalog.Challenges[0].OneTime {
			t.Error("special challenge should default to one-time")
		}
		if catalog.ShopItems[0].Currency != domain.ResourceCoins {
			t.Errorf("expected default currency coins, got %q", catalog.ShopItems[0].Currency)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := NewCatalogLoader("/nonexistent/catalog.yaml", logger).LoadCatalog()
		if err == nil {
			t.Fatal("LoadCatalog() expected error, got nil")
		}
		if !strings.Contains(err.Error(), "failed to read catalog file") {
			t.Errorf("expected 'failed to read catalog file' error, got %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeTempCatalog(t, "catalog.toml", `achievements = []`)

		_, err := NewCatalogLoader(path, logger).LoadCatalog()
		if err == nil || !strings.Contains(err.Error(), "unsupported catalog format") {
			t.Errorf("expected unsupported format error, got %v", err)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := writeTempCatalog(t, "catalog.json", `{ invalid json }`)

		_, err := NewCatalogLoader(path, logger).LoadCatalog()
		if err == nil || !strings.Contains(err.Error(), "failed to parse catalog JSON") {
			t.Errorf("expected JSON parse error, got %v", err)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		path := writeTempCatalog(t, "catalog.json", `{"achievements": [], "challenges": []}`)

		_, err := NewCatalogLoader(path, logger).LoadCatalog()
		if err == nil || !strings.Contains(err.Error(), "catalog validation failed") {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func writeTempCatalog(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp catalog: %v", err)
	}
	return path
}
