package engine

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clickgrow/growcore/pkg/cache"
	"github.com/clickgrow/growcore/pkg/config"
	"github.com/clickgrow/growcore/pkg/domain"
)

// Wednesday.
var t0 = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultCatalog(t *testing.T) cache.CatalogCache {
	t.Helper()
	catalog, err := config.LoadDefault(testLogger())
	require.NoError(t, err)
	return cache.NewInMemoryCatalogCache(catalog, "", testLogger())
}

func catalogOf(achievements []*domain.AchievementDefinition, challenges []*domain.ChallengeDefinition) cache.CatalogCache {
	return cache.NewInMemoryCatalogCache(&config.Catalog{
		Achievements: achievements,
		Challenges:   challenges,
	}, "", testLogger())
}

func int64Ptr(v int64) *int64 { return &v }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
