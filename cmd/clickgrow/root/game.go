package root

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/clickgrow/growcore/pkg/cache"
	"github.com/clickgrow/growcore/pkg/client"
	"github.com/clickgrow/growcore/pkg/config"
	"github.com/clickgrow/growcore/pkg/domain"
	"github.com/clickgrow/growcore/pkg/engine"
	"github.com/clickgrow/growcore/pkg/errors"
	"github.com/clickgrow/growcore/pkg/repository"
)

// session is an open game plus everything that must be closed with it.
type session struct {
	core     *engine.GameCore
	settings *config.Settings
	logger   *slog.Logger
	store    repository.Store
}

func newLogger(settings *config.Settings) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.SlogLevel()}))
}

// minigameFactory builds the provider once the logger is known.
type minigameFactory func(logger *slog.Logger) client.MinigameProvider

func noMinigame(*slog.Logger) client.MinigameProvider { return client.DecliningMinigame{} }

// simulatedPlayer completes most mini-games with a random score. seed 0 uses the clock.
func simulatedPlayer(seed int64) minigameFactory {
	return func(logger *slog.Logger) client.MinigameProvider {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return client.NewRandomMinigame(seed, 0.9, 100, logger)
	}
}

// openGame wires settings, catalog, store and engine, then starts the game.
// Hooks print to out.
func openGame(ctx context.Context, out io.Writer, newMinigame minigameFactory) (*session, func(), error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, nil, errors.ErrConfigInvalid("settings", err)
	}
	logger := newLogger(settings)

	loc, err := settings.Location()
	if err != nil {
		return nil, nil, err
	}

	catalog, err := config.NewCatalogLoader(settings.CatalogPath, logger).LoadCatalog()
	if err != nil {
		return nil, nil, errors.ErrConfigInvalid("catalog", err)
	}
	catalogCache := cache.NewInMemoryCatalogCache(catalog, settings.CatalogPath, logger)

	store, err := repository.OpenStore(ctx, settings, logger)
	if err != nil {
		return nil, nil, err
	}

	core, err := engine.New(engine.Options{
		Catalog:    catalogCache,
		Repository: repository.NewSnapshotRepository(store, settings.PlayerID, logger),
		Minigame:   newMinigame(logger),
		Cooldowns:  settings.Cooldowns(),
		DeathAfter: settings.DeathAfter,
		Location:   loc,
		PlantName:  settings.PlantName,
		Hooks:      printingHooks(out),
		Logger:     logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	if err := core.Start(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	s := &session{core: core, settings: settings, logger: logger, store: store}
	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := core.Close(closeCtx); err != nil {
			logger.Error("Final save failed", "error", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}
	return s, cleanup, nil
}

func printingHooks(out io.Writer) engine.Hooks {
	return engine.Hooks{
		OnLevelUp: func(up domain.LevelUp) {
			reward := Coins(up.Coins)
			if up.Gems > 0 {
				reward += " " + Gems(up.Gems)
			}
			fmt.Fprintf(out, "%s reached level %d (%s)\n", BadgeLevelUp, up.Level, reward)
		},
		OnAchievementUnlocked: func(def *domain.AchievementDefinition) {
			fmt.Fprintf(out, "%s %s %s\n", IconTrophy, Gold.Render(def.Name), Muted.Render(def.Description))
		},
		OnChallengeCompleted: func(def *domain.ChallengeDefinition) {
			fmt.Fprintf(out, "%s %s %s\n", IconTarget, Good.Render("Challenge complete:"), def.Name)
		},
	}
}

// describeError turns a GameError into a line for the player.
func describeError(err error) string {
	switch errors.CodeOf(err) {
	case errors.ErrCodeCooldownActive:
		return fmt.Sprintf("still on cooldown, try again in %s", errors.RetryAfter(err).Round(time.Second))
	case errors.ErrCodeMinigameDeclined:
		return "mini-game skipped, nothing happened"
	case errors.ErrCodePlantDead:
		return "your plant has withered. Run `clickgrow reset --yes` to plant a new seed"
	default:
		return err.Error()
	}
}

func parseAction(arg string) (domain.ActionType, error) {
	action := domain.ActionType(strings.ToLower(strings.TrimSpace(arg)))
	if !action.IsValid() {
		names := make([]string, 0, len(domain.AllActions))
		for _, a := range domain.AllActions {
			names = append(names, string(a))
		}
		return "", fmt.Errorf("unknown action %q (choose from %s)", arg, strings.Join(names, ", "))
	}
	return action, nil
}

func lastSeen(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}
