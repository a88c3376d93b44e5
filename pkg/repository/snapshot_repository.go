package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"time"

	"github.com/clickgrow/growcore/pkg/domain"
	"github.com/clickgrow/growcore/pkg/errors"
)

// legacyAchievementsKey held the unlocked list before it moved into the player snapshot.
const legacyAchievementsKey = KeyPrefix + "_achievements"

// SnapshotRepository saves and restores a single player's state on top of a Store.
type SnapshotRepository struct {
	store  Store
	key    string
	logger *slog.Logger
}

// NewSnapshotRepository creates a repository bound to playerID's key.
func NewSnapshotRepository(store Store, playerID int64, logger *slog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		store:  store,
		key:    StateKey(playerID),
		logger: logger,
	}
}

// Key returns the storage key this repository writes to.
func (r *SnapshotRepository) Key() string {
	return r.key
}

// SaveState stamps the current schema version and writes the whole state.
func (r *SnapshotRepository) SaveState(ctx context.Context, state *domain.PlayerState) error {
	state.SchemaVersion = domain.CurrentSchemaVersion

	payload, err := json.Marshal(state)
	if err != nil {
		return errors.ErrPersistenceWrite(r.key, err)
	}
	if err := r.store.Save(ctx, r.key, payload); err != nil {
		return errors.ErrPersistenceWrite(r.key, err)
	}
	return nil
}

// LoadState restores the saved state. found is false when nothing was saved yet;
// the returned state is then fresh defaults.
//
// Unreadable data yields fresh defaults together with a PERSISTENCE_READ error so
// the caller can decide whether to continue.
func (r *SnapshotRepository) LoadState(ctx context.Context, now time.Time) (state *domain.PlayerState, found bool, err error) {
	payload, err := r.store.Load(ctx, r.key)
	if err != nil {
		return domain.NewPlayerState(now), false, errors.ErrPersistenceRead(r.key, err)
	}
	if payload == nil {
		return domain.NewPlayerState(now), false, nil
	}

	var header struct {
		SchemaVersion int `json:"schemaVersion"`
	}
	if err := json.Unmarshal(payload, &header); err != nil {
		return domain.NewPlayerState(now), false, errors.ErrPersistenceRead(r.key, err)
	}

	switch {
	case header.SchemaVersion < domain.CurrentSchemaVersion:
		state, err = r.migrateLegacy(ctx, payload, now)
		if err != nil {
			return domain.NewPlayerState(now), false, errors.ErrPersistenceRead(r.key, err)
		}
		r.logger.Info("Migrated legacy snapshot",
			"key", r.key,
			"from_version", header.SchemaVersion,
			"to_version", domain.CurrentSchemaVersion,
		)
	default:
		if header.SchemaVersion > domain.CurrentSchemaVersion {
			r.logger.Warn("Snapshot written by a newer version, unknown fields are dropped",
				"key", r.key,
				"version", header.SchemaVersion,
			)
		}
		state = domain.NewPlayerState(now)
		if err := json.Unmarshal(payload, state); err != nil {
			return domain.NewPlayerState(now), false, errors.ErrPersistenceRead(r.key, err)
		}
	}

	repair(state, now)
	return state, true, nil
}

// DeleteState removes the saved state and any legacy side records.
func (r *SnapshotRepository) DeleteState(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key); err != nil {
		return errors.ErrPersistenceWrite(r.key, err)
	}
	if err := r.store.Delete(ctx, legacyAchievementsKey); err != nil {
		return errors.ErrPersistenceWrite(legacyAchievementsKey, err)
	}
	return nil
}

// legacyState is the browser-era layout (schema versions 0 and 1).
// Numbers were written by a JavaScript runtime and may carry fractions.
type legacyState struct {
	PlantName          string             `json:"plantName"`
	Level              float64            `json:"level"`
	Experience         float64            `json:"experience"`
	TotalExp           float64            `json:"totalExp"`
	Coins              float64            `json:"coins"`
	Gems               float64            `json:"gems"`
	TotalCoinsEarned   float64            `json:"totalCoinsEarned"`
	Happiness          float64            `json:"happiness"`
	Health             float64            `json:"health"`
	LastWatered        float64            `json:"lastWatered"`
	LastFertilized     float64            `json:"lastFertilized"`
	LastSunlight       float64            `json:"lastSunlight"`
	ActionCounts       map[string]float64 `json:"actionCounts"`
	MinigamesCompleted float64            `json:"minigamesCompleted"`
	Inventory          map[string]float64 `json:"inventory"`
	Challenges         struct {
		Completed []string `json:"completed"`
		LastReset struct {
			Daily   float64 `json:"daily"`
			Weekly  float64 `json:"weekly"`
			Monthly float64 `json:"monthly"`
		} `json:"lastReset"`
	} `json:"challenges"`
}

func (r *SnapshotRepository) migrateLegacy(ctx context.Context, payload []byte, now time.Time) (*domain.PlayerState, error) {
	legacy := legacyState{
		Level:     1,
		Coins:     domain.StartingCoins,
		Happiness: domain.MaxStat,
		Health:    domain.MaxStat,
	}
	if err := json.Unmarshal(payload, &legacy); err != nil {
		return nil, err
	}

	state := domain.NewPlayerState(now)
	state.PlantName = legacy.PlantName
	state.Level = int(floor(legacy.Level))
	state.Experience = floor(legacy.Experience)
	state.TotalExperience = floor(legacy.TotalExp)
	state.Coins = floor(legacy.Coins)
	state.Gems = floor(legacy.Gems)
	state.TotalCoinsEarned = floor(legacy.TotalCoinsEarned)
	state.Happiness = legacy.Happiness
	state.Health = legacy.Health
	state.MinigamesCompleted = floor(legacy.MinigamesCompleted)

	for name, n := range legacy.ActionCounts {
		action := domain.ActionType(name)
		if !action.IsValid() {
			continue
		}
		state.ActionCounts[action] = floor(n)
		state.TotalActionsPerformed += floor(n)
	}
	for action, ms := range map[domain.ActionType]float64{
		domain.ActionWater:      legacy.LastWatered,
		domain.ActionFertilizer: legacy.LastFertilized,
		domain.ActionSunlight:   legacy.LastSunlight,
	} {
		if ms > 0 {
			state.LastActionAt[action] = fromMillis(ms)
		}
	}
	for id, n := range legacy.Inventory {
		if n > 0 {
			state.Inventory[id] = floor(n)
		}
	}

	state.Challenges.CompletedOneTime = append(state.Challenges.CompletedOneTime, legacy.Challenges.Completed...)
	reset := legacy.Challenges.LastReset
	if reset.Daily > 0 {
		state.Challenges.LastReset.Daily = fromMillis(reset.Daily)
	}
	if reset.Weekly > 0 {
		state.Challenges.LastReset.Weekly = fromMillis(reset.Weekly)
	}
	if reset.Monthly > 0 {
		state.Challenges.LastReset.Monthly = fromMillis(reset.Monthly)
	}

	unlocked, err := r.loadLegacyAchievements(ctx)
	if err != nil {
		r.logger.Warn("Ignoring unreadable legacy achievements", "key", legacyAchievementsKey, "error", err)
	}
	state.UnlockedAchievements = append(state.UnlockedAchievements, unlocked...)

	return state, nil
}

func (r *SnapshotRepository) loadLegacyAchievements(ctx context.Context) ([]string, error) {
	payload, err := r.store.Load(ctx, legacyAchievementsKey)
	if err != nil || payload == nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// repair fills fields a hand-edited or partial snapshot may have nulled out
// and clamps values into their valid ranges.
func repair(state *domain.PlayerState, now time.Time) {
	if state.ActionCounts == nil {
		state.ActionCounts = make(map[domain.ActionType]int64)
	}
	if state.LastActionAt == nil {
		state.LastActionAt = make(map[domain.ActionType]time.Time)
	}
	if state.Inventory == nil {
		state.Inventory = make(map[string]int64)
	}
	if state.UnlockedAchievements == nil {
		state.UnlockedAchievements = []string{}
	}
	if state.Challenges.Progress == nil {
		state.Challenges.Progress = make(map[string]*domain.ChallengeProgress)
	}
	for id, p := range state.Challenges.Progress {
		if p == nil {
			delete(state.Challenges.Progress, id)
		}
	}
	if state.Challenges.History == nil {
		state.Challenges.History = []domain.CompletionRecord{}
	}
	if state.Challenges.CompletedOneTime == nil {
		state.Challenges.CompletedOneTime = []string{}
	}

	if state.Level < 1 {
		state.Level = 1
	}
	if state.Level > domain.MaxLevel {
		state.Level = domain.MaxLevel
	}
	state.Happiness = clamp(state.Happiness)
	state.Health = clamp(state.Health)
	state.Growth = clamp(state.Growth)

	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}
	if state.LastInteractionAt.IsZero() {
		state.LastInteractionAt = now
	}
	if state.LastDecayAt.IsZero() {
		state.LastDecayAt = state.LastInteractionAt
	}
	state.SchemaVersion = domain.CurrentSchemaVersion
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(domain.MaxStat, v))
}

func floor(v float64) int64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return int64(math.Floor(v))
}

func fromMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}
