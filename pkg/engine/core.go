package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/clickgrow/growcore/pkg/cache"
	"github.com/clickgrow/growcore/pkg/client"
	"github.com/clickgrow/growcore/pkg/domain"
	"github.com/clickgrow/growcore/pkg/errors"
)

const tracerName = "github.com/clickgrow/growcore/pkg/engine"

// StateRepository loads and saves the single PlayerState a GameCore owns.
// repository.SnapshotRepository is the production implementation.
type StateRepository interface {
	SaveState(ctx context.Context, state *domain.PlayerState) error
	LoadState(ctx context.Context, now time.Time) (*domain.PlayerState, bool, error)
	DeleteState(ctx context.Context) error
}

// Hooks are called after a state change has been committed and the core lock released.
// Any hook may be nil. Hooks may call back into the GameCore.
type Hooks struct {
	OnLevelUp             func(domain.LevelUp)
	OnAchievementUnlocked func(*domain.AchievementDefinition)
	OnChallengeCompleted  func(*domain.ChallengeDefinition)
	OnActionResolved      func(*ActionResult)
}

// Options configures a GameCore. Catalog, Repository and Minigame are required.
type Options struct {
	Catalog    cache.CatalogCache
	Repository StateRepository
	Minigame   client.MinigameProvider

	// Cooldowns per action; a missing action has no cooldown.
	Cooldowns  map[domain.ActionType]time.Duration
	DeathAfter time.Duration
	// Location drives daily, weekly and monthly boundaries. Defaults to time.Local.
	Location  *time.Location
	PlantName string

	Hooks  Hooks
	Clock  func() time.Time
	Logger *slog.Logger
	Tracer trace.Tracer
}

// Outcome lists the follow-on effects of a mutation.
type Outcome struct {
	LevelUps     []domain.LevelUp                `json:"levelUps,omitempty"`
	Achievements []*domain.AchievementDefinition `json:"achievements,omitempty"`
	Challenges   []*domain.ChallengeDefinition   `json:"challenges,omitempty"`
}

func (o *Outcome) empty() bool {
	return len(o.LevelUps) == 0 && len(o.Achievements) == 0 && len(o.Challenges) == 0
}

// ActionResult is returned by a successful PerformAction.
type ActionResult struct {
	Action     domain.ActionType `json:"action"`
	ResolvedAt time.Time         `json:"resolvedAt"`
	Reward     RewardBreakdown   `json:"reward"`
	Outcome
}

// AchievementView is one catalog achievement with the player's standing on it.
type AchievementView struct {
	Definition *domain.AchievementDefinition
	Unlocked   bool
	Progress   Progress
}

// GameCore owns one player's state and serializes every mutation through a single mutex.
//
// The mini-game is the only suspension point. It is awaited without holding the lock,
// guarded by an in-flight flag so a second action cannot start meanwhile.
type GameCore struct {
	mu       sync.Mutex
	state    *domain.PlayerState
	inFlight bool
	dirty    bool

	catalog      cache.CatalogCache
	repo         StateRepository
	minigame     client.MinigameProvider
	progression  *Progression
	gate         *CooldownGate
	achievements *AchievementEvaluator
	challenges   *ChallengeManager
	shop         *Shop

	deathAfter time.Duration
	location   *time.Location
	plantName  string
	hooks      Hooks
	clock      func() time.Time
	logger     *slog.Logger
	tracer     trace.Tracer
}

// New creates a GameCore holding fresh default state. Call Start to load the saved game.
func New(opts Options) (*GameCore, error) {
	if opts.Catalog == nil {
		return nil, errors.ErrConfigInvalid("catalog is required", nil)
	}
	if opts.Repository == nil {
		return nil, errors.ErrConfigInvalid("repository is required", nil)
	}
	if opts.Minigame == nil {
		return nil, errors.ErrConfigInvalid("minigame provider is required", nil)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	deathAfter := opts.DeathAfter
	if deathAfter <= 0 {
		deathAfter = DefaultDeathAfter
	}

	progression := NewProgression(logger)
	c := &GameCore{
		catalog:      opts.Catalog,
		repo:         opts.Repository,
		minigame:     opts.Minigame,
		progression:  progression,
		gate:         NewCooldownGate(opts.Cooldowns),
		achievements: NewAchievementEvaluator(opts.Catalog, progression, logger),
		challenges:   NewChallengeManager(opts.Catalog, progression, loc, logger),
		shop:         NewShop(opts.Catalog, logger),
		deathAfter:   deathAfter,
		location:     loc,
		plantName:    opts.PlantName,
		hooks:        opts.Hooks,
		clock:        clock,
		logger:       logger,
		tracer:       tracer,
	}
	c.state = c.freshState(clock())
	return c, nil
}

// Start loads the saved game, applies offline decay and pending resets, and saves.
// An unreadable save is logged and replaced by a fresh game.
func (c *GameCore) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	now := c.clock()
	state, found, err := c.repo.LoadState(ctx, now)
	if err != nil {
		c.logger.Warn("Failed to load saved game, starting fresh", "error", err)
	}
	if !found {
		state = c.freshState(now)
	}
	c.state = state

	// saves from older versions may bank more experience than their level allows
	var out Outcome
	var queue []Event
	if !c.state.Dead {
		out.LevelUps = c.progression.ResolveLevelUps(c.state)
		for range out.LevelUps {
			queue = append(queue, Event{Source: domain.EventSourceLevelUp})
		}
	}
	c.refreshLocked(now, queue, &out)
	c.persistLocked(ctx)

	c.logger.Info("Game started",
		"found_save", found,
		"level", c.state.Level,
		"dead", c.state.Dead,
	)
	c.mu.Unlock()

	c.fire(&out, nil)
	return nil
}

// PerformAction runs one care action end to end: gate checks, mini-game, rewards,
// challenge progress, achievements and save.
//
// Failures are typed GameErrors: PLANT_DEAD, UNKNOWN_ACTION, COOLDOWN_ACTIVE (with RetryAfter),
// ACTION_IN_PROGRESS and MINIGAME_DECLINED. A declined mini-game does not start the cooldown.
func (c *GameCore) PerformAction(ctx context.Context, action domain.ActionType) (*ActionResult, error) {
	ctx, span := c.tracer.Start(ctx, "GameCore.PerformAction",
		trace.WithAttributes(attribute.String("clickgrow.action", string(action))))
	defer span.End()

	result, err := c.performAction(ctx, action)
	if err != nil {
		span.SetAttributes(attribute.String("clickgrow.error_code", errors.CodeOf(err)))
		if !errors.IsRecoverable(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("clickgrow.score", result.Reward.Score),
		attribute.Int64("clickgrow.experience", result.Reward.Experience),
		attribute.Int64("clickgrow.coins", result.Reward.Coins+result.Reward.BonusCoins),
		attribute.Int("clickgrow.level_ups", len(result.LevelUps)),
	)
	return result, nil
}

func (c *GameCore) performAction(ctx context.Context, action domain.ActionType) (*ActionResult, error) {
	if !action.IsValid() {
		return nil, errors.ErrUnknownAction(string(action))
	}

	c.mu.Lock()
	if err := c.aliveLocked(ctx, c.clock()); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if remaining := c.gate.Remaining(c.state, action, c.clock()); remaining > 0 {
		c.mu.Unlock()
		return nil, errors.ErrCooldown(string(action), remaining)
	}
	if c.inFlight {
		c.mu.Unlock()
		return nil, errors.ErrActionInProgress(string(action))
	}
	c.inFlight = true
	c.mu.Unlock()

	played := c.playMinigame(ctx, action)

	c.mu.Lock()
	c.inFlight = false
	if !played.Completed {
		c.mu.Unlock()
		c.logger.Debug("Mini-game declined", "action", action)
		return nil, errors.ErrMinigameDeclined(string(action))
	}
	now := c.clock()
	// the plant may have died while the mini-game was open
	if err := c.aliveLocked(ctx, now); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	p := c.state
	reward, ok := ComputeReward(action, played.Score, p.Inventory)
	if !ok {
		c.mu.Unlock()
		return nil, errors.ErrUnknownAction(string(action))
	}

	p.Happiness = clampStat(p.Happiness + reward.Happiness)
	p.Health = clampStat(p.Health + reward.Health)
	p.Growth = clampStat(p.Growth + reward.Growth)

	result := &ActionResult{Action: action, ResolvedAt: now, Reward: reward}
	c.progression.AddCurrency(p, domain.ResourceCoins, reward.Coins+reward.BonusCoins)
	result.LevelUps = c.progression.AddExperience(p, reward.Experience)

	p.ActionCounts[action]++
	p.TotalActionsPerformed++
	p.MinigamesCompleted++
	c.gate.Record(p, action, now)
	p.LastInteractionAt = now

	c.challenges.CheckAndApplyResets(p, now)
	events := []Event{
		{Source: domain.EventSourceAction, Code: string(action)},
		{Source: domain.EventSourceMinigame},
	}
	for range result.LevelUps {
		events = append(events, Event{Source: domain.EventSourceLevelUp})
	}
	c.settleLocked(now, events, &result.Outcome)
	c.persistLocked(ctx)

	c.logger.Info("Action resolved",
		"action", action,
		"score", played.Score,
		"experience", reward.Experience,
		"coins", reward.Coins+reward.BonusCoins,
		"level", p.Level,
	)
	c.mu.Unlock()

	c.fire(&result.Outcome, result)
	return result, nil
}

// playMinigame awaits the provider but never outlives ctx.
func (c *GameCore) playMinigame(ctx context.Context, action domain.ActionType) client.MinigameResult {
	type reply struct {
		result client.MinigameResult
		err    error
	}
	ch := make(chan reply, 1)
	go func() {
		r, err := c.minigame.Play(ctx, action)
		ch <- reply{result: r, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && !client.IsDismissal(r.err) {
			c.logger.Warn("Mini-game provider failed", "action", action, "error", r.err)
		}
		return client.Normalize(r.result, r.err)
	case <-ctx.Done():
		return client.Declined
	}
}

// Tick is the periodic maintenance pass: offline decay, period resets and a save.
// It goes through the same lock and save path as player actions.
func (c *GameCore) Tick(ctx context.Context) (DecayResult, error) {
	if err := ctx.Err(); err != nil {
		return DecayResult{}, err
	}
	_, span := c.tracer.Start(ctx, "GameCore.Tick")
	defer span.End()

	c.mu.Lock()
	var out Outcome
	decay := c.refreshLocked(c.clock(), nil, &out)
	c.persistLocked(ctx)
	c.mu.Unlock()

	span.SetAttributes(attribute.Bool("clickgrow.died", decay.Died))
	c.fire(&out, nil)
	return decay, nil
}

// Resume catches up on time spent in the background. Call it when the host regains focus.
func (c *GameCore) Resume(ctx context.Context) error {
	_, err := c.Tick(ctx)
	return err
}

// Purchase buys one unit of itemID.
func (c *GameCore) Purchase(ctx context.Context, itemID string) (*domain.ShopItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.aliveLocked(ctx, c.clock()); err != nil {
		return nil, err
	}
	item, err := c.shop.Purchase(c.state, itemID)
	if err != nil {
		return nil, err
	}
	c.state.LastInteractionAt = c.clock()
	c.persistLocked(ctx)
	return item, nil
}

// UseItem consumes one unit of itemID from the inventory.
func (c *GameCore) UseItem(ctx context.Context, itemID string) (*domain.ShopItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.aliveLocked(ctx, c.clock()); err != nil {
		return nil, err
	}
	item, err := c.shop.UseItem(c.state, itemID)
	if err != nil {
		return nil, err
	}
	c.state.LastInteractionAt = c.clock()
	c.persistLocked(ctx)
	return item, nil
}

// RecordChallengeProgress adds delta to a challenge directly, for hosts that track
// progress the core cannot observe.
func (c *GameCore) RecordChallengeProgress(ctx context.Context, id string, delta int64) (*Outcome, error) {
	c.mu.Lock()
	now := c.clock()
	if err := c.aliveLocked(ctx, now); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	c.challenges.CheckAndApplyResets(c.state, now)
	res, err := c.challenges.RecordProgress(c.state, id, delta, now)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}

	out := &Outcome{}
	events := c.collectChallenges(res, out)
	c.settleLocked(now, events, out)
	c.persistLocked(ctx)
	c.mu.Unlock()

	c.fire(out, nil)
	return out, nil
}

// Reset wipes the saved game and plants a new seed. It is the only way back from a dead plant.
func (c *GameCore) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return errors.ErrActionInProgress("reset")
	}
	if err := c.repo.DeleteState(ctx); err != nil {
		return err
	}

	now := c.clock()
	c.state = c.freshState(now)
	var out Outcome
	c.refreshLocked(now, nil, &out)
	c.persistLocked(ctx)

	c.logger.Info("Game reset")
	return nil
}

// Close saves the state one last time. Unlike other operations, a failed save is returned.
func (c *GameCore) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.repo.SaveState(ctx, c.state); err != nil {
		c.dirty = true
		return err
	}
	c.dirty = false
	return nil
}

// Snapshot returns a deep copy of the current state.
func (c *GameCore) Snapshot() *domain.PlayerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Dirty reports whether the last save failed and is waiting for a retry.
func (c *GameCore) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// CooldownRemaining returns how long until action can be performed again.
func (c *GameCore) CooldownRemaining(action domain.ActionType) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.Remaining(c.state, action, c.clock())
}

// ProgressOf returns the player's progress toward an achievement.
func (c *GameCore) ProgressOf(achievementID string) (Progress, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.achievements.ProgressOf(achievementID, c.state)
}

// Achievements lists the whole catalog with unlock state and progress.
func (c *GameCore) Achievements() []AchievementView {
	c.mu.Lock()
	defer c.mu.Unlock()

	defs := c.catalog.GetAllAchievements()
	views := make([]AchievementView, 0, len(defs))
	for _, def := range defs {
		prog, _ := c.achievements.ProgressOf(def.ID, c.state)
		views = append(views, AchievementView{
			Definition: def,
			Unlocked:   c.state.HasAchievement(def.ID),
			Progress:   prog,
		})
	}
	return views
}

// ActiveChallenges returns challenges accepting progress right now, in catalog order.
func (c *GameCore) ActiveChallenges() []ActiveChallenge {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.challenges.ActiveChallenges(c.state, c.clock())
}

// ChallengeStats summarizes the challenge catalog.
func (c *GameCore) ChallengeStats() ChallengeStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.challenges.Stats(c.state, c.clock())
}

// ChallengeTimeLeft returns the time until challenge id closes. ok is false when it never does.
func (c *GameCore) ChallengeTimeLeft(id string) (left time.Duration, ok bool, err error) {
	def := c.catalog.GetChallenge(id)
	if def == nil {
		return 0, false, errors.ErrUnknownChallenge(id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	left, ok = c.challenges.TimeLeft(def, c.state, c.clock())
	return left, ok, nil
}

// ShopItems returns the shop catalog.
func (c *GameCore) ShopItems() []*domain.ShopItem {
	return c.catalog.GetAllShopItems()
}

func (c *GameCore) freshState(now time.Time) *domain.PlayerState {
	s := domain.NewPlayerState(now)
	s.PlantName = c.plantName
	return s
}

// aliveLocked brings decay up to now and returns PLANT_DEAD if the plant did not survive.
// A death found here is saved right away.
func (c *GameCore) aliveLocked(ctx context.Context, now time.Time) error {
	if decay := ApplyOfflineDecay(c.state, now, c.deathAfter); decay.Died {
		c.logger.Warn("Plant died of neglect", "idle", decay.Elapsed)
		c.persistLocked(ctx)
	}
	if c.state.Dead {
		return errors.ErrDeadPlant()
	}
	return nil
}

// refreshLocked applies decay and pending resets, then settles challenges and achievements.
func (c *GameCore) refreshLocked(now time.Time, queue []Event, out *Outcome) DecayResult {
	decay := ApplyOfflineDecay(c.state, now, c.deathAfter)
	if decay.Died {
		c.logger.Warn("Plant died of neglect", "idle", decay.Elapsed)
	}
	if c.state.Dead {
		return decay
	}
	c.challenges.CheckAndApplyResets(c.state, now)
	c.settleLocked(now, queue, out)
	return decay
}

// settleLocked routes events to challenges, then re-syncs absolute challenges and
// evaluates achievements, repeating until nothing new happens. Every round is bounded
// because achievements unlock once and challenges complete once per window.
func (c *GameCore) settleLocked(now time.Time, queue []Event, out *Outcome) {
	p := c.state
	for {
		for len(queue) > 0 {
			ev := queue[0]
			queue = queue[1:]
			queue = append(queue, c.collectChallenges(c.challenges.HandleEvent(p, ev, now), out)...)
		}

		queue = append(queue, c.collectChallenges(c.challenges.SyncAbsolute(p, now), out)...)

		unlocked, ups := c.achievements.CheckAll(p)
		out.Achievements = append(out.Achievements, unlocked...)
		out.LevelUps = append(out.LevelUps, ups...)
		for _, def := range unlocked {
			queue = append(queue, Event{Source: domain.EventSourceAchievement, Code: def.ID})
		}
		for range ups {
			queue = append(queue, Event{Source: domain.EventSourceLevelUp})
		}

		if len(queue) == 0 {
			return
		}
	}
}

// collectChallenges records a challenge outcome and returns the level-up events it implies.
func (c *GameCore) collectChallenges(res ChallengeOutcome, out *Outcome) []Event {
	out.Challenges = append(out.Challenges, res.Completed...)
	out.LevelUps = append(out.LevelUps, res.LevelUps...)

	events := make([]Event, 0, len(res.LevelUps))
	for range res.LevelUps {
		events = append(events, Event{Source: domain.EventSourceLevelUp})
	}
	return events
}

// persistLocked saves the state. A failure keeps the game running in memory;
// the dirty flag makes the next mutation or Close try again.
func (c *GameCore) persistLocked(ctx context.Context) {
	if err := c.repo.SaveState(ctx, c.state); err != nil {
		c.dirty = true
		c.logger.Warn("Failed to save game, will retry", "error", err)
		return
	}
	c.dirty = false
}

func (c *GameCore) fire(out *Outcome, action *ActionResult) {
	if out != nil && !out.empty() {
		if c.hooks.OnLevelUp != nil {
			for _, up := range out.LevelUps {
				c.hooks.OnLevelUp(up)
			}
		}
		if c.hooks.OnAchievementUnlocked != nil {
			for _, def := range out.Achievements {
				c.hooks.OnAchievementUnlocked(def)
			}
		}
		if c.hooks.OnChallengeCompleted != nil {
			for _, def := range out.Challenges {
				c.hooks.OnChallengeCompleted(def)
			}
		}
	}
	if action != nil && c.hooks.OnActionResolved != nil {
		c.hooks.OnActionResolved(action)
	}
}
