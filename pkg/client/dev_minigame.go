package client

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/clickgrow/growcore/pkg/domain"
)

// StaticMinigame always completes with the same score.
// Use it for the CLI's --score flag and for deterministic scenarios.
type StaticMinigame struct {
	Score int
}

// Play returns the fixed score unless ctx is already done.
func (s *StaticMinigame) Play(ctx context.Context, action domain.ActionType) (MinigameResult, error) {
	if err := ctx.Err(); err != nil {
		return Declined, err
	}
	return MinigameResult{Completed: true, Score: s.Score}, nil
}

// DecliningMinigame always behaves as if the player closed the game.
type DecliningMinigame struct{}

// Play returns ErrDismissed.
func (DecliningMinigame) Play(ctx context.Context, action domain.ActionType) (MinigameResult, error) {
	return Declined, ErrDismissed
}

// RandomMinigame simulates a player for local development.
// It completes with probability completeRate and draws scores uniformly from [0, maxScore].
type RandomMinigame struct {
	mu           sync.Mutex
	rng          *rand.Rand
	completeRate float64
	maxScore     int
	logger       *slog.Logger
}

// NewRandomMinigame creates a seeded simulated player.
func NewRandomMinigame(seed int64, completeRate float64, maxScore int, logger *slog.Logger) *RandomMinigame {
	if maxScore < 0 {
		maxScore = 0
	}
	return &RandomMinigame{
		rng:          rand.New(rand.NewSource(seed)),
		completeRate: completeRate,
		maxScore:     maxScore,
		logger:       logger,
	}
}

// Play draws a result and logs it.
func (r *RandomMinigame) Play(ctx context.Context, action domain.ActionType) (MinigameResult, error) {
	if err := ctx.Err(); err != nil {
		return Declined, err
	}

	r.mu.Lock()
	completed := r.rng.Float64() < r.completeRate
	score := r.rng.Intn(r.maxScore + 1)
	r.mu.Unlock()

	if !completed {
		r.logger.Debug("Simulated mini-game dismissed", "action", action)
		return Declined, ErrDismissed
	}

	r.logger.Debug("Simulated mini-game completed", "action", action, "score", score)
	return MinigameResult{Completed: true, Score: score}, nil
}
