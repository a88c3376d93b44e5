package client

import (
	"context"
	"errors"
	"time"

	"github.com/clickgrow/growcore/pkg/domain"
)

// ErrDismissed is returned by providers when the player closed the mini-game without finishing.
var ErrDismissed = errors.New("mini-game dismissed")

// MinigameResult is the outcome of one mini-game.
// Score is only meaningful when Completed is true.
type MinigameResult struct {
	Completed bool
	Score     int
}

// Declined is the result the engine uses for a dismissed, failed or cancelled mini-game.
var Declined = MinigameResult{Completed: false, Score: 0}

// MinigameProvider runs the skill mini-game that gates every care action.
//
// The game core awaits Play outside its state lock, so implementations may block
// for as long as the player takes. They must return promptly once ctx is done.
type MinigameProvider interface {
	// Play runs the mini-game bound to action.
	//
	// Parameters:
	//   - ctx: Cancelled when the host gives up on the action
	//   - action: Action the mini-game was started for
	//
	// Returns the result, or an error that the engine treats as a decline.
	Play(ctx context.Context, action domain.ActionType) (MinigameResult, error)
}

// IsDismissal determines whether a provider error is an ordinary player dismissal
// rather than a provider failure.
//
// Dismissals:
//   - ErrDismissed
//   - context.Canceled, context.DeadlineExceeded
//
// Everything else is a provider failure. Both resolve the action as declined;
// the distinction only changes how loudly the engine logs it.
func IsDismissal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrDismissed) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Normalize turns a provider's (result, error) pair into the result the engine applies.
// Errors and negative scores never leak into reward math.
func Normalize(result MinigameResult, err error) MinigameResult {
	if err != nil || !result.Completed {
		return Declined
	}
	if result.Score < 0 {
		result.Score = 0
	}
	return result
}

// timeoutProvider bounds every Play call with a deadline.
type timeoutProvider struct {
	next    MinigameProvider
	timeout time.Duration
}

// WithTimeout wraps a provider so a single mini-game cannot outlive timeout.
// A non-positive timeout returns next unchanged.
func WithTimeout(next MinigameProvider, timeout time.Duration) MinigameProvider {
	if timeout <= 0 {
		return next
	}
	return &timeoutProvider{next: next, timeout: timeout}
}

func (p *timeoutProvider) Play(ctx context.Context, action domain.ActionType) (MinigameResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.next.Play(ctx, action)
}
