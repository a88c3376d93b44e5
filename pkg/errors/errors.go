package errors

import (
	"errors"
	"fmt"
	"time"
)

// Error codes for the game core.
const (
	// Action errors
	ErrCodeCooldownActive   = "COOLDOWN_ACTIVE"
	ErrCodeMinigameDeclined = "MINIGAME_DECLINED"
	ErrCodePlantDead        = "PLANT_DEAD"
	ErrCodeActionInProgress = "ACTION_IN_PROGRESS"
	ErrCodeUnknownAction    = "UNKNOWN_ACTION"

	// Catalog lookups
	ErrCodeUnknownItem        = "UNKNOWN_ITEM"
	ErrCodeUnknownChallenge   = "UNKNOWN_CHALLENGE"
	ErrCodeUnknownAchievement = "UNKNOWN_ACHIEVEMENT"

	// Shop errors
	ErrCodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	ErrCodeNoItems           = "NO_ITEMS"

	// Persistence errors
	ErrCodePersistenceRead  = "PERSISTENCE_READ"
	ErrCodePersistenceWrite = "PERSISTENCE_WRITE"

	// Config errors
	ErrCodeConfigInvalid = "CONFIG_INVALID"

	// Validation errors
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidInput     = "INVALID_INPUT"
)

// GameError is the typed failure result of a game core operation.
// RetryAfter is only set for COOLDOWN_ACTIVE.
type GameError struct {
	Code       string
	Message    string
	Err        error
	RetryAfter time.Duration
}

func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError.
func NewGameError(code, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrCooldown returns an error when an action is attempted before its cooldown elapsed.
func ErrCooldown(action string, remaining time.Duration) *GameError {
	return &GameError{
		Code:       ErrCodeCooldownActive,
		Message:    fmt.Sprintf("%s is on cooldown, wait %s", action, remaining.Round(time.Second)),
		RetryAfter: remaining,
	}
}

// ErrMinigameDeclined returns an error when the mini-game was dismissed or failed.
func ErrMinigameDeclined(action string) *GameError {
	return &GameError{
		Code:    ErrCodeMinigameDeclined,
		Message: fmt.Sprintf("%s mini-game was not completed", action),
	}
}

// ErrDeadPlant returns an error when a mutation is attempted on a dead plant.
func ErrDeadPlant() *GameError {
	return &GameError{
		Code:    ErrCodePlantDead,
		Message: "plant is dead, reset to start over",
	}
}

// ErrActionInProgress returns an error when another action is waiting on its mini-game.
func ErrActionInProgress(action string) *GameError {
	return &GameError{
		Code:    ErrCodeActionInProgress,
		Message: fmt.Sprintf("cannot start %s while another action is in progress", action),
	}
}

// ErrUnknownAction returns an error for an action type outside the action table.
func ErrUnknownAction(action string) *GameError {
	return &GameError{
		Code:    ErrCodeUnknownAction,
		Message: fmt.Sprintf("unknown action: %s", action),
	}
}

// ErrUnknownItem returns an error when a shop item is not found.
func ErrUnknownItem(itemID string) *GameError {
	return &GameError{
		Code:    ErrCodeUnknownItem,
		Message: fmt.Sprintf("shop item not found: %s", itemID),
	}
}

// ErrUnknownChallenge returns an error when a challenge is not found.
func ErrUnknownChallenge(challengeID string) *GameError {
	return &GameError{
		Code:    ErrCodeUnknownChallenge,
		Message: fmt.Sprintf("challenge not found: %s", challengeID),
	}
}

// ErrUnknownAchievement returns an error when an achievement is not found.
func ErrUnknownAchievement(achievementID string) *GameError {
	return &GameError{
		Code:    ErrCodeUnknownAchievement,
		Message: fmt.Sprintf("achievement not found: %s", achievementID),
	}
}

// ErrInsufficientFunds returns an error when the balance cannot cover a price.
func ErrInsufficientFunds(currency string, have, need int64) *GameError {
	return &GameError{
		Code:    ErrCodeInsufficientFunds,
		Message: fmt.Sprintf("not enough %s (have %d, need %d)", currency, have, need),
	}
}

// ErrNoItems returns an error when using an item that is not in the inventory.
func ErrNoItems(itemID string) *GameError {
	return &GameError{
		Code:    ErrCodeNoItems,
		Message: fmt.Sprintf("no %s left in inventory", itemID),
	}
}

// ErrPersistenceRead wraps storage read and decode errors.
func ErrPersistenceRead(key string, err error) *GameError {
	return &GameError{
		Code:    ErrCodePersistenceRead,
		Message: fmt.Sprintf("failed to read %s", key),
		Err:     err,
	}
}

// ErrPersistenceWrite wraps storage write and encode errors.
func ErrPersistenceWrite(key string, err error) *GameError {
	return &GameError{
		Code:    ErrCodePersistenceWrite,
		Message: fmt.Sprintf("failed to write %s", key),
		Err:     err,
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(reason string, err error) *GameError {
	return &GameError{
		Code:    ErrCodeConfigInvalid,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
		Err:     err,
	}
}

// ErrValidationFailed returns a validation error.
func ErrValidationFailed(field, reason string) *GameError {
	return &GameError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
	}
}

// ErrInvalidInput returns an error for a malformed argument.
func ErrInvalidInput(reason string) *GameError {
	return &GameError{
		Code:    ErrCodeInvalidInput,
		Message: reason,
	}
}

// CodeOf returns the code of the first GameError in err's chain, or "" if there is none.
func CodeOf(err error) string {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// IsRecoverable reports whether the caller can simply retry later without changing anything.
//
// Recoverable:
//   - COOLDOWN_ACTIVE (wait RetryAfter)
//   - MINIGAME_DECLINED, ACTION_IN_PROGRESS
//   - PERSISTENCE_WRITE (state stays in memory and is saved again later)
//
// Everything else needs a different input or a reset.
func IsRecoverable(err error) bool {
	switch CodeOf(err) {
	case ErrCodeCooldownActive, ErrCodeMinigameDeclined, ErrCodeActionInProgress, ErrCodePersistenceWrite:
		return true
	default:
		return false
	}
}

// RetryAfter returns the wait hint of a cooldown error, or 0.
func RetryAfter(err error) time.Duration {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.RetryAfter
	}
	return 0
}
