package repository

import (
	"context"
	"fmt"
)

// KeyPrefix namespaces every snapshot key written by the game.
const KeyPrefix = "clickgrow"

// StateKey returns the storage key holding a player's snapshot.
// Player 0 is the single-player default and keeps the historical key.
func StateKey(playerID int64) string {
	if playerID == 0 {
		return KeyPrefix + "_gameState"
	}
	return fmt.Sprintf("%s_%d_gameState", KeyPrefix, playerID)
}

// Store defines the key/value persistence contract the game core writes snapshots to.
// Implementations must make a single Save atomic: a reader never observes a partial value.
type Store interface {
	// Save creates or replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error

	// Load returns the value stored under key.
	// Returns nil, nil if the key has never been written (lazy initialization).
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection or file handle.
	Close() error
}
