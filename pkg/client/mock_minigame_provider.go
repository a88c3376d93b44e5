package client

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/clickgrow/growcore/pkg/domain"
)

// MockMinigameProvider is a mock implementation of MinigameProvider for testing.
// It uses testify/mock to allow test assertions on method calls.
type MockMinigameProvider struct {
	mock.Mock
}

// Play mocks running a mini-game.
func (m *MockMinigameProvider) Play(ctx context.Context, action domain.ActionType) (MinigameResult, error) {
	args := m.Called(ctx, action)
	return args.Get(0).(MinigameResult), args.Error(1)
}

// NewMockMinigameProvider creates a new mock mini-game provider.
func NewMockMinigameProvider() *MockMinigameProvider {
	return &MockMinigameProvider{}
}
