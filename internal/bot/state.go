package bot

import (
	"context"
	"errors"
	"fmt"

	"rug-quote/internal/calculator"
	"rug-quote/pkg/redis"
)

const (
	StepShape      = "shape"
	StepWidth      = "width"
	StepLength     = "length"
	StepMaterial   = "material"
	StepProtection = "protection"
	StepPad        = "pad"
	StepReview     = "review"
)

type DialogState struct {
	Step      string               `json:"step"`
	Selection calculator.Selection `json:"selection"`
}

// StateStorage keeps dialog state in redis under state:<chat_id>.
type StateStorage struct {
	redis *redis.Client
}

func NewStateStorage(redis *redis.Client) *StateStorage {
	return &StateStorage{redis: redis}
}

// Get returns an empty state with the default selection when none is stored.
func (s *StateStorage) Get(ctx context.Context, chatID int64) (DialogState, error) {
	var state DialogState
	err := s.redis.LoadJSON(ctx, getStateKey(chatID), &state)
	if errors.Is(err, redis.ErrNotFound) {
		return DialogState{Selection: calculator.DefaultSelection()}, nil
	}
	if err != nil {
		return DialogState{}, fmt.Errorf("failed to get state: %w", err)
	}
	return state, nil
}

func (s *StateStorage) Save(ctx context.Context, chatID int64, state DialogState) error {
	if err := s.redis.SaveJSON(ctx, getStateKey(chatID), state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (s *StateStorage) Clear(ctx context.Context, chatID int64) error {
	if err := s.redis.Del(ctx, getStateKey(chatID)); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func getStateKey(chatID int64) string {
	return fmt.Sprintf("state:%d", chatID)
}
