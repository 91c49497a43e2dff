// Package preferences persists small per-user UI choices such as the last
// rug shape and the preferred unit.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"rug-quote/internal/calculator"
	"rug-quote/pkg/redis"
)

var ErrNotFound = errors.New("preference not set")

// Store is a string key-value capability.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "prefs:"}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.GetString(ctx, s.prefix+key)
	if errors.Is(err, redis.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get preference %s: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.SetString(ctx, s.prefix+key, value); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Preferences reads and writes typed preferences for one user namespace.
type Preferences struct {
	store Store
}

func New(store Store) *Preferences {
	return &Preferences{store: store}
}

func shapeKey(userID int64) string { return fmt.Sprintf("%d:shape", userID) }
func unitKey(userID int64) string  { return fmt.Sprintf("%d:unit", userID) }

// Shape returns the saved shape, or rectangle when nothing valid is stored.
func (p *Preferences) Shape(ctx context.Context, userID int64) (calculator.Shape, error) {
	raw, err := p.store.Get(ctx, shapeKey(userID))
	if errors.Is(err, ErrNotFound) {
		return calculator.ShapeRectangle, nil
	}
	if err != nil {
		return calculator.ShapeRectangle, err
	}
	shape, err := calculator.ParseShape(raw)
	if err != nil {
		return calculator.ShapeRectangle, nil
	}
	return shape, nil
}

func (p *Preferences) SetShape(ctx context.Context, userID int64, shape calculator.Shape) error {
	return p.store.Set(ctx, shapeKey(userID), string(shape))
}

// Unit returns the saved unit, or feet when nothing valid is stored.
func (p *Preferences) Unit(ctx context.Context, userID int64) (calculator.Unit, error) {
	raw, err := p.store.Get(ctx, unitKey(userID))
	if errors.Is(err, ErrNotFound) {
		return calculator.UnitFeet, nil
	}
	if err != nil {
		return calculator.UnitFeet, err
	}
	unit := calculator.Unit(raw)
	if !unit.Valid() {
		return calculator.UnitFeet, nil
	}
	return unit, nil
}

func (p *Preferences) SetUnit(ctx context.Context, userID int64, unit calculator.Unit) error {
	if !unit.Valid() {
		return fmt.Errorf("%w: unit %q", calculator.ErrUnknownCategory, unit)
	}
	return p.store.Set(ctx, unitKey(userID), string(unit))
}
