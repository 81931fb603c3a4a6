package state

import (
	"context"
	"encoding/json"
	"time"

	"astromitra/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Persister stores the serialized user slice across process restarts.
type Persister interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context) error
}

const userSliceKey = "state:userSlice"

// RedisPersister keeps the user slice in the generic Redis cache.
type RedisPersister struct {
	client *redis.Client
}

// NewRedisPersister wraps a Redis client as a Persister.
func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{client: client}
}

func (p *RedisPersister) Save(ctx context.Context, data []byte) error {
	return p.client.Set(ctx, userSliceKey, data, 0).Err()
}

func (p *RedisPersister) Load(ctx context.Context) ([]byte, error) {
	data, err := p.client.Get(ctx, userSliceKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

func (p *RedisPersister) Clear(ctx context.Context) error {
	return p.client.Del(ctx, userSliceKey).Err()
}

// persistUserSlice writes the user slice through to the persister.
// Persistence is best-effort: a failed write only degrades cold-start
// hydration, never the live cache.
func (s *Store) persistUserSlice() {
	if s.persister == nil {
		return
	}
	s.mu.RLock()
	data, err := json.Marshal(s.user)
	s.mu.RUnlock()
	if err != nil {
		utils.GetLogger().Warn("failed to serialize user slice", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.persister.Save(ctx, data); err != nil {
		utils.GetLogger().Warn("failed to persist user slice", zap.Error(err))
	}
}

func (s *Store) clearPersisted() {
	if s.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.persister.Clear(ctx); err != nil {
		utils.GetLogger().Warn("failed to clear persisted user slice", zap.Error(err))
	}
}

// Hydrate restores the user slice from the persister on cold start. Every
// other slice rebuilds from scratch.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	data, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	var slice UserSlice
	if err := json.Unmarshal(data, &slice); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = slice
	s.mu.Unlock()
	return nil
}
