package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"transaction_form/internal/fub/transport"

	"github.com/redis/go-redis/v9"
)

const agentsCacheKey = "fub:agents"

// AgentCache stores the agent roster between CRM calls.
type AgentCache interface {
	Get(ctx context.Context) ([]transport.Agent, bool, error)
	Set(ctx context.Context, agents []transport.Agent) error
	Clear(ctx context.Context) error
}

// MemoryCache keeps the roster in process.
type MemoryCache struct {
	mu        sync.RWMutex
	agents    []transport.Agent
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewMemoryCache creates an in-process cache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context) ([]transport.Agent, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.agents == nil || m.now().After(m.expiresAt) {
		return nil, false, nil
	}
	return append([]transport.Agent(nil), m.agents...), true, nil
}

func (m *MemoryCache) Set(_ context.Context, agents []transport.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.agents = append(make([]transport.Agent, 0, len(agents)), agents...)
	m.expiresAt = m.now().Add(m.ttl)
	return nil
}

func (m *MemoryCache) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.agents = nil
	return nil
}

// RedisCache shares the roster between API instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache with the given TTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context) ([]transport.Agent, bool, error) {
	raw, err := r.client.Get(ctx, agentsCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var agents []transport.Agent
	if err := json.Unmarshal(raw, &agents); err != nil {
		return nil, false, err
	}
	return agents, true, nil
}

func (r *RedisCache) Set(ctx context.Context, agents []transport.Agent) error {
	raw, err := json.Marshal(agents)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, agentsCacheKey, raw, r.ttl).Err()
}

func (r *RedisCache) Clear(ctx context.Context) error {
	return r.client.Del(ctx, agentsCacheKey).Err()
}
