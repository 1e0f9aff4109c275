// Package session is the single source of truth for the current Session.
// Stores are injected into the gateway client and the auth service; nothing
// in the library reaches into ambient global state.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/afrikabal/gateway-go/internal/infrastructure/redis"
	"github.com/rs/zerolog/log"
)

const sessionKey = "afrikabal:session"

// Store persists the current Session. Load returns a zero Session when none
// is present. Clear removes every session field at once; a cleared store
// never retains a stale refresh token or expiry.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, sess Session) error
	Clear(ctx context.Context) error
}

// NewStore returns a Redis-backed store when the Redis service is available,
// and an in-memory store otherwise.
func NewStore(redisService *redis.Service, ttl time.Duration) Store {
	if redisService != nil {
		if err := redisService.Ping(context.Background()); err == nil {
			return &RedisStore{redisService: redisService, ttl: ttl}
		}
		log.Warn().Msg("Redis unreachable, falling back to in-memory session store")
	}
	return NewMemoryStore()
}

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	sess *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load(ctx context.Context) (Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if ms.sess == nil {
		return Session{}, nil
	}
	return *ms.sess, nil
}

func (ms *MemoryStore) Save(ctx context.Context, sess Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sess = &sess
	return nil
}

func (ms *MemoryStore) Clear(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sess = nil
	return nil
}

// RedisStore persists the session as a single JSON value with a TTL, so a
// session never outlives its retention window even if never cleared.
type RedisStore struct {
	redisService *redis.Service
	ttl          time.Duration
}

func (rs *RedisStore) Load(ctx context.Context) (Session, error) {
	data, err := rs.redisService.Get(ctx, sessionKey)
	if err != nil {
		if redis.IsMissing(err) {
			return Session{}, nil
		}
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (rs *RedisStore) Save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return rs.redisService.Set(ctx, sessionKey, string(data), rs.ttl)
}

func (rs *RedisStore) Clear(ctx context.Context) error {
	return rs.redisService.Delete(ctx, sessionKey)
}
