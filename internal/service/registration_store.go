package service

import (
	"context"
	"sync"
	"time"

	"github.com/bloodlink-next/internal/cache"
)

// RegistrationStore 登记快照存取接口
// Redis 可用时走集中缓存，否则退化为进程内存储。
type RegistrationStore interface {
	Get(ctx context.Context, token string) (*cache.PendingRegistration, bool, error)
	Set(ctx context.Context, state *cache.PendingRegistration) error
	Del(ctx context.Context, token string) error
}

// RedisRegistrationStore Redis 实现
type RedisRegistrationStore struct {
	ttl time.Duration
}

// NewRedisRegistrationStore 创建 Redis 登记存储
func NewRedisRegistrationStore(ttl time.Duration) *RedisRegistrationStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisRegistrationStore{ttl: ttl}
}

// Get 获取登记快照
func (s *RedisRegistrationStore) Get(ctx context.Context, token string) (*cache.PendingRegistration, bool, error) {
	return cache.GetPendingRegistration(ctx, token)
}

// Set 写入登记快照
func (s *RedisRegistrationStore) Set(ctx context.Context, state *cache.PendingRegistration) error {
	return cache.SetPendingRegistration(ctx, state, s.ttl)
}

// Del 删除登记快照
func (s *RedisRegistrationStore) Del(ctx context.Context, token string) error {
	return cache.DelPendingRegistration(ctx, token)
}

type memoryRegistrationEntry struct {
	state     cache.PendingRegistration
	expiresAt time.Time
}

// MemoryRegistrationStore 进程内实现，带 TTL 惰性清理
type MemoryRegistrationStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryRegistrationEntry
}

// NewMemoryRegistrationStore 创建进程内登记存储
func NewMemoryRegistrationStore(ttl time.Duration) *MemoryRegistrationStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryRegistrationStore{
		ttl:     ttl,
		entries: make(map[string]memoryRegistrationEntry),
	}
}

// Get 获取登记快照
func (s *MemoryRegistrationStore) Get(ctx context.Context, token string) (*cache.PendingRegistration, bool, error) {
	if token == "" {
		return nil, false, nil
	}
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, false, nil
	}
	state := entry.state
	return &state, true, nil
}

// Set 写入登记快照
func (s *MemoryRegistrationStore) Set(ctx context.Context, state *cache.PendingRegistration) error {
	if state == nil || state.Token == "" {
		return nil
	}
	state.UpdatedAt = time.Now().Unix()
	s.mu.Lock()
	s.entries[state.Token] = memoryRegistrationEntry{
		state:     *state,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

// Del 删除登记快照
func (s *MemoryRegistrationStore) Del(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}

// NewRegistrationStore 根据缓存可用性选择登记存储实现
func NewRegistrationStore(ttl time.Duration) RegistrationStore {
	if cache.Enabled() {
		return NewRedisRegistrationStore(ttl)
	}
	return NewMemoryRegistrationStore(ttl)
}
