// Package cache keeps public list responses keyed per store. Each store has a
// generation counter that is part of every key; bumping it invalidates all
// of the store's entries at once, and stale entries expire by TTL.
//
// Get returns the generation it read under and Set writes under that
// generation, so a value loaded before an invalidation is stored under a
// dead key and never served.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis is a cache backed by a Redis server.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects to addr. The connection is lazy; use Ping to check it.
func NewRedis(addr, password string, db int, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		prefix: "katalog",
		ttl:    ttl,
	}
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) genKey(storeID string) string {
	return fmt.Sprintf("%s:%s:gen", r.prefix, storeID)
}

func (r *Redis) generation(ctx context.Context, storeID string) (int64, error) {
	gen, err := r.client.Get(ctx, r.genKey(storeID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading cache generation: %w", err)
	}
	return gen, nil
}

// Get decodes the cached value into dst and reports whether it was present,
// along with the generation the lookup used.
func (r *Redis) Get(ctx context.Context, storeID, key string, dst any) (int64, bool, error) {
	gen, err := r.generation(ctx, storeID)
	if err != nil {
		return 0, false, err
	}
	raw, err := r.client.Get(ctx, EntryKey(r.prefix, storeID, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, fmt.Errorf("reading cache entry: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return gen, false, fmt.Errorf("decoding cache entry: %w", err)
	}
	return gen, true, nil
}

// Set stores value under generation gen as returned by Get. If the store was
// invalidated since, the entry is unreachable and expires by TTL.
func (r *Redis) Set(ctx context.Context, storeID string, gen int64, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := r.client.Set(ctx, EntryKey(r.prefix, storeID, gen, key), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Invalidate bumps the store's generation.
func (r *Redis) Invalidate(ctx context.Context, storeID string) error {
	if err := r.client.Incr(ctx, r.genKey(storeID)).Err(); err != nil {
		return fmt.Errorf("bumping cache generation: %w", err)
	}
	return nil
}

// EntryKey builds the key of one cached entry.
func EntryKey(prefix, storeID string, gen int64, key string) string {
	return fmt.Sprintf("%s:%s:%d:%s", prefix, storeID, gen, key)
}

// DefaultMaxEntries bounds a Memory cache created by NewMemory.
const DefaultMaxEntries = 10000

// Memory is an in-process cache for single-instance deployments and tests.
// It holds at most MaxEntries values; Sweep drops expired ones.
type Memory struct {
	MaxEntries int

	mu      sync.Mutex
	ttl     time.Duration
	gens    map[string]int64
	entries map[string]memoryEntry
}

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

// NewMemory creates an in-process cache. A zero ttl never expires entries.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		MaxEntries: DefaultMaxEntries,
		ttl:        ttl,
		gens:       make(map[string]int64),
		entries:    make(map[string]memoryEntry),
	}
}

func (m *Memory) expired(e memoryEntry, now time.Time) bool {
	return m.ttl > 0 && now.After(e.expires)
}

func (m *Memory) Get(_ context.Context, storeID, key string, dst any) (int64, bool, error) {
	m.mu.Lock()
	gen := m.gens[storeID]
	k := EntryKey("mem", storeID, gen, key)
	e, ok := m.entries[k]
	if ok && m.expired(e, time.Now()) {
		delete(m.entries, k)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return gen, false, nil
	}
	if err := json.Unmarshal(e.raw, dst); err != nil {
		return gen, false, fmt.Errorf("decoding cache entry: %w", err)
	}
	return gen, true, nil
}

// Set stores value under generation gen. Values for an invalidated
// generation are dropped, and so are new keys while the cache is full.
func (m *Memory) Set(_ context.Context, storeID string, gen int64, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gens[storeID] {
		return nil
	}

	now := time.Now()
	k := EntryKey("mem", storeID, gen, key)
	if _, exists := m.entries[k]; !exists && m.MaxEntries > 0 && len(m.entries) >= m.MaxEntries {
		m.evictLocked(now)
		if len(m.entries) >= m.MaxEntries {
			return nil
		}
	}
	m.entries[k] = memoryEntry{raw: raw, expires: now.Add(m.ttl)}
	return nil
}

// Invalidate drops the store's entries and bumps its generation.
func (m *Memory) Invalidate(_ context.Context, storeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := fmt.Sprintf("mem:%s:%d:", storeID, m.gens[storeID])
	for k := range m.entries {
		if strings.HasPrefix(k, old) {
			delete(m.entries, k)
		}
	}
	m.gens[storeID]++
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sweep drops expired entries every interval until ctx is done.
func (m *Memory) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evict(time.Now())
		}
	}
}

func (m *Memory) evict(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked(now)
}

func (m *Memory) evictLocked(now time.Time) {
	for k, e := range m.entries {
		if m.expired(e, now) {
			delete(m.entries, k)
		}
	}
}
