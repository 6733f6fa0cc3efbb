package memory

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	ttl       time.Duration
	expiresAt time.Time
}

// Cache - in-memory map с TTL. Get продлевает жизнь записи (sliding TTL).
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[string]entry[V]
	interval time.Duration
	onEvict  func(key string, value V)
	stopChan chan struct{}
	stopped  bool
}

type Option[V any] func(*Cache[V])

// WithCleanupInterval - как часто чистить просроченные записи (по умолчанию 5 минут)
func WithCleanupInterval[V any](d time.Duration) Option[V] {
	return func(c *Cache[V]) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithEvictHook вызывается для каждой удаленной по TTL записи
func WithEvictHook[V any](fn func(key string, value V)) Option[V] {
	return func(c *Cache[V]) {
		c.onEvict = fn
	}
}

func New[V any](opts ...Option[V]) *Cache[V] {
	return NewWithContext(context.Background(), opts...)
}

func NewWithContext[V any](ctx context.Context, opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		items:    make(map[string]entry[V]),
		interval: 5 * time.Minute,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.cleanup(ctx)
	return c
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	it, ok := c.items[key]
	if !ok || time.Now().After(it.expiresAt) {
		return zero, false
	}
	it.expiresAt = time.Now().Add(it.ttl)
	c.items[key] = it
	return it.value, true
}

func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, ttl: ttl, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// GetOrCreate атомарно возвращает живую запись или создает новую через create.
// Просроченная, но еще не вычищенная запись уходит через хук, как при cleanup.
func (c *Cache[V]) GetOrCreate(key string, ttl time.Duration, create func() V) (V, bool) {
	c.mu.Lock()

	now := time.Now()
	old, ok := c.items[key]
	if ok && !now.After(old.expiresAt) {
		old.expiresAt = now.Add(old.ttl)
		c.items[key] = old
		c.mu.Unlock()
		return old.value, true
	}

	v := create()
	c.items[key] = entry[V]{value: v, ttl: ttl, expiresAt: now.Add(ttl)}
	hook := c.onEvict
	c.mu.Unlock()

	if ok && hook != nil {
		hook(key, old.value)
	}
	return v, false
}

func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len - число записей, включая еще не вычищенные просроченные
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache[V]) Stop() {
	c.mu.Lock()
	if !c.stopped {
		c.stopped = true
		close(c.stopChan)
	}
	c.mu.Unlock()
}

func (c *Cache[V]) cleanup(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache[V]) removeExpired() {
	c.mu.Lock()
	now := time.Now()
	var evicted []string
	var values []V
	for k, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, k)
			evicted = append(evicted, k)
			values = append(values, it.value)
		}
	}
	hook := c.onEvict
	c.mu.Unlock()

	if hook == nil {
		return
	}
	for i, k := range evicted {
		hook(k, values[i])
	}
}
