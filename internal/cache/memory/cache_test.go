package memory

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	cache := New[string]()
	defer cache.Stop()

	cache.Set("test-key", "test-value", 5*time.Second)

	got, ok := cache.Get("test-key")
	if !ok {
		t.Error("Get() should return ok=true for existing key")
	}
	if got != "test-value" {
		t.Errorf("Get() = %v, want test-value", got)
	}
}

func TestCache_GetNonExistent(t *testing.T) {
	cache := New[*int]()
	defer cache.Stop()

	got, ok := cache.Get("non-existent")
	if ok {
		t.Error("Get() should return ok=false for non-existent key")
	}
	if got != nil {
		t.Errorf("Get() = %v, want nil", got)
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	cache := New[string]()
	defer cache.Stop()

	cache.Set("expiring-key", "v", 50*time.Millisecond)

	if _, ok := cache.Get("expiring-key"); !ok {
		t.Error("Key should exist before TTL expiration")
	}

	time.Sleep(100 * time.Millisecond)

	if _, ok := cache.Get("expiring-key"); ok {
		t.Error("Key should be expired after TTL")
	}
}

func TestCache_GetExtendsTTL(t *testing.T) {
	cache := New[string]()
	defer cache.Stop()

	cache.Set("k", "v", 80*time.Millisecond)

	for i := 0; i < 4; i++ {
		time.Sleep(40 * time.Millisecond)
		if _, ok := cache.Get("k"); !ok {
			t.Fatalf("key expired on touch %d despite being accessed", i)
		}
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	cache := New[int]()
	defer cache.Stop()

	calls := 0
	create := func() int {
		calls++
		return 42
	}

	v, existed := cache.GetOrCreate("k", time.Hour, create)
	if existed || v != 42 {
		t.Errorf("first GetOrCreate = (%d, %v), want (42, false)", v, existed)
	}

	v, existed = cache.GetOrCreate("k", time.Hour, create)
	if !existed || v != 42 {
		t.Errorf("second GetOrCreate = (%d, %v), want (42, true)", v, existed)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestCache_Delete(t *testing.T) {
	cache := New[string]()
	defer cache.Stop()

	cache.Set("delete-key", "v", time.Hour)
	cache.Delete("delete-key")

	if _, ok := cache.Get("delete-key"); ok {
		t.Error("Key should not exist after delete")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d, want 0", cache.Len())
	}
}

func TestCache_Overwrite(t *testing.T) {
	cache := New[string]()
	defer cache.Stop()

	cache.Set("k", "value1", time.Hour)
	cache.Set("k", "value2", time.Hour)

	got, _ := cache.Get("k")
	if got != "value2" {
		t.Errorf("Get() = %v, want value2 after overwrite", got)
	}
}

func TestCache_Stop(t *testing.T) {
	cache := New[string]()

	cache.Stop()

	cache.Stop()
}

func TestCache_EvictHook(t *testing.T) {
	var mu sync.Mutex
	var evicted []string

	cache := New[string](
		WithCleanupInterval[string](10*time.Millisecond),
		WithEvictHook(func(key string, _ string) {
			mu.Lock()
			evicted = append(evicted, key)
			mu.Unlock()
		}),
	)
	defer cache.Stop()

	cache.Set("short", "v", time.Millisecond)
	cache.Set("long", "v", time.Hour)

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(evicted) != 1 || evicted[0] != "short" {
		t.Errorf("evicted = %v, want [short]", evicted)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestCache_GetOrCreateEvictsExpired(t *testing.T) {
	var evicted []string
	cache := New[string](
		WithEvictHook(func(key string, value string) {
			evicted = append(evicted, key+"="+value)
		}),
	)
	defer cache.Stop()

	cache.Set("k", "old", time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	got, existed := cache.GetOrCreate("k", time.Hour, func() string { return "new" })
	if existed {
		t.Error("GetOrCreate() should not report an expired entry as existing")
	}
	if got != "new" {
		t.Errorf("GetOrCreate() = %q, want new", got)
	}
	if len(evicted) != 1 || evicted[0] != "k=old" {
		t.Errorf("evicted = %v, want [k=old]", evicted)
	}

	cache.GetOrCreate("k", time.Hour, func() string { return "other" })
	if len(evicted) != 1 {
		t.Errorf("live entry must not be evicted, got %v", evicted)
	}
}

func TestCache_NewWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cache := NewWithContext[string](ctx)

	cache.Set("ctx-key", "ctx-value", time.Hour)

	if got, ok := cache.Get("ctx-key"); !ok || got != "ctx-value" {
		t.Error("Cache should work before context cancel")
	}

	cancel()

	time.Sleep(10 * time.Millisecond)

	cache.Set("another", "value", time.Hour)
	if _, ok := cache.Get("another"); !ok {
		t.Error("Cache should still work after context cancel")
	}
}

func TestCache_Concurrent(t *testing.T) {
	cache := New[int]()
	defer cache.Stop()

	done := make(chan bool)

	go func() {
		for i := 0; i < 1000; i++ {
			cache.Set("concurrent-key", i, time.Hour)
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 1000; i++ {
			cache.Get("concurrent-key")
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 100; i++ {
			cache.GetOrCreate("concurrent-key", time.Hour, func() int { return -1 })
			cache.Delete("concurrent-key")
			time.Sleep(time.Microsecond)
		}
		done <- true
	}()

	<-done
	<-done
	<-done
}
