package feed

import (
	"context"
	"os"
	"testing"
)

func TestRedisRenderCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client, err := DialRedis(addr, os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		t.Fatalf("DialRedis() error: %v", err)
	}
	defer client.Close()

	cache := NewRedisRenderCache(client)
	ctx := context.Background()
	key := GroupKey("redis-test-" + t.Name())
	defer client.Del(ctx, redisKeyPrefix+string(key), redisGenerationPrefix+string(key))

	_, generation, ok, err := cache.Get(ctx, key, 1)
	if ok || err != nil {
		t.Fatalf("Get() on empty cache = %v, %v", ok, err)
	}
	if _, err = cache.Put(ctx, key, 1, generation, []byte("one")); err != nil {
		t.Fatal(err)
	}
	_, _ = cache.Put(ctx, key, 2, generation, []byte("two"))
	got, _, ok, err := cache.Get(ctx, key, 2)
	if err != nil || !ok || string(got) != "two" {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}
	if err = cache.Invalidate(ctx, key); err != nil {
		t.Fatal(err)
	}
	for _, page := range []int{1, 2} {
		if _, _, ok, _ = cache.Get(ctx, key, page); ok {
			t.Errorf("page %d survived invalidation", page)
		}
	}
	if stored, err := cache.Put(ctx, key, 1, generation, []byte("stale")); stored || err != nil {
		t.Errorf("Put() with the old generation = %v, %v, want it dropped", stored, err)
	}
	_, current, _, _ := cache.Get(ctx, key, 1)
	if current != generation+1 {
		t.Errorf("generation = %d, want %d", current, generation+1)
	}
	if stored, err := cache.Put(ctx, key, 1, current, []byte("fresh")); !stored || err != nil {
		t.Errorf("Put() with the current generation = %v, %v", stored, err)
	}
}
