package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T, prefix string) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheHelper(client, prefix), mr
}

type testPayload struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper, _ := newTestHelper(t, "scholarship:")
	ctx := context.Background()

	in := testPayload{Name: "Global Excellence", Score: 4.5}
	if err := helper.Set(ctx, "id:1", in, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var out testPayload
	if err := helper.Get(ctx, "id:1", &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper, _ := newTestHelper(t, "scholarship:")

	var out testPayload
	err := helper.Get(context.Background(), "id:999", &out)
	if err != ErrCacheNotFound {
		t.Errorf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_TTLExpiry(t *testing.T) {
	helper, mr := newTestHelper(t, "stats:")
	ctx := context.Background()

	if err := helper.Set(ctx, "platform", testPayload{Name: "stats"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	var out testPayload
	if err := helper.Get(ctx, "platform", &out); err != ErrCacheNotFound {
		t.Errorf("expected ErrCacheNotFound after expiry, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, _ := newTestHelper(t, "scholarship:")
	ctx := context.Background()

	for _, key := range []string{"top:6", "top:10", "id:1"} {
		if err := helper.Set(ctx, key, testPayload{Name: key}, time.Minute); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "top:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	var out testPayload
	if err := helper.Get(ctx, "top:6", &out); err != ErrCacheNotFound {
		t.Errorf("expected top:6 to be invalidated, got %v", err)
	}
	if err := helper.Get(ctx, "id:1", &out); err != nil {
		t.Errorf("expected id:1 to survive, got %v", err)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "scholarship:")
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", testPayload{}, time.Minute); err != nil {
		t.Errorf("Set with nil client should be a no-op, got %v", err)
	}

	var out testPayload
	if err := helper.Get(ctx, "id:1", &out); err != ErrCacheNotAvailable {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
}
