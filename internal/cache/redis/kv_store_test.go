package redis

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*KVStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewKVStore(client), mr
}

func TestKVStore_GetMissAndHit(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "user:1")
	require.ErrorIs(t, err, ports.ErrCacheMiss)

	require.NoError(t, store.Set(ctx, "user:1", `{"id":"u1"}`, time.Hour))
	got, err := store.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u1"}`, got)
}

func TestKVStore_SetAppliesTTL(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "shop_status", "{}", 300*time.Second))
	assert.Equal(t, 300*time.Second, mr.TTL("shop_status"))

	mr.FastForward(301 * time.Second)
	_, err := store.Get(ctx, "shop_status")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestKVStore_KeysAndBatchDelete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	for _, k := range []string{"products:all", "products:Еда", "products:Напитки", "categories"} {
		require.NoError(t, store.Set(ctx, k, "[]", 30*time.Minute))
	}

	keys, err := store.Keys(ctx, "products:*")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"products:all", "products:Еда", "products:Напитки"}, keys)

	require.NoError(t, store.Delete(ctx, keys))
	assert.False(t, mr.Exists("products:all"))
	assert.True(t, mr.Exists("categories"))
}

func TestKVStore_KeysManyPages(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	for i := 0; i < 250; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("products:cat-%03d", i), "[]", time.Minute))
	}
	keys, err := store.Keys(ctx, "products:*")
	require.NoError(t, err)
	assert.Len(t, keys, 250)
}

func TestKVStore_DeleteEmptyIsNoop(t *testing.T) {
	store, _ := setupTestRedis(t)
	assert.NoError(t, store.Delete(context.Background(), nil))
}

func TestKVStore_ErrorsWhenServerDown(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()
	ctx := context.Background()

	_, err := store.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrCacheMiss)

	assert.Error(t, store.Set(ctx, "k", "v", time.Minute))
	_, err = store.Keys(ctx, "*")
	assert.Error(t, err)
}

func TestPing_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client := NewClient(Options{Addr: addr, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	err := Ping(context.Background(), client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), addr)
}

func TestPing_OK(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, Ping(context.Background(), client))
}

func TestNewClient_ReconnectsAfterOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client := NewClient(Options{Addr: addr, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })
	store := NewKVStore(client)
	ctx := context.Background()

	require.Error(t, store.Set(ctx, "shop_status", "{}", time.Minute))

	// Redis поднялся на том же адресе: тот же клиент работает без пересоздания
	mr2 := miniredis.NewMiniRedis()
	require.NoError(t, mr2.StartAddr(addr))
	t.Cleanup(mr2.Close)

	require.NoError(t, store.Set(ctx, "shop_status", "{}", time.Minute))
	got, err := store.Get(ctx, "shop_status")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}
