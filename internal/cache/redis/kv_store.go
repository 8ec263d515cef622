package redis

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/Gunvolt24/fiveka-shop/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

// Проверка, что KVStore удовлетворяет интерфейсу ports.KVStore.
var _ ports.KVStore = (*KVStore)(nil)

const (
	backend        = "redis"
	scanBatchCount = 100
)

// KVStore — общий для всех инстансов кэш поверх Redis.
type KVStore struct {
	client redis.UniversalClient
}

func NewKVStore(client redis.UniversalClient) *KVStore {
	return &KVStore{client: client}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	defer observe("get", time.Now())

	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrCacheMiss
	}
	if err != nil {
		metrics.KVErrors.WithLabelValues(backend, "get").Inc()
		return "", err
	}
	return val, nil
}

// Set — SET с EX; ttl <= 0 — без истечения.
func (s *KVStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	defer observe("set", time.Now())

	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		metrics.KVErrors.WithLabelValues(backend, "set").Inc()
		return err
	}
	return nil
}

// Delete — один DEL на все ключи.
func (s *KVStore) Delete(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	defer observe("del", time.Now())

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		metrics.KVErrors.WithLabelValues(backend, "del").Inc()
		return err
	}
	return nil
}

// Keys обходит пространство ключей курсором SCAN, KEYS не используется.
func (s *KVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	defer observe("keys", time.Now())

	keys := make([]string, 0)
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, scanBatchCount).Result()
		if err != nil {
			metrics.KVErrors.WithLabelValues(backend, "keys").Inc()
			return nil, err
		}
		keys = append(keys, batch...)
		if next == 0 {
			return dedup(keys), nil
		}
		cursor = next
	}
}

// dedup — SCAN может вернуть один ключ несколько раз.
func dedup(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func observe(method string, start time.Time) {
	metrics.KVRequests.WithLabelValues(backend, method).Inc()
	metrics.KVRequestDuration.WithLabelValues(backend, method).Observe(time.Since(start).Seconds())
}
