// Пакет cache: типизированный кэш с JSON-сериализацией поверх KV-бэкенда.
// Все сбои бэкенда логируются и гасятся: промах для Get, no-op для записи.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/Gunvolt24/fiveka-shop/pkg/metrics"
)

// Проверка, что Store удовлетворяет интерфейсу ports.Cache.
var _ ports.Cache = (*Store)(nil)

// Store — реализация ports.Cache.
type Store struct {
	kv  ports.KVStore
	log ports.Logger
}

func New(kv ports.KVStore, log ports.Logger) *Store {
	return &Store{kv: kv, log: log}
}

func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ports.ErrCacheMiss) {
		metrics.CacheOps.WithLabelValues("miss", resource(key)).Inc()
		return false
	}
	if err != nil {
		metrics.CacheOps.WithLabelValues("error", resource(key)).Inc()
		s.log.Warnf(ctx, "cache get failed key=%s: %v", key, err)
		return false
	}
	// "null" в кэше не отличить от отсутствия: считаем промахом
	if bytes.Equal(bytes.TrimSpace([]byte(raw)), []byte("null")) {
		metrics.CacheOps.WithLabelValues("miss", resource(key)).Inc()
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		metrics.CacheOps.WithLabelValues("error", resource(key)).Inc()
		s.log.Warnf(ctx, "cache decode failed key=%s: %v", key, err)
		return false
	}
	metrics.CacheOps.WithLabelValues("hit", resource(key)).Inc()
	return true
}

func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		metrics.CacheOps.WithLabelValues("error", resource(key)).Inc()
		s.log.Warnf(ctx, "cache encode failed key=%s: %v", key, err)
		return
	}
	if err := s.kv.Set(ctx, key, string(raw), ttl); err != nil {
		metrics.CacheOps.WithLabelValues("error", resource(key)).Inc()
		s.log.Warnf(ctx, "cache set failed key=%s: %v", key, err)
		return
	}
	metrics.CacheOps.WithLabelValues("set", resource(key)).Inc()
}

func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, []string{key}); err != nil {
		metrics.CacheOps.WithLabelValues("error", resource(key)).Inc()
		s.log.Warnf(ctx, "cache delete failed key=%s: %v", key, err)
		return
	}
	metrics.CacheOps.WithLabelValues("delete", resource(key)).Inc()
}

func (s *Store) InvalidatePattern(ctx context.Context, pattern string) {
	keys, err := s.kv.Keys(ctx, pattern)
	if err != nil {
		metrics.CacheOps.WithLabelValues("error", resource(pattern)).Inc()
		s.log.Warnf(ctx, "cache keys failed pattern=%s: %v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.kv.Delete(ctx, keys); err != nil {
		metrics.CacheOps.WithLabelValues("error", resource(pattern)).Inc()
		s.log.Warnf(ctx, "cache invalidate failed pattern=%s keys=%d: %v", pattern, len(keys), err)
		return
	}
	metrics.CacheOps.WithLabelValues("invalidate", resource(pattern)).Inc()
}

// resource — метка метрики: префикс ключа до ':' ("products:all" -> "products").
func resource(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
