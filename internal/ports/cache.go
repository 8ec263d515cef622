package ports

import (
	"context"
	"time"
)

// Cache — типизированный кэш поверх KVStore с сериализацией в JSON.
// Реализация не возвращает ошибок: сбой бэкенда логируется и трактуется
// как промах (Get) или no-op (Set/Delete/InvalidatePattern).
type Cache interface {
	// Get — декодирует значение в dest; false при промахе или сбое.
	Get(ctx context.Context, key string, dest any) bool

	// Set — сохраняет значение с TTL (ttl <= 0 — без истечения).
	Set(ctx context.Context, key string, value any, ttl time.Duration)

	// Delete — удаляет один ключ.
	Delete(ctx context.Context, key string)

	// InvalidatePattern — удаляет все ключи под glob-шаблон одной пачкой.
	InvalidatePattern(ctx context.Context, pattern string)
}
