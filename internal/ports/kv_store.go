package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss — ключа нет (или запись истекла).
var ErrCacheMiss = errors.New("cache miss")

// KVStore — «сырое» key-value хранилище с истекающими записями (Redis, память).
// Любая ошибка, кроме ErrCacheMiss, означает сбой бэкенда.
type KVStore interface {
	// Get — значение по ключу или ErrCacheMiss.
	Get(ctx context.Context, key string) (string, error)

	// Set — записать значение; ttl <= 0 — без истечения.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete — удалить ключи одной операцией; отсутствующие ключи игнорируются.
	Delete(ctx context.Context, keys []string) error

	// Keys — все ключи, подходящие под glob-шаблон (синтаксис Redis: *, ?, [...]).
	Keys(ctx context.Context, pattern string) ([]string, error)
}
