package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/fiveka-shop/internal/ports"
)

// readThrough — чтение cache-aside: кэш, при промахе load из Store и запись в кэш.
// Ошибка load возвращается как есть и в кэш ничего не пишется.
func readThrough[T any](
	ctx context.Context,
	cache ports.Cache,
	log ports.Logger,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	if cache.Get(ctx, key, &cached) {
		log.Infof(ctx, "cache hit key=%s", key)
		return cached, nil
	}
	log.Infof(ctx, "cache miss key=%s", key)

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	cache.Set(ctx, key, value, ttl)
	return value, nil
}
