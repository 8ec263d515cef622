package usecase_test

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/fiveka-shop/internal/cache"
	"github.com/Gunvolt24/fiveka-shop/internal/cache/memory"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/Gunvolt24/fiveka-shop/internal/ports/mocks"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var (
	errStore   = errors.New("db is down")
	errBackend = errors.New("redis: connection refused")
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

// newMemoryCache — настоящий кэш в памяти с управляемыми часами.
func newMemoryCache() (ports.Cache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	return cache.New(memory.NewKVStore(128, memory.WithClock(clock.Now)), noopLogger{}), clock
}

// newBrokenCache — кэш, у которого любая операция бэкенда падает.
func newBrokenCache(ctrl *gomock.Controller) ports.Cache {
	kv := mocks.NewMockKVStore(ctrl)
	kv.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errBackend).AnyTimes()
	kv.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errBackend).AnyTimes()
	kv.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errBackend).AnyTimes()
	kv.EXPECT().Keys(gomock.Any(), gomock.Any()).Return(nil, errBackend).AnyTimes()
	return cache.New(kv, noopLogger{})
}
