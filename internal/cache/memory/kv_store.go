package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/Gunvolt24/fiveka-shop/pkg/metrics"
)

// Проверка, что KVStore удовлетворяет интерфейсу ports.KVStore.
var _ ports.KVStore = (*KVStore)(nil)

const backend = "memory"

type entry struct {
	key       string
	value     string
	expiresAt time.Time // нулевое: без TTL
}

// KVStore — локальный KV с вытеснением LRU и TTL на запись.
// Используется вместо Redis в разработке и в тестах.
type KVStore struct {
	capacity int
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// Option — настройка KVStore.
type Option func(*KVStore)

// WithClock подменяет источник времени (тесты TTL без sleep).
func WithClock(now func() time.Time) Option {
	return func(s *KVStore) { s.now = now }
}

func NewKVStore(capacity int, opts ...Option) *KVStore {
	if capacity <= 0 {
		capacity = 1
	}
	s := &KVStore{
		capacity: capacity,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *KVStore) Get(_ context.Context, key string) (string, error) {
	metrics.KVRequests.WithLabelValues(backend, "get").Inc()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.index[key]
	if !ok {
		return "", ports.ErrCacheMiss
	}
	ent := elem.Value.(*entry)
	if isExpired(ent, now) {
		s.removeElement(elem)
		return "", ports.ErrCacheMiss
	}
	s.ll.MoveToFront(elem)
	return ent.value, nil
}

// Set перезаписывает значение и срок жизни; ttl <= 0: без истечения.
func (s *KVStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	metrics.KVRequests.WithLabelValues(backend, "set").Inc()
	now := s.now()
	expiresAt := time.Time{}
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.index[key]; ok {
		ent := elem.Value.(*entry)
		ent.value = value
		ent.expiresAt = expiresAt
		s.ll.MoveToFront(elem)
		return nil
	}

	s.pruneExpiredFromBack(now)

	elem := s.ll.PushFront(&entry{key: key, value: value, expiresAt: expiresAt})
	s.index[key] = elem

	if s.ll.Len() > s.capacity {
		s.removeElement(s.ll.Back())
	}
	return nil
}

func (s *KVStore) Delete(_ context.Context, keys []string) error {
	metrics.KVRequests.WithLabelValues(backend, "del").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if elem, ok := s.index[key]; ok {
			s.removeElement(elem)
		}
	}
	return nil
}

// Keys — живые ключи, подходящие под glob в стиле Redis (*, ?, [..], \).
func (s *KVStore) Keys(_ context.Context, pattern string) ([]string, error) {
	metrics.KVRequests.WithLabelValues(backend, "keys").Inc()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0)
	for key, elem := range s.index {
		if isExpired(elem.Value.(*entry), now) {
			continue
		}
		if Match(pattern, key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Len — число записей, включая ещё не вычищенные просроченные.
func (s *KVStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}

func (s *KVStore) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	delete(s.index, elem.Value.(*entry).key)
	s.ll.Remove(elem)
	metrics.CacheSize.Set(float64(s.ll.Len()))
}

// pruneExpiredFromBack — удаляет просроченные записи из хвоста до первой актуальной.
func (s *KVStore) pruneExpiredFromBack(now time.Time) {
	for back := s.ll.Back(); back != nil; back = s.ll.Back() {
		if !isExpired(back.Value.(*entry), now) {
			return
		}
		s.removeElement(back)
	}
}

func isExpired(ent *entry, now time.Time) bool {
	return !ent.expiresAt.IsZero() && !now.Before(ent.expiresAt)
}
