package repository

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
)

// KeyValueStore persists opaque payloads by key. Get returns
// appErrors.ErrStorageMiss for absent keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps payloads in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the stored payload.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, appErrors.ErrStorageMiss
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key if present.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// prefixedStore namespaces every key of the wrapped store.
type prefixedStore struct {
	next   KeyValueStore
	prefix string
}

// WithPrefix namespaces keys so several deployments can share one backend.
func WithPrefix(store KeyValueStore, prefix string) KeyValueStore {
	if prefix == "" {
		return store
	}
	return &prefixedStore{next: store, prefix: prefix}
}

func (s *prefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.next.Get(ctx, s.prefix+key)
}

func (s *prefixedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.next.Set(ctx, s.prefix+key, value)
}

func (s *prefixedStore) Delete(ctx context.Context, key string) error {
	return s.next.Delete(ctx, s.prefix+key)
}

// OperationObserver receives the latency of every storage operation.
type OperationObserver interface {
	ObserveStorageOperation(op string, duration time.Duration)
}

type instrumentedStore struct {
	next     KeyValueStore
	observer OperationObserver
}

// Instrument reports the duration of each call to observer.
func Instrument(store KeyValueStore, observer OperationObserver) KeyValueStore {
	if observer == nil {
		return store
	}
	return &instrumentedStore{next: store, observer: observer}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	defer func() { s.observer.ObserveStorageOperation("get", time.Since(start)) }()
	return s.next.Get(ctx, key)
}

func (s *instrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	defer func() { s.observer.ObserveStorageOperation("set", time.Since(start)) }()
	return s.next.Set(ctx, key, value)
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	defer func() { s.observer.ObserveStorageOperation("delete", time.Since(start)) }()
	return s.next.Delete(ctx, key)
}
