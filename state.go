// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kvdsl

import "sync"

// Store is the mutable key/value state behind an interpreter.
// Values are stored untyped; Get decides the expected type.
type Store interface {
	Load(key string) (any, bool)
	Store(key string, value any)
	Delete(key string)
	Len() int
}

// MapStore is a Store backed by a plain map.
// It is not safe for concurrent use.
type MapStore map[string]any

// NewMapStore returns an empty MapStore.
func NewMapStore() MapStore {
	return make(MapStore)
}

func (s MapStore) Load(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

func (s MapStore) Store(key string, value any) { s[key] = value }
func (s MapStore) Delete(key string)           { delete(s, key) }
func (s MapStore) Len() int                    { return len(s) }

// SyncStore is a Store guarded by a read/write mutex.
type SyncStore struct {
	mu sync.RWMutex
	m  map[string]any
}

// NewSyncStore returns an empty SyncStore.
func NewSyncStore() *SyncStore {
	return &SyncStore{m: make(map[string]any)}
}

func (s *SyncStore) Load(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *SyncStore) Store(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *SyncStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

func (s *SyncStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// StoreInterpreter is the immediate interpreter over a Store it owns.
// It is as safe for concurrent use as its Store.
type StoreInterpreter struct {
	store Store
}

// NewStoreInterpreter creates an interpreter over s.
func NewStoreInterpreter(s Store) *StoreInterpreter {
	return &StoreInterpreter{store: s}
}

// NewMemory creates an interpreter over a fresh [MapStore].
func NewMemory() *StoreInterpreter {
	return NewStoreInterpreter(NewMapStore())
}

// Store returns the backing store.
func (in *StoreInterpreter) Store() Store { return in.store }

func (in *StoreInterpreter) Put(key string, value any) error {
	in.store.Store(key, value)
	return nil
}

func (in *StoreInterpreter) Get(key string) (Reply, error) {
	v, ok := in.store.Load(key)
	return Reply{Value: v, Found: ok}, nil
}

func (in *StoreInterpreter) Delete(key string) error {
	in.store.Delete(key)
	return nil
}
