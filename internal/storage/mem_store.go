package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemStore is an in-memory Store used in unit tests.
type MemStore struct {
	mutex     sync.Mutex
	snapshots map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{
		snapshots: make(map[string][]byte),
	}
}

func (ms *MemStore) Load(_ context.Context, key string, dest interface{}) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	content, ok := ms.snapshots[key]
	if !ok {
		return ErrNoSnapshot
	}
	if err := json.Unmarshal(content, dest); err != nil {
		return ErrNoSnapshot
	}
	return nil
}

func (ms *MemStore) Save(_ context.Context, key string, value interface{}) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	content, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ms.snapshots[key] = content
	return nil
}

func (ms *MemStore) Delete(_ context.Context, key string) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	delete(ms.snapshots, key)
	return nil
}

// Contains reports whether a snapshot is stored for the given key.
func (ms *MemStore) Contains(key string) bool {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	_, ok := ms.snapshots[key]
	return ok
}
