package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dukerupert/calboard/internal/model"
)

// KVStore is the durable key-value surface the persistence mirror writes to.
type KVStore struct {
	db *sql.DB
}

func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the value stored under key. found is false when the key has
// never been written.
func (s *KVStore) Get(key string) (value string, found bool, err error) {
	err = s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set key %q: %w", key, err)
	}
	return nil
}

// Entry returns the stored row for key, or nil if absent.
func (s *KVStore) Entry(key string) (*model.Entry, error) {
	var e model.Entry
	err := s.db.QueryRow(`SELECT key, value, updated_at FROM kv WHERE key = ?`, key).
		Scan(&e.Key, &e.Value, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %q: %w", key, err)
	}
	return &e, nil
}

// MemoryKV keeps values for the life of the process. The server mirrors to
// it when persistence is disabled, so both configurations share one code path.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}
