package storage

import (
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
)

// StateBackend abstracts the key-value store holding persisted ledger state.
type StateBackend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Has(key string) (bool, error)
}

// Store is the LevelDB-backed StateBackend.
type Store struct {
	db *leveldb.DB
}

// NewStore opens (or creates) a LevelDB database at path.
func NewStore(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("could not open state db at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	return s.db.Get([]byte(key), nil)
}

func (s *Store) Put(key string, value []byte) error {
	return s.db.Put([]byte(key), value, nil)
}

func (s *Store) Has(key string) (bool, error) {
	return s.db.Has([]byte(key), nil)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-memory StateBackend for tests and throwaway runs.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, leveldb.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryStore) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *MemoryStore) Has(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}
