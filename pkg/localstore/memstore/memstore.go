// Package memstore provides an in-memory implementation of the local
// key-value store contract. It backs tests and ephemeral mounts where
// durability across process restarts is not required.
package memstore

import (
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/scmfs/scmfs-node/pkg/localstore"
)

// Store is an in-memory localstore.Store. The zero value is not usable,
// construct instances with New.
type Store struct {
	mtx sync.RWMutex

	spaces map[localstore.Keyspace]map[string][]byte
}

// New creates and returns an empty Store.
func New() *Store {
	return &Store{
		spaces: make(map[localstore.Keyspace]map[string][]byte),
	}
}

func makeCopy(val []byte) []byte {
	tmp := make([]byte, len(val))
	copy(tmp, val)

	return tmp
}

// Get reads the value stored under key. Returns an error wrapping
// localstore.ErrNotFound if the key is absent.
func (s *Store) Get(space localstore.Keyspace, key []byte) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	val, ok := s.spaces[space][string(key)]
	if !ok {
		return nil, errors.Wrapf(localstore.ErrNotFound, "key=%s", base58.Encode(key))
	}

	return makeCopy(val), nil
}

// BeginWrite opens a new write batch against the store.
func (s *Store) BeginWrite() localstore.Batch {
	return &batch{store: s}
}

type stagedWrite struct {
	space localstore.Keyspace
	key   string
	value []byte
}

type batch struct {
	store *Store

	mtx     sync.Mutex
	flushed bool
	staged  []stagedWrite
}

func (b *batch) Put(space localstore.Keyspace, key, value []byte) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.flushed {
		return localstore.ErrFlushed
	}

	b.staged = append(b.staged, stagedWrite{
		space: space,
		key:   string(key),
		value: makeCopy(value),
	})

	return nil
}

func (b *batch) Flush() error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.flushed {
		return localstore.ErrFlushed
	}

	b.store.mtx.Lock()

	for i := range b.staged {
		m := b.store.spaces[b.staged[i].space]
		if m == nil {
			m = make(map[string][]byte)
			b.store.spaces[b.staged[i].space] = m
		}

		m[b.staged[i].key] = b.staged[i].value
	}

	b.store.mtx.Unlock()

	b.flushed = true
	b.staged = nil

	return nil
}
