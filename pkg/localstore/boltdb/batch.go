package boltdb

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/scmfs/scmfs-node/pkg/localstore"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

type stagedWrite struct {
	space localstore.Keyspace
	key   []byte
	value []byte
}

type batch struct {
	store *Store

	mtx     sync.Mutex
	flushed bool
	staged  []stagedWrite
}

// BeginWrite opens a new write batch against the store. Staged pairs are
// buffered in memory and committed in a single update transaction on Flush.
func (s *Store) BeginWrite() localstore.Batch {
	return &batch{store: s}
}

func (b *batch) Put(space localstore.Keyspace, key, value []byte) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.flushed {
		return localstore.ErrFlushed
	}

	b.staged = append(b.staged, stagedWrite{
		space: space,
		key:   makeCopy(key),
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

	start := time.Now()

	err := b.store.boltDB.Update(func(txn *bbolt.Tx) error {
		for i := range b.staged {
			buck, err := txn.CreateBucketIfNotExists([]byte(b.staged[i].space))
			if err != nil {
				return errors.Wrapf(err, "could not use keyspace %s", b.staged[i].space)
			}

			if err := buck.Put(b.staged[i].key, b.staged[i].value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "could not commit write batch")
	}

	b.store.flushed.Add(uint64(len(b.staged)))

	b.store.log.Debug("committed write batch",
		zap.Duration("took", time.Since(start)),
		zap.Int("total", len(b.staged)))

	b.flushed = true
	b.staged = nil

	return nil
}
