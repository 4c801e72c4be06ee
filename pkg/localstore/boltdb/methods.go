package boltdb

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/scmfs/scmfs-node/pkg/localstore"
	"go.etcd.io/bbolt"
)

func makeCopy(val []byte) []byte {
	tmp := make([]byte, len(val))
	copy(tmp, val)

	return tmp
}

// Get reads the value stored under key in the given keyspace. Returns an
// error wrapping localstore.ErrNotFound if either the keyspace bucket or
// the key is absent.
func (s *Store) Get(space localstore.Keyspace, key []byte) (data []byte, err error) {
	err = s.boltDB.View(func(txn *bbolt.Tx) error {
		buck := txn.Bucket([]byte(space))
		if buck == nil {
			return errors.Wrapf(localstore.ErrNotFound, "keyspace=%s", space)
		}

		val := buck.Get(key)
		if val == nil {
			return errors.Wrapf(localstore.ErrNotFound, "key=%s", base58.Encode(key))
		}

		data = makeCopy(val)
		return nil
	})

	return
}
