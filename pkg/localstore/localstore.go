package localstore

import (
	"github.com/pkg/errors"
)

// Keyspace is the name of a disjoint key namespace within a Store. Every
// table persisting entries in a shared Store reserves its own Keyspace so
// that unrelated entries can never collide.
type Keyspace string

// ErrNotFound is returned by Store.Get when the requested key is absent
// from the keyspace.
var ErrNotFound = errors.New("key not found")

// ErrFlushed is returned by Batch operations invoked after the batch has
// already been flushed.
var ErrFlushed = errors.New("write batch already flushed")

// Store is a durable mapping from byte-string keys to byte-string values,
// partitioned into keyspaces.
//
// Get must be safe to call concurrently with other Get calls and with Flush
// calls on any Batch, and must return either a fully committed value or
// ErrNotFound, never a partially written one.
type Store interface {
	// Get reads the value stored under key in the given keyspace.
	// Returns an error wrapping ErrNotFound if the key is absent.
	Get(space Keyspace, key []byte) ([]byte, error)

	// BeginWrite opens a new buffered write batch owned by the caller.
	// Staged writes are not visible to Get until the batch is flushed.
	BeginWrite() Batch
}

// Batch is a caller-owned buffer of staged writes. A batch is not safe for
// concurrent use; concurrent producers each open their own batch.
type Batch interface {
	// Put stages a key/value pair. The last write for a given key within
	// the batch wins.
	Put(space Keyspace, key, value []byte) error

	// Flush durably commits all staged writes, atomically with respect
	// to process crash. A batch can be flushed once; later Put and Flush
	// calls fail with ErrFlushed.
	Flush() error
}

// IsErrNotFound checks if the error returned by Store.Get corresponds to
// the missing key.
func IsErrNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
