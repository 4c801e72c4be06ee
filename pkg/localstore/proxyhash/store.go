package proxyhash

import (
	"github.com/pkg/errors"
	"github.com/scmfs/scmfs-node/pkg/core/hash"
	"github.com/scmfs/scmfs-node/pkg/localstore"
	"github.com/scmfs/scmfs-node/pkg/localstore/internal/storelog"
)

// Store derives the fixed-size key of the (path, revision hash) pair and
// stages the reverse mapping in the batch under the table's keyspace. The
// returned key may be embedded in other durable structures only after the
// batch owner flushes it.
//
// Store performs no I/O beyond in-memory staging and fails only if staging
// itself fails, in which case the failure propagates unchanged.
func (t *Table) Store(path string, revHash hash.Hash, b localstore.Batch) (hash.Hash, error) {
	rec := NewRecord(path, revHash)
	key := rec.Key()

	if err := b.Put(Keyspace, key.Bytes(), rec.Marshal()); err != nil {
		return hash.Hash{}, errors.Wrapf(err, "could not stage proxy hash mapping %s", key)
	}

	if t.metrics != nil {
		t.metrics.IncProxyHashStore()
	}

	storelog.Write(t.log,
		storelog.KeyField(key),
		storelog.OpField("proxy hash PUT"),
	)

	return key, nil
}
