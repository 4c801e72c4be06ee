package proxyhash

import (
	"time"

	"github.com/pkg/errors"
	"github.com/scmfs/scmfs-node/pkg/core/hash"
	"github.com/scmfs/scmfs-node/pkg/localstore"
	"github.com/scmfs/scmfs-node/pkg/localstore/internal/storelog"
)

// Load reconstructs the (path, revision hash) pair the key was derived
// from. The context string is a human-readable hint identifying the call
// site; it is attached to failures for diagnostics and has no effect on
// the lookup.
//
// Returns *NotFoundError if no mapping is stored under the key and
// *CorruptRecordError if the stored bytes do not decode.
func (t *Table) Load(s localstore.Store, key hash.Hash, context string) (Record, error) {
	start := time.Now()

	if t.cache != nil {
		if rec, ok := t.cache.Get(key); ok {
			if t.metrics != nil {
				t.metrics.IncProxyHashLoad()
				t.metrics.IncProxyHashCacheHit()
			}

			return rec, nil
		}
	}

	data, err := s.Get(Keyspace, key.Bytes())
	switch {
	case localstore.IsErrNotFound(err):
		if t.metrics != nil {
			t.metrics.IncProxyHashMiss()
		}

		return Record{}, &NotFoundError{Key: key, Context: context}
	case err != nil:
		return Record{}, errors.Wrapf(err, "could not look up proxy hash %s (%s)", key, context)
	}

	rec, err := DecodeRecord(data)
	if err != nil {
		return Record{}, &CorruptRecordError{Key: key, Context: context, Reason: err}
	}

	// only committed records are cached, staged writes must stay
	// invisible until their batch is flushed
	if t.cache != nil {
		t.cache.Add(key, rec)
	}

	if t.metrics != nil {
		t.metrics.IncProxyHashLoad()
		t.metrics.AddProxyHashLoadDuration(time.Since(start))
	}

	storelog.Write(t.log,
		storelog.KeyField(key),
		storelog.OpField("proxy hash GET"),
		storelog.ContextField(context),
	)

	return rec, nil
}

// LoadBatch resolves several keys with one call. It fails fast: the first
// resolution failure is returned as is and the remaining keys are not
// looked up.
func (t *Table) LoadBatch(s localstore.Store, keys []hash.Hash, context string) ([]Record, error) {
	recs := make([]Record, 0, len(keys))

	for i := range keys {
		rec, err := t.Load(s, keys[i], context)
		if err != nil {
			return nil, err
		}

		recs = append(recs, rec)
	}

	return recs, nil
}

// Exists checks if a mapping is stored under the key without decoding it.
func (t *Table) Exists(s localstore.Store, key hash.Hash) (bool, error) {
	if t.cache != nil && t.cache.Contains(key) {
		return true, nil
	}

	_, err := s.Get(Keyspace, key.Bytes())
	switch {
	case localstore.IsErrNotFound(err):
		return false, nil
	case err != nil:
		return false, errors.Wrapf(err, "could not look up proxy hash %s", key)
	}

	return true, nil
}
