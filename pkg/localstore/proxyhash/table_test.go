package proxyhash_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/scmfs/scmfs-node/pkg/core/hash"
	"github.com/scmfs/scmfs-node/pkg/localstore"
	"github.com/scmfs/scmfs-node/pkg/localstore/boltdb"
	"github.com/scmfs/scmfs-node/pkg/localstore/memstore"
	"github.com/scmfs/scmfs-node/pkg/localstore/proxyhash"
	"github.com/stretchr/testify/require"
)

func TestTable_StoreLoad(t *testing.T) {
	s := memstore.New()
	table := proxyhash.New()

	rev1 := hashOfByte(t, "11")
	rev2 := hashOfByte(t, "dd")

	b := s.BeginWrite()

	key1, err := table.Store("foobar", rev1, b)
	require.NoError(t, err)

	key2, err := table.Store("barfoo", rev2, b)
	require.NoError(t, err)

	require.NotEqual(t, key1, key2)

	// staged mappings are invisible until the batch is flushed
	_, err = table.Load(s, key1, "test")
	require.True(t, proxyhash.IsErrNotFound(err))

	require.NoError(t, b.Flush())

	// both records resolve independently after one shared flush
	rec1, err := table.Load(s, key1, "test")
	require.NoError(t, err)
	require.Equal(t, "foobar", rec1.Path())
	require.Equal(t, rev1, rec1.RevHash())

	rec2, err := table.Load(s, key2, "test")
	require.NoError(t, err)
	require.Equal(t, "barfoo", rec2.Path())
	require.Equal(t, rev2, rec2.RevHash())

	// storing the same pair again derives the same key
	b2 := s.BeginWrite()
	key1again, err := table.Store("foobar", rev1, b2)
	require.NoError(t, err)
	require.Equal(t, key1, key1again)
}

func TestTable_LoadNotFound(t *testing.T) {
	s := memstore.New()
	table := proxyhash.New()

	key := proxyhash.NewRecord("never/stored", hashOfByte(t, "aa")).Key()

	_, err := table.Load(s, key, "lookup for test")
	require.True(t, proxyhash.IsErrNotFound(err))

	var nfErr *proxyhash.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	require.Equal(t, key, nfErr.Key)
	require.Equal(t, "lookup for test", nfErr.Context)
	require.Contains(t, err.Error(), "lookup for test")
}

func TestTable_LoadCorrupt(t *testing.T) {
	s := memstore.New()
	table := proxyhash.New()

	key := proxyhash.NewRecord("some/path", hashOfByte(t, "bb")).Key()

	// plant a truncated record directly under the table's keyspace
	b := s.BeginWrite()
	require.NoError(t, b.Put(proxyhash.Keyspace, key.Bytes(), []byte("short")))
	require.NoError(t, b.Flush())

	_, err := table.Load(s, key, "corrupt load")
	require.False(t, proxyhash.IsErrNotFound(err))

	var corruptErr *proxyhash.CorruptRecordError
	require.ErrorAs(t, err, &corruptErr)
	require.Equal(t, key, corruptErr.Key)
	require.Equal(t, "corrupt load", corruptErr.Context)
}

type testMetrics struct {
	stores, loads, misses, cacheHits int
}

func (m *testMetrics) IncProxyHashStore() { m.stores++ }

func (m *testMetrics) IncProxyHashLoad() { m.loads++ }

func (m *testMetrics) IncProxyHashMiss() { m.misses++ }

func (m *testMetrics) IncProxyHashCacheHit() { m.cacheHits++ }

func (m *testMetrics) AddProxyHashLoadDuration(time.Duration) {}

func TestTable_CacheAndMetrics(t *testing.T) {
	s := memstore.New()
	m := new(testMetrics)
	table := proxyhash.New(
		proxyhash.WithCacheSize(16),
		proxyhash.WithMetrics(m),
	)

	b := s.BeginWrite()
	key, err := table.Store("cached/file", hashOfByte(t, "cc"), b)
	require.NoError(t, err)
	require.NoError(t, b.Flush())

	_, err = table.Load(s, key, "test")
	require.NoError(t, err)

	rec, err := table.Load(s, key, "test")
	require.NoError(t, err)
	require.Equal(t, "cached/file", rec.Path())

	require.Equal(t, 1, m.stores)
	require.Equal(t, 2, m.loads)
	require.Equal(t, 1, m.cacheHits)
	require.Equal(t, 0, m.misses)

	_, err = table.Load(s, hashOfByte(t, "09"), "test")
	require.True(t, proxyhash.IsErrNotFound(err))
	require.Equal(t, 1, m.misses)
}

type failingBatch struct {
	err error
}

func (b failingBatch) Put(localstore.Keyspace, []byte, []byte) error { return b.err }

func (b failingBatch) Flush() error { return b.err }

func TestTable_StoreWriteFailure(t *testing.T) {
	table := proxyhash.New()

	cause := errors.New("disk full")

	_, err := table.Store("foobar", hashOfByte(t, "11"), failingBatch{err: cause})
	require.ErrorIs(t, err, cause)
}

func TestTable_LoadBatch(t *testing.T) {
	s := memstore.New()
	table := proxyhash.New(proxyhash.WithCacheSize(0))

	paths := []string{"a", "b/c", "d/e/f"}
	keys := make([]hash.Hash, len(paths))

	b := s.BeginWrite()
	for i := range paths {
		var err error
		keys[i], err = table.Store(paths[i], hashOfByte(t, "55"), b)
		require.NoError(t, err)
	}
	require.NoError(t, b.Flush())

	recs, err := table.LoadBatch(s, keys, "batch test")
	require.NoError(t, err)
	require.Len(t, recs, len(paths))

	for i := range paths {
		require.Equal(t, paths[i], recs[i].Path())
	}

	_, err = table.LoadBatch(s, append(keys, hashOfByte(t, "66")), "batch test")
	require.True(t, proxyhash.IsErrNotFound(err))
}

func TestTable_Exists(t *testing.T) {
	s := memstore.New()
	table := proxyhash.New()

	b := s.BeginWrite()
	key, err := table.Store("present", hashOfByte(t, "77"), b)
	require.NoError(t, err)
	require.NoError(t, b.Flush())

	ok, err := table.Exists(s, key)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = table.Exists(s, hashOfByte(t, "88"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTable_BoltBacked(t *testing.T) {
	s := boltdb.New(
		boltdb.WithPath(filepath.Join(t.TempDir(), "store.db")),
	)
	require.NoError(t, s.Open())
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	table := proxyhash.New()

	rev1 := hashOfByte(t, "11")
	rev2 := hashOfByte(t, "dd")

	b := s.BeginWrite()

	key1, err := table.Store("foobar", rev1, b)
	require.NoError(t, err)

	key2, err := table.Store("barfoo", rev2, b)
	require.NoError(t, err)

	require.NoError(t, b.Flush())

	rec1, err := table.Load(s, key1, "test")
	require.NoError(t, err)
	require.Equal(t, "foobar", rec1.Path())
	require.Equal(t, rev1, rec1.RevHash())

	rec2, err := table.Load(s, key2, "test")
	require.NoError(t, err)
	require.Equal(t, "barfoo", rec2.Path())
	require.Equal(t, rev2, rec2.RevHash())
}
