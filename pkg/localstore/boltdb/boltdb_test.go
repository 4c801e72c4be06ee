package boltdb_test

import (
	"path/filepath"
	"testing"

	"github.com/scmfs/scmfs-node/pkg/localstore"
	"github.com/scmfs/scmfs-node/pkg/localstore/boltdb"
	"github.com/stretchr/testify/require"
)

const space = localstore.Keyspace("test_space")

func newStore(t *testing.T, path string) *boltdb.Store {
	s := boltdb.New(
		boltdb.WithPath(path),
		boltdb.WithNoSync(true),
	)
	require.NoError(t, s.Open())

	return s
}

func TestStore_GetPut(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "store.db"))
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	_, err := s.Get(space, []byte("missing"))
	require.True(t, localstore.IsErrNotFound(err))

	b := s.BeginWrite()
	require.NoError(t, b.Put(space, []byte("key"), []byte("value")))
	require.NoError(t, b.Put(localstore.Keyspace("other_space"), []byte("key"), []byte("other")))

	// staged writes are invisible until flush
	_, err = s.Get(space, []byte("key"))
	require.True(t, localstore.IsErrNotFound(err))

	require.NoError(t, b.Flush())
	require.EqualValues(t, 2, s.FlushedPairs())

	val, err := s.Get(space, []byte("key"))
	require.NoError(t, err)
	require.Equal(t, []byte("value"), val)

	val, err = s.Get(localstore.Keyspace("other_space"), []byte("key"))
	require.NoError(t, err)
	require.Equal(t, []byte("other"), val)
}

func TestStore_SingleFlush(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "store.db"))
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	b := s.BeginWrite()
	require.NoError(t, b.Put(space, []byte("key"), []byte("value")))
	require.NoError(t, b.Flush())

	require.ErrorIs(t, b.Flush(), localstore.ErrFlushed)
	require.ErrorIs(t, b.Put(space, []byte("key2"), []byte("value")), localstore.ErrFlushed)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	s := newStore(t, path)

	b := s.BeginWrite()
	require.NoError(t, b.Put(space, []byte("key"), []byte("value")))
	require.NoError(t, b.Flush())
	require.NoError(t, s.Close())

	s = newStore(t, path)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	val, err := s.Get(space, []byte("key"))
	require.NoError(t, err)
	require.Equal(t, []byte("value"), val)
}

func TestStore_OpenErrors(t *testing.T) {
	require.Error(t, boltdb.New().Open())
}
