// Package boltdb provides the durable implementation of the local
// key-value store contract on top of a single BoltDB file. Every keyspace
// maps to its own bucket.
package boltdb

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Store is a durable localstore.Store on a BoltDB file.
type Store struct {
	*cfg

	flushed *atomic.Uint64

	boltDB *bbolt.DB
}

// Option is an option of the Store's constructor.
type Option func(*cfg)

type cfg struct {
	perm fs.FileMode

	path string

	boltOptions *bbolt.Options

	log *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		perm: 0o640,
		boltOptions: &bbolt.Options{
			Timeout: 100 * time.Millisecond,
		},
		log: zap.L(),
	}
}

// New creates and returns new Store instance. Call Open before use.
func New(opts ...Option) *Store {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Store{
		cfg:     c,
		flushed: atomic.NewUint64(0),
	}
}

// WithPath returns option to set system path to the database file.
func WithPath(path string) Option {
	return func(c *cfg) {
		c.path = path
	}
}

// WithPermissions returns option to specify permission bits of the
// database file.
func WithPermissions(perm fs.FileMode) Option {
	return func(c *cfg) {
		c.perm = perm
	}
}

// WithNoSync returns option to skip fsync on commit. Speeds flushes up at
// the cost of crash durability; intended for disposable stores only.
func WithNoSync(noSync bool) Option {
	return func(c *cfg) {
		c.boltOptions.NoSync = noSync
	}
}

// WithLogger returns option to specify the Store's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "BoltStore"))
	}
}

// Open opens the database file, creating it and its parent directory if
// needed.
func (s *Store) Open() error {
	if s.path == "" {
		return errors.New("database empty path")
	}

	base := filepath.Dir(s.path)
	if err := os.MkdirAll(base, 0o700); err != nil {
		return errors.Wrapf(err, "could not use `%s` dir", base)
	}

	db, err := bbolt.Open(s.path, s.perm, s.boltOptions)
	if err != nil {
		return errors.Wrapf(err, "could not open database at %s", s.path)
	}

	s.boltDB = db

	s.log.Debug("opened local store",
		zap.String("path", s.path),
	)

	return nil
}

// Close closes the database file.
func (s *Store) Close() error {
	return s.boltDB.Close()
}

// FlushedPairs returns the number of key/value pairs committed through the
// store's write batches since Open.
func (s *Store) FlushedPairs() uint64 {
	return s.flushed.Load()
}
