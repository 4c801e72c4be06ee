package proxyhash

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/scmfs/scmfs-node/pkg/core/hash"
	"github.com/scmfs/scmfs-node/pkg/localstore"
	"go.uber.org/zap"
)

// Keyspace is the key namespace reserved for the proxy hash table in the
// shared local store.
const Keyspace = localstore.Keyspace("proxy_hash")

const defaultCacheSize = 1024

// Table maps fixed-size proxy hashes to (path, revision hash) pairs on top
// of a shared local store. The table itself is stateless apart from an
// optional read-through cache of resolved records; all durable state lives
// in the store passed to its operations.
type Table struct {
	*cfg

	cache *lru.Cache[hash.Hash, Record]
}

// Option is an option of the Table's constructor.
type Option func(*cfg)

// MetricsRegister is the interface of the proxy hash metrics collector.
type MetricsRegister interface {
	IncProxyHashStore()
	IncProxyHashLoad()
	IncProxyHashMiss()
	IncProxyHashCacheHit()
	AddProxyHashLoadDuration(time.Duration)
}

type cfg struct {
	cacheSize int

	metrics MetricsRegister

	log *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		cacheSize: defaultCacheSize,
		log:       zap.L(),
	}
}

// New creates and returns new Table instance.
func New(opts ...Option) *Table {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	t := &Table{cfg: c}

	if c.cacheSize > 0 {
		t.cache, _ = lru.New[hash.Hash, Record](c.cacheSize)
	}

	return t
}

// WithCacheSize returns option to set the capacity of the read-through
// record cache. Zero disables caching.
func WithCacheSize(sz int) Option {
	return func(c *cfg) {
		c.cacheSize = sz
	}
}

// WithMetrics returns option to set the metrics collector of the table.
func WithMetrics(m MetricsRegister) Option {
	return func(c *cfg) {
		c.metrics = m
	}
}

// WithLogger returns option to specify the Table's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "ProxyHashTable"))
	}
}
