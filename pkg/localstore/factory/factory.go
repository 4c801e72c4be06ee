// Package factory builds a configured local store backend. It keeps the
// choice of persistence engine out of the packages that consume the store
// contract.
package factory

import (
	"io/fs"

	"github.com/pkg/errors"
	"github.com/scmfs/scmfs-node/pkg/localstore"
	"github.com/scmfs/scmfs-node/pkg/localstore/boltdb"
	"github.com/scmfs/scmfs-node/pkg/localstore/memstore"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const name = "storage"

// Backend type names accepted in the configuration.
const (
	BackendBoltDB = "boltdb"
	BackendMemory = "memory"
)

var errEmptyPath = errors.New("database empty path")

// NewStore creates a local store backend from configuration:
//
//	storage.type    — "boltdb" (default) or "memory";
//	storage.path    — database file path, required for "boltdb";
//	storage.perm    — database file permission bits;
//	storage.no_sync — skip fsync on commit.
//
// The boltdb backend is returned opened; the caller owns its Close.
func NewStore(v *viper.Viper, l *zap.Logger) (localstore.Store, error) {
	typ := v.GetString(name + ".type")

	switch typ {
	case BackendMemory:
		return memstore.New(), nil
	case BackendBoltDB, "":
	default:
		return nil, errors.Errorf("unknown storage type %s", typ)
	}

	path := v.GetString(name + ".path")
	if path == "" {
		return nil, errEmptyPath
	}

	opts := []boltdb.Option{
		boltdb.WithPath(path),
		boltdb.WithNoSync(v.GetBool(name + ".no_sync")),
		boltdb.WithLogger(l),
	}

	if perm := v.GetUint32(name + ".perm"); perm != 0 {
		opts = append(opts, boltdb.WithPermissions(fs.FileMode(perm)))
	}

	s := boltdb.New(opts...)
	if err := s.Open(); err != nil {
		return nil, err
	}

	return s, nil
}
