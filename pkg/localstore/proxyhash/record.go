package proxyhash

import (
	"github.com/pkg/errors"
	"github.com/scmfs/scmfs-node/pkg/core/hash"
)

// Record is the (path, revision hash) pair a proxy hash resolves to.
//
// The zero value is the valid default state: empty path and all-zero
// revision hash. It carries no useful information but is safe to read and
// to serialize. Record is immutable after construction and owned by value;
// copies share no mutable state.
type Record struct {
	path    string
	revHash hash.Hash
}

// NewRecord constructs Record from a repository-relative path and the
// revision hash of its content in the backing store. An empty path denotes
// the repository root.
func NewRecord(path string, revHash hash.Hash) Record {
	return Record{
		path:    path,
		revHash: revHash,
	}
}

// Path returns the repository-relative path of the record.
func (r Record) Path() string {
	return r.path
}

// RevHash returns the revision hash of the record.
func (r Record) RevHash() hash.Hash {
	return r.revHash
}

// IsZero checks if the record is in the default state.
func (r Record) IsZero() bool {
	return r.path == "" && r.revHash.IsZero()
}

// Marshal encodes the record into its canonical byte form: the raw
// revision hash followed by the raw path bytes. The fixed-width hash
// prefix makes the encoding unambiguous for any path, including the empty
// one. The encoding is a durable on-disk contract.
func (r Record) Marshal() []byte {
	buf := make([]byte, hash.Size+len(r.path))
	copy(buf, r.revHash[:])
	copy(buf[hash.Size:], r.path)

	return buf
}

// Key derives the fixed-size identifier of the record by digesting its
// canonical byte form. Two records derive the same key iff their
// (path, revision hash) pairs are byte-identical.
func (r Record) Key() hash.Hash {
	return hash.Sum(r.revHash[:], []byte(r.path))
}

// DecodeRecord is the exact inverse of Marshal. It fails on any byte
// sequence shorter than a revision hash.
func DecodeRecord(data []byte) (Record, error) {
	if len(data) < hash.Size {
		return Record{}, errors.Errorf("record too short: %d bytes", len(data))
	}

	revHash, err := hash.NewFromBytes(data[:hash.Size])
	if err != nil {
		return Record{}, err
	}

	return Record{
		path:    string(data[hash.Size:]),
		revHash: revHash,
	}, nil
}
