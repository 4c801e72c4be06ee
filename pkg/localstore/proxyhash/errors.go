package proxyhash

import (
	"errors"
	"fmt"

	"github.com/scmfs/scmfs-node/pkg/core/hash"
)

// NotFoundError is returned by Table.Load when no mapping is stored under
// the requested key. This is an expected condition: the mapping was never
// written, or was staged but not yet flushed. Callers typically fall back
// to rebuilding the mapping from the backing store.
type NotFoundError struct {
	// Key is the proxy hash that failed to resolve.
	Key hash.Hash

	// Context is the caller-supplied diagnostic label of the load request.
	Context string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no proxy hash mapping for %s (%s)", e.Key, e.Context)
}

// CorruptRecordError is returned by Table.Load when a mapping is present
// but its bytes do not decode. Unlike NotFoundError it signals an integrity
// violation of the persisted store and is not retried.
type CorruptRecordError struct {
	// Key is the proxy hash whose stored record failed to decode.
	Key hash.Hash

	// Context is the caller-supplied diagnostic label of the load request.
	Context string

	// Reason is the decoding failure.
	Reason error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt proxy hash record %s (%s): %v", e.Key, e.Context, e.Reason)
}

func (e *CorruptRecordError) Unwrap() error {
	return e.Reason
}

// IsErrNotFound checks if the error returned by Table.Load corresponds to
// the missing mapping.
func IsErrNotFound(err error) bool {
	return errors.As(err, new(*NotFoundError))
}
