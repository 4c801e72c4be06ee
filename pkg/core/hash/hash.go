package hash

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"

	"github.com/pkg/errors"
)

// Size is the byte length of Hash.
const Size = sha1.Size

// StringSize is the length of the canonical hexadecimal form of Hash.
const StringSize = Size * 2

// Hash is a fixed-width content-derived identifier of a backing-store
// object. The zero value is the distinguished all-zero hash used as the
// default/"empty" state.
//
// Hash is an immutable value: it is copied freely and compared with ==.
type Hash [Size]byte

// ErrMalformed is returned by constructors when the input is not a valid
// fixed-width identifier.
var ErrMalformed = errors.New("malformed hash")

// NewFromBytes constructs Hash from exactly Size raw bytes. The bytes are
// copied.
func NewFromBytes(b []byte) (Hash, error) {
	var h Hash

	if len(b) != Size {
		return h, errors.Wrapf(ErrMalformed, "expected %d bytes, got %d", Size, len(b))
	}

	copy(h[:], b)

	return h, nil
}

// DecodeString constructs Hash from its hexadecimal form. The input must be
// exactly StringSize hexadecimal characters; letter case is not significant.
func DecodeString(s string) (Hash, error) {
	var h Hash

	if len(s) != StringSize {
		return h, errors.Wrapf(ErrMalformed, "expected %d characters, got %d", StringSize, len(s))
	}

	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return Hash{}, errors.Wrapf(ErrMalformed, "%v", err)
	}

	return h, nil
}

// Sum digests the concatenation of parts with the fixed key-derivation
// digest (SHA-1). The result is a durable on-disk format decision: the same
// input bytes produce the same Hash in any process on any platform.
func Sum(parts ...[]byte) Hash {
	d := sha1.New()

	for i := range parts {
		d.Write(parts[i])
	}

	var h Hash
	d.Sum(h[:0])

	return h
}

// Bytes returns the raw bytes of the hash in a freshly allocated slice.
func (h Hash) Bytes() []byte {
	tmp := make([]byte, Size)
	copy(tmp, h[:])

	return tmp
}

// IsZero checks if the hash is the all-zero default value.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String implements fmt.Stringer with the canonical lowercase hexadecimal
// form.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Compare returns an integer comparing two hashes as big-endian byte
// strings: 0 if a == b, -1 if a < b, and +1 if a > b. It defines the total
// order used for sortable and mapping keys.
func Compare(a, b Hash) int {
	return bytes.Compare(a[:], b[:])
}
