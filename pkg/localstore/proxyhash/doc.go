// Package proxyhash implements the indirection layer between the virtual
// filesystem and the source-control backing store.
//
// The filesystem's durable structures carry only fixed-size identifiers,
// while the backing store addresses a blob by a repository-relative path
// and a revision hash, a pair of unbounded size. Table deterministically
// derives a fixed-size key from the pair, persists the reverse mapping in
// a shared local store and later reconstructs the pair given only the key.
//
// The derived key is content-addressed: the same (path, revision hash)
// pair always maps to the same key, so concurrent writers racing on one
// pair stage identical entries and cannot corrupt each other. No global
// identifier sequence exists.
package proxyhash
