// Package storage provides file access and the BBolt snapshot history for gearstick.
//
// The vault itself is a single JSON file written with WriteFileAtomic:
// data goes to a temporary file in the same directory, is synced, and
// is then renamed over the target.
//
// The history database keeps previous vault documents so that changes
// can be diffed and rolled back. It uses three buckets:
//   - meta: format version and timestamps
//   - index: snapshot entries (time, size, hash, record counts) keyed by
//     a big-endian sequence number
//   - blobs: the vault documents, under the same keys as index
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
