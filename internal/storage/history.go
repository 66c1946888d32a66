package storage

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	MetaBucket  = []byte("meta")  // Format version, timestamps
	IndexBucket = []byte("index") // Snapshot entries for listing
	BlobsBucket = []byte("blobs") // Vault documents
)

// Meta keys
var (
	MetaVersion  = []byte("version")
	MetaCreated  = []byte("created")
	MetaModified = []byte("modified")
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// History provides BBolt-based snapshot storage for vault documents
type History struct {
	db *bolt.DB
}

// SnapshotEntry describes a stored snapshot
type SnapshotEntry struct {
	Seq         uint64    `json:"seq"`
	Created     time.Time `json:"created"`
	Size        int       `json:"size"`
	Hash        string    `json:"hash"`
	Credentials int       `json:"credentials"`
	Notes       int       `json:"notes"`
}

// OpenHistory opens or creates a history database
func OpenHistory(path string) (*History, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the database. It is a no-op when Compact failed to
// reopen the file.
func (h *History) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Path returns the database file path
func (h *History) Path() string {
	return h.db.Path()
}

// Initialize creates the bucket structure. It is safe to call on an
// already initialized database.
func (h *History) Initialize() error {
	return h.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{MetaBucket, IndexBucket, BlobsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		meta := tx.Bucket(MetaBucket)
		if meta.Get(MetaVersion) != nil {
			return nil
		}
		if err := meta.Put(MetaVersion, []byte("1")); err != nil {
			return err
		}

		created, _ := time.Now().MarshalBinary()
		if err := meta.Put(MetaCreated, created); err != nil {
			return err
		}
		return meta.Put(MetaModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (h *History) IsInitialized() (bool, error) {
	var initialized bool
	err := h.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(MetaBucket)
		if meta != nil && meta.Get(MetaVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// GetModified retrieves the time of the last recorded snapshot
func (h *History) GetModified() (time.Time, error) {
	var modified time.Time
	err := h.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(MetaBucket)
		if meta == nil {
			return fmt.Errorf("meta bucket not found")
		}
		data := meta.Get(MetaModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// Record stores doc as a new snapshot. If doc is identical to the most
// recent snapshot nothing is stored and the existing entry is returned
// with recorded set to false.
func (h *History) Record(doc []byte, credentials, notes int) (entry SnapshotEntry, recorded bool, err error) {
	sum := sha256.Sum256(doc)
	hash := hex.EncodeToString(sum[:])

	err = h.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		blobs := tx.Bucket(BlobsBucket)
		if index == nil || blobs == nil {
			return fmt.Errorf("history not initialized")
		}

		if _, v := index.Cursor().Last(); v != nil {
			var last SnapshotEntry
			if err := json.Unmarshal(v, &last); err != nil {
				return err
			}
			if last.Hash == hash {
				entry = last
				return nil
			}
		}

		seq, err := index.NextSequence()
		if err != nil {
			return err
		}
		now := time.Now()
		entry = SnapshotEntry{
			Seq:         seq,
			Created:     now,
			Size:        len(doc),
			Hash:        hash,
			Credentials: credentials,
			Notes:       notes,
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if err := index.Put(seqKey(seq), data); err != nil {
			return err
		}
		if err := blobs.Put(seqKey(seq), doc); err != nil {
			return err
		}

		modified, _ := now.MarshalBinary()
		if err := tx.Bucket(MetaBucket).Put(MetaModified, modified); err != nil {
			return err
		}
		recorded = true
		return nil
	})
	return entry, recorded, err
}

// List returns all snapshot entries, oldest first
func (h *History) List() ([]SnapshotEntry, error) {
	var entries []SnapshotEntry
	err := h.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return nil
		}
		return index.ForEach(func(k, v []byte) error {
			var entry SnapshotEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	})
	return entries, err
}

// Latest returns the most recent snapshot entry, or nil if there is none
func (h *History) Latest() (*SnapshotEntry, error) {
	var entry *SnapshotEntry
	err := h.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return nil
		}
		_, v := index.Cursor().Last()
		if v == nil {
			return nil
		}
		entry = &SnapshotEntry{}
		return json.Unmarshal(v, entry)
	})
	return entry, err
}

// Get retrieves the document stored for a snapshot
func (h *History) Get(seq uint64) ([]byte, error) {
	var data []byte
	err := h.db.View(func(tx *bolt.Tx) error {
		blobs := tx.Bucket(BlobsBucket)
		if blobs == nil {
			return ErrSnapshotNotFound
		}
		data = blobs.Get(seqKey(seq))
		if data == nil {
			return ErrSnapshotNotFound
		}
		// Make a copy since the slice is only valid during the transaction
		data = append([]byte(nil), data...)
		return nil
	})
	return data, err
}

// Prune removes the oldest snapshots so that at most keep remain.
// It returns the number of removed snapshots.
func (h *History) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	removed := 0
	err := h.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		blobs := tx.Bucket(BlobsBucket)
		if index == nil || blobs == nil {
			return nil
		}
		excess := index.Stats().KeyN - keep
		if excess <= 0 {
			return nil
		}

		var keys [][]byte
		c := index.Cursor()
		for k, _ := c.First(); k != nil && len(keys) < excess; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := index.Delete(k); err != nil {
				return err
			}
			if err := blobs.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

// compactTxSize bounds the size of each copy transaction during Compact
const compactTxSize = 1 << 20

// Compact rewrites the database into a fresh file, dropping pages freed
// by Prune. Bucket sequences are carried over so snapshot numbering
// continues where it left off. The rewritten file replaces the original
// with a single rename.
func (h *History) Compact() error {
	path := h.db.Path()
	tmpPath := path + ".compact"
	os.Remove(tmpPath)

	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}
	if err := bolt.Compact(dst, h.db, compactTxSize); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to compact history: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	// bbolt holds a file lock, so the source must be closed before the swap
	if err := h.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close history database: %w", err)
	}
	renameErr := os.Rename(tmpPath, path)
	if renameErr != nil {
		os.Remove(tmpPath)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		h.db = nil
		return fmt.Errorf("failed to reopen history database: %w", err)
	}
	h.db = db
	if renameErr != nil {
		return fmt.Errorf("failed to replace history database: %w", renameErr)
	}
	return nil
}
