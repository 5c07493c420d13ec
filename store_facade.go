package radixdb

import (
	"sync"

	"github.com/pkg/errors"
)

// BlobStore is the capability this package hands to the radix-tree layer
// that sits above it: append opaque blobs, read them back by the offset
// append returned, and request a durability flush.
type BlobStore interface {
	Append(data []byte) (uint64, error)
	Bytes(offset uint64) (*Blob, error)
	Flush() error
}

// Store is the thread-safe façade over the paged blob store. It owns an
// inner store behind a single mutex; every method holds that mutex for its
// full duration. Blobs returned by Bytes are independent of the mutex once
// constructed, per the concurrency model: readers only need the lock long
// enough to locate a page and build the handle.
type Store struct {
	mu     sync.Mutex
	in     *inner
	closed bool
}

var _ BlobStore = (*Store)(nil)

// Open opens (creating if necessary) the paged blob store backed by path.
// A nil Config uses all defaults (64 KiB pages, read-write, no
// compression, unbounded sealed-page cache).
func Open(path string, cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	in, err := openInner(path, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{in: in}, nil
}

// Append commits data as a new blob and returns its logical offset.
func (s *Store) Append(data []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	return s.in.append(data)
}

// Bytes retrieves the blob previously written at offset.
func (s *Store) Bytes(offset uint64) (*Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.in.bytes(offset)
}

// Flush requests that the header and tail page be synced to disk. Per the
// documented durability boundary, this is the only path that syncs the
// header or fsyncs the file; Append issues an msync only for a page it
// seals.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.in.flush()
}

// Close releases the store's mappings, lock, and file handle. It is safe
// to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Wrap(s.in.close(), "close store")
}
