package radixdb

import (
	"encoding/binary"
	"runtime"

	"github.com/pkg/errors"
)

// page is a shared handle to a SIZE-byte read-only mapping of one sealed
// data page. Multiple blobs may reference the same page concurrently; the
// mapping is released once nothing reachable still points at this page,
// via a finalizer (mmap is off-heap, so the GC needs a hint to reclaim it).
type page struct {
	data []byte
}

// newSealedPage wraps an already read-only mapping of exactly size bytes.
func newSealedPage(data []byte, size int) (*page, error) {
	if len(data) != size {
		return nil, errors.Errorf("sealed page: expected %d bytes, got %d", size, len(data))
	}
	p := &page{data: data}
	runtime.SetFinalizer(p, (*page).finalize)
	return p, nil
}

func (p *page) finalize() {
	_ = unmap(p.data)
	p.data = nil
}

// GetSlice implements BlobOwner: it reads the 4-byte big-endian length
// prefix at offset and returns the following length bytes.
func (p *page) GetSlice(offset int) ([]byte, error) {
	data := p.data
	if offset < 0 || offset+4 >= len(data) {
		return nil, ErrBadOffset
	}
	l := binary.BigEndian.Uint32(data[offset : offset+4])
	start := offset + 4
	end := start + int(l)
	if end > len(data) {
		return nil, ErrTruncated
	}
	return data[start:end], nil
}

// bytes returns a Blob over the record stored at in-page offset offset.
func (p *page) bytes(offset int) (*Blob, error) {
	if offset < 0 || offset+4 > len(p.data) {
		return nil, ErrBadOffset
	}
	if _, err := p.GetSlice(offset); err != nil {
		return nil, err
	}
	return &Blob{owner: p, offset: offset}, nil
}
