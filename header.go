package radixdb

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// headerSize is the fixed prefix reserved at the start of the file. The
// committed logical size lives in the first 8 bytes; the rest is reserved
// and zero-initialized.
const headerSize = 1024

// header is the memory-mapped, mutable header region. It is the single
// source of truth for the store's committed logical size S.
type header struct {
	data []byte // mmap of [0, headerSize)
}

// openHeader ensures file is at least headerSize bytes long, zero-padding
// if necessary, and maps the header region. A read-only store maps the
// header read-only, matching the file descriptor's own permissions, and
// never pads (a pre-existing store is expected to already be large enough).
func openHeader(file *os.File, readOnly bool) (*header, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat header")
	}
	if info.Size() < headerSize {
		if readOnly {
			return nil, errors.New("radixdb: file too small to hold a header")
		}
		if err := padTo(file, headerSize); err != nil {
			return nil, errors.Wrap(err, "pad header")
		}
	}

	var data []byte
	if readOnly {
		data, err = mapReadOnly(int(file.Fd()), 0, headerSize)
	} else {
		data, err = mapReadWrite(int(file.Fd()), 0, headerSize)
	}
	if err != nil {
		return nil, errors.Wrap(err, "map header")
	}
	return &header{data: data}, nil
}

// size returns the committed logical size S.
func (h *header) size() uint64 {
	return binary.BigEndian.Uint64(h.data[0:8])
}

// setSize overwrites S. It does not flush; durability is the caller's
// concern via Store.Flush.
func (h *header) setSize(s uint64) {
	binary.BigEndian.PutUint64(h.data[0:8], s)
}

// sync flushes the header mapping to disk.
func (h *header) sync() error {
	return msync(h.data)
}

// close unmaps the header.
func (h *header) close() error {
	return unmap(h.data)
}

// padTo grows file to at least length bytes by appending zeros, mirroring
// the teacher's chunked zero-fill rather than a single huge Write.
func padTo(file *os.File, length int64) error {
	const chunk = 1024
	var zeros [chunk]byte
	pos, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	for pos < length {
		n := length - pos
		if n > chunk {
			n = chunk
		}
		written, err := file.Write(zeros[:n])
		if err != nil {
			return err
		}
		pos += int64(written)
	}
	return nil
}
