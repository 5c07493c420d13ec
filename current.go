package radixdb

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
)

// mapPageMut maps page index pageIndex of file read-write, extending the
// file with zeros first if it does not yet reach that far. file offsets
// are measured from the start of the data region (after the header).
func mapPageMut(file *os.File, pageIndex uint64, pageSize int) ([]byte, error) {
	start := int64(headerSize) + int64(pageIndex)*int64(pageSize)
	end := start + int64(pageSize)
	if err := padTo(file, end); err != nil {
		return nil, errors.Wrap(err, "extend file for page")
	}
	data, err := mapReadWrite(int(file.Fd()), start, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "map page read-write")
	}
	return data, nil
}

// mapPageReadOnly maps an already-written page index read-only. Used both
// for lazily mapping sealed pages on first read and for a shared read-only
// view of the still-growing tail (see inner.bytes).
func mapPageReadOnly(file *os.File, pageIndex uint64, pageSize int) ([]byte, error) {
	start := int64(headerSize) + int64(pageIndex)*int64(pageSize)
	return mapReadOnly(int(file.Fd()), start, pageSize)
}

// writeRecord writes a length-prefixed record into a mutable page mapping
// at in-page offset off.
func writeRecord(page []byte, off int, payload []byte) {
	binary.BigEndian.PutUint32(page[off:off+4], uint32(len(payload)))
	copy(page[off+4:], payload)
}
