package radixdb

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// mapReadOnly maps length bytes of file starting at offset, read-only,
// shared with the page cache.
func mapReadOnly(fd int, offset int64, length int) ([]byte, error) {
	b, err := unix.Mmap(fd, offset, length, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(err, "mmap read-only")
	}
	if err := unix.Madvise(b, unix.MADV_RANDOM); err != nil {
		_ = unix.Munmap(b)
		return nil, errors.Wrap(err, "madvise")
	}
	return b, nil
}

// mapReadWrite maps length bytes of file starting at offset, read-write,
// shared so writes are visible to other mappings of the same region.
func mapReadWrite(fd int, offset int64, length int) ([]byte, error) {
	b, err := unix.Mmap(fd, offset, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(err, "mmap read-write")
	}
	return b, nil
}

func unmap(b []byte) error {
	if b == nil {
		return nil
	}
	return errors.Wrap(unix.Munmap(b), "munmap")
}

// msync flushes the dirty pages of a mapping to the backing file.
func msync(b []byte) error {
	if b == nil {
		return nil
	}
	return errors.Wrap(unix.Msync(b, unix.MS_SYNC), "msync")
}

// mprotectReadOnly drops write permission on an existing mapping in place,
// so holders of slices into it keep a stable address while the mapping
// stops being writable. This is how a sealed page reuses the exact mapping
// the tail page had, rather than remapping.
func mprotectReadOnly(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return errors.Wrap(unix.Mprotect(b, unix.PROT_READ), "mprotect read-only")
}
