package radixdb

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// flock takes an advisory lock on file: exclusive for a writer, shared for
// a read-only opener. It enforces the store's single-writer/many-readers
// contract structurally rather than by convention alone.
func flock(file *os.File, readOnly bool) error {
	how := unix.LOCK_EX
	if readOnly {
		how = unix.LOCK_SH
	}
	err := unix.Flock(int(file.Fd()), how|unix.LOCK_NB)
	if err == nil {
		return nil
	}
	if err == unix.EWOULDBLOCK || err == unix.EAGAIN {
		return ErrWriteByOther
	}
	return errors.Wrap(err, "flock")
}

// waitFlock retries flock until it succeeds or timeout elapses. timeout <= 0
// means a single attempt: ErrWriteByOther is returned at once if the lock
// is held.
func waitFlock(file *os.File, readOnly bool, timeout time.Duration) error {
	start := time.Now()
	for {
		err := flock(file, readOnly)
		if !errors.Is(err, ErrWriteByOther) || timeout <= 0 {
			return err
		}
		if time.Since(start) > timeout {
			return errors.New("radixdb: timed out waiting for write lock")
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// funlock releases a lock taken by flock.
func funlock(file *os.File) error {
	return errors.Wrap(unix.Flock(int(file.Fd()), unix.LOCK_UN), "funlock")
}
