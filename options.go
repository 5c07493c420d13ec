package radixdb

import (
	"time"

	"github.com/sirupsen/logrus"
)

// defaultPageSize is used when Config.PageSize is left at zero. 64 KiB sits
// at the low end of the practical 64 KiB - 16 MiB range called out by the
// data model.
const defaultPageSize = 64 << 10

// Config configures a Store at Open time, mirroring the teacher's
// Options/DefaultOptions pattern.
type Config struct {
	// PageSize is the fixed size of every data page. Must be a multiple
	// of 8. Zero means defaultPageSize.
	PageSize int

	// ReadOnly opens the store for reading only; Append returns an error.
	// A shared advisory lock is taken instead of an exclusive one.
	ReadOnly bool

	// Compression selects the codec applied to blob payloads. The zero
	// value, CompressionNone, keeps the file format bit-exact with an
	// uncompressed store.
	Compression CompressionKind

	// MaxOpenPages bounds how many sealed pages the store itself keeps
	// mapped at once. Zero means unbounded. Outstanding blobs are never
	// affected by eviction; see pagelru.go.
	MaxOpenPages int

	// LockTimeout bounds how long Open waits for the advisory write lock
	// before giving up. Zero means fail immediately if the lock is held.
	LockTimeout time.Duration

	// Logger receives structured lifecycle events; page seals are the only
	// events logged. Nil disables logging.
	Logger *logrus.Logger
}

func (c *Config) pageSize() int {
	if c == nil || c.PageSize == 0 {
		return defaultPageSize
	}
	return c.PageSize
}

func (c *Config) logger() *logrus.Logger {
	if c == nil || c.Logger == nil {
		l := logrus.New()
		l.SetOutput(discardWriter{})
		return l
	}
	return c.Logger
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
