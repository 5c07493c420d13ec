package radixdb

import "github.com/pkg/errors"

// Sentinel errors returned by Store/Blob operations. Use errors.Is to test
// for these; lower-layer I/O failures are wrapped with errors.Wrap and
// surface as-is, not as one of these sentinels.
var (
	// ErrBlobTooLarge is returned by Append when a blob (after any
	// compression) plus its 4-byte length prefix would fill or overflow a
	// single page, i.e. when its length is pageSize-4 or more.
	ErrBlobTooLarge = errors.New("radixdb: blob too large for page size")

	// ErrPageNotFound is returned by Bytes when the requested offset
	// addresses a page beyond the current tail.
	ErrPageNotFound = errors.New("radixdb: page not found")

	// ErrBadOffset is returned when an in-page offset leaves no room for
	// a 4-byte length prefix.
	ErrBadOffset = errors.New("radixdb: bad in-page offset")

	// ErrTruncated is returned when a record's declared length runs past
	// the end of its page.
	ErrTruncated = errors.New("radixdb: truncated record")

	// ErrWriteByOther is returned by Open when a writer is requested but
	// another process already holds the write lock.
	ErrWriteByOther = errors.New("radixdb: store opened for writing by another process")

	// ErrClosed is returned by Append, Bytes and Flush after Close has run.
	ErrClosed = errors.New("radixdb: store is closed")

	// ErrUnknownCompression is returned when a record's compression flag
	// byte does not match a codec this build knows how to decode.
	ErrUnknownCompression = errors.New("radixdb: unknown compression flag")
)
