package radixdb

// BlobOwner is the capability a Blob needs from whatever backs it: given an
// in-page offset, return the length-prefixed payload slice stored there.
// A concrete backend (a sealed page, a live-tail snapshot, or a test
// double) implements this without Blob ever knowing the concrete type.
type BlobOwner interface {
	GetSlice(offset int) ([]byte, error)
}

// Blob is a read-only view over a record's payload. It carries shared
// ownership of its backing page (via owner) so it remains valid for as
// long as the caller holds it, independent of the store's own lifetime.
type Blob struct {
	owner       BlobOwner
	offset      int
	compression CompressionKind
}

// Payload returns the blob's logical contents. If the store that produced
// this blob was opened with payload compression enabled, this transparently
// decodes the stored record.
func (b *Blob) Payload() ([]byte, error) {
	raw, err := b.owner.GetSlice(b.offset)
	if err != nil {
		return nil, err
	}
	if b.compression == CompressionNone {
		return raw, nil
	}
	return decodeRecord(raw)
}

// Len returns the length of the blob's logical payload without allocating
// a decompressed copy when no compression is in play.
func (b *Blob) Len() (int, error) {
	p, err := b.Payload()
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
