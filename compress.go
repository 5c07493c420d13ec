package radixdb

import (
	"bytes"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4"
	"github.com/pkg/errors"
)

// CompressionKind selects the codec applied to a blob's payload before it
// is written as a length-prefixed record. The default, CompressionNone,
// keeps the on-disk format bit-exact with the uncompressed description.
type CompressionKind uint8

const (
	CompressionNone CompressionKind = iota
	CompressionSnappy
	CompressionLZ4
)

// encodeRecord applies the configured codec to data and, for any codec
// other than CompressionNone, prefixes the result with a one-byte codec
// tag so decodeRecord picks the codec from the record itself. Whether a
// record is decoded at all follows the reading store's Compression: a
// store opened with CompressionNone returns tagged records undecoded.
func encodeRecord(kind CompressionKind, data []byte) []byte {
	switch kind {
	case CompressionNone:
		return data
	case CompressionSnappy:
		return append([]byte{byte(CompressionSnappy)}, snappy.Encode(nil, data)...)
	case CompressionLZ4:
		buf := &bytes.Buffer{}
		buf.WriteByte(byte(CompressionLZ4))
		w := lz4.NewWriter(buf)
		defer w.Close()
		w.NoChecksum = true
		if _, err := w.Write(data); err != nil {
			panic(err) // writing to a bytes.Buffer cannot fail
		}
		_ = w.Flush()
		return buf.Bytes()
	default:
		panic("radixdb: unknown compression kind")
	}
}

// decodeRecord reverses encodeRecord using the codec tag stored in raw[0].
func decodeRecord(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrTruncated
	}
	kind := CompressionKind(raw[0])
	body := raw[1:]
	switch kind {
	case CompressionSnappy:
		out, err := snappy.Decode(nil, body)
		if err != nil {
			return nil, errors.Wrap(err, "snappy decode")
		}
		return out, nil
	case CompressionLZ4:
		buf := &bytes.Buffer{}
		if _, err := buf.ReadFrom(lz4.NewReader(bytes.NewReader(body))); err != nil {
			return nil, errors.Wrap(err, "lz4 decode")
		}
		return buf.Bytes(), nil
	default:
		return nil, ErrUnknownCompression
	}
}
