package radixdb

import (
	"bytes"
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRecordRoundTrip(t *testing.T) {
	assert := assertion.New(t)
	data := bytes.Repeat([]byte("radixdb"), 200)

	for _, kind := range []CompressionKind{CompressionSnappy, CompressionLZ4} {
		encoded := encodeRecord(kind, data)
		assert.Equal(byte(kind), encoded[0])

		decoded, err := decodeRecord(encoded)
		assert.NoError(err)
		assert.Equal(data, decoded)
	}
}

func TestEncodeRecordNoneIsIdentity(t *testing.T) {
	assert := assertion.New(t)
	data := []byte("raw passthrough")
	assert.Equal(data, encodeRecord(CompressionNone, data))
}

func TestDecodeRecordUnknownCodec(t *testing.T) {
	assert := assertion.New(t)
	_, err := decodeRecord([]byte{0xFF, 1, 2, 3})
	assert.ErrorIs(err, ErrUnknownCompression)
}

func TestStoreWithCompressionRoundTrips(t *testing.T) {
	assert := assertion.New(t)
	s, _ := openTestStore(t, &Config{PageSize: 4096, Compression: CompressionSnappy})

	payload := bytes.Repeat([]byte("abcdefgh"), 100)
	off, err := s.Append(payload)
	assert.NoError(err)

	blob, err := s.Bytes(off)
	assert.NoError(err)
	got, err := blob.Payload()
	assert.NoError(err)
	assert.Equal(payload, got)
}
