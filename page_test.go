package radixdb

import (
	"encoding/binary"
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func newTestPage(t *testing.T, size int, records map[int][]byte) *page {
	t.Helper()
	data := make([]byte, size)
	for off, payload := range records {
		binary.BigEndian.PutUint32(data[off:off+4], uint32(len(payload)))
		copy(data[off+4:], payload)
	}
	p, err := newSealedPage(data, size)
	if err != nil {
		t.Fatalf("newSealedPage: %v", err)
	}
	return p
}

func TestPageBytesReturnsStoredPayload(t *testing.T) {
	assert := assertion.New(t)
	p := newTestPage(t, 64, map[int][]byte{0: {0x01, 0x02, 0x03}})

	blob, err := p.bytes(0)
	assert.NoError(err)
	payload, err := blob.Payload()
	assert.NoError(err)
	assert.Equal([]byte{0x01, 0x02, 0x03}, payload)
}

func TestPageBytesBadOffset(t *testing.T) {
	assert := assertion.New(t)
	p := newTestPage(t, 64, nil)

	_, err := p.bytes(61) // 61 + 4 == 65, not < 64
	assert.ErrorIs(err, ErrBadOffset)

	_, err = p.bytes(-1)
	assert.ErrorIs(err, ErrBadOffset)
}

func TestPageBytesTruncated(t *testing.T) {
	assert := assertion.New(t)
	data := make([]byte, 32)
	// Declare a length far larger than the remaining page space.
	binary.BigEndian.PutUint32(data[0:4], 1000)
	p, err := newSealedPage(data, 32)
	assert.NoError(err)

	_, err = p.bytes(0)
	assert.ErrorIs(err, ErrTruncated)
}

func TestNewSealedPageRejectsWrongSize(t *testing.T) {
	assert := assertion.New(t)
	_, err := newSealedPage(make([]byte, 10), 32)
	assert.Error(err)
}
