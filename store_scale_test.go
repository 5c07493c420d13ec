package radixdb

import (
	"encoding/binary"
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

// A scaled-down version of the large-scale round-trip scenario: many
// fixed-size records packed across many pages, each one read back and
// checked against the original input.
func TestLargeScaleRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large-scale round trip in -short mode")
	}
	assert := assertion.New(t)
	s, _ := openTestStore(t, &Config{PageSize: 64 << 10})

	const blockSize = 666
	const blockCount = 20000

	offsets := make([]uint64, blockCount)
	for i := 0; i < blockCount; i++ {
		data := make([]byte, blockSize)
		binary.BigEndian.PutUint64(data, uint64(i))
		off, err := s.Append(data)
		assert.NoError(err)
		offsets[i] = off
	}

	for i, off := range offsets {
		blob, err := s.Bytes(off)
		assert.NoError(err)
		payload, err := blob.Payload()
		assert.NoError(err)
		assert.EqualValues(i, binary.BigEndian.Uint64(payload[:8]))
		assert.Len(payload, blockSize)
	}
}
