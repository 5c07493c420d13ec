package radixdb

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestSealedPageCacheUnbounded(t *testing.T) {
	assert := assertion.New(t)
	c := newSealedPageCache(0)
	for i := uint64(0); i < 10; i++ {
		c.add(i, &page{})
	}
	assert.Len(c.entries, 10)
}

func TestSealedPageCacheEvictsLeastRecentlyUsed(t *testing.T) {
	assert := assertion.New(t)
	c := newSealedPageCache(2)

	p0, p1, p2 := &page{}, &page{}, &page{}
	c.add(0, p0)
	c.add(1, p1)

	// touch 0 so 1 becomes the least recently used.
	_, ok := c.get(0)
	assert.True(ok)

	c.add(2, p2)

	_, ok = c.get(1)
	assert.False(ok, "page 1 should have been evicted")
	_, ok = c.get(0)
	assert.True(ok)
	_, ok = c.get(2)
	assert.True(ok)
	assert.Len(c.entries, 2)
}

func TestSealedPageCacheStoreHonorsMaxOpenPages(t *testing.T) {
	assert := assertion.New(t)
	s, _ := openTestStore(t, &Config{PageSize: 256, MaxOpenPages: 1})

	var offsets []uint64
	for i := 0; i < 30; i++ {
		off, err := s.Append(make([]byte, 16))
		assert.NoError(err)
		offsets = append(offsets, off)
	}

	for _, off := range offsets {
		blob, err := s.Bytes(off)
		assert.NoError(err)
		_, err = blob.Payload()
		assert.NoError(err)
	}
	assert.LessOrEqual(len(s.in.pages.entries), 1)
}
