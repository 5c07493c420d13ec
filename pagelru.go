package radixdb

// sealedPageCache holds the store's own references to sealed pages. When
// maxSize is 0 it is unbounded: every sealed page mapped stays referenced
// by the store for its whole lifetime. When maxSize > 0, the least
// recently used entry is evicted once the cache is full; eviction only
// drops the store's own reference, it never invalidates blobs already
// handed out, since those hold their own reference to the page (see
// page.go) independent of this cache.
type sealedPageCache struct {
	entries   map[uint64]*page
	evictList []uint64
	maxSize   int
}

func newSealedPageCache(maxSize int) *sealedPageCache {
	return &sealedPageCache{
		entries: map[uint64]*page{},
		maxSize: maxSize,
	}
}

func (c *sealedPageCache) get(key uint64) (*page, bool) {
	p, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.touch(key)
	return p, true
}

func (c *sealedPageCache) add(key uint64, p *page) {
	if _, ok := c.entries[key]; ok {
		c.entries[key] = p
		c.touch(key)
		return
	}
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = p
	c.evictList = append(c.evictList, key)
}

func (c *sealedPageCache) touch(key uint64) {
	for i, k := range c.evictList {
		if k == key {
			c.evictList = append(c.evictList[:i], c.evictList[i+1:]...)
			break
		}
	}
	c.evictList = append(c.evictList, key)
}

func (c *sealedPageCache) evictOldest() {
	if len(c.evictList) == 0 {
		return
	}
	key := c.evictList[0]
	c.evictList = c.evictList[1:]
	delete(c.entries, key)
}
