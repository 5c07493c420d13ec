package radixdb

import (
	"path/filepath"
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestOpenForWriteTwiceFails(t *testing.T) {
	assert := assertion.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.rdb")

	s1, err := Open(path, &Config{PageSize: 1024})
	assert.NoError(err)
	defer s1.Close()

	_, err = Open(path, &Config{PageSize: 1024})
	assert.ErrorIs(err, ErrWriteByOther)
}

func TestReadOnlyOpenersCanShare(t *testing.T) {
	assert := assertion.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.rdb")

	w, err := Open(path, &Config{PageSize: 1024})
	assert.NoError(err)
	_, err = w.Append([]byte("seed"))
	assert.NoError(err)
	assert.NoError(w.Close())

	r1, err := Open(path, &Config{PageSize: 1024, ReadOnly: true})
	assert.NoError(err)
	defer r1.Close()

	r2, err := Open(path, &Config{PageSize: 1024, ReadOnly: true})
	assert.NoError(err)
	defer r2.Close()
}
