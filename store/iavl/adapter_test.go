package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/multidist/store"
	"github.com/iov-one/multidist/weavetest/assert"
)

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func TestCacheWriteAndCommit(t *testing.T) {
	commit := NewMemCommitStore()
	assert.Nil(t, commit.LoadLatestVersion())

	k, v := []byte("collection"), []byte("cap")
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(k, v))
	assertGetHas(t, cache, k, v, true)

	// Nothing is committed before Write and Commit.
	got, err := commit.Get(k)
	assert.Nil(t, err)
	assert.Nil(t, got)

	assert.Nil(t, cache.Write())
	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("committed state has no hash")
	}

	got, err = commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	latest, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id, latest)
}

func TestDiscardedCacheIsNotPersisted(t *testing.T) {
	commit := NewMemCommitStore()
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("a"), []byte("1")))
	cache.Discard()
	_, err := commit.Commit()
	assert.Nil(t, err)
	assertGetHas(t, commit.Adapter(), []byte("a"), nil, false)
}

func TestAdapterIterator(t *testing.T) {
	base := NewMemCommitStore().Adapter()
	for _, k := range []string{"a", "b", "c"} {
		assert.Nil(t, base.Set([]byte(k), []byte(k)))
	}
	cache := base.CacheWrap()
	assert.Nil(t, cache.Delete([]byte("b")))
	assert.Nil(t, cache.Set([]byte("d"), []byte("d")))

	it, err := cache.Iterator(nil, nil)
	assert.Nil(t, err)
	var keys []string
	for ; it.Valid(); err = it.Next() {
		assert.Nil(t, err)
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"a", "c", "d"}, keys)

	it, err = base.ReverseIterator([]byte("a"), []byte("c"))
	assert.Nil(t, err)
	keys = nil
	for ; it.Valid(); err = it.Next() {
		assert.Nil(t, err)
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"b", "a"}, keys)
}

func TestPersistedOnDisk(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-commit-")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "state")
	assert.Nil(t, err)
	assert.Nil(t, commit.LoadLatestVersion())
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("k"), []byte("v")))
	assert.Nil(t, cache.Write())
	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
}
