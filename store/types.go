package store

import "github.com/iov-one/multidist"

// Move references for all storage types into this package for shorter
// names everywhere.

type ReadOnlyKVStore = multidist.ReadOnlyKVStore
type SetDeleter = multidist.SetDeleter
type KVStore = multidist.KVStore
type Batch = multidist.Batch
type Iterator = multidist.Iterator
type CacheableKVStore = multidist.CacheableKVStore
type KVCacheWrap = multidist.KVCacheWrap
type CommitKVStore = multidist.CommitKVStore
type CommitID = multidist.CommitID
type Model = multidist.Model
