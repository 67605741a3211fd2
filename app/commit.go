package app

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
)

// CommitStore keeps the committed state together with the two scratch
// pads used between commits: one for DeliverTx and one for CheckTx.
type CommitStore struct {
	committed multidist.CommitKVStore
	deliver   multidist.KVCacheWrap
	check     multidist.KVCacheWrap
}

// NewCommitStore loads the latest version of the store and prepares both
// caches.
func NewCommitStore(store multidist.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (multidist.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit flushes the deliver cache, persists a new version and resets
// both caches. Pending CheckTx changes are dropped.
func (cs *CommitStore) Commit() (multidist.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return multidist.CommitID{}, errors.Wrap(err, "flush deliver")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return id, nil
}

// CheckStore returns the store used during the checking phase.
func (cs *CommitStore) CheckStore() multidist.CacheableKVStore {
	return cs.check
}

// DeliverStore returns the store used during the delivery phase.
func (cs *CommitStore) DeliverStore() multidist.CacheableKVStore {
	return cs.deliver
}
