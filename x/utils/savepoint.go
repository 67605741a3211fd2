package utils

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The
// changes are written only if the call succeeds, so a failed transaction
// leaves no partial state behind.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ multidist.Decorator = Savepoint{}

// NewSavepoint returns a decorator that is a no-op until enabled with
// OnCheck and/or OnDeliver.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Checker) (*multidist.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	var res *multidist.CheckResult
	err := atomically(db, func(db multidist.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	return res, err
}

func (s Savepoint) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Deliverer) (*multidist.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *multidist.DeliverResult
	err := atomically(db, func(db multidist.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	return res, err
}

// atomically calls fn with a cache of db and writes the cache back only if
// fn succeeded. A store that cannot be cached is passed through.
func atomically(db multidist.KVStore, fn func(multidist.KVStore) error) error {
	cstore, ok := db.(multidist.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
