package currency

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
)

// Register adds a new ticker owned by given address to the registry.
func Register(db multidist.KVStore, ticker, name string, owner multidist.Address) error {
	return NewTokenInfoBucket().Create(db, ticker, &TokenInfo{
		Metadata: &multidist.Metadata{Schema: 1},
		Name:     name,
		Owner:    owner,
	})
}

// AssertMinter returns an error unless the ticker is registered and owned by
// given address.
func AssertMinter(db multidist.ReadOnlyKVStore, ticker string, minter multidist.Address) error {
	t, err := NewTokenInfoBucket().Get(db, ticker)
	switch {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrCurrency, "ticker %s is not registered", ticker)
	case err != nil:
		return err
	}
	if len(t.Owner) == 0 || !t.Owner.Equals(minter) {
		return errors.Wrapf(errors.ErrCurrency, "%s cannot mint %s", minter, ticker)
	}
	return nil
}
