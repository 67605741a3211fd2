package ledger

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/x/currency"
)

const optKey = "ledger"

// genesis is the content of the ledger section of the genesis file. Record
// keys and vault addresses are derived, never read.
type genesis struct {
	Collections       []Collection            `json:"collections"`
	CollectionUsers   []CollectionUserState   `json:"collection_users"`
	Distributions     []Distribution          `json:"distributions"`
	DistributionUsers []DistributionUserState `json:"distribution_users"`
}

// Initializer fulfils the Initializer interface to load ledger records from
// the genesis file.
type Initializer struct{}

var _ multidist.Initializer = Initializer{}

// FromGenesis stores all collections, distributions and user states
// declared in the genesis file.
func (Initializer) FromGenesis(opts multidist.Options, db multidist.KVStore) error {
	var g genesis
	if err := opts.ReadOptions(optKey, &g); err != nil {
		return err
	}
	s := newBuckets()

	for i := range g.Collections {
		c := &g.Collections[i]
		c.Metadata = &multidist.Metadata{Schema: 1}
		key := CollectionKey(c.Authority, c.AssetID, c.Discriminator)
		c.VaultAddress = CollectionVault(key)
		c.ReceiptAssetID = ReceiptAssetID(key)
		if err := s.collections.Has(db, key); err == nil {
			return errors.Wrapf(errors.ErrDuplicate, "collection #%d", i)
		}
		if err := s.collections.Put(db, key, c); err != nil {
			return errors.Wrapf(err, "collection #%d", i)
		}
		if err := currency.Register(db, c.ReceiptAssetID, "collection receipt", c.VaultAddress); err != nil {
			return errors.Wrapf(err, "collection #%d receipt", i)
		}
	}

	deposited := make(map[string]uint64)
	for i := range g.CollectionUsers {
		u := &g.CollectionUsers[i]
		u.Metadata = &multidist.Metadata{Schema: 1}
		if err := s.collections.Has(db, u.Collection); err != nil {
			return errors.Wrapf(err, "collection user #%d", i)
		}
		if err := s.collUsers.Put(db, userKey(u.Collection, u.Depositor), u); err != nil {
			return errors.Wrapf(err, "collection user #%d", i)
		}
		sum, err := add64(deposited[string(u.Collection)], u.DepositedAmount)
		if err != nil {
			return errors.Wrapf(err, "collection user #%d", i)
		}
		deposited[string(u.Collection)] = sum
	}
	for i := range g.Collections {
		c := &g.Collections[i]
		key := CollectionKey(c.Authority, c.AssetID, c.Discriminator)
		if got := deposited[string(key)]; got != c.LifetimeCollected {
			return errors.Wrapf(errors.ErrState, "collection #%d: deposits sum to %d, collected %d", i, got, c.LifetimeCollected)
		}
	}

	for i := range g.Distributions {
		d := &g.Distributions[i]
		d.Metadata = &multidist.Metadata{Schema: 1}
		if err := s.collections.Has(db, d.Collection); err != nil {
			return errors.Wrapf(err, "distribution #%d", i)
		}
		key := DistributionKey(d.Collection, d.AssetID)
		d.VaultAddress = DistributionVault(key)
		if err := s.distributions.Has(db, key); err == nil {
			return errors.Wrapf(errors.ErrDuplicate, "distribution #%d", i)
		}
		if err := s.distributions.Put(db, key, d); err != nil {
			return errors.Wrapf(err, "distribution #%d", i)
		}
	}

	received := make(map[string]uint64)
	for i := range g.DistributionUsers {
		u := &g.DistributionUsers[i]
		u.Metadata = &multidist.Metadata{Schema: 1}
		if err := s.distributions.Has(db, u.Distribution); err != nil {
			return errors.Wrapf(err, "distribution user #%d", i)
		}
		if err := s.distUsers.Put(db, userKey(u.Distribution, u.Depositor), u); err != nil {
			return errors.Wrapf(err, "distribution user #%d", i)
		}
		if err := s.assertEntitled(db, u); err != nil {
			return errors.Wrapf(err, "distribution user #%d", i)
		}
		sum, err := add64(received[string(u.Distribution)], u.ReceivedAmount)
		if err != nil {
			return errors.Wrapf(err, "distribution user #%d", i)
		}
		received[string(u.Distribution)] = sum
	}
	for i := range g.Distributions {
		d := &g.Distributions[i]
		if got := received[string(DistributionKey(d.Collection, d.AssetID))]; got != d.LifetimePaidOut {
			return errors.Wrapf(errors.ErrState, "distribution #%d: claims sum to %d, paid out %d", i, got, d.LifetimePaidOut)
		}
	}
	return nil
}

// assertEntitled returns an error if a depositor has received more than the
// deposit recorded in the collection entitles to.
func (s buckets) assertEntitled(db multidist.ReadOnlyKVStore, u *DistributionUserState) error {
	d, err := s.distribution(db, u.Distribution)
	if err != nil {
		return err
	}
	c, err := s.collection(db, d.Collection)
	if err != nil {
		return err
	}
	var deposit CollectionUserState
	switch err := s.collUsers.One(db, userKey(d.Collection, u.Depositor), &deposit); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return err
	}
	entitled, err := Entitlement(deposit.DepositedAmount, d.LifetimeFunded, c.MaxCollectable)
	if err != nil {
		return err
	}
	if u.ReceivedAmount > entitled {
		return errors.Wrapf(errors.ErrState, "received %d, entitled to %d", u.ReceivedAmount, entitled)
	}
	return nil
}
