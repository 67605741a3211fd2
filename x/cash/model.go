package cash

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the persisted content of a wallet.
type Set struct {
	Metadata *multidist.Metadata `json:"-"`
	Coins    coin.Coins          `json:"coins"`
}

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are in alphabetical order.
func (s *Set) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "Coins", s.Coins.Validate())
	return errs
}

// Copy makes a new set with the same coins
func (s *Set) Copy() *Set {
	return &Set{
		Metadata: s.Metadata.Copy(),
		Coins:    s.Coins.Clone(),
	}
}

func (s *Set) Marshal() ([]byte, error) {
	var w codec.Writer
	if s.Metadata != nil {
		w.Message(1, s.Metadata)
	}
	for _, c := range s.Coins {
		w.Message(2, c)
	}
	return w.Result()
}

func (s *Set) Unmarshal(raw []byte) error {
	*s = Set{}
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			s.Metadata = &multidist.Metadata{}
			err = r.Message(s.Metadata)
		case 2:
			var c coin.Coin
			err = r.Message(&c)
			s.Coins = append(s.Coins, &c)
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}

// Wallet is the actual object that we want to pass around in our code. It
// contains a set of coins, as well as the address.
//
// Wallet is a type-safe wrapper around orm.SimpleObj
type Wallet struct {
	key   multidist.Address
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates an empty wallet with this address
func NewWallet(key multidist.Address) *Wallet {
	return &Wallet{
		key:   key,
		value: &Set{Metadata: &multidist.Metadata{Schema: 1}},
	}
}

// WalletWith creates a wallet holding given coins.
func WalletWith(key multidist.Address, coins ...*coin.Coin) (*Wallet, error) {
	w := NewWallet(key)
	if err := w.Concat(coins); err != nil {
		return nil, err
	}
	return w, nil
}

// Value gets the value stored in the object
func (w Wallet) Value() orm.Model {
	return w.value
}

// Key returns the key to store the object under
func (w Wallet) Key() []byte {
	return w.key
}

// Validate makes sure the fields aren't empty.
// And delegates to the value validator if present
func (w Wallet) Validate() error {
	if err := w.key.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return w.value.Validate()
}

// SetKey may be used to update a simple obj key
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone will make a copy of this object
func (w *Wallet) Clone() orm.Object {
	return &Wallet{
		key:   w.key.Clone(),
		value: w.value.Copy(),
	}
}

// Coins returns the coins stored in the wallet
func (w Wallet) Coins() coin.Coins {
	return w.value.Coins
}

// Add modifies the wallet to add Coin c
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins().Add(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove Coin c
func (w *Wallet) Subtract(c coin.Coin) error {
	cs, err := w.Coins().Subtract(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Concat combines the coins to make sure they are sorted, with no
// duplicates or zero values.
func (w *Wallet) Concat(coins coin.Coins) error {
	joint, err := w.Coins().Combine(coins)
	if err != nil {
		return err
	}
	w.value.Coins = joint
	return nil
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// Get returns the wallet stored under given address or nil.
func (b Bucket) Get(db multidist.ReadOnlyKVStore, key multidist.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	w, ok := obj.(*Wallet)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj)
	}
	return w, nil
}

// Save persists the wallet. An empty wallet is removed from the store.
func (b Bucket) Save(db multidist.KVStore, w *Wallet) error {
	if len(w.Coins()) == 0 {
		return b.Bucket.Delete(db, w.Key())
	}
	return b.Bucket.Save(db, w)
}

// GetOrCreate returns the wallet stored under given address or a new empty
// one.
func (b Bucket) GetOrCreate(db multidist.ReadOnlyKVStore, key multidist.Address) (*Wallet, error) {
	wallet, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = NewWallet(key)
	}
	return wallet, nil
}
