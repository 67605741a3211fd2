package cash

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/x/currency"
)

// Controller is the functionality needed by cash.Handler and other
// extensions that move value on behalf of accounts.
type Controller interface {
	// Balance returns the coins held by the address. An unknown address
	// holds nothing.
	Balance(multidist.ReadOnlyKVStore, multidist.Address) (coin.Coins, error)

	// MoveCoins moves the given amount from src to dest. It fails if
	// src does not hold enough coins. Moving a zero amount is not allowed.
	MoveCoins(db multidist.KVStore, src, dest multidist.Address, amount coin.Coin) error

	// CoinMint creates new coins and adds them to the dest wallet. The
	// minter must own the ticker.
	CoinMint(db multidist.KVStore, dest multidist.Address, amount coin.Coin, minter multidist.Address) error
}

// BaseController is a simple implementation of Controller, backed by the
// wallet bucket and the currency registry.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by the address.
func (c BaseController) Balance(db multidist.ReadOnlyKVStore, addr multidist.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	return w.Coins().Clone(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(db multidist.KVStore, src, dest multidist.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds less than %s", src, amount)
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// CoinMint adds the given amount of coins to the destination address. Fails
// if the minter does not own the ticker or the wallet would overflow.
func (c BaseController) CoinMint(db multidist.KVStore, dest multidist.Address, amount coin.Coin, minter multidist.Address) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if err := currency.AssertMinter(db, amount.Ticker, minter); err != nil {
		return err
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}
