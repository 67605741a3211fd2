package cash

import (
	"testing"

	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/store"
	"github.com/iov-one/multidist/weavetest"
	"github.com/iov-one/multidist/weavetest/assert"
	"github.com/iov-one/multidist/x/currency"
)

func TestMoveCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	w, err := WalletWith(a, coin.NewCoinp(100, "FOO"), coin.NewCoinp(5, "BAR"))
	assert.Nil(t, err)
	assert.Nil(t, NewBucket().Save(db, w))

	assert.Nil(t, ctrl.MoveCoins(db, a, b, coin.NewCoin(40, "FOO")))

	bal, err := ctrl.Balance(db, a)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(60, "FOO"), bal.Get("FOO"))
	assert.Equal(t, coin.NewCoin(5, "BAR"), bal.Get("BAR"))

	bal, err = ctrl.Balance(db, b)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(40, "FOO"), bal.Get("FOO"))

	err = ctrl.MoveCoins(db, a, b, coin.NewCoin(61, "FOO"))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
	err = ctrl.MoveCoins(db, a, b, coin.NewCoin(0, "FOO"))
	assert.IsErr(t, errors.ErrAmount, err)
	err = ctrl.MoveCoins(db, weavetest.NewCondition().Address(), b, coin.NewCoin(1, "FOO"))
	assert.IsErr(t, errors.ErrEmpty, err)

	// Emptying a wallet removes it.
	assert.Nil(t, ctrl.MoveCoins(db, b, a, coin.NewCoin(40, "FOO")))
	bal, err = ctrl.Balance(db, b)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(bal))

	// Moving to self does not change the balance.
	assert.Nil(t, ctrl.MoveCoins(db, a, a, coin.NewCoin(100, "FOO")))
	bal, err = ctrl.Balance(db, a)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(100, "FOO"), bal.Get("FOO"))
}

func TestCoinMint(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	owner := weavetest.NewCondition().Address()
	dest := weavetest.NewCondition().Address()
	assert.Nil(t, currency.Register(db, "RCPT-01", "receipt", owner))

	assert.Nil(t, ctrl.CoinMint(db, dest, coin.NewCoin(7, "RCPT-01"), owner))
	assert.Nil(t, ctrl.CoinMint(db, dest, coin.NewCoin(3, "RCPT-01"), owner))
	bal, err := ctrl.Balance(db, dest)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(10, "RCPT-01"), bal.Get("RCPT-01"))

	err = ctrl.CoinMint(db, dest, coin.NewCoin(1, "RCPT-01"), dest)
	assert.IsErr(t, errors.ErrCurrency, err)
	err = ctrl.CoinMint(db, dest, coin.NewCoin(1, "OTHER"), owner)
	assert.IsErr(t, errors.ErrCurrency, err)

	err = ctrl.CoinMint(db, dest, coin.NewCoin(^uint64(0), "RCPT-01"), owner)
	assert.IsErr(t, errors.ErrOverflow, err)
}
