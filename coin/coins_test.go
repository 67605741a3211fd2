package coin

import (
	"testing"

	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/weavetest/assert"
)

func TestCombineCoins(t *testing.T) {
	cs, err := CombineCoins(NewCoin(5, "XYZ"), NewCoin(3, "ABC"), NewCoin(2, "XYZ"), NewCoin(0, "FOO"))
	assert.Nil(t, err)
	want := Coins{NewCoinp(3, "ABC"), NewCoinp(7, "XYZ")}
	if !cs.Equals(want) {
		t.Fatalf("want %v, got %v", want, cs)
	}
	assert.Nil(t, cs.Validate())
}

func TestCoinsSubtract(t *testing.T) {
	cs, err := CombineCoins(NewCoin(5, "ABC"), NewCoin(3, "XYZ"))
	assert.Nil(t, err)

	rest, err := cs.Subtract(NewCoin(5, "ABC"))
	assert.Nil(t, err)
	assert.Equal(t, 1, rest.Count())
	assert.Equal(t, NewCoin(3, "XYZ"), rest.Get("XYZ"))

	// Original set is not modified.
	assert.Equal(t, NewCoin(5, "ABC"), cs.Get("ABC"))

	_, err = cs.Subtract(NewCoin(4, "XYZ"))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
	_, err = cs.Subtract(NewCoin(1, "FOO"))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
}

func TestCoinsContains(t *testing.T) {
	cs, err := CombineCoins(NewCoin(5, "ABC"))
	assert.Nil(t, err)
	assert.Equal(t, true, cs.Contains(NewCoin(5, "ABC")))
	assert.Equal(t, false, cs.Contains(NewCoin(6, "ABC")))
	assert.Equal(t, false, cs.Contains(NewCoin(1, "XYZ")))
	assert.Equal(t, NewCoin(0, "XYZ"), cs.Get("XYZ"))
}

func TestCoinsValidate(t *testing.T) {
	unsorted := Coins{NewCoinp(1, "XYZ"), NewCoinp(1, "ABC")}
	assert.IsErr(t, errors.ErrState, unsorted.Validate())

	zero := Coins{NewCoinp(0, "ABC")}
	assert.IsErr(t, errors.ErrState, zero.Validate())

	bad := Coins{NewCoinp(1, "ab")}
	assert.IsErr(t, errors.ErrCurrency, bad.Validate())
}
