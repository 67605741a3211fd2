package currency

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/store"
	"github.com/iov-one/multidist/weavetest/assert"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesisTokens(t *testing.T) {
	Convey("Given a genesis file with tickers", t, func() {
		const genesis = `{
			"currencies": [
				{"ticker": "ALX", "name": "alx token"},
				{"ticker": "ETH.USD", "name": "wrapped ether", "owner": "B1CA7E78F74423AE01DA3B51E676934D9105F282"}
			]
		}`
		var opts multidist.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)

		db := store.MemStore()
		So((&Initializer{}).FromGenesis(opts, db), ShouldBeNil)

		Convey("Every ticker is registered", func() {
			b := NewTokenInfoBucket()
			alx, err := b.Get(db, "ALX")
			So(err, ShouldBeNil)
			So(alx.Name, ShouldEqual, "alx token")
			So(alx.Owner, ShouldBeEmpty)

			eth, err := b.Get(db, "ETH.USD")
			So(err, ShouldBeNil)
			So(eth.Owner.String(), ShouldEqual, "B1CA7E78F74423AE01DA3B51E676934D9105F282")
		})

		Convey("Only the owner can mint", func() {
			owner, err := multidist.ParseAddress("B1CA7E78F74423AE01DA3B51E676934D9105F282")
			So(err, ShouldBeNil)
			So(AssertMinter(db, "ETH.USD", owner), ShouldBeNil)
			So(AssertMinter(db, "ALX", owner), ShouldNotBeNil)
		})
	})
}

func TestGenesisInvalidTicker(t *testing.T) {
	opts := multidist.Options{
		"currencies": json.RawMessage(`[{"ticker": "a", "name": "bad"}]`),
	}
	if err := (&Initializer{}).FromGenesis(opts, store.MemStore()); err == nil {
		t.Fatal("invalid ticker must fail")
	}
	assert.Nil(t, (&Initializer{}).FromGenesis(multidist.Options{}, store.MemStore()))

	opts = multidist.Options{
		"currencies": json.RawMessage(`[{"ticker": "RCPT-00FF", "name": "receipt"}]`),
	}
	err := (&Initializer{}).FromGenesis(opts, store.MemStore())
	assert.IsErr(t, errors.ErrCurrency, err)
}
