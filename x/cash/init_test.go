package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	Convey("Given a genesis with balances", t, func() {
		const genesis = `{
			"cash": [
				{"address": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "coins": ["10 FOO", {"ticker": "BAR", "amount": 3}]},
				{"address": "hex:E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "coins": ["5 FOO"]}
			]
		}`
		var opts multidist.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)

		db := store.MemStore()
		So(Initializer{}.FromGenesis(opts, db), ShouldBeNil)

		Convey("Balances of the same address are combined", func() {
			addr, err := multidist.ParseAddress("E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0")
			So(err, ShouldBeNil)
			bal, err := NewController(NewBucket()).Balance(db, addr)
			So(err, ShouldBeNil)
			So(bal.Get("FOO"), ShouldResemble, coin.NewCoin(15, "FOO"))
			So(bal.Get("BAR"), ShouldResemble, coin.NewCoin(3, "BAR"))
		})
	})

	Convey("An invalid address is rejected", t, func() {
		opts := multidist.Options{
			"cash": json.RawMessage(`[{"address": "ABCD", "coins": ["1 FOO"]}]`),
		}
		So(Initializer{}.FromGenesis(opts, store.MemStore()), ShouldNotBeNil)
	})
}
