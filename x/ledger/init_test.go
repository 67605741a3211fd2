package ledger

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/store"
	"github.com/iov-one/multidist/x/currency"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	const authority = "B1CA7E78F74423AE01DA3B51E676934D9105F282"
	const depositor = "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"

	authAddr, err := multidist.ParseAddress(authority)
	if err != nil {
		t.Fatal(err)
	}
	depAddr, err := multidist.ParseAddress(depositor)
	if err != nil {
		t.Fatal(err)
	}
	cid := CollectionKey(authAddr, "IOV", 7)
	did := DistributionKey(cid, "ETH")

	Convey("Given a genesis with ledger records", t, func() {
		genesis := `{
			"ledger": {
				"collections": [
					{"authority": "` + authority + `", "asset_id": "IOV", "discriminator": 7, "max_collectable": 1000, "lifetime_collected": 400}
				],
				"collection_users": [
					{"collection": "` + cid.String() + `", "depositor": "` + depositor + `", "deposited_amount": 400}
				],
				"distributions": [
					{"collection": "` + cid.String() + `", "asset_id": "ETH", "lifetime_funded": 500, "lifetime_paid_out": 100}
				],
				"distribution_users": [
					{"distribution": "` + did.String() + `", "depositor": "` + depositor + `", "received_amount": 100}
				]
			}
		}`
		var opts multidist.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)

		db := store.MemStore()
		So(Initializer{}.FromGenesis(opts, db), ShouldBeNil)

		Convey("Keys and vaults are derived", func() {
			var c Collection
			So(NewCollectionBucket().One(db, cid, &c), ShouldBeNil)
			So(c.VaultAddress, ShouldResemble, CollectionVault(cid))
			So(c.ReceiptAssetID, ShouldEqual, ReceiptAssetID(cid))
			So(c.LifetimeCollected, ShouldEqual, 400)

			var d Distribution
			So(NewDistributionBucket().One(db, did, &d), ShouldBeNil)
			So(d.VaultAddress, ShouldResemble, DistributionVault(did))
		})

		Convey("User states are stored under the record key", func() {
			var u CollectionUserState
			So(NewCollectionUserBucket().One(db, userKey(cid, depAddr), &u), ShouldBeNil)
			So(u.DepositedAmount, ShouldEqual, 400)

			var r DistributionUserState
			So(NewDistributionUserBucket().One(db, userKey(did, depAddr), &r), ShouldBeNil)
			So(r.ReceivedAmount, ShouldEqual, 100)
		})

		Convey("The collection vault mints the receipt", func() {
			So(currency.AssertMinter(db, ReceiptAssetID(cid), CollectionVault(cid)), ShouldBeNil)
		})

		Convey("Loading it twice fails", func() {
			err := Initializer{}.FromGenesis(opts, db)
			So(errors.ErrDuplicate.Is(err), ShouldBeTrue)
		})
	})

	Convey("A collection above its cap is rejected", t, func() {
		opts := multidist.Options{
			"ledger": json.RawMessage(`{"collections": [
				{"authority": "` + authority + `", "asset_id": "IOV", "max_collectable": 10, "lifetime_collected": 11}
			]}`),
		}
		err := Initializer{}.FromGenesis(opts, store.MemStore())
		So(errors.ErrCapacity.Is(err), ShouldBeTrue)
	})

	Convey("A user state of an unknown collection is rejected", t, func() {
		opts := multidist.Options{
			"ledger": json.RawMessage(`{"collection_users": [
				{"collection": "` + cid.String() + `", "depositor": "` + depositor + `", "deposited_amount": 1}
			]}`),
		}
		err := Initializer{}.FromGenesis(opts, store.MemStore())
		So(errors.ErrNotFound.Is(err), ShouldBeTrue)
	})

	Convey("Records breaking the ledger accounting are rejected", t, func() {
		collection := func(collected uint64) string {
			return fmt.Sprintf(`{"authority": %q, "asset_id": "IOV", "discriminator": 7, "max_collectable": 1000, "lifetime_collected": %d}`, authority, collected)
		}
		deposit := func(amount uint64) string {
			return fmt.Sprintf(`{"collection": %q, "depositor": %q, "deposited_amount": %d}`, cid.String(), depositor, amount)
		}
		distribution := func(funded, paid uint64) string {
			return fmt.Sprintf(`{"collection": %q, "asset_id": "ETH", "lifetime_funded": %d, "lifetime_paid_out": %d}`, cid.String(), funded, paid)
		}
		claimed := func(received uint64) string {
			return fmt.Sprintf(`{"distribution": %q, "depositor": %q, "received_amount": %d}`, did.String(), depositor, received)
		}
		cases := map[string]string{
			"deposits above collected": `{
				"collections": [` + collection(10) + `],
				"collection_users": [` + deposit(900) + `]
			}`,
			"deposits below collected": `{
				"collections": [` + collection(400) + `],
				"collection_users": [` + deposit(300) + `]
			}`,
			"received above entitlement": `{
				"collections": [` + collection(400) + `],
				"collection_users": [` + deposit(400) + `],
				"distributions": [` + distribution(100, 100) + `],
				"distribution_users": [` + claimed(100) + `]
			}`,
			"claims not matching paid out": `{
				"collections": [` + collection(400) + `],
				"collection_users": [` + deposit(400) + `],
				"distributions": [` + distribution(500, 150) + `],
				"distribution_users": [` + claimed(100) + `]
			}`,
		}
		for name, raw := range cases {
			Convey(name, func() {
				opts := multidist.Options{"ledger": json.RawMessage(raw)}
				err := Initializer{}.FromGenesis(opts, store.MemStore())
				So(errors.ErrState.Is(err), ShouldBeTrue)
			})
		}
	})

	Convey("Missing section is a no-op", t, func() {
		So(Initializer{}.FromGenesis(multidist.Options{}, store.MemStore()), ShouldBeNil)
	})
}
