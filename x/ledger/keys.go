package ledger

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/x/currency"
)

// ExtensionName is used for the conditions of all records and vaults.
const ExtensionName = "ledger"

// receiptPrefix starts the ticker of every collection receipt asset.
const receiptPrefix = currency.ReservedPrefix

// CollectionKey returns the key of the collection created by given
// authority for given asset and discriminator.
func CollectionKey(authority multidist.Address, assetID string, discriminator uint64) multidist.Address {
	data := make([]byte, 0, len(authority)+len(assetID)+8)
	data = append(data, authority...)
	data = append(data, assetID...)
	data = append(data, uint64Bytes(discriminator)...)
	return multidist.NewCondition(ExtensionName, "collection", data).Address()
}

// DistributionKey returns the key of the distribution of given asset
// attached to given collection.
func DistributionKey(collection multidist.Address, assetID string) multidist.Address {
	data := make([]byte, 0, len(collection)+len(assetID))
	data = append(data, collection...)
	data = append(data, assetID...)
	return multidist.NewCondition(ExtensionName, "distribution", data).Address()
}

// CollectionVault returns the address holding the deposits of a
// collection.
func CollectionVault(collection multidist.Address) multidist.Address {
	return CollectionVaultCondition(collection).Address()
}

// CollectionVaultCondition returns the condition controlling the collection
// vault. It is the minter of the collection receipt asset.
func CollectionVaultCondition(collection multidist.Address) multidist.Condition {
	return multidist.NewCondition(ExtensionName, "collection-vault", collection)
}

// DistributionVault returns the address holding the rewards of a
// distribution.
func DistributionVault(distribution multidist.Address) multidist.Address {
	return multidist.NewCondition(ExtensionName, "distribution-vault", distribution).Address()
}

// ReceiptAssetID returns the ticker of the receipt asset minted on every
// commit to given collection.
func ReceiptAssetID(collection multidist.Address) string {
	return receiptPrefix + strings.ToUpper(hex.EncodeToString(collection))
}

// userKey is the key of a depositor state. It starts with the owner
// key, so all depositors of a record can be listed with a prefix query.
func userKey(owner, depositor multidist.Address) []byte {
	key := make([]byte, 0, len(owner)+len(depositor))
	key = append(key, owner...)
	return append(key, depositor...)
}

func uint64Bytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
