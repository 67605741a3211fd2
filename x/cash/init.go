package cash

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/coin"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. The address
// is in hex, not base64.
type GenesisAccount struct {
	Address multidist.Address `json:"address"`
	Coins   coin.Coins        `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ multidist.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database
func (Initializer) FromGenesis(opts multidist.Options, kv multidist.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return err
		}
		wallet, err := bucket.GetOrCreate(kv, acct.Address)
		if err != nil {
			return err
		}
		if err := wallet.Concat(acct.Coins); err != nil {
			return err
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return err
		}
	}
	return nil
}
