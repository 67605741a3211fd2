package currency

import (
	"strings"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ multidist.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial ticker info from genesis and save it to the
// database
func (*Initializer) FromGenesis(opts multidist.Options, kv multidist.KVStore) error {
	var tokens []struct {
		Ticker string            `json:"ticker"`
		Name   string            `json:"name"`
		Owner  multidist.Address `json:"owner"`
	}
	if err := opts.ReadOptions("currencies", &tokens); err != nil {
		return err
	}
	for _, t := range tokens {
		if strings.HasPrefix(t.Ticker, ReservedPrefix) {
			return errors.Wrapf(errors.ErrCurrency, "ticker %s uses reserved prefix", t.Ticker)
		}
		if err := Register(kv, t.Ticker, t.Name, t.Owner); err != nil {
			return err
		}
	}
	return nil
}
