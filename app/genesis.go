package app

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
)

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...multidist.Initializer) multidist.Initializer {
	return chainInitializer(inits)
}

type chainInitializer []multidist.Initializer

// FromGenesis passes opts to all Initializers in order, aborting at the
// first error.
func (c chainInitializer) FromGenesis(opts multidist.Options, kv multidist.KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

// _md: prefixes internal framework data
const chainIDKey = "_md:chainID"

func loadChainID(kv multidist.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store. It fails if a chain id
// is already set or the name is not valid.
func saveChainID(kv multidist.KVStore, chainID string) error {
	if !multidist.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
