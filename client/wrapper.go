package client

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/app"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/crypto"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/orm"
	"github.com/iov-one/multidist/x/cash"
	"github.com/iov-one/multidist/x/ledger"
	"github.com/iov-one/multidist/x/sigs"
)

// QueryModels runs an abci query and returns the key value pairs found.
func (c *Client) QueryModels(path string, data []byte) ([]multidist.Model, error) {
	res := c.Query(RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return app.JoinResults(&keys, &values)
}

// queryOne loads the single model stored under key. ErrNotFound is
// returned when nothing is stored.
func (c *Client) queryOne(path string, key []byte, dest orm.Model) error {
	models, err := c.QueryModels(path, key)
	if err != nil {
		return err
	}
	switch len(models) {
	case 0:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", path, key)
	case 1:
		return dest.Unmarshal(models[0].Value)
	default:
		return errors.Wrapf(errors.ErrState, "%s %X: %d results", path, key, len(models))
	}
}

// Collection returns the collection stored under given key.
func (c *Client) Collection(key multidist.Address) (*ledger.Collection, error) {
	var coll ledger.Collection
	if err := c.queryOne("/collections", key, &coll); err != nil {
		return nil, err
	}
	return &coll, nil
}

// Distribution returns the distribution stored under given key.
func (c *Client) Distribution(key multidist.Address) (*ledger.Distribution, error) {
	var dist ledger.Distribution
	if err := c.queryOne("/distributions", key, &dist); err != nil {
		return nil, err
	}
	return &dist, nil
}

// Distributions lists all distributions attached to a collection.
func (c *Client) Distributions(collection multidist.Address) ([]*ledger.Distribution, error) {
	models, err := c.QueryModels("/distributions/collection", collection)
	if err != nil {
		return nil, err
	}
	dists := make([]*ledger.Distribution, len(models))
	for i, m := range models {
		dists[i] = new(ledger.Distribution)
		if err := dists[i].Unmarshal(m.Value); err != nil {
			return nil, err
		}
	}
	return dists, nil
}

// Deposits lists the user states of all depositors of a collection.
func (c *Client) Deposits(collection multidist.Address) ([]*ledger.CollectionUserState, error) {
	models, err := c.QueryModels("/collections/users?"+multidist.PrefixQueryMod, collection)
	if err != nil {
		return nil, err
	}
	users := make([]*ledger.CollectionUserState, len(models))
	for i, m := range models {
		users[i] = new(ledger.CollectionUserState)
		if err := users[i].Unmarshal(m.Value); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// Balance returns all coins held by given address. An unknown address
// holds nothing.
func (c *Client) Balance(addr multidist.Address) (coin.Coins, error) {
	var set cash.Set
	switch err := c.queryOne("/wallets", addr, &set); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return set.Coins, nil
}

// NextSequence returns the sequence the given key must sign its next
// transaction with.
func (c *Client) NextSequence(pub *crypto.PublicKey) (int64, error) {
	var user sigs.UserData
	switch err := c.queryOne("/auth", pub.Address(), &user); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return user.Sequence, nil
}
