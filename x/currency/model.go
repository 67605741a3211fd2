/*
Package currency keeps the registry of known asset tickers.

Every ticker has a human readable name and an optional owner. Only the owner
of a ticker may mint new units of it. Tickers without an owner are fixed
supply assets, loaded from genesis.
*/
package currency

import (
	"regexp"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/codec"
	"github.com/iov-one/multidist/coin"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/orm"
)

var isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,64}$`).MatchString

// TokenInfo describes a registered ticker.
type TokenInfo struct {
	Metadata *multidist.Metadata
	Name     string
	// Owner is the only address allowed to mint this ticker. Empty when
	// no new units can be created.
	Owner multidist.Address
}

var _ orm.Model = (*TokenInfo)(nil)

func (t *TokenInfo) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	if !isTokenName(t.Name) {
		errs = errors.Append(errs, errors.Field("Name", errors.ErrModel, "invalid token name %q", t.Name))
	}
	if len(t.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", t.Owner.Validate())
	}
	return errs
}

func (t *TokenInfo) Marshal() ([]byte, error) {
	var w codec.Writer
	if t.Metadata != nil {
		w.Message(1, t.Metadata)
	}
	w.String(2, t.Name)
	w.Bytes(3, t.Owner)
	return w.Result()
}

func (t *TokenInfo) Unmarshal(raw []byte) error {
	*t = TokenInfo{}
	r := codec.NewReader(raw)
	for r.Next() {
		var err error
		switch r.Field() {
		case 1:
			t.Metadata = &multidist.Metadata{}
			err = r.Message(t.Metadata)
		case 2:
			t.Name, err = r.String()
		case 3:
			t.Owner, err = r.Bytes()
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return r.Err()
}

// TokenInfoBucket stores TokenInfo instances, using ticker name (currency
// symbol) as the key.
type TokenInfoBucket struct {
	orm.ModelBucket
}

// NewTokenInfoBucket returns a bucket for the ticker registry.
func NewTokenInfoBucket() *TokenInfoBucket {
	return &TokenInfoBucket{
		ModelBucket: orm.NewModelBucket("tokeninfo", &TokenInfo{}),
	}
}

// Get returns the token info of given ticker.
func (b *TokenInfoBucket) Get(db multidist.ReadOnlyKVStore, ticker string) (*TokenInfo, error) {
	var t TokenInfo
	if err := b.One(db, []byte(ticker), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create saves a new ticker. A ticker can be registered only once.
func (b *TokenInfoBucket) Create(db multidist.KVStore, ticker string, t *TokenInfo) error {
	if !coin.IsCC(ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
	}
	switch err := b.Has(db, []byte(ticker)); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "ticker %s", ticker)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Put(db, []byte(ticker), t)
}
