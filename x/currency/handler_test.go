package currency

import (
	"context"
	"testing"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/store"
	"github.com/iov-one/multidist/weavetest"
	"github.com/iov-one/multidist/weavetest/assert"
)

func TestCreateTokenInfoHandler(t *testing.T) {
	signer := weavetest.NewCondition()

	cases := map[string]struct {
		signer    multidist.Condition
		initState []struct{ ticker, name string }
		msg       multidist.Msg
		wantErr   *errors.Error
		wantOwner multidist.Address
	}{
		"create fixed supply token": {
			signer: signer,
			msg:    &CreateMsg{Metadata: &multidist.Metadata{Schema: 1}, Ticker: "DOGE", Name: "doge coin"},
		},
		"create mintable token": {
			signer:    signer,
			msg:       &CreateMsg{Metadata: &multidist.Metadata{Schema: 1}, Ticker: "DOGE", Name: "doge coin", Mintable: true},
			wantOwner: signer.Address(),
		},
		"ticker already registered": {
			signer:    signer,
			initState: []struct{ ticker, name string }{{"DOGE", "the doge"}},
			msg:       &CreateMsg{Metadata: &multidist.Metadata{Schema: 1}, Ticker: "DOGE", Name: "doge coin"},
			wantErr:   errors.ErrDuplicate,
		},
		"missing signature": {
			msg:     &CreateMsg{Metadata: &multidist.Metadata{Schema: 1}, Ticker: "DOGE", Name: "doge coin"},
			wantErr: errors.ErrUnauthorized,
		},
		"invalid message": {
			signer:  signer,
			msg:     &CreateMsg{Metadata: &multidist.Metadata{Schema: 1}, Ticker: "doge", Name: "doge coin"},
			wantErr: errors.ErrCurrency,
		},
		"reserved ticker prefix": {
			signer:  signer,
			msg:     &CreateMsg{Metadata: &multidist.Metadata{Schema: 1}, Ticker: ReservedPrefix + "4A62", Name: "my receipt", Mintable: true},
			wantErr: errors.ErrCurrency,
		},
		"unsupported message": {
			signer:  signer,
			msg:     &weavetest.Msg{RoutePath: "foo/bar"},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			for _, ti := range tc.initState {
				assert.Nil(t, Register(db, ti.ticker, ti.name, nil))
			}
			auth := &weavetest.Auth{}
			if tc.signer != nil {
				auth.Signer = tc.signer
			}
			h := newCreateTokenInfoHandler(auth)
			tx := &weavetest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			_, err := h.Check(context.Background(), cache, tx)
			cache.Discard()
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			_, err = h.Deliver(context.Background(), db, tx)
			assert.Nil(t, err)

			ti, err := NewTokenInfoBucket().Get(db, "DOGE")
			assert.Nil(t, err)
			assert.Equal(t, "doge coin", ti.Name)
			assert.Equal(t, tc.wantOwner, ti.Owner)
		})
	}
}

func TestAssertMinter(t *testing.T) {
	db := store.MemStore()
	owner := weavetest.NewCondition().Address()
	other := weavetest.NewCondition().Address()

	assert.Nil(t, Register(db, "MINT", "mintable", owner))
	assert.Nil(t, Register(db, "FIXED", "fixed supply", nil))

	assert.Nil(t, AssertMinter(db, "MINT", owner))
	assert.IsErr(t, errors.ErrCurrency, AssertMinter(db, "MINT", other))
	assert.IsErr(t, errors.ErrCurrency, AssertMinter(db, "FIXED", owner))
	assert.IsErr(t, errors.ErrCurrency, AssertMinter(db, "UNKNOWN", owner))

	assert.IsErr(t, errors.ErrDuplicate, Register(db, "MINT", "again", owner))
	assert.IsErr(t, errors.ErrCurrency, Register(db, "x", "bad ticker", owner))
}
