package multidist

import (
	"testing"

	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/weavetest/assert"
	common "github.com/tendermint/tendermint/libs/common"
)

func TestDeliverResultRoundTrip(t *testing.T) {
	res := &DeliverResult{
		Data:    []byte{0, 0, 0, 0, 0, 0, 0, 9},
		Log:     "claimed",
		Tags:    []common.KVPair{Tag("ledger.depositor", []byte("ABCD"))},
		GasUsed: 3,
	}
	got, err := ParseDeliverOrError(DeliverOrError(res, nil, false))
	assert.Nil(t, err)
	assert.Equal(t, res, got)

	abciRes := DeliverOrError(nil, errors.Wrap(errors.ErrCapacity, "commit"), false)
	assert.Equal(t, errors.ErrCapacity.ABCICode(), abciRes.Code)
	_, err = ParseDeliverOrError(abciRes)
	assert.IsErr(t, errors.ErrCapacity, err)
}

func TestCheckOrError(t *testing.T) {
	res := CheckOrError(NewCheck(10, "ok"), nil, false)
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, int64(10), res.GasUsed)

	res = CheckOrError(nil, errors.Wrap(errors.ErrMismatch, "vault"), false)
	assert.Equal(t, errors.ErrMismatch.ABCICode(), res.Code)
	assert.Equal(t, "vault: record mismatch", res.Log)
}

func TestReadOptions(t *testing.T) {
	opts := Options{
		"ledger": []byte(`{"count": 3}`),
		"broken": []byte(`{`),
	}
	var dest struct {
		Count int `json:"count"`
	}
	assert.Nil(t, opts.ReadOptions("ledger", &dest))
	assert.Equal(t, 3, dest.Count)

	dest.Count = 0
	assert.Nil(t, opts.ReadOptions("missing", &dest))
	assert.Equal(t, 0, dest.Count)

	assert.IsErr(t, errors.ErrInput, opts.ReadOptions("broken", &dest))
}

func TestQueryRouter(t *testing.T) {
	r := NewQueryRouter()
	r.Register("/one", nil)
	assert.Panics(t, func() { r.Register("/one", nil) })
	assert.Equal(t, nil, r.Handler("/two"))
}
