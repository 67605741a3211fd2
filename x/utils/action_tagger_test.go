package utils

import (
	"context"
	"testing"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/store"
	"github.com/iov-one/multidist/weavetest"
	"github.com/iov-one/multidist/weavetest/assert"
	common "github.com/tendermint/tendermint/libs/common"
)

func TestActionTagger(t *testing.T) {
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "ledger/claim"}}

	cases := map[string]struct {
		handler *weavetest.Handler
		wantErr *errors.Error
		tags    []common.KVPair
	}{
		"simple call": {
			handler: &weavetest.Handler{},
			tags:    []common.KVPair{multidist.Tag(ActionKey, []byte("ledger/claim"))},
		},
		"passes through error": {
			handler: &weavetest.Handler{DeliverErr: errors.ErrHuman},
			wantErr: errors.ErrHuman,
		},
		"tags are additive": {
			handler: &weavetest.Handler{
				DeliverResult: multidist.DeliverResult{Tags: []common.KVPair{multidist.Tag("ledger.depositor", []byte("AB"))}},
			},
			tags: []common.KVPair{
				multidist.Tag("ledger.depositor", []byte("AB")),
				multidist.Tag(ActionKey, []byte("ledger/claim")),
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := weavetest.Decorate(tc.handler, NewActionTagger())
			res, err := h.Deliver(context.Background(), store.MemStore(), tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.tags, res.Tags)
		})
	}
}
