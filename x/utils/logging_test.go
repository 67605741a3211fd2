package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/store"
	"github.com/iov-one/multidist/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := multidist.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "ledger/fund_distribution"}}

	_, err := NewLogging().Deliver(ctx, store.MemStore(), tx, &weavetest.Handler{
		DeliverErr: errors.ErrAmount,
	})
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "ledger/fund_distribution")
	assert.Contains(t, buf.String(), "invalid amount")

	buf.Reset()
	_, err = NewLogging().Deliver(ctx, store.MemStore(), tx, &weavetest.Handler{
		DeliverResult: multidist.DeliverResult{Log: "funded"},
	})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "funded")
}
