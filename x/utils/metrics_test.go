package utils

import (
	"context"
	"testing"

	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/store"
	"github.com/iov-one/multidist/weavetest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics("test")
	require.NoError(t, m.Register(prometheus.NewRegistry()))

	ok := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "ledger/commit"}}
	db := store.MemStore()
	ctx := context.Background()

	_, err := m.Deliver(ctx, db, ok, &weavetest.Handler{})
	require.NoError(t, err)
	_, err = m.Deliver(ctx, db, ok, &weavetest.Handler{})
	require.NoError(t, err)
	_, err = m.Deliver(ctx, db, ok, &weavetest.Handler{DeliverErr: errors.ErrCapacity})
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.txs.WithLabelValues("ledger/commit", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("ledger/commit", "31")))

	// Check is not counted.
	_, err = m.Check(ctx, db, ok, &weavetest.Handler{})
	require.NoError(t, err)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.txs.WithLabelValues("ledger/commit", "0")))
}

func TestMetricsRegisterTwice(t *testing.T) {
	r := prometheus.NewRegistry()
	require.NoError(t, NewMetrics("dup").Register(r))
	assert.Error(t, NewMetrics("dup").Register(r))
}
