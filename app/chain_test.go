package app

import (
	"context"
	"testing"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/store"
	"github.com/iov-one/multidist/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderDecorator records its name on every call.
type orderDecorator struct {
	name string
	seen *[]string
}

func (d orderDecorator) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Checker) (*multidist.CheckResult, error) {
	*d.seen = append(*d.seen, d.name)
	return next.Check(ctx, db, tx)
}

func (d orderDecorator) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Deliverer) (*multidist.DeliverResult, error) {
	*d.seen = append(*d.seen, d.name)
	return next.Deliver(ctx, db, tx)
}

func TestChain(t *testing.T) {
	var seen []string
	var nilDecorator *orderDecorator

	h := &weavetest.Handler{}
	stack := ChainDecorators(
		orderDecorator{name: "a", seen: &seen},
		nil,
		orderDecorator{name: "b", seen: &seen},
	).Chain(
		nilDecorator,
		orderDecorator{name: "c", seen: &seen},
	).WithHandler(h)

	_, err := stack.Check(context.Background(), store.MemStore(), nil)
	require.NoError(t, err)
	_, err = stack.Deliver(context.Background(), store.MemStore(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, seen)
	assert.Equal(t, 2, h.CallCount())
}
