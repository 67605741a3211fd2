package utils

import (
	"context"
	"testing"

	"github.com/iov-one/multidist/errors"
	"github.com/iov-one/multidist/store"
	"github.com/iov-one/multidist/weavetest"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	h := &weavetest.Handler{Panic: "boom"}
	ctx := context.Background()
	db := store.MemStore()

	assert.Panics(t, func() { _, _ = h.Check(ctx, db, nil) })

	_, err := NewRecovery().Check(ctx, db, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = NewRecovery().Deliver(ctx, db, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}
