package utils

import (
	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
)

// Recovery turns a panic raised down the stack into an ErrPanic error.
type Recovery struct{}

var _ multidist.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Checker) (_ *multidist.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Deliverer) (_ *multidist.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
