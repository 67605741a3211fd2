package utils

import (
	"github.com/iov-one/multidist"
)

// ActionKey is the tag key set by ActionTagger.
const ActionKey = "action"

// ActionTagger adds an `action = msg.Path()` tag to every successful
// delivery, so clients can subscribe to a single kind of operation, for
// example all ledger claims.
type ActionTagger struct{}

var _ multidist.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Checker) (*multidist.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Deliverer) (*multidist.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, multidist.Tag(ActionKey, []byte(msg.Path())))
	return res, nil
}
