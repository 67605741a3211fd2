package utils

import (
	"time"

	"github.com/iov-one/multidist"
)

// Logging writes a log entry for every transaction that passes through.
// Failed deliveries are errors, successful ones are info. Check results
// are only logged at debug level.
type Logging struct{}

var _ multidist.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Checker) (*multidist.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var log string
	if res != nil {
		log = res.Log
	}
	logResult(ctx, tx, start, log, err, true)
	return res, err
}

func (Logging) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Deliverer) (*multidist.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var log string
	if res != nil {
		log = res.Log
	}
	logResult(ctx, tx, start, log, err, false)
	return res, err
}

func logResult(ctx multidist.Context, tx multidist.Tx, start time.Time, msg string, err error, check bool) {
	logger := multidist.GetLogger(ctx).With(
		"path", txPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}

// txPath returns the path of the transaction message, or an empty string
// if the message cannot be read.
func txPath(tx multidist.Tx) string {
	if tx == nil {
		return ""
	}
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return ""
	}
	return msg.Path()
}
