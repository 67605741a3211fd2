package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/multidist"
	"github.com/iov-one/multidist/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts delivered transactions by message path and result code,
// and observes how long they take.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ multidist.Decorator = (*Metrics)(nil)

// NewMetrics returns a decorator with metrics named under given namespace.
// The collectors must be registered with Register before they are exposed.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		txs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Number of delivered transactions.",
			},
			[]string{"path", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transaction_duration_seconds",
				Help:      "Time spent delivering a transaction.",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"path"},
		),
	}
}

// Register adds all collectors to the registry.
func (m *Metrics) Register(r prometheus.Registerer) error {
	if err := r.Register(m.txs); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := r.Register(m.duration); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (m *Metrics) Check(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Checker) (*multidist.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (m *Metrics) Deliver(ctx multidist.Context, db multidist.KVStore, tx multidist.Tx, next multidist.Deliverer) (*multidist.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	path := txPath(tx)
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	m.txs.WithLabelValues(path, resultCode(err)).Inc()
	return res, err
}

func resultCode(err error) string {
	if err == nil {
		return "0"
	}
	code, _ := errors.ABCIInfo(err, false)
	return strconv.FormatUint(uint64(code), 10)
}
