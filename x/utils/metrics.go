package utils

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// Metrics is a decorator that counts processed transactions and measures
// their duration, labeled by message path and ABCI result code.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ weave.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator. All collectors are registered with
// given registerer, which may be prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) Metrics {
	m := Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "escrowd",
			Subsystem: "tx",
			Name:      "processed_total",
			Help:      "Total transactions processed, by phase, message path and result code.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "escrowd",
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Time spent processing a transaction, by phase and message path.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase", "path"}),
	}
	reg.MustRegister(m.txs, m.duration)
	return m
}

// Check records the check phase.
func (m Metrics) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver records the deliver phase.
func (m Metrics) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m Metrics) observe(phase string, tx weave.Tx, start time.Time, err error) {
	path := weave.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(phase, path, codeLabel(code)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}

func codeLabel(code uint32) string {
	if code == errors.SuccessABCICode {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}
