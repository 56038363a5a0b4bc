package utils

import (
	"time"

	"github.com/tendermint/tendermint/libs/log"

	weave "github.com/iov-one/nftescrow"
)

// Logging writes one log line per processed transaction with its message
// path and processing time. Failures are logged as errors. Successful
// deliveries are logged at info level and successful checks at debug
// level.
type Logging struct{}

var _ weave.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var info string
	if err == nil {
		info = res.Log
	}
	logger := txLogger(ctx, tx, start, err)
	if err == nil {
		logger.Debug(info)
	}
	return res, err
}

func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var info string
	if err == nil {
		info = res.Log
	}
	logger := txLogger(ctx, tx, start, err)
	if err == nil {
		logger.Info(info)
	}
	return res, err
}

// txLogger returns the context logger annotated with the transaction
// details. A failure is logged right away.
func txLogger(ctx weave.Context, tx weave.Tx, start time.Time, err error) log.Logger {
	logger := weave.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if tx != nil {
		logger = logger.With("path", weave.GetPath(tx))
	}
	if err != nil {
		// The message may be empty, the entry is still useful for its fields.
		logger.Error("transaction failed", "err", err)
	}
	return logger
}
