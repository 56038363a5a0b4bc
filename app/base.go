package app

import (
	abci "github.com/tendermint/tendermint/abci/types"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// BaseApp is a StoreApp that also decodes and runs transactions through
// the handler stack.
type BaseApp struct {
	*StoreApp
	decoder weave.TxDecoder
	handler weave.Handler
	// debug exposes internal error messages in responses.
	debug bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder weave.TxDecoder, handler weave.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes a transaction on the block state.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.prepare(raw, "deliver_tx")
	if err != nil {
		return DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	if err != nil {
		return DeliverTxError(err, b.debug)
	}
	return res.ToABCI()
}

// CheckTx validates a transaction against the mempool state.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.prepare(raw, "check_tx")
	if err != nil {
		return CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	if err != nil {
		return CheckTxError(err, b.debug)
	}
	return res.ToABCI()
}

// prepare decodes raw and returns the block context annotated for logging.
// A panicking decoder is reported as an error.
func (b BaseApp) prepare(raw []byte, call string) (ctx weave.Context, tx weave.Tx, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(raw); err != nil {
		return nil, nil, err
	}
	ctx = weave.WithLogInfo(b.BlockContext(), "call", call, "path", weave.GetPath(tx))
	return ctx, tx, nil
}

// DeliverTxError builds the response of a failed delivery. The code of a
// registered error is kept.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError builds the response of a failed check.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}
