package app

import (
	"sync"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/iov-one/nftescrow/errors"
)

// Ledger runs a BaseApp without a consensus engine. Each Apply call is a
// block of its own. Calls are serialized, so a Ledger can be shared between
// goroutines.
type Ledger struct {
	mu  sync.Mutex
	app BaseApp
}

// NewLedger wraps app.
func NewLedger(app BaseApp) *Ledger {
	return &Ledger{app: app}
}

// Init loads the genesis into an empty ledger and commits it. Unlike
// InitChain it reports failures instead of panicking.
func (l *Ledger) Init(gen *Genesis) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.app.loadGenesis(gen.AppState, gen.ChainID, l.app.initializer); err != nil {
		return err
	}
	l.app.Commit()
	return nil
}

// Apply checks the transaction and, if it passes, delivers it as the only
// transaction of a new block that is then committed. A check failure is
// reported with the check code and log and nothing is committed.
func (l *Ledger) Apply(txBytes []byte) abci.ResponseDeliverTx {
	l.mu.Lock()
	defer l.mu.Unlock()

	if chk := l.app.CheckTx(txBytes); chk.Code != errors.SuccessABCICode {
		return abci.ResponseDeliverTx{Code: chk.Code, Log: chk.Log}
	}

	height := l.app.store.CommitInfo().Version + 1
	l.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: l.app.GetChainID(), Height: height},
	})
	res := l.app.DeliverTx(txBytes)
	l.app.EndBlock(abci.RequestEndBlock{Height: height})
	l.app.Commit()
	return res
}

// Query runs a query against the last committed state.
func (l *Ledger) Query(path string, data []byte) abci.ResponseQuery {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.app.Query(abci.RequestQuery{Path: path, Data: data})
}

// ChainID returns the chain ID set by the genesis, empty before Init.
func (l *Ledger) ChainID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.app.GetChainID()
}

// Height returns the number of the last committed block.
func (l *Ledger) Height() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.app.store.CommitInfo().Version
}
