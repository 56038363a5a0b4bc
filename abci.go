package weave

import (
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successfully delivered transaction.
// Failures are always reported as an error instead.
type DeliverResult struct {
	// Data is the machine readable result, for example the address of a
	// newly opened escrow.
	Data []byte
	Log  string
	// Tags index the transaction so clients can search for it.
	Tags    []common.KVPair
	GasUsed int64
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// CheckResult is the outcome of a successfully checked transaction.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated caps the work the transaction may perform.
	GasAllocated int64
	// GasPayment is what the transaction pays, signature checks included.
	GasPayment int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// Tag builds a single result tag.
func Tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
