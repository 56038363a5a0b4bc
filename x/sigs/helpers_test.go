package sigs

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/weavetest"
)

// signedTx carries a routed test message with any number of signatures.
// The message payload doubles as the sign bytes.
type signedTx struct {
	weave.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func newSignedTx(payload []byte) *signedTx {
	return &signedTx{
		Tx: &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/test", Serialized: payload}},
	}
}

func (tx *signedTx) GetSignatures() []*StdSignature { return tx.Signatures }

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// signerRecorder remembers the conditions authenticated for the last call.
type signerRecorder struct {
	seen []weave.Condition
}

func (r *signerRecorder) Check(ctx weave.Context, _ weave.KVStore, _ weave.Tx) (*weave.CheckResult, error) {
	r.seen = Authenticate{}.GetConditions(ctx)
	return &weave.CheckResult{}, nil
}

func (r *signerRecorder) Deliver(ctx weave.Context, _ weave.KVStore, _ weave.Tx) (*weave.DeliverResult, error) {
	r.seen = Authenticate{}.GetConditions(ctx)
	return &weave.DeliverResult{}, nil
}
