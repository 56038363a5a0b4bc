package cash

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x"
)

// RegisterRoutes binds the SendMsg handler.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery exposes currencies under "/currencies" and balances under
// "/accounts".
func RegisterQuery(qr weave.QueryRouter) {
	NewCurrencyBucket().Register("currencies", qr)
	NewAccountBucket().Register("accounts", qr)
}

// SendHandler moves tokens between two accounts. Only the source account
// owner can authorize a send.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ weave.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check validates the message and its authorization. Balances are only
// verified on delivery.
func (h SendHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(ctx, db, msg.Currency, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "transfer")
	}
	return &weave.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx weave.Context, tx weave.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source account owner must sign")
	}
	return &msg, nil
}
