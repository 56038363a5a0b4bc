package nft

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x"
)

// RegisterRoutes will instantiate and register all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, registry Registry) {
	r.Handle(pathTransferMsg, NewTransferHandler(auth, registry))
}

// RegisterQuery will register the asset bucket as "/assets"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("assets", qr)
}

// TransferHandler changes asset ownership.
type TransferHandler struct {
	auth     x.Authenticator
	registry Registry
}

var _ weave.Handler = TransferHandler{}

// NewTransferHandler creates a handler for TransferMsg
func NewTransferHandler(auth x.Authenticator, registry Registry) TransferHandler {
	return TransferHandler{auth: auth, registry: registry}
}

// Check makes sure the asset exists and the owner signed the transaction.
func (h TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	owner, err := h.registry.Owner(db, msg.ID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "asset owner signature missing")
	}
	return &weave.CheckResult{GasAllocated: transferCost}, nil
}

// Deliver transfers the asset.
func (h TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.registry.Transfer(ctx, db, msg.ID, msg.NewOwner); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: msg.ID}, nil
}
