package escrow

import (
	common "github.com/tendermint/tendermint/libs/common"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x"
)

const (
	// TagKey is the result tag carrying the escrow address.
	TagKey = "escrow"

	openEscrowCost   int64 = 300
	listEscrowCost   int64 = 100
	takeEscrowCost   int64 = 200
	cancelEscrowCost int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathOpenMsg, OpenEscrowHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathListMsg, ListEscrowHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTakeMsg, TakeEscrowHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathCancelMsg, CancelEscrowHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// OpenEscrowHandler will set a name for objects in this bucket
type OpenEscrowHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = OpenEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h OpenEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: openEscrowCost}, nil
}

// Deliver opens the escrow and returns its address.
func (h OpenEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	address, err := h.ctrl.Open(ctx, db, msg.Seed, msg.Maker, msg.Currency, msg.Asset, msg.Price)
	if err != nil {
		return nil, err
	}
	return result(address), nil
}

// validate does all common pre-processing between Check and Deliver.
func (h OpenEscrowHandler) validate(ctx weave.Context, tx weave.Tx) (*OpenMsg, error) {
	var msg OpenMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	maker, err := signerOrDefault(ctx, h.auth, msg.Maker)
	if err != nil {
		return nil, err
	}
	msg.Maker = maker
	return &msg, nil
}

// ListEscrowHandler moves the asset into the escrow.
type ListEscrowHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = ListEscrowHandler{}

func (h ListEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: listEscrowCost}, nil
}

func (h ListEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.List(ctx, db, msg.Seed, msg.Maker, msg.Asset); err != nil {
		return nil, err
	}
	address, _, err := Derive(msg.Seed)
	if err != nil {
		return nil, err
	}
	return result(address), nil
}

func (h ListEscrowHandler) validate(ctx weave.Context, tx weave.Tx) (*ListMsg, error) {
	var msg ListMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	maker, err := signerOrDefault(ctx, h.auth, msg.Maker)
	if err != nil {
		return nil, err
	}
	msg.Maker = maker
	return &msg, nil
}

// TakeEscrowHandler buys the escrowed asset.
type TakeEscrowHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = TakeEscrowHandler{}

func (h TakeEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: takeEscrowCost}, nil
}

func (h TakeEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, address, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Take(ctx, db, msg.Seed, msg.Taker); err != nil {
		return nil, err
	}
	return result(address), nil
}

func (h TakeEscrowHandler) validate(ctx weave.Context, tx weave.Tx) (*TakeMsg, weave.Address, error) {
	var msg TakeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	taker, err := signerOrDefault(ctx, h.auth, msg.Taker)
	if err != nil {
		return nil, nil, err
	}
	msg.Taker = taker
	address, err := expectedAddress(msg.Seed, msg.Address)
	if err != nil {
		return nil, nil, err
	}
	return &msg, address, nil
}

// CancelEscrowHandler returns the asset to the maker.
type CancelEscrowHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = CancelEscrowHandler{}

func (h CancelEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: cancelEscrowCost}, nil
}

func (h CancelEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, address, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Cancel(ctx, db, msg.Seed, msg.Maker); err != nil {
		return nil, err
	}
	return result(address), nil
}

func (h CancelEscrowHandler) validate(ctx weave.Context, tx weave.Tx) (*CancelMsg, weave.Address, error) {
	var msg CancelMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	maker, err := signerOrDefault(ctx, h.auth, msg.Maker)
	if err != nil {
		return nil, nil, err
	}
	msg.Maker = maker
	address, err := expectedAddress(msg.Seed, msg.Address)
	if err != nil {
		return nil, nil, err
	}
	return &msg, address, nil
}

// signerOrDefault returns addr, or the main signer if addr is empty. The
// result must have signed the transaction.
func signerOrDefault(ctx weave.Context, auth x.Authenticator, addr weave.Address) (weave.Address, error) {
	if len(addr) == 0 {
		signer := x.MainSigner(ctx, auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		addr = signer.Address()
	}
	if err := requireSigner(ctx, auth, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// expectedAddress derives the escrow address of seed and compares it with
// supplied, if any.
func expectedAddress(seed uint64, supplied weave.Address) (weave.Address, error) {
	address, _, err := Derive(seed)
	if err != nil {
		return nil, err
	}
	if len(supplied) != 0 {
		if err := requireAddressMatch(address, supplied); err != nil {
			return nil, err
		}
	}
	return address, nil
}

func result(address weave.Address) *weave.DeliverResult {
	return &weave.DeliverResult{
		Data: address,
		Tags: []common.KVPair{weave.Tag(TagKey, address.String())},
	}
}
