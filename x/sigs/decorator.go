/*
Package sigs authenticates escrow transactions by their ed25519
signatures and keeps a per signer sequence so that a signed
transaction can be applied only once.
*/
package sigs

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// Gas charged for every signature that was verified.
const signatureVerifyCost = 500

// RegisterQuery exposes signer accounts under "/auth".
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and stores the signing
// conditions in the context for the handlers further down the chain.
// Transactions that do not carry signatures are passed through untouched.
type Decorator struct {
	allowMissingSigs bool
}

var _ weave.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects signed transactions
// without at least one signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy of the decorator that accepts a signed
// transaction with an empty signature list.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	ctx, verified, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// Only valid signatures are paid for, an invalid one fails above.
	res.GasPayment += int64(verified * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate verifies all signatures, bumps the signer sequences in db and
// returns the context extended with the signers together with their count.
func (d Decorator) authenticate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, stx, weave.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if len(signers) > 0 {
		addrs := make([]string, len(signers))
		for i, s := range signers {
			addrs[i] = s.Address().String()
		}
		ctx = weave.WithLogInfo(ctx, "signers", addrs)
	}
	return withSigners(ctx, signers), len(signers), nil
}
