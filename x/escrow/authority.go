package escrow

import (
	"context"
	"encoding/binary"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x"
)

const (
	derivationExt  = "escrow"
	derivationType = "seed"
)

func seedBytes(seed uint64) []byte {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, seed)
	return raw
}

// Derive returns the address of the escrow opened under seed together with
// the nonce that makes the derivation valid.
func Derive(seed uint64) (weave.Address, uint8, error) {
	c, nonce, err := weave.DeriveCondition(derivationExt, derivationType, seedBytes(seed))
	if err != nil {
		return nil, 0, err
	}
	return c.Address(), nonce, nil
}

// Authority allows to act on behalf of an escrow address. It can only be
// created from the seed and the canonical nonce of that address and it holds
// no secret.
type Authority struct {
	seed  uint64
	nonce uint8
	cond  weave.Condition
}

// NewAuthority returns the authority of the escrow derived from seed. It
// fails with ErrUnauthorized if nonce is not the canonical nonce of seed.
func NewAuthority(seed uint64, nonce uint8) (Authority, error) {
	c, err := weave.VerifyDerivation(derivationExt, derivationType, seedBytes(seed), nonce)
	if err != nil {
		return Authority{}, err
	}
	return Authority{seed: seed, nonce: nonce, cond: c}, nil
}

// Condition is the condition the authority fulfills.
func (a Authority) Condition() weave.Condition {
	return a.cond
}

// Address is the escrow address the authority acts for.
func (a Authority) Address() weave.Address {
	if a.cond == nil {
		return nil
	}
	return a.cond.Address()
}

// authorizeAs returns the authority for address if it is the address
// derived from seed and nonce.
func authorizeAs(address weave.Address, seed uint64, nonce uint8) (Authority, error) {
	a, err := NewAuthority(seed, nonce)
	if err != nil {
		return Authority{}, err
	}
	if err := requireAddressMatch(a.Address(), address); err != nil {
		return Authority{}, err
	}
	return a, nil
}

type contextKey int // local to the escrow module

const (
	contextKeyAuthority contextKey = iota
)

// withAuthority is private, as only this package can act for an escrow.
func withAuthority(ctx weave.Context, a Authority) weave.Context {
	return context.WithValue(ctx, contextKeyAuthority, a)
}

// Authenticate reveals the escrow authority placed on the context by the
// controller. Chain it with the signature authenticator so that cash and
// nft accept transfers made on behalf of an escrow.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the escrow condition if any.
func (Authenticate) GetConditions(ctx weave.Context) []weave.Condition {
	// (val, ok) form to return nil instead of panic if unset
	a, _ := ctx.Value(contextKeyAuthority).(Authority)
	if a.cond == nil {
		return nil
	}
	return []weave.Condition{a.cond}
}

// HasAddress returns true iff this address is in GetConditions
func (a Authenticate) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// requireSigner fails with ErrUnauthorized unless expected signed the
// transaction.
func requireSigner(ctx weave.Context, auth x.Authenticator, expected weave.Address) error {
	if len(expected) == 0 || !auth.HasAddress(ctx, expected) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature missing", expected)
	}
	return nil
}

// requireAddressMatch fails with ErrAddressMismatch unless supplied is the
// expected address.
func requireAddressMatch(expected, supplied weave.Address) error {
	if !expected.Equals(supplied) {
		return errors.Wrapf(ErrAddressMismatch, "want %s, got %s", expected, supplied)
	}
	return nil
}
