package sigs

import (
	"context"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/x"
)

type signersKey struct{}

// withSigners stores the verified signers. Only the Decorator may call it.
func withSigners(ctx weave.Context, signers []weave.Condition) weave.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate exposes the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the signature conditions in signature order, or
// nil when the Decorator did not run.
func (Authenticate) GetConditions(ctx weave.Context) []weave.Condition {
	signers, _ := ctx.Value(signersKey{}).([]weave.Condition)
	return signers
}

// HasAddress reports whether the key behind addr signed the transaction.
func (a Authenticate) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
