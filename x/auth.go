package x

import (
	weave "github.com/iov-one/nftescrow"
)

// Authenticator tells which conditions authorized the transaction carried
// by a context. Handlers receive one in their constructor so that signature
// checks and escrow derived authority can be combined freely.
type Authenticator interface {
	// GetConditions returns all conditions satisfied in ctx, in order.
	GetConditions(weave.Context) []weave.Condition
	// HasAddress reports whether any satisfied condition has given address.
	HasAddress(weave.Context, weave.Address) bool
}

// MultiAuth is the union of several authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

// ChainAuth combines authenticators. The conditions of the first one come
// first.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx weave.Context) []weave.Condition {
	var all []weave.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first satisfied condition or nil. The escrow
// maker is the main signer of the Open transaction.
func MainSigner(ctx weave.Context, auth Authenticator) weave.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// GetAddresses returns the addresses of all satisfied conditions.
func GetAddresses(ctx weave.Context, auth Authenticator) []weave.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]weave.Address, 0, len(conds))
	for _, c := range conds {
		addrs = append(addrs, c.Address())
	}
	return addrs
}
