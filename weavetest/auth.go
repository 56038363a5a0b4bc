package weavetest

import (
	"context"
	"fmt"

	weave "github.com/iov-one/nftescrow"
)

// Auth is a mock implementing x.Authenticator interface.
//
// It authenticates Signer and all of Signers, regardless of the context.
type Auth struct {
	// Signer is the main signer. It is always listed last, so tests that
	// need a main signer should use Signer alone.
	Signer weave.Condition

	// Signers represents an authentication of multiple signers.
	Signers []weave.Condition
}

func (a *Auth) GetConditions(weave.Context) []weave.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	all := make([]weave.Condition, 0, len(a.Signers)+1)
	all = append(all, a.Signers...)
	return append(all, a.Signer)
}

func (a *Auth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// Conditions are stored in and read from the context under Key, so a
// single instance can authenticate different signers per call.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context authenticating given conditions.
func (a *CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]weave.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []weave.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []weave.Condition, addr weave.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
