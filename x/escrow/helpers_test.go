package escrow

import (
	"context"
	"testing"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/store"
	"github.com/iov-one/nftescrow/weavetest"
	"github.com/iov-one/nftescrow/weavetest/assert"
	"github.com/iov-one/nftescrow/x"
	"github.com/iov-one/nftescrow/x/cash"
	"github.com/iov-one/nftescrow/x/nft"
)

// fixture wires the escrow controller with real cash and nft extensions
// over an in-memory store.
type fixture struct {
	t    testing.TB
	db   weave.CacheableKVStore
	sigs *weavetest.CtxAuth
	auth x.Authenticator
	cash cash.BaseController
	nft  nft.BaseRegistry
	ctrl BaseController
	usdc weave.Address
}

func newFixture(t testing.TB) *fixture {
	t.Helper()

	sigs := &weavetest.CtxAuth{Key: "sigs"}
	auth := x.ChainAuth(sigs, Authenticate{})
	cashCtrl := cash.NewController(auth)
	registry := nft.NewRegistry(auth)

	f := &fixture{
		t:    t,
		db:   store.MemStore(),
		sigs: sigs,
		auth: auth,
		cash: cashCtrl,
		nft:  registry,
		ctrl: NewController(auth, cashCtrl, registry),
		usdc: weavetest.NewCondition().Address(),
	}
	err := cashCtrl.RegisterCurrency(f.db, &cash.Currency{ID: f.usdc, Ticker: "USDC", Decimals: 6})
	assert.Nil(t, err)
	return f
}

func (f *fixture) as(signers ...weave.Condition) weave.Context {
	return f.sigs.SetConditions(context.Background(), signers...)
}

func (f *fixture) fund(owner weave.Condition, amount uint64) {
	f.t.Helper()
	assert.Nil(f.t, f.cash.Mint(f.db, f.usdc, owner.Address(), amount))
}

func (f *fixture) balance(owner weave.Address) uint64 {
	f.t.Helper()
	b, err := f.cash.Balance(f.db, f.usdc, owner)
	assert.Nil(f.t, err)
	return b
}

func (f *fixture) issue(owner weave.Condition) weave.Address {
	f.t.Helper()
	id := weavetest.NewCondition().Address()
	assert.Nil(f.t, f.nft.Issue(f.db, &nft.Asset{ID: id, Owner: owner.Address(), Name: "X"}))
	return id
}

func (f *fixture) ownerOf(asset weave.Address) weave.Address {
	f.t.Helper()
	owner, err := f.nft.Owner(f.db, asset)
	assert.Nil(f.t, err)
	return owner
}

func (f *fixture) setBond(amount uint64) {
	f.t.Helper()
	assert.Nil(f.t, SaveConfig(f.db, &Config{Bond: amount, BondCurrency: f.usdc}))
}
