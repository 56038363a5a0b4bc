package escrow

import (
	"encoding/json"
	"testing"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/store"
	"github.com/iov-one/nftescrow/weavetest"
	"github.com/iov-one/nftescrow/weavetest/assert"
	"github.com/iov-one/nftescrow/x/cash"
)

func TestHandlers(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	address, _, err := Derive(seed)
	assert.Nil(t, err)

	type step struct {
		handler        func(f *fixture) weave.Handler
		signers        []weave.Condition
		msg            func(f *fixture, asset weave.Address) weave.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
	}
	open := step{
		handler: func(f *fixture) weave.Handler { return OpenEscrowHandler{auth: f.auth, ctrl: f.ctrl} },
		signers: []weave.Condition{alice},
		msg: func(f *fixture, asset weave.Address) weave.Msg {
			return &OpenMsg{Seed: seed, Currency: f.usdc, Asset: asset, Price: 50}
		},
	}
	list := step{
		handler: func(f *fixture) weave.Handler { return ListEscrowHandler{auth: f.auth, ctrl: f.ctrl} },
		signers: []weave.Condition{alice},
		msg: func(f *fixture, asset weave.Address) weave.Msg {
			return &ListMsg{Seed: seed, Asset: asset}
		},
	}
	take := step{
		handler: func(f *fixture) weave.Handler { return TakeEscrowHandler{auth: f.auth, ctrl: f.ctrl} },
		signers: []weave.Condition{bob},
		msg: func(f *fixture, asset weave.Address) weave.Msg {
			return &TakeMsg{Seed: seed, Address: address}
		},
	}
	cancel := step{
		handler: func(f *fixture) weave.Handler { return CancelEscrowHandler{auth: f.auth, ctrl: f.ctrl} },
		signers: []weave.Condition{alice},
		msg: func(f *fixture, asset weave.Address) weave.Msg {
			return &CancelMsg{Seed: seed, Maker: alice.Address()}
		},
	}

	cases := map[string]struct {
		steps     []step
		wantOwner func(f *fixture) weave.Address
	}{
		"open, list and take": {
			steps:     []step{open, list, take},
			wantOwner: func(*fixture) weave.Address { return bob.Address() },
		},
		"open, list and cancel": {
			steps:     []step{open, list, cancel},
			wantOwner: func(*fixture) weave.Address { return alice.Address() },
		},
		"open and list": {
			steps:     []step{open, list},
			wantOwner: func(*fixture) weave.Address { return address },
		},
		"take with a wrong address": {
			steps: []step{open, list, {
				handler: take.handler,
				signers: []weave.Condition{bob},
				msg: func(f *fixture, asset weave.Address) weave.Msg {
					return &TakeMsg{Seed: seed, Address: weavetest.NewCondition().Address()}
				},
				wantCheckErr:   ErrAddressMismatch,
				wantDeliverErr: ErrAddressMismatch,
			}},
			wantOwner: func(*fixture) weave.Address { return address },
		},
		"cancel by a stranger": {
			steps: []step{open, list, {
				handler:        cancel.handler,
				signers:        []weave.Condition{bob},
				msg:            func(f *fixture, asset weave.Address) weave.Msg { return &CancelMsg{Seed: seed} },
				wantDeliverErr: errors.ErrUnauthorized,
			}},
			wantOwner: func(*fixture) weave.Address { return address },
		},
		"open without a signer": {
			steps: []step{{
				handler:        open.handler,
				msg:            open.msg,
				wantCheckErr:   errors.ErrUnauthorized,
				wantDeliverErr: errors.ErrUnauthorized,
			}},
			wantOwner: func(*fixture) weave.Address { return alice.Address() },
		},
		"open for free": {
			steps: []step{{
				handler: open.handler,
				signers: []weave.Condition{alice},
				msg: func(f *fixture, asset weave.Address) weave.Msg {
					return &OpenMsg{Seed: seed, Currency: f.usdc, Asset: asset}
				},
				wantCheckErr:   errors.ErrInvalidAmount,
				wantDeliverErr: errors.ErrInvalidAmount,
			}},
			wantOwner: func(*fixture) weave.Address { return alice.Address() },
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.fund(bob, 50)
			asset := f.issue(alice)

			for i, s := range tc.steps {
				h := s.handler(f)
				tx := &weavetest.Tx{Msg: s.msg(f, asset)}

				cache := f.db.CacheWrap()
				_, err := h.Check(f.as(s.signers...), cache, tx)
				cache.Discard()
				if !s.wantCheckErr.Is(err) {
					t.Fatalf("step %d: check: want %v error, got %+v", i, s.wantCheckErr, err)
				}

				res, err := h.Deliver(f.as(s.signers...), f.db, tx)
				if !s.wantDeliverErr.Is(err) {
					t.Fatalf("step %d: deliver: want %v error, got %+v", i, s.wantDeliverErr, err)
				}
				if err == nil {
					assert.Equal(t, []byte(address), res.Data)
					assert.Equal(t, weave.Tag(TagKey, address.String()), res.Tags[0])
				}
			}

			assert.Equal(t, tc.wantOwner(f), f.ownerOf(asset))
		})
	}
}

func TestQueryEscrows(t *testing.T) {
	f := newFixture(t)
	alice := weavetest.NewCondition()
	address, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, f.issue(alice), 10)
	assert.Nil(t, err)

	qr := weave.NewQueryRouter()
	RegisterQuery(qr)
	models, err := qr.Handler("/escrows").Query(f.db, weave.KeyQueryMod, address)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))

	var e Escrow
	assert.Nil(t, e.Unmarshal(models[0].Value))
	assert.Equal(t, alice.Address(), e.Maker)
	assert.Equal(t, uint64(10), e.Price)
}

func TestGenesis(t *testing.T) {
	usdc := weave.NewCondition("cash", "currency", []byte{0, 1}).Address()

	cases := map[string]struct {
		genesis  string
		wantErr  *errors.Error
		wantBond uint64
	}{
		"bond in a registered currency": {
			genesis:  `{"escrow": {"bond": 7, "bond_currency": "cond:cash/currency/0001"}}`,
			wantBond: 7,
		},
		"no escrow configuration": {
			genesis: `{}`,
		},
		"bond in an unknown currency": {
			genesis: `{"escrow": {"bond": 7, "bond_currency": "cond:cash/currency/0002"}}`,
			wantErr: errors.ErrNotFound,
		},
		"bond without a currency": {
			genesis: `{"escrow": {"bond": 7}}`,
			wantErr: errors.ErrEmpty,
		},
		"malformed configuration": {
			genesis: `{"escrow": {"bond": "seven"}}`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts weave.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}
			db := store.MemStore()
			usd := cash.Currency{ID: usdc, Ticker: "USDC", Decimals: 6}
			assert.Nil(t, cash.NewCurrencyBucket().Put(db, usdc, &usd))

			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.wantErr, err)

			conf, err := LoadConfig(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBond, conf.Bond)
			if tc.wantBond > 0 {
				assert.Equal(t, usdc, conf.BondCurrency)
			}
		})
	}
}
