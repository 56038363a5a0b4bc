package cash

import (
	"context"
	"testing"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/store"
	"github.com/iov-one/nftescrow/weavetest"
	"github.com/iov-one/nftescrow/weavetest/assert"
)

func newUSDC(t testing.TB, db weave.KVStore) weave.Address {
	t.Helper()
	id := weavetest.NewCondition().Address()
	ctrl := NewController(nil)
	assert.Nil(t, ctrl.RegisterCurrency(db, &Currency{ID: id, Ticker: "USDC", Decimals: 6}))
	return id
}

func TestRegisterCurrency(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(nil)
	id := newUSDC(t, db)

	cur, err := ctrl.Currency(db, id)
	assert.Nil(t, err)
	assert.Equal(t, "USDC", cur.Ticker)

	err = ctrl.RegisterCurrency(db, &Currency{ID: id, Ticker: "USDT"})
	assert.IsErr(t, errors.ErrDuplicate, err)

	err = ctrl.RegisterCurrency(db, &Currency{ID: weavetest.NewCondition().Address(), Ticker: "usd"})
	assert.IsErr(t, ErrInvalidCurrency, err)

	_, err = ctrl.Currency(db, weavetest.NewCondition().Address())
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestEnsureAccount(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(nil)
	usdc := newUSDC(t, db)
	owner := weavetest.NewCondition().Address()

	addr, err := ctrl.EnsureAccount(db, usdc, owner)
	assert.Nil(t, err)
	assert.Equal(t, AccountAddress(usdc, owner), addr)

	// idempotent, balance is kept
	assert.Nil(t, ctrl.Mint(db, usdc, owner, 10))
	again, err := ctrl.EnsureAccount(db, usdc, owner)
	assert.Nil(t, err)
	assert.Equal(t, addr, again)
	bal, err := ctrl.Balance(db, usdc, owner)
	assert.Nil(t, err)
	assert.Equal(t, uint64(10), bal)

	_, err = ctrl.EnsureAccount(db, weavetest.NewCondition().Address(), owner)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = ctrl.Balance(db, usdc, weavetest.NewCondition().Address())
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestAccountAddressIsPerCurrency(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	a := AccountAddress(weavetest.NewCondition().Address(), owner)
	b := AccountAddress(weavetest.NewCondition().Address(), owner)
	if a.Equals(b) {
		t.Fatal("accounts of different currencies must not collide")
	}
}

func TestTransfer(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer    weave.Condition
		from      weave.Condition
		to        weave.Condition
		noDest    bool
		amount    uint64
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"exact amount is moved": {
			signer:    alice,
			from:      alice,
			to:        bob,
			amount:    30,
			wantAlice: 70,
			wantBob:   30,
		},
		"whole balance": {
			signer:    alice,
			from:      alice,
			to:        bob,
			amount:    100,
			wantAlice: 0,
			wantBob:   100,
		},
		"transfer to self is a no-op": {
			signer:    alice,
			from:      alice,
			to:        alice,
			amount:    40,
			wantAlice: 100,
		},
		"source owner must sign": {
			signer:    bob,
			from:      alice,
			to:        bob,
			amount:    1,
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 100,
		},
		"insufficient funds": {
			signer:    alice,
			from:      alice,
			to:        bob,
			amount:    101,
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 100,
		},
		"zero amount": {
			signer:    alice,
			from:      alice,
			to:        bob,
			wantErr:   errors.ErrInvalidAmount,
			wantAlice: 100,
		},
		"missing source account": {
			signer:    bob,
			from:      bob,
			to:        alice,
			amount:    1,
			wantErr:   errors.ErrNotFound,
			wantAlice: 100,
		},
		"missing destination account": {
			signer:    alice,
			from:      alice,
			to:        bob,
			noDest:    true,
			amount:    1,
			wantErr:   errors.ErrNotFound,
			wantAlice: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(&weavetest.Auth{Signer: tc.signer})
			usdc := newUSDC(t, db)
			assert.Nil(t, ctrl.Mint(db, usdc, alice.Address(), 100))
			if !tc.noDest && !tc.to.Equals(alice) && !tc.from.Equals(bob) {
				_, err := ctrl.EnsureAccount(db, usdc, tc.to.Address())
				assert.Nil(t, err)
			}

			err := ctrl.Transfer(context.Background(), db, usdc, tc.from.Address(), tc.to.Address(), tc.amount)
			assert.IsErr(t, tc.wantErr, err)

			bal, err := ctrl.Balance(db, usdc, alice.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAlice, bal)
			if tc.wantBob != 0 {
				bal, err := ctrl.Balance(db, usdc, bob.Address())
				assert.Nil(t, err)
				assert.Equal(t, tc.wantBob, bal)
			}
		})
	}
}

func TestMintOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(nil)
	usdc := newUSDC(t, db)
	owner := weavetest.NewCondition().Address()

	assert.Nil(t, ctrl.Mint(db, usdc, owner, ^uint64(0)))
	assert.IsErr(t, errors.ErrOverflow, ctrl.Mint(db, usdc, owner, 1))
}
