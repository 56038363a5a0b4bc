package escrow

import (
	"testing"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/weavetest"
	"github.com/iov-one/nftescrow/weavetest/assert"
)

const seed uint64 = 42

func TestTakeScenario(t *testing.T) {
	f := newFixture(t)
	f.setBond(10)
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	f.fund(alice, 10)
	f.fund(bob, 1500000)
	asset := f.issue(alice)

	address, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 1000000)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), f.balance(alice.Address()))
	assert.Equal(t, uint64(10), f.balance(address))

	listed, err := f.ctrl.IsListed(f.db, seed)
	assert.Nil(t, err)
	assert.Equal(t, false, listed)

	assert.Nil(t, f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset))
	assert.Equal(t, address, f.ownerOf(asset))
	listed, err = f.ctrl.IsListed(f.db, seed)
	assert.Nil(t, err)
	assert.Equal(t, true, listed)

	assert.Nil(t, f.ctrl.Take(f.as(bob), f.db, seed, bob.Address()))
	assert.Equal(t, bob.Address(), f.ownerOf(asset))
	assert.Equal(t, uint64(500000), f.balance(bob.Address()))
	// Price plus the refunded bond.
	assert.Equal(t, uint64(1000010), f.balance(alice.Address()))
	assert.Equal(t, uint64(0), f.balance(address))

	_, _, err = f.ctrl.Get(f.db, seed)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestCancelScenario(t *testing.T) {
	f := newFixture(t)
	f.setBond(10)
	alice := weavetest.NewCondition()
	f.fund(alice, 25)
	asset := f.issue(alice)

	address, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 1000000)
	assert.Nil(t, err)
	assert.Nil(t, f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset))
	assert.Equal(t, address, f.ownerOf(asset))

	assert.Nil(t, f.ctrl.Cancel(f.as(alice), f.db, seed, alice.Address()))
	assert.Equal(t, alice.Address(), f.ownerOf(asset))
	assert.Equal(t, uint64(25), f.balance(alice.Address()))

	_, _, err = f.ctrl.Get(f.db, seed)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestOpenOverwrites(t *testing.T) {
	f := newFixture(t)
	f.setBond(10)
	alice := weavetest.NewCondition()
	f.fund(alice, 10)
	asset := f.issue(alice)

	_, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 100)
	assert.Nil(t, err)
	// No funds left for a second bond, so the overwrite must not charge one.
	_, err = f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 200)
	assert.Nil(t, err)

	rec, _, err := f.ctrl.Get(f.db, seed)
	assert.Nil(t, err)
	assert.Equal(t, uint64(200), rec.Price)
	assert.Equal(t, DefaultFeePercent, rec.FeePercent)
}

func TestOpenByAnotherMakerTakesOverSeed(t *testing.T) {
	f := newFixture(t)
	alice := weavetest.NewCondition()
	carol := weavetest.NewCondition()

	_, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, f.issue(alice), 100)
	assert.Nil(t, err)
	_, err = f.ctrl.Open(f.as(carol), f.db, seed, carol.Address(), f.usdc, f.issue(carol), 300)
	assert.Nil(t, err)

	rec, _, err := f.ctrl.Get(f.db, seed)
	assert.Nil(t, err)
	assert.Equal(t, carol.Address(), rec.Maker)
}

func TestOpen(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer   weave.Condition
		maker    weave.Address
		currency func(*fixture) weave.Address
		price    uint64
		bond     uint64
		wantErr  *errors.Error
	}{
		"success": {
			signer: alice,
			maker:  alice.Address(),
			price:  1,
		},
		"maker did not sign": {
			signer:  bob,
			maker:   alice.Address(),
			price:   1,
			wantErr: errors.ErrUnauthorized,
		},
		"zero price": {
			signer:  alice,
			maker:   alice.Address(),
			wantErr: errors.ErrInvalidAmount,
		},
		"unknown currency": {
			signer:   alice,
			maker:    alice.Address(),
			currency: func(*fixture) weave.Address { return weavetest.NewCondition().Address() },
			price:    1,
			wantErr:  errors.ErrNotFound,
		},
		"bond cannot be paid": {
			signer:  alice,
			maker:   alice.Address(),
			price:   1,
			bond:    5,
			wantErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			if tc.bond > 0 {
				f.setBond(tc.bond)
			}
			currency := f.usdc
			if tc.currency != nil {
				currency = tc.currency(f)
			}
			asset := f.issue(alice)

			_, err := f.ctrl.Open(f.as(tc.signer), f.db, seed, tc.maker, currency, asset, tc.price)
			assert.IsErr(t, tc.wantErr, err)

			_, _, err = f.ctrl.Get(f.db, seed)
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, errors.ErrNotFound, err)
			}
		})
	}
}

func TestList(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer     weave.Condition
		maker      weave.Address
		otherAsset bool
		bobOwns    bool
		seed       uint64
		wantErr    *errors.Error
	}{
		"success": {
			signer: alice,
			maker:  alice.Address(),
			seed:   seed,
		},
		"signer is not the asset owner": {
			signer:  alice,
			maker:   alice.Address(),
			bobOwns: true,
			seed:    seed,
			wantErr: ErrInvalidAsset,
		},
		"asset differs from the record": {
			signer:     alice,
			maker:      alice.Address(),
			otherAsset: true,
			seed:       seed,
			wantErr:    ErrInvalidAsset,
		},
		"signer is not the maker": {
			signer:  bob,
			maker:   bob.Address(),
			seed:    seed,
			wantErr: errors.ErrUnauthorized,
		},
		"maker did not sign": {
			signer:  bob,
			maker:   alice.Address(),
			seed:    seed,
			wantErr: errors.ErrUnauthorized,
		},
		"no escrow": {
			signer:  alice,
			maker:   alice.Address(),
			seed:    seed + 1,
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			owner := alice
			if tc.bobOwns {
				owner = bob
			}
			asset := f.issue(owner)
			_, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 100)
			assert.Nil(t, err)

			listAsset := asset
			if tc.otherAsset {
				listAsset = f.issue(alice)
			}
			err = f.ctrl.List(f.as(tc.signer), f.db, tc.seed, tc.maker, listAsset)
			assert.IsErr(t, tc.wantErr, err)

			if tc.wantErr != nil {
				assert.Equal(t, owner.Address(), f.ownerOf(asset))
			}
		})
	}
}

func TestListMissingAsset(t *testing.T) {
	f := newFixture(t)
	alice := weavetest.NewCondition()
	asset := weavetest.NewCondition().Address()

	_, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 100)
	assert.Nil(t, err)
	err = f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset)
	assert.IsErr(t, ErrInvalidAsset, err)

	_, err = f.ctrl.IsListed(f.db, seed)
	assert.IsErr(t, ErrInvalidAsset, err)
}

func TestTake(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer   weave.Condition
		taker    weave.Address
		funds    uint64
		unlisted bool
		seed     uint64
		wantErr  *errors.Error
	}{
		"success": {
			signer: bob,
			taker:  bob.Address(),
			funds:  100,
			seed:   seed,
		},
		"taker did not sign": {
			signer:  alice,
			taker:   bob.Address(),
			funds:   100,
			seed:    seed,
			wantErr: errors.ErrUnauthorized,
		},
		"insufficient funds": {
			signer:  bob,
			taker:   bob.Address(),
			funds:   99,
			seed:    seed,
			wantErr: errors.ErrInsufficientAmount,
		},
		"taker has no account": {
			signer:  bob,
			taker:   bob.Address(),
			seed:    seed,
			wantErr: errors.ErrNotFound,
		},
		"asset was never listed": {
			signer:   bob,
			taker:    bob.Address(),
			funds:    100,
			unlisted: true,
			seed:     seed,
			wantErr:  ErrInvalidAsset,
		},
		"no escrow": {
			signer:  bob,
			taker:   bob.Address(),
			funds:   100,
			seed:    seed + 1,
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			if tc.funds > 0 {
				f.fund(bob, tc.funds)
			}
			asset := f.issue(alice)
			_, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 100)
			assert.Nil(t, err)
			if !tc.unlisted {
				assert.Nil(t, f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset))
			}

			err = f.ctrl.Take(f.as(tc.signer), f.db, tc.seed, tc.taker)
			assert.IsErr(t, tc.wantErr, err)

			if tc.wantErr != nil {
				// Nothing moved, the escrow is still open.
				assert.Equal(t, uint64(0), f.balance(alice.Address()))
				if tc.funds > 0 {
					assert.Equal(t, tc.funds, f.balance(bob.Address()))
				}
				_, _, err := f.ctrl.Get(f.db, seed)
				assert.Nil(t, err)
			}
		})
	}
}

func TestTakeRollsBackPaymentWhenAssetCannotMove(t *testing.T) {
	f := newFixture(t)
	f.setBond(10)
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	f.fund(alice, 10)
	f.fund(bob, 100)
	asset := f.issue(alice)

	address, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 100)
	assert.Nil(t, err)

	// Never listed, so the payment succeeds but the escrow has no asset
	// to hand over.
	err = f.ctrl.Take(f.as(bob), f.db, seed, bob.Address())
	assert.IsErr(t, ErrInvalidAsset, err)

	assert.Equal(t, uint64(100), f.balance(bob.Address()))
	assert.Equal(t, uint64(0), f.balance(alice.Address()))
	assert.Equal(t, uint64(10), f.balance(address))
	assert.Equal(t, alice.Address(), f.ownerOf(asset))
	_, _, err = f.ctrl.Get(f.db, seed)
	assert.Nil(t, err)
}

func TestTakeFeeIsNotCharged(t *testing.T) {
	f := newFixture(t)
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	f.fund(bob, 1000000)
	asset := f.issue(alice)

	_, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 1000000)
	assert.Nil(t, err)
	rec, _, err := f.ctrl.Get(f.db, seed)
	assert.Nil(t, err)
	assert.Equal(t, uint8(5), rec.FeePercent)
	assert.Equal(t, uint64(50000), FeeAmount(rec.Price, rec.FeePercent))

	assert.Nil(t, f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset))
	assert.Nil(t, f.ctrl.Take(f.as(bob), f.db, seed, bob.Address()))
	assert.Equal(t, uint64(1000000), f.balance(alice.Address()))
	assert.Equal(t, uint64(0), f.balance(bob.Address()))
}

func TestAnyoneCanTake(t *testing.T) {
	f := newFixture(t)
	alice := weavetest.NewCondition()
	asset := f.issue(alice)
	f.fund(alice, 100)

	_, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 100)
	assert.Nil(t, err)
	assert.Nil(t, f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset))

	// The maker buying back their own asset is a valid take.
	assert.Nil(t, f.ctrl.Take(f.as(alice), f.db, seed, alice.Address()))
	assert.Equal(t, alice.Address(), f.ownerOf(asset))
	assert.Equal(t, uint64(100), f.balance(alice.Address()))
}

func TestCancel(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer   weave.Condition
		maker    weave.Address
		unlisted bool
		seed     uint64
		wantErr  *errors.Error
	}{
		"success": {
			signer: alice,
			maker:  alice.Address(),
			seed:   seed,
		},
		"signer is not the maker": {
			signer:  bob,
			maker:   bob.Address(),
			seed:    seed,
			wantErr: errors.ErrUnauthorized,
		},
		"maker did not sign": {
			signer:  bob,
			maker:   alice.Address(),
			seed:    seed,
			wantErr: errors.ErrUnauthorized,
		},
		"asset was never listed": {
			signer:   alice,
			maker:    alice.Address(),
			unlisted: true,
			seed:     seed,
			wantErr:  ErrInvalidAsset,
		},
		"no escrow": {
			signer:  alice,
			maker:   alice.Address(),
			seed:    seed + 1,
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			asset := f.issue(alice)
			address, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 100)
			assert.Nil(t, err)
			if !tc.unlisted {
				assert.Nil(t, f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset))
			}

			err = f.ctrl.Cancel(f.as(tc.signer), f.db, tc.seed, tc.maker)
			assert.IsErr(t, tc.wantErr, err)

			switch {
			case tc.wantErr == nil:
				assert.Equal(t, alice.Address(), f.ownerOf(asset))
			case !tc.unlisted:
				assert.Equal(t, address, f.ownerOf(asset))
			}
		})
	}
}

func TestSeedCanBeReusedAfterClose(t *testing.T) {
	f := newFixture(t)
	f.setBond(10)
	alice := weavetest.NewCondition()
	f.fund(alice, 10)
	asset := f.issue(alice)

	_, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 100)
	assert.Nil(t, err)
	assert.Nil(t, f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset))
	assert.Nil(t, f.ctrl.Cancel(f.as(alice), f.db, seed, alice.Address()))

	// The refunded bond pays for the fresh record.
	_, err = f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 300)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), f.balance(alice.Address()))
	rec, _, err := f.ctrl.Get(f.db, seed)
	assert.Nil(t, err)
	assert.Equal(t, uint64(300), rec.Price)
}

func TestCloseRefundsOnlyTheBond(t *testing.T) {
	cases := map[string]struct {
		close      func(f *fixture, alice, bob weave.Condition) error
		wantAlice  uint64
		rebondWith uint64
	}{
		"cancel": {
			close: func(f *fixture, alice, _ weave.Condition) error {
				return f.ctrl.Cancel(f.as(alice), f.db, seed, alice.Address())
			},
			wantAlice: 10,
		},
		"take": {
			close: func(f *fixture, _, bob weave.Condition) error {
				return f.ctrl.Take(f.as(bob), f.db, seed, bob.Address())
			},
			wantAlice: 10 + 300,
		},
		"cancel after the bond was raised": {
			close: func(f *fixture, alice, _ weave.Condition) error {
				return f.ctrl.Cancel(f.as(alice), f.db, seed, alice.Address())
			},
			rebondWith: 50,
			wantAlice:  10,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.setBond(10)
			alice := weavetest.NewCondition()
			bob := weavetest.NewCondition()
			f.fund(alice, 10)
			f.fund(bob, 300)
			asset := f.issue(alice)

			address, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 300)
			assert.Nil(t, err)
			assert.Nil(t, f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset))
			// Funds sent to the vault by someone else are not part of the bond.
			assert.Nil(t, f.cash.Mint(f.db, f.usdc, address, 100))
			if tc.rebondWith > 0 {
				f.setBond(tc.rebondWith)
			}

			assert.Nil(t, tc.close(f, alice, bob))
			assert.Equal(t, tc.wantAlice, f.balance(alice.Address()))
			assert.Equal(t, uint64(100), f.balance(address))
		})
	}
}

func TestClosedEscrowIsGone(t *testing.T) {
	cases := map[string]struct {
		close func(f *fixture, alice, bob weave.Condition) error
	}{
		"taken": {
			close: func(f *fixture, _, bob weave.Condition) error {
				return f.ctrl.Take(f.as(bob), f.db, seed, bob.Address())
			},
		},
		"cancelled": {
			close: func(f *fixture, alice, _ weave.Condition) error {
				return f.ctrl.Cancel(f.as(alice), f.db, seed, alice.Address())
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.setBond(10)
			alice := weavetest.NewCondition()
			bob := weavetest.NewCondition()
			f.fund(alice, 20)
			f.fund(bob, 200)
			asset := f.issue(alice)

			_, err := f.ctrl.Open(f.as(alice), f.db, seed, alice.Address(), f.usdc, asset, 100)
			assert.Nil(t, err)
			assert.Nil(t, f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset))
			assert.Nil(t, tc.close(f, alice, bob))

			err = f.ctrl.Take(f.as(bob), f.db, seed, bob.Address())
			assert.IsErr(t, errors.ErrNotFound, err)
			err = f.ctrl.Cancel(f.as(alice), f.db, seed, alice.Address())
			assert.IsErr(t, errors.ErrNotFound, err)
			err = f.ctrl.List(f.as(alice), f.db, seed, alice.Address(), asset)
			assert.IsErr(t, errors.ErrNotFound, err)

			// The seed is free again. Whoever owns the asset now can offer it.
			owner := alice
			if f.ownerOf(asset).Equals(bob.Address()) {
				owner = bob
			}
			_, err = f.ctrl.Open(f.as(owner), f.db, seed, owner.Address(), f.usdc, asset, 500)
			assert.Nil(t, err)
			assert.Nil(t, f.ctrl.List(f.as(owner), f.db, seed, owner.Address(), asset))
			rec, _, err := f.ctrl.Get(f.db, seed)
			assert.Nil(t, err)
			assert.Equal(t, owner.Address(), rec.Maker)
			assert.Equal(t, uint64(500), rec.Price)
		})
	}
}

func TestFeeAmount(t *testing.T) {
	cases := map[string]struct {
		price uint64
		fee   uint8
		want  uint64
	}{
		"zero fee":           {price: 1000, fee: 0, want: 0},
		"five percent":       {price: 1000000, fee: 5, want: 50000},
		"rounded down":       {price: 199, fee: 5, want: 9},
		"everything":         {price: 77, fee: 100, want: 77},
		"no overflow at max": {price: ^uint64(0), fee: 100, want: ^uint64(0)},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, FeeAmount(tc.price, tc.fee))
		})
	}
}
