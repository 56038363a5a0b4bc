package escrow

import (
	"github.com/tendermint/tendermint/libs/log"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x"
	"github.com/iov-one/nftescrow/x/cash"
	"github.com/iov-one/nftescrow/x/nft"
)

// Controller executes the escrow state transitions. Every method that
// changes state either applies all of its effects or none of them.
type Controller interface {
	// Open creates, or overwrites, the escrow under seed. The maker must
	// sign. The asset is not moved yet.
	Open(ctx weave.Context, db weave.KVStore, seed uint64, maker, currency, asset weave.Address, price uint64) (weave.Address, error)

	// List hands the asset over from the maker to the escrow address.
	List(ctx weave.Context, db weave.KVStore, seed uint64, maker, asset weave.Address) error

	// Take pays the price to the maker, hands the asset to the taker and
	// closes the escrow. Anybody can take.
	Take(ctx weave.Context, db weave.KVStore, seed uint64, taker weave.Address) error

	// Cancel returns the asset to the maker and closes the escrow.
	Cancel(ctx weave.Context, db weave.KVStore, seed uint64, maker weave.Address) error

	// Get returns the escrow opened under seed and its address.
	Get(db weave.ReadOnlyKVStore, seed uint64) (*Escrow, weave.Address, error)

	// IsListed reports whether the escrow address owns the asset.
	IsListed(db weave.ReadOnlyKVStore, seed uint64) (bool, error)
}

// BaseController is the default Controller implementation.
type BaseController struct {
	auth     x.Authenticator
	cash     cash.Controller
	registry nft.Registry
	store    Store
}

var _ Controller = BaseController{}

// NewController returns a controller moving funds through cashCtrl and
// assets through registry. Both must be authorized by an authenticator that
// includes Authenticate, or the escrow address cannot release anything.
func NewController(auth x.Authenticator, cashCtrl cash.Controller, registry nft.Registry) BaseController {
	return BaseController{
		auth:     auth,
		cash:     cashCtrl,
		registry: registry,
		store:    NewStore(cashCtrl),
	}
}

func (c BaseController) Open(ctx weave.Context, db weave.KVStore, seed uint64, maker, currency, asset weave.Address, price uint64) (weave.Address, error) {
	if err := requireSigner(ctx, c.auth, maker); err != nil {
		return nil, err
	}
	if price == 0 {
		return nil, errors.Wrap(errors.ErrInvalidAmount, "price must be positive")
	}
	address, nonce, err := Derive(seed)
	if err != nil {
		return nil, err
	}

	err = atomically(db, func(db weave.KVStore) error {
		if _, err := c.cash.EnsureAccount(db, currency, maker); err != nil {
			return errors.Wrap(err, "maker account")
		}
		vault, err := c.cash.EnsureAccount(db, currency, address)
		if err != nil {
			return errors.Wrap(err, "vault")
		}
		rec := Escrow{
			Seed:       seed,
			Maker:      maker,
			Asset:      asset,
			Currency:   currency,
			Price:      price,
			Vault:      vault,
			Nonce:      nonce,
			FeePercent: DefaultFeePercent,
		}
		return c.store.Create(ctx, db, address, &rec, maker)
	})
	if err != nil {
		return nil, err
	}
	logger(ctx, seed, address).Info("escrow opened", "price", price)
	return address, nil
}

func (c BaseController) List(ctx weave.Context, db weave.KVStore, seed uint64, maker, asset weave.Address) error {
	if err := requireSigner(ctx, c.auth, maker); err != nil {
		return err
	}
	address, rec, err := c.load(db, seed)
	if err != nil {
		return err
	}
	if !rec.Asset.Equals(asset) {
		return errors.Wrapf(ErrInvalidAsset, "escrow is for %s", rec.Asset)
	}
	if !rec.Maker.Equals(maker) {
		return errors.Wrap(errors.ErrUnauthorized, "not the maker")
	}
	authority, err := authorizeAs(address, rec.Seed, rec.Nonce)
	if err != nil {
		return err
	}
	if _, err := c.registry.Load(db, rec.Asset); err != nil {
		return errors.Wrapf(ErrInvalidAsset, "%s", err)
	}

	err = atomically(db, func(db weave.KVStore) error {
		return c.moveAsset(withAuthority(ctx, authority), db, rec.Asset, address)
	})
	if err != nil {
		return err
	}
	logger(ctx, seed, address).Info("escrow listed", "asset", rec.Asset)
	return nil
}

func (c BaseController) Take(ctx weave.Context, db weave.KVStore, seed uint64, taker weave.Address) error {
	if err := requireSigner(ctx, c.auth, taker); err != nil {
		return err
	}
	address, rec, err := c.load(db, seed)
	if err != nil {
		return err
	}
	authority, err := authorizeAs(address, rec.Seed, rec.Nonce)
	if err != nil {
		return err
	}
	if _, err := c.registry.Load(db, rec.Asset); err != nil {
		return errors.Wrapf(ErrInvalidAsset, "%s", err)
	}

	err = atomically(db, func(db weave.KVStore) error {
		// The full price goes to the maker, FeePercent is not applied.
		if err := c.cash.Transfer(ctx, db, rec.Currency, taker, rec.Maker, rec.Price); err != nil {
			return err
		}
		actx := withAuthority(ctx, authority)
		if err := c.moveAsset(actx, db, rec.Asset, taker); err != nil {
			return err
		}
		return c.store.Close(actx, db, address, rec.Maker)
	})
	if err != nil {
		return err
	}
	logger(ctx, seed, address).Info("escrow taken", "taker", taker)
	return nil
}

func (c BaseController) Cancel(ctx weave.Context, db weave.KVStore, seed uint64, maker weave.Address) error {
	if err := requireSigner(ctx, c.auth, maker); err != nil {
		return err
	}
	address, rec, err := c.load(db, seed)
	if err != nil {
		return err
	}
	if !rec.Maker.Equals(maker) {
		return errors.Wrap(errors.ErrUnauthorized, "not the maker")
	}
	authority, err := authorizeAs(address, rec.Seed, rec.Nonce)
	if err != nil {
		return err
	}
	if _, err := c.registry.Load(db, rec.Asset); err != nil {
		return errors.Wrapf(ErrInvalidAsset, "%s", err)
	}

	err = atomically(db, func(db weave.KVStore) error {
		actx := withAuthority(ctx, authority)
		if err := c.moveAsset(actx, db, rec.Asset, rec.Maker); err != nil {
			return err
		}
		return c.store.Close(actx, db, address, rec.Maker)
	})
	if err != nil {
		return err
	}
	logger(ctx, seed, address).Info("escrow cancelled")
	return nil
}

func (c BaseController) Get(db weave.ReadOnlyKVStore, seed uint64) (*Escrow, weave.Address, error) {
	address, rec, err := c.load(db, seed)
	if err != nil {
		return nil, nil, err
	}
	return rec, address, nil
}

func (c BaseController) IsListed(db weave.ReadOnlyKVStore, seed uint64) (bool, error) {
	address, rec, err := c.load(db, seed)
	if err != nil {
		return false, err
	}
	owner, err := c.registry.Owner(db, rec.Asset)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidAsset, "%s", err)
	}
	return owner.Equals(address), nil
}

func (c BaseController) load(db weave.ReadOnlyKVStore, seed uint64) (weave.Address, *Escrow, error) {
	address, _, err := Derive(seed)
	if err != nil {
		return nil, nil, err
	}
	rec, err := c.store.Read(db, address)
	if err != nil {
		return nil, nil, err
	}
	return address, rec, nil
}

// moveAsset reports every registry rejection as ErrInvalidAsset.
func (c BaseController) moveAsset(ctx weave.Context, db weave.KVStore, asset, to weave.Address) error {
	if err := c.registry.Transfer(ctx, db, asset, to); err != nil {
		return errors.Wrapf(ErrInvalidAsset, "transfer to %s: %s", to, err)
	}
	return nil
}

// atomically runs fn on a cache wrap of db that is written only if fn
// succeeds.
func atomically(db weave.KVStore, fn func(weave.KVStore) error) error {
	cstore, ok := db.(weave.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}

func logger(ctx weave.Context, seed uint64, address weave.Address) log.Logger {
	return weave.GetLogger(ctx).With("module", "escrow", "seed", seed, "escrow", address)
}
