package cash

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
	"github.com/iov-one/nftescrow/x"
)

// Controller is the functionality other extensions need from cash. All
// balances are denominated in the smallest unit of the currency.
type Controller interface {
	// EnsureAccount creates an empty account of currency for owner if none
	// exists yet and returns its address. It fails with ErrNotFound if the
	// currency is not registered.
	EnsureAccount(db weave.KVStore, currency, owner weave.Address) (weave.Address, error)

	// Balance returns the balance owner holds in currency. It fails with
	// ErrNotFound if there is no such account.
	Balance(db weave.ReadOnlyKVStore, currency, owner weave.Address) (uint64, error)

	// Transfer moves exactly amount of currency from the account of from
	// to the account of to. The owner of the source account must be
	// authenticated.
	Transfer(ctx weave.Context, db weave.KVStore, currency, from, to weave.Address, amount uint64) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	auth       x.Authenticator
	currencies orm.ModelBucket
	accounts   orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller that authorizes transfers with auth.
func NewController(auth x.Authenticator) BaseController {
	return BaseController{
		auth:       auth,
		currencies: NewCurrencyBucket(),
		accounts:   NewAccountBucket(),
	}
}

// RegisterCurrency stores a new currency. Registering the same ID twice
// fails with ErrDuplicate.
func (c BaseController) RegisterCurrency(db weave.KVStore, cur *Currency) error {
	switch err := c.currencies.Has(db, cur.ID); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "currency %s", cur.ID)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return c.currencies.Put(db, cur.ID, cur)
}

// Currency loads a registered currency.
func (c BaseController) Currency(db weave.ReadOnlyKVStore, id weave.Address) (*Currency, error) {
	var cur Currency
	if err := c.currencies.One(db, id, &cur); err != nil {
		return nil, errors.Wrapf(err, "currency %s", id)
	}
	return &cur, nil
}

func (c BaseController) EnsureAccount(db weave.KVStore, currency, owner weave.Address) (weave.Address, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if err := c.currencies.Has(db, currency); err != nil {
		return nil, errors.Wrapf(err, "currency %s", currency)
	}
	addr := AccountAddress(currency, owner)
	switch err := c.accounts.Has(db, addr); {
	case err == nil:
		return addr, nil
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	acc := Account{Owner: owner, Currency: currency}
	if err := c.accounts.Put(db, addr, &acc); err != nil {
		return nil, errors.Wrap(err, "cannot create account")
	}
	return addr, nil
}

func (c BaseController) Balance(db weave.ReadOnlyKVStore, currency, owner weave.Address) (uint64, error) {
	acc, err := c.account(db, currency, owner)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (c BaseController) Transfer(ctx weave.Context, db weave.KVStore, currency, from, to weave.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive transfer")
	}
	if !c.auth.HasAddress(ctx, from) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the account owner", from)
	}

	src, err := c.account(db, currency, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	// Destination must exist before anything is debited.
	if _, err := c.account(db, currency, to); err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", src.Balance, amount)
	}
	src.Balance -= amount
	if err := c.accounts.Put(db, src.Address(), src); err != nil {
		return err
	}

	// Loaded after the debit was saved so that a transfer to self is a
	// no-op.
	dst, err := c.account(db, currency, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if dst.Balance+amount < dst.Balance {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}
	dst.Balance += amount
	return c.accounts.Put(db, dst.Address(), dst)
}

// Mint credits amount of currency to owner, creating the account if needed.
// It is not exposed through any message, only genesis and tests use it.
func (c BaseController) Mint(db weave.KVStore, currency, owner weave.Address, amount uint64) error {
	if _, err := c.EnsureAccount(db, currency, owner); err != nil {
		return err
	}
	acc, err := c.account(db, currency, owner)
	if err != nil {
		return err
	}
	if acc.Balance+amount < acc.Balance {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	acc.Balance += amount
	return c.accounts.Put(db, acc.Address(), acc)
}

func (c BaseController) account(db weave.ReadOnlyKVStore, currency, owner weave.Address) (*Account, error) {
	var acc Account
	if err := c.accounts.One(db, AccountAddress(currency, owner), &acc); err != nil {
		return nil, errors.Wrapf(err, "account of %s", owner)
	}
	return &acc, nil
}
