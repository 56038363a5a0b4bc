package cash

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

const (
	optKey         = "cash"
	optKeyCurrency = "currencies"
)

// GenesisAccount is used to parse the json from genesis file
// use weave.Address, so address in hex, not base64
type GenesisAccount struct {
	Owner    weave.Address `json:"owner"`
	Currency weave.Address `json:"currency"`
	Balance  uint64        `json:"balance"`
}

// Initializer fulfils the InitStater interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis will parse initial currencies and account info from genesis
// and save it to the database. Currencies are registered first so that
// accounts can reference them.
func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var currencies []Currency
	if err := opts.ReadOptions(optKeyCurrency, &currencies); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "%s: %s", optKeyCurrency, err)
	}
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "%s: %s", optKey, err)
	}

	ctrl := NewController(nil)
	for i := range currencies {
		if err := ctrl.RegisterCurrency(kv, &currencies[i]); err != nil {
			return errors.Wrapf(err, "currency %d", i)
		}
	}
	for i, acct := range accts {
		if err := ctrl.Mint(kv, acct.Currency, acct.Owner, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
