package escrow

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x/cash"
)

const optKey = "escrow"

// Initializer stores the bond configuration found under the "escrow"
// genesis key. A missing key leaves bonding disabled. The bond currency must
// already be registered, so the cash initializer has to run first.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	if _, ok := opts[optKey]; !ok {
		return nil
	}
	var conf Config
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "%s: %s", optKey, err)
	}
	if err := conf.Validate(); err != nil {
		return errors.Wrap(err, optKey)
	}
	if len(conf.BondCurrency) != 0 {
		if err := cash.NewCurrencyBucket().Has(kv, conf.BondCurrency); err != nil {
			return errors.Wrapf(err, "%s: bond currency %s", optKey, conf.BondCurrency)
		}
	}
	return SaveConfig(kv, &conf)
}
