package nft

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

const optKey = "assets"

// Initializer loads the assets listed under the "assets" genesis key.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var assets []Asset
	if err := opts.ReadOptions(optKey, &assets); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "%s: %s", optKey, err)
	}
	reg := NewRegistry(nil)
	for i := range assets {
		if err := reg.Issue(kv, &assets[i]); err != nil {
			return errors.Wrapf(err, "asset %d", i)
		}
	}
	return nil
}
