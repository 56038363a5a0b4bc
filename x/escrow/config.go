package escrow

import (
	amino "github.com/tendermint/go-amino"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
)

const (
	configBucketName = "escrowconf"
	configKey        = "conf"
)

var cdc = amino.NewCodec()

// Config holds the storage bond charged when an escrow address is first
// occupied. A zero Bond disables bonding.
type Config struct {
	Bond         uint64        `json:"bond"`
	BondCurrency weave.Address `json:"bond_currency"`
}

var _ orm.Model = (*Config)(nil)

func (c *Config) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Config) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// Validate requires a bond currency whenever a bond is set.
func (c *Config) Validate() error {
	if c.Bond == 0 {
		if len(c.BondCurrency) != 0 {
			return errors.Field("BondCurrency", c.BondCurrency.Validate(), "")
		}
		return nil
	}
	return errors.Field("BondCurrency", c.BondCurrency.Validate(), "required with a bond of %d", c.Bond)
}

func newConfigBucket() orm.ModelBucket {
	return orm.NewModelBucket(configBucketName, &Config{})
}

// SaveConfig stores the bond configuration.
func SaveConfig(db weave.KVStore, c *Config) error {
	return newConfigBucket().Put(db, []byte(configKey), c)
}

// LoadConfig returns the stored configuration. When none was saved, a zero
// configuration (no bond) is returned.
func LoadConfig(db weave.ReadOnlyKVStore) (*Config, error) {
	var c Config
	switch err := newConfigBucket().One(db, []byte(configKey), &c); {
	case err == nil:
		return &c, nil
	case errors.ErrNotFound.Is(err):
		return &Config{}, nil
	default:
		return nil, errors.Wrap(err, "escrow config")
	}
}
