package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/store/iavl"
	"github.com/iov-one/nftescrow/x/escrow"
)

const configFile = "config.toml"

// Config is the node configuration read from config.toml in the home
// directory.
type Config struct {
	ChainID   string       `toml:"chain_id"`
	LogLevel  string       `toml:"log_level"`
	CacheSize int          `toml:"cache_size"`
	Escrow    EscrowConfig `toml:"escrow"`
}

// EscrowConfig is used when the genesis file does not configure the
// escrow bond itself.
type EscrowConfig struct {
	Bond         uint64 `toml:"bond"`
	BondCurrency string `toml:"bond_currency"`
}

// DefaultConfig returns the configuration used for any value missing in
// config.toml.
func DefaultConfig() Config {
	return Config{
		ChainID:   "escrow-devnet",
		LogLevel:  "info",
		CacheSize: iavl.DefaultCacheSize,
	}
}

// LoadConfig reads config.toml from home. A missing file yields the
// defaults.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(home, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(errors.ErrInvalidInput, "%s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Wrapf(errors.ErrInvalidInput, "%s: unknown key %s", path, undecoded[0])
	}
	return cfg, cfg.Validate()
}

// Validate checks the values that cannot be fixed by a default.
func (c Config) Validate() error {
	if !weave.IsValidChainID(c.ChainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain_id %q", c.ChainID)
	}
	if c.CacheSize < 0 {
		return errors.Wrap(errors.ErrInvalidInput, "cache_size must not be negative")
	}
	_, err := c.Escrow.ToModel()
	return err
}

// ToModel converts the escrow section into the stored configuration.
func (e EscrowConfig) ToModel() (*escrow.Config, error) {
	conf := escrow.Config{Bond: e.Bond}
	if e.BondCurrency != "" {
		cur, err := weave.ParseAddress(e.BondCurrency)
		if err != nil {
			return nil, errors.Wrap(err, "escrow bond_currency")
		}
		conf.BondCurrency = cur
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	return &conf, nil
}

// writeConfig stores cfg in home unless a config file already exists.
func writeConfig(home string, cfg Config) error {
	path := filepath.Join(home, configFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create config")
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
