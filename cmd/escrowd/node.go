package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tendermint/tendermint/libs/log"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/app"
	escrowapp "github.com/iov-one/nftescrow/cmd/escrowd/app"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/store/iavl"
)

const (
	dataDir = "data"
	dbName  = "escrow"
)

// node is an opened ledger together with the resources it holds.
type node struct {
	*app.Ledger
	store iavl.CommitStore
}

// openNode opens the ledger stored in home, creating an empty one if
// there is none yet.
func openNode(home string, cfg Config, logger log.Logger) (*node, error) {
	dir := filepath.Join(home, dataDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(err, "data directory")
	}
	store, err := iavl.NewCommitStore(dir, dbName, cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	base := escrowapp.Application(escrowapp.Stack(nil), store, logger, false)
	return &node{Ledger: app.NewLedger(base), store: store}, nil
}

// Close releases the database.
func (n *node) Close() {
	n.store.Close()
}

// requireInitialized fails when the ledger has no genesis yet.
func (n *node) requireInitialized() error {
	if n.Height() == 0 {
		return errors.Wrap(errors.ErrInvalidState, "ledger is not initialized, run init first")
	}
	return nil
}

// prepareGenesis fills what the genesis file leaves out from the node
// configuration: the chain ID and the escrow bond.
func prepareGenesis(gen *app.Genesis, cfg Config) error {
	if gen.ChainID == "" {
		gen.ChainID = cfg.ChainID
	}

	opts := make(weave.Options)
	if len(gen.AppState) > 0 {
		if err := json.Unmarshal(gen.AppState, &opts); err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "app_state: %s", err)
		}
	}
	if _, ok := opts["escrow"]; ok || cfg.Escrow.Bond == 0 {
		return nil
	}
	conf, err := cfg.Escrow.ToModel()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(conf)
	if err != nil {
		return errors.Wrap(err, "escrow config")
	}
	opts["escrow"] = raw
	if gen.AppState, err = json.Marshal(opts); err != nil {
		return errors.Wrap(err, "app_state")
	}
	return nil
}
