package app

import (
	"encoding/json"
	"fmt"
	"strings"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// StoreApp is the state half of the escrow application. It owns the
// committed store with its check and deliver caches, loads the genesis and
// answers queries. BaseApp adds transaction processing on top.
//
// ABCI calls that carry no user input (InitChain, Commit and friends)
// cannot report an error and panic instead.
type StoreApp struct {
	name   string
	logger log.Logger

	store       *CommitStore
	initializer weave.Initializer
	queryRouter weave.QueryRouter

	// chainID is empty until the genesis is loaded.
	chainID string
	// appCtx lives as long as the app, blockCtx is replaced on BeginBlock.
	appCtx   weave.Context
	blockCtx weave.Context
}

// NewStoreApp loads the latest version of store. It panics if the store
// cannot be loaded.
func NewStoreApp(name string, store weave.CommitKVStore, queryRouter weave.QueryRouter, ctx weave.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		appCtx:      ctx,
	}
	if id := loadChainID(s.DeliverStore()); id != "" {
		s.setChainID(id)
	} else {
		s.resetBlock()
	}
	return s.WithLogger(log.NewNopLogger())
}

// WithInit sets the genesis initializer.
func (s *StoreApp) WithInit(init weave.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger used by the app and passed to handlers.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.appCtx = weave.WithLogger(s.appCtx, logger)
	s.blockCtx = weave.WithLogger(s.blockCtx, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// GetChainID returns the chain ID of the loaded genesis or "".
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// BlockContext is the context handlers run with in the current block.
func (s *StoreApp) BlockContext() weave.Context {
	return s.blockCtx
}

// DeliverStore is the cache DeliverTx writes to until Commit.
func (s *StoreApp) DeliverStore() weave.CacheableKVStore {
	return s.store.deliver
}

// CheckStore is the cache CheckTx writes to. It is dropped on Commit.
func (s *StoreApp) CheckStore() weave.CacheableKVStore {
	return s.store.check
}

func (s *StoreApp) setChainID(chainID string) {
	s.chainID = chainID
	s.appCtx = weave.WithChainID(s.appCtx, chainID)
	s.resetBlock()
}

// resetBlock points the block context at the last committed height.
func (s *StoreApp) resetBlock() {
	s.blockCtx = weave.WithHeight(s.appCtx, s.store.CommitInfo().Version)
}

// loadGenesis stores the chain ID and runs init over the genesis app
// state. It only succeeds once per store.
func (s *StoreApp) loadGenesis(appState []byte, chainID string, init weave.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidState, "genesis already loaded for chain %s", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "genesis app_state")
	}
	var opts weave.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis app_state: %s", err)
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.setChainID(chainID)
	if init == nil {
		return nil
	}
	return init.FromGenesis(opts, s.DeliverStore())
}

// Info reports the last committed height and app hash.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	info := s.store.CommitInfo()
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported, configuration comes from the genesis.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain loads the genesis app state.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId, s.initializer); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	s.blockCtx = weave.WithHeight(s.appCtx, req.Header.Height)
	return abci.ResponseBeginBlock{}
}

// EndBlock does nothing, the validator set is fixed.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id := s.store.Commit()
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query reads from the last committed state. The path selects a bucket,
// for example "/escrows", and may end with "?prefix" for a prefix query.
// The requested height is ignored.
//
// Key and Value of the response are serialized ResultSets of the same
// length, so one call can return any number of models.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queryRouter.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path %q", req.Path))
	}

	db := s.store.committed.CacheWrap()
	defer db.Discard()

	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	return abci.ResponseQuery{
		Key:    keys,
		Value:  values,
		Height: s.store.CommitInfo().Version,
	}
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
