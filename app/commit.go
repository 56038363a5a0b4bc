package app

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// CommitStore keeps the persistent store together with the two scratch
// pads used between commits: deliver collects the block writes, check the
// mempool writes.
type CommitStore struct {
	committed weave.CommitKVStore
	deliver   weave.KVCacheWrap
	check     weave.KVCacheWrap
}

// NewCommitStore loads the latest version of store. It panics if that fails.
func NewCommitStore(store weave.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

// CommitInfo returns the last committed version.
func (cs *CommitStore) CommitInfo() weave.CommitID {
	return cs.committed.LatestVersion()
}

// Commit persists the deliver cache as a new version. Pending check state
// is dropped.
func (cs *CommitStore) Commit() weave.CommitID {
	cs.deliver.Write()
	cs.check.Discard()
	id := cs.committed.Commit()
	cs.reset()
	return id
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// chainIDKey lives in the "_wv:" namespace reserved for app internals.
var chainIDKey = []byte("_wv:chainID")

func loadChainID(db weave.ReadOnlyKVStore) string {
	return string(db.Get(chainIDKey))
}

// saveChainID stores chainID. It can be set only once.
func saveChainID(db weave.KVStore, chainID string) error {
	if !weave.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %q", chainID)
	}
	if db.Has(chainIDKey) {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	db.Set(chainIDKey, []byte(chainID))
	return nil
}
