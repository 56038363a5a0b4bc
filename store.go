package weave

// ReadOnlyKVStore gives read access to the ledger state. All methods panic
// on a nil key.
type ReadOnlyKVStore interface {
	// Get returns nil if key is not present.
	Get(key []byte) []byte
	Has(key []byte) bool
	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. The range must not be written to while the iterator is open.
	Iterator(start, end []byte) Iterator
	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) Iterator
}

// SetDeleter is the write half shared by stores and batches.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// KVStore is the read and write view of the state handed to handlers.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them all on Write.
type Batch interface {
	SetDeleter
	Write()
}

// Iterator is a cursor over a key range. Always Close it.
//
//   it := db.Iterator(start, end)
//   defer it.Close()
//   for ; it.Valid(); it.Next() {
//       use(it.Key(), it.Value())
//   }
type Iterator interface {
	// Valid is false once the range is exhausted, and stays false.
	Valid() bool
	// Next panics when the iterator is not valid.
	Next()
	// Key and Value must not be modified by the caller.
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack a scratch pad on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes over a parent store. Reads see the buffered
// writes. Write pushes them to the parent and Discard drops them. Cache
// wraps nest, which is how savepoints are built.
type KVCacheWrap interface {
	CacheableKVStore
	Write()
	Discard()
}

// CommitKVStore is the persistent, versioned store below the ledger. Each
// Commit produces a new version.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) []byte
	CacheWrap() KVCacheWrap
	Commit() CommitID
	// LoadLatestVersion restores the newest complete version. After a crash
	// in the middle of a commit this may be an older one.
	LoadLatestVersion() error
	LatestVersion() CommitID
}

// CommitID identifies a committed version by number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
