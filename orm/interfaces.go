package orm

import (
	weave "github.com/iov-one/nftescrow"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	weave.Persistent
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// ModelBucket is implemented by buckets that operates on Models.
type ModelBucket interface {
	weave.QueryHandler

	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity,
	// ErrInvalidType is returned.
	One(db weave.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists and
	// ErrNotFound otherwise.
	Has(db weave.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. An existing entity stored
	// under the same key is overwritten.
	Put(db weave.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db weave.KVStore, key []byte) error

	// Register makes the bucket content available for queries under
	// given path. An empty name uses the bucket name.
	Register(name string, r weave.QueryRouter)
}
