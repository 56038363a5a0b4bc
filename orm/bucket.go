/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary key, chosen by the caller.
* Easy queries for one and iteration.
*/
package orm

import (
	"fmt"
	"regexp"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a prefixed subspace of the DB. It only deals with raw bytes,
// use ModelBucket for typed access.
type Bucket struct {
	name   string
	prefix []byte
}

var _ weave.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name the bucket was created with.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket for queries. You can define a name here,
// which is different than the bucket name used to prefix the data
func (b Bucket) Register(name string, r weave.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter
func (b Bucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		key := b.DBKey(data)
		value := db.Get(key)
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []weave.Model{weave.Pair(key, value)}, nil
	case weave.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data)), nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod %q", mod)
	}
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get returns the raw value stored under key, nil if missing.
func (b Bucket) Get(db weave.ReadOnlyKVStore, key []byte) []byte {
	return db.Get(b.DBKey(key))
}

// Has returns true if a value is stored under key.
func (b Bucket) Has(db weave.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}

// Set stores a raw value under key.
func (b Bucket) Set(db weave.KVStore, key, value []byte) {
	db.Set(b.DBKey(key), value)
}

// Delete will remove the value at a key
func (b Bucket) Delete(db weave.KVStore, key []byte) {
	db.Delete(b.DBKey(key))
}
