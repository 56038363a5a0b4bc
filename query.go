package weave

import (
	"fmt"
)

// Query modifiers understood by every registered QueryHandler.
const (
	// KeyQueryMod returns the single model stored under the query data.
	KeyQueryMod = ""
	// PrefixQueryMod returns every model whose key starts with the query data.
	PrefixQueryMod = "prefix"
)

// Model is a raw key and value pair as returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair builds a Model.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers read only queries, for example the lookup of an
// escrow by its address or the listing of all balances of an account.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter maps query paths such as "/escrows" to their handlers.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// Register binds h to path. Registering the same path twice is a
// programming error and panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if prev, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already handled by %T", path, prev))
	}
	r.routes[path] = h
}

// Handler returns the handler for path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
