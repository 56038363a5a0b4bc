package weave

import (
	"encoding/json"
)

// Checker validates a transaction without committing its effects. It runs
// for every transaction entering the mempool.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction that is part of a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Handler processes messages of one kind, such as opening an escrow or
// sending tokens.
type Handler interface {
	Checker
	Deliverer
}

// Decorator is middleware around a Handler. It receives the rest of the
// stack as next and decides whether and how to call it.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is where extensions register their handlers by message path.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the application state of a genesis file, one raw JSON
// document per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the document stored under key into obj. A missing
// key leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the genesis state of an extension into the store.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
