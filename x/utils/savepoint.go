package utils

import (
	weave "github.com/iov-one/nftescrow"
)

type phase uint8

const (
	checkPhase phase = 1 << iota
	deliverPhase
)

// Savepoint runs the rest of the stack on a cache wrap of the store. The
// cache is written back only if the call succeeded, so a failed escrow
// operation never leaves half of its writes behind.
//
// A fresh Savepoint is inactive. Enable it with OnCheck and/or OnDeliver.
type Savepoint struct {
	phases phase
}

var _ weave.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a copy that isolates CheckTx calls.
func (s Savepoint) OnCheck() Savepoint {
	s.phases |= checkPhase
	return s
}

// OnDeliver returns a copy that isolates DeliverTx calls.
func (s Savepoint) OnDeliver() Savepoint {
	s.phases |= deliverPhase
	return s
}

func (s Savepoint) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	if s.phases&checkPhase == 0 {
		return next.Check(ctx, db, tx)
	}
	var res *weave.CheckResult
	err := atomically(db, func(kv weave.KVStore) (err error) {
		res, err = next.Check(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	if s.phases&deliverPhase == 0 {
		return next.Deliver(ctx, db, tx)
	}
	var res *weave.DeliverResult
	err := atomically(db, func(kv weave.KVStore) (err error) {
		res, err = next.Deliver(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// atomically calls fn with a cache wrap of db and persists its writes
// unless fn fails. Stores that cannot be cache wrapped are used directly.
func atomically(db weave.KVStore, fn func(weave.KVStore) error) error {
	cs, ok := db.(weave.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cs.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}
