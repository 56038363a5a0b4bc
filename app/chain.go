package app

import (
	"reflect"

	weave "github.com/iov-one/nftescrow"
)

// Decorators is an ordered list of middleware waiting for the final
// handler. The first decorator is the outermost one.
//
//   app.ChainDecorators(
//       utils.NewLogging(),
//       utils.NewRecovery(),
//       sigs.NewDecorator(),
//   ).WithHandler(router)
type Decorators []weave.Decorator

// ChainDecorators starts a new decorator list. Nil decorators, including
// typed nil pointers, are left out so that optional middleware can be
// passed without a branch.
func ChainDecorators(ds ...weave.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new list with ds appended. The receiver is not changed.
func (d Decorators) Chain(ds ...weave.Decorator) Decorators {
	out := make(Decorators, len(d), len(d)+len(ds))
	copy(out, d)
	for _, dec := range ds {
		if !isNil(dec) {
			out = append(out, dec)
		}
	}
	return out
}

func isNil(d weave.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler returns h wrapped by all decorators.
func (d Decorators) WithHandler(h weave.Handler) weave.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = layer{dec: d[i], next: h}
	}
	return h
}

// layer binds one decorator to the rest of the stack.
type layer struct {
	dec  weave.Decorator
	next weave.Handler
}

func (l layer) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
