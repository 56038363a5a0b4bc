package weavetest

import (
	weave "github.com/iov-one/nftescrow"
)

// calls counts invocations of a mock.
type calls int

// CallCount returns how many times Check or Deliver was called.
func (c calls) CallCount() int { return int(c) }

// Handler is a weave.Handler that returns preconfigured results.
//
// When WriteKey is set, WriteValue is stored under it on every call, even
// a failing one. Savepoint tests rely on that to see a rollback.
type Handler struct {
	calls

	CheckResult weave.CheckResult
	CheckErr    error

	DeliverResult weave.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	h.touch(db)
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h.touch(db)
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) touch(db weave.KVStore) {
	h.calls++
	if h.WriteKey != nil {
		db.Set(h.WriteKey, h.WriteValue)
	}
}

// Decorator is a weave.Decorator that passes calls through unless an
// error is configured for the phase, in which case next is not called.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ weave.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	d.calls++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	d.calls++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate wraps h with d.
func Decorate(h weave.Handler, d weave.Decorator) weave.Handler {
	return decorated{h: h, d: d}
}

type decorated struct {
	h weave.Handler
	d weave.Decorator
}

func (w decorated) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return w.d.Check(ctx, db, tx, w.h)
}

func (w decorated) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return w.d.Deliver(ctx, db, tx, w.h)
}

// Tx carries a single message. Err, when set, is returned by GetMsg.
type Tx struct {
	Msg weave.Msg
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal and Unmarshal are not used by handlers and always panic.
func (tx *Tx) Marshal() ([]byte, error) { panic("weavetest: Tx cannot be serialized") }

func (tx *Tx) Unmarshal([]byte) error { panic("weavetest: Tx cannot be serialized") }

// Msg is a message routed by RoutePath. Its serialized form is stored as
// is. Err, when set, is returned by Validate, Marshal and Unmarshal.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string { return m.RoutePath }

func (m *Msg) Validate() error { return m.Err }

func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
