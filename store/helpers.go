package store

// SliceIterator walks over a preloaded, already ordered list of models.
type SliceIterator struct {
	models []Model
	pos    int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.models)
}

// Next advances the cursor. It panics when called on an exhausted iterator.
func (s *SliceIterator) Next() {
	s.current()
	s.pos++
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

// Close drops the models, the iterator is invalid afterwards.
func (s *SliceIterator) Close() {
	s.models = nil
	s.pos = 0
}

func (s *SliceIterator) current() *Model {
	if !s.Valid() {
		panic("iterator is not valid")
	}
	return &s.models[s.pos]
}

// EmptyKVStore is a store that never holds any data. It is the bottom
// layer of every in memory BTreeCacheWrap.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) []byte { return nil }

func (EmptyKVStore) Has([]byte) bool { return false }

func (EmptyKVStore) Set(key, value []byte) {}

func (EmptyKVStore) Delete([]byte) {}

func (EmptyKVStore) Iterator(_, _ []byte) Iterator { return NewSliceIterator(nil) }

func (EmptyKVStore) ReverseIterator(_, _ []byte) Iterator { return NewSliceIterator(nil) }

func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }

// Op is a single pending write, either a set or a delete.
type Op struct {
	key   []byte
	value []byte
	del   bool
}

// SetOp returns an operation that writes value under key.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp returns an operation that removes key.
func DelOp(key []byte) Op {
	return Op{key: key, del: true}
}

// Apply executes the operation on out.
func (o Op) Apply(out SetDeleter) {
	if o.del {
		out.Delete(o.key)
		return
	}
	out.Set(o.key, o.value)
}

func (o Op) IsSetOp() bool { return !o.del }

func (o Op) Key() []byte { return o.key }

// Value is nil for delete operations.
func (o Op) Value() []byte { return o.value }

// NonAtomicBatch records writes and replays them in order on Write. A
// crash in the middle of Write leaves the target partially updated, which
// is acceptable for in memory stores and for the iavl adapter whose
// changes only become durable on commit.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) {
	b.ops = append(b.ops, SetOp(key, value))
}

func (b *NonAtomicBatch) Delete(key []byte) {
	b.ops = append(b.ops, DelOp(key))
}

// ShowOps returns the pending operations, oldest first.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}

// Write flushes all pending operations and empties the batch.
func (b *NonAtomicBatch) Write() {
	ops := b.ops
	b.ops = nil
	for _, op := range ops {
		op.Apply(b.out)
	}
}
