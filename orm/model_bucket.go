package orm

import (
	"reflect"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as proto under given bucket name.
func NewModelBucket(name string, proto Model) ModelBucket {
	t := reflect.TypeOf(proto)
	if t.Kind() != reflect.Ptr {
		panic("model bucket prototype must be a pointer")
	}
	return &modelBucket{
		b:     NewBucket(name),
		model: t,
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw := mb.b.Get(db, key)
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model.Elem().Name())
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot unmarshal: %s", err)
	}
	return nil
}

func (mb *modelBucket) Has(db weave.ReadOnlyKVStore, key []byte) error {
	if !mb.b.Has(db, key) {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model.Elem().Name())
	}
	return nil
}

func (mb *modelBucket) Put(db weave.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrInvalidType, "cannot store %T in %s bucket", m, mb.b.Name())
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize")
	}
	mb.b.Set(db, key, raw)
	return nil
}

func (mb *modelBucket) Delete(db weave.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	mb.b.Delete(db, key)
	return nil
}

func (mb *modelBucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	return mb.b.Query(db, mod, data)
}

func (mb *modelBucket) Register(name string, r weave.QueryRouter) {
	if name == "" {
		name = mb.b.Name()
	}
	r.Register("/"+name, mb)
}
