package nft

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
	"github.com/iov-one/nftescrow/x"
)

// Registry is the functionality other extensions need from nft.
type Registry interface {
	// Load returns the asset with given ID. A missing asset is
	// ErrNotFound, a stored value that cannot be decoded is
	// ErrInvalidModel.
	Load(db weave.ReadOnlyKVStore, id weave.Address) (*Asset, error)

	// Owner returns the current owner of an asset.
	Owner(db weave.ReadOnlyKVStore, id weave.Address) (weave.Address, error)

	// Transfer changes the owner of an asset. The current owner must be
	// authenticated.
	Transfer(ctx weave.Context, db weave.KVStore, id, newOwner weave.Address) error
}

// BaseRegistry is the default Registry implementation.
type BaseRegistry struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ Registry = BaseRegistry{}

// NewRegistry returns a registry that authorizes transfers with auth.
func NewRegistry(auth x.Authenticator) BaseRegistry {
	return BaseRegistry{
		auth:   auth,
		bucket: NewBucket(),
	}
}

func (r BaseRegistry) Load(db weave.ReadOnlyKVStore, id weave.Address) (*Asset, error) {
	var a Asset
	if err := r.bucket.One(db, id, &a); err != nil {
		return nil, errors.Wrapf(err, "asset %s", id)
	}
	return &a, nil
}

func (r BaseRegistry) Owner(db weave.ReadOnlyKVStore, id weave.Address) (weave.Address, error) {
	a, err := r.Load(db, id)
	if err != nil {
		return nil, err
	}
	return a.Owner, nil
}

func (r BaseRegistry) Transfer(ctx weave.Context, db weave.KVStore, id, newOwner weave.Address) error {
	if err := newOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	a, err := r.Load(db, id)
	if err != nil {
		return err
	}
	if !r.auth.HasAddress(ctx, a.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the asset owner", a.Owner)
	}
	if a.Owner.Equals(newOwner) {
		return errors.Wrap(errors.ErrInvalidInput, "asset already owned by destination")
	}
	a.Owner = newOwner
	return r.bucket.Put(db, a.ID, a)
}

// Issue creates a new asset. The ID must not be taken. It is not exposed
// through any message, only genesis and tests use it.
func (r BaseRegistry) Issue(db weave.KVStore, a *Asset) error {
	switch err := r.bucket.Has(db, a.ID); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "asset %s", a.ID)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return r.bucket.Put(db, a.ID, a)
}
