package nft

import (
	"net/url"

	amino "github.com/tendermint/go-amino"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
)

// BucketName is where assets are stored
const BucketName = "asset"

const (
	maxNameLength = 64
	maxURILength  = 256
)

var cdc = amino.NewCodec()

// Asset is a unique, non fungible item with a single owner.
type Asset struct {
	ID    weave.Address `json:"id"`
	Owner weave.Address `json:"owner"`
	Name  string        `json:"name,omitempty"`
	URI   string        `json:"uri,omitempty"`
}

var _ orm.Model = (*Asset)(nil)

func (a *Asset) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Asset) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, a)
}

func (a *Asset) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return errors.Wrap(err, "id")
	}
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(a.Name) > maxNameLength {
		return errors.Wrap(ErrInvalidMetadata, "name too long")
	}
	if len(a.URI) > maxURILength {
		return errors.Wrap(ErrInvalidMetadata, "uri too long")
	}
	if a.URI != "" {
		if _, err := url.ParseRequestURI(a.URI); err != nil {
			return errors.Wrapf(ErrInvalidMetadata, "uri: %s", err)
		}
	}
	return nil
}

// NewBucket returns the bucket holding all assets, keyed by ID.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Asset{})
}
