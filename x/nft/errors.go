package nft

import (
	"github.com/iov-one/nftescrow/errors"
)

// x/nft reserves 500 ~ 509.
var (
	ErrInvalidMetadata = errors.Register(500, "invalid asset metadata")
)
