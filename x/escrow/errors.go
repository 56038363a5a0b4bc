package escrow

import (
	"github.com/iov-one/nftescrow/errors"
)

// x/escrow reserves 1020 ~ 1029.
var (
	// ErrInvalidAsset is returned when the escrowed asset cannot be loaded,
	// does not match the record or the asset registry rejects a transfer.
	ErrInvalidAsset = errors.Register(1020, "invalid asset")

	// ErrAddressMismatch is returned when a supplied address differs from
	// the one derived from the seed.
	ErrAddressMismatch = errors.Register(1021, "address mismatch")
)
