package escrow

import (
	"encoding/binary"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
)

// BucketName is where escrows are stored, keyed by their derived address.
const BucketName = "escrow"

// EscrowSize is the length of a serialized Escrow.
const EscrowSize = 8 + 4*weave.AddressLength + 8 + 1 + 1

// Escrow is a single open offer of an asset for a price.
type Escrow struct {
	Seed       uint64        `json:"seed"`
	Maker      weave.Address `json:"maker"`
	Asset      weave.Address `json:"asset"`
	Currency   weave.Address `json:"currency"`
	Price      uint64        `json:"price"`
	Vault      weave.Address `json:"vault"`
	Nonce      uint8         `json:"nonce"`
	FeePercent uint8         `json:"fee_percent"`
}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow can be stored.
func (e *Escrow) Validate() error {
	if err := e.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := e.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if err := e.Currency.Validate(); err != nil {
		return errors.Wrap(err, "currency")
	}
	if err := e.Vault.Validate(); err != nil {
		return errors.Wrap(err, "vault")
	}
	if e.Price == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "price must be positive")
	}
	if e.FeePercent > 100 {
		return errors.Wrapf(errors.ErrInvalidModel, "fee percent %d", e.FeePercent)
	}
	return nil
}

// Marshal writes the fixed width layout: seed, maker, asset, currency,
// price, vault, nonce, fee percent. Integers are little endian.
func (e *Escrow) Marshal() ([]byte, error) {
	for _, a := range []weave.Address{e.Maker, e.Asset, e.Currency, e.Vault} {
		if len(a) != weave.AddressLength {
			return nil, errors.Wrapf(errors.ErrInvalidModel, "address of %d bytes", len(a))
		}
	}
	raw := make([]byte, EscrowSize)
	binary.LittleEndian.PutUint64(raw[0:8], e.Seed)
	off := 8
	off += copy(raw[off:], e.Maker)
	off += copy(raw[off:], e.Asset)
	off += copy(raw[off:], e.Currency)
	binary.LittleEndian.PutUint64(raw[off:off+8], e.Price)
	off += 8
	off += copy(raw[off:], e.Vault)
	raw[off] = e.Nonce
	raw[off+1] = e.FeePercent
	return raw, nil
}

// Unmarshal reads the layout written by Marshal.
func (e *Escrow) Unmarshal(raw []byte) error {
	if len(raw) != EscrowSize {
		return errors.Wrapf(errors.ErrInvalidModel, "want %d bytes, got %d", EscrowSize, len(raw))
	}
	next := func(n int) []byte {
		b := raw[:n:n]
		raw = raw[n:]
		return b
	}
	addr := func() weave.Address {
		return weave.Address(next(weave.AddressLength)).Clone()
	}
	e.Seed = binary.LittleEndian.Uint64(next(8))
	e.Maker = addr()
	e.Asset = addr()
	e.Currency = addr()
	e.Price = binary.LittleEndian.Uint64(next(8))
	e.Vault = addr()
	e.Nonce = next(1)[0]
	e.FeePercent = next(1)[0]
	return nil
}

// NewBucket returns the bucket holding escrows.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{})
}
