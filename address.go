package weave

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/nftescrow/crypto/bech32"
	"github.com/iov-one/nftescrow/errors"
)

// AddressLength is the size of every address on the ledger: signers,
// assets, currencies, accounts and escrow records alike.
const AddressLength = 32

// Address is the sha256 digest of a Condition.
type Address []byte

// NewAddress hashes data into an address. Nil data gives a nil address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return sum[:AddressLength]
}

func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that does not share memory with a.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address(nil), a...)
}

// String returns the address as upper case hex, or "(nil)".
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32String encodes the address with the human readable prefix hrp.
func (a Address) Bech32String(hrp string) (string, error) {
	return bech32.Encode(hrp, a)
}

func (a Address) Validate() error {
	switch len(a) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "address")
	case AddressLength:
		return nil
	default:
		return errors.ErrInvalidInput.Newf("address: %v", a)
	}
}

// MarshalJSON encodes the address as a hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts every format of ParseAddress. An empty string
// gives a nil address.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if enc == "" {
		*a = nil
		return nil
	}
	return a.Set(enc)
}

// Set implements flag.Value using ParseAddress.
func (a *Address) Set(enc string) error {
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes an address written as
//
//   <hex>                    plain hex, the default
//   hex:<hex>
//   bech32:<bech32>
//   cond:<ext>/<type>/<hex>  the address of that condition
func ParseAddress(enc string) (Address, error) {
	format, body := "hex", enc
	if i := strings.IndexByte(enc, ':'); i >= 0 {
		format, body = enc[:i], enc[i+1:]
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, "cannot decode hex")
		}
		addr = raw
	case "bech32":
		_, raw, err := bech32.Decode(body)
		if err != nil {
			return nil, err
		}
		addr = raw
	case "cond":
		c, err := parseCondition(body)
		if err != nil {
			return nil, err
		}
		addr = c.Address()
	default:
		return nil, errors.ErrInvalidType.Newf("unknown format %q", format)
	}
	return addr, addr.Validate()
}

func parseCondition(enc string) (Condition, error) {
	parts := strings.Split(enc, "/")
	if len(parts) != 3 {
		return nil, errors.ErrInvalidInput.New("invalid condition format")
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.ErrInvalidInput.Newf("malformed condition data: %s", err)
	}
	c := NewCondition(parts[0], parts[1], data)
	return c, c.Validate()
}
