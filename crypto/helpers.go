/*
Package crypto holds the ed25519 keys used to sign transactions. A public key
maps to the condition sigs/ed25519/<pubkey>, whose address identifies the
signer everywhere in the ledger.
*/
package crypto

import (
	amino "github.com/tendermint/go-amino"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() weave.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

var cdc = amino.NewCodec()

// PublicKey is a serializable ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// PrivateKey is a serializable ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Signature is a serializable ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// Marshal serializes the key with amino.
func (p *PublicKey) Marshal() ([]byte, error) { return marshal(p) }

// Unmarshal loads the key from its amino representation.
func (p *PublicKey) Unmarshal(raw []byte) error { return unmarshal(raw, p) }

// Marshal serializes the key with amino.
func (p *PrivateKey) Marshal() ([]byte, error) { return marshal(p) }

// Unmarshal loads the key from its amino representation.
func (p *PrivateKey) Unmarshal(raw []byte) error { return unmarshal(raw, p) }

// Marshal serializes the signature with amino.
func (s *Signature) Marshal() ([]byte, error) { return marshal(s) }

// Unmarshal loads the signature from its amino representation.
func (s *Signature) Unmarshal(raw []byte) error { return unmarshal(raw, s) }

func marshal(o interface{}) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrap(err, "amino marshal")
	}
	return raw, nil
}

func unmarshal(raw []byte, o interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, o); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "amino unmarshal: %s", err)
	}
	return nil
}

// Address is a shortcut for Condition().Address()
func (p *PublicKey) Address() weave.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}
