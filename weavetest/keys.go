package weavetest

import (
	"crypto/sha256"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/crypto"
)

// NewKey returns a fresh random signing key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh random key.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}

// KeyFromName returns a key deterministically derived from name. Use it when
// a test needs stable addresses across runs.
func KeyFromName(name string) *crypto.PrivateKey {
	seed := sha256.Sum256([]byte(name))
	return crypto.PrivKeyEd25519FromSeed(seed[:])
}
