package weave

import (
	"github.com/iov-one/nftescrow/errors"
)

// derivedMarker is the bit that must be set in the first byte of a derived
// address. Roughly half of all nonces produce a valid derivation.
const derivedMarker = 0x80

// DerivedCondition builds the condition for the given derivation input and
// nonce. It does not check that the result is a valid derivation, use
// IsDerived or DeriveCondition for that.
func DerivedCondition(ext, typ string, seed []byte, nonce uint8) Condition {
	data := make([]byte, 0, len(seed)+1)
	data = append(data, seed...)
	data = append(data, nonce)
	return NewCondition(ext, typ, data)
}

// IsDerived returns true if the condition address lies in the derived half
// of the address space.
func IsDerived(c Condition) bool {
	addr := c.Address()
	return len(addr) > 0 && addr[0]&derivedMarker != 0
}

// DeriveCondition searches for the canonical nonce of a derivation. Nonces
// are tried from 255 down to 0 and the first one that produces a valid
// derived address is returned.
//
// The result is a pure function of (ext, typ, seed). A derived condition has
// no private key, it can only be used as an authority by code that is able
// to reproduce the derivation.
func DeriveCondition(ext, typ string, seed []byte) (Condition, uint8, error) {
	for n := 255; n >= 0; n-- {
		c := DerivedCondition(ext, typ, seed, uint8(n))
		if IsDerived(c) {
			return c, uint8(n), nil
		}
	}
	return nil, 0, errors.Wrapf(errors.ErrInvalidState, "no valid nonce for %s/%s/%X", ext, typ, seed)
}

// VerifyDerivation returns the condition for the given derivation input if
// nonce is its canonical nonce.
func VerifyDerivation(ext, typ string, seed []byte, nonce uint8) (Condition, error) {
	c, canonical, err := DeriveCondition(ext, typ, seed)
	if err != nil {
		return nil, err
	}
	if canonical != nonce {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "nonce %d is not canonical", nonce)
	}
	return c, nil
}
