package sigs

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// NextNonce returns the sequence the next signature of signer must carry.
// It is zero for a key that never signed. Clients use it before signing:
//
//   seq, err := sigs.NextNonce(db, key.PublicKey().Address())
func NextNonce(db weave.ReadOnlyKVStore, signer weave.Address) (int64, error) {
	var user UserData
	err := NewBucket().One(db, signer, &user)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "load signer")
	}
	return user.Sequence, nil
}
