package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/crypto"
	"github.com/iov-one/nftescrow/errors"
)

// SignCodeV1 prefixes every message before it is hashed and signed. Bump
// it whenever the layout produced by BuildSignBytes changes.
var SignCodeV1 = []byte{0, 0xE5, 0xC0, 1}

// VerifyTxSignatures verifies every signature attached to tx and returns
// the conditions of the signers, in signature order. The result is empty
// when the transaction is not signed. Each successful verification
// increments the signer sequence in db.
func VerifyTxSignatures(db weave.KVStore, tx SignedTx, chainID string) ([]weave.Condition, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	conds := make([]weave.Condition, len(sigs))
	for i, sig := range sigs {
		if conds[i], err = VerifySignature(db, sig, raw, chainID); err != nil {
			return nil, err
		}
	}
	return conds, nil
}

// VerifySignature verifies a single signature over raw for the given chain.
// The signer account is created on first use.
func VerifySignature(db weave.KVStore, sig *StdSignature, raw []byte, chainID string) (weave.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(raw, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	b := NewBucket()
	user, err := b.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	addr := user.Pubkey.Address()
	if err := b.Put(db, addr, user); err != nil {
		return nil, errors.Wrap(err, "save signer")
	}
	return user.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest of
//
//   SignCodeV1 (4) | len(chainID) (1) | chainID | seq (8, big endian) | raw
//
// A fixed size digest keeps hardware signers able to sign any transaction.
func BuildSignBytes(raw []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrapf(ErrInvalidSequence, "negative sequence %d", seq)
	}
	if !weave.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id %q", chainID)
	}

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(seq))
	h.Write(n[:])
	h.Write(raw)
	return h.Sum(nil), nil
}

// BuildSignBytesTx is BuildSignBytes applied to the sign bytes of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(raw, chainID, seq)
}

// SignTx signs tx for the given chain using sequence seq.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}
