package app

import (
	amino "github.com/tendermint/go-amino"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/crypto"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x/cash"
	"github.com/iov-one/nftescrow/x/escrow"
	"github.com/iov-one/nftescrow/x/nft"
	"github.com/iov-one/nftescrow/x/sigs"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*weave.Msg)(nil), nil)
	cdc.RegisterConcrete(&cash.SendMsg{}, "cash/send", nil)
	cdc.RegisterConcrete(&nft.TransferMsg{}, "nft/transfer", nil)
	cdc.RegisterConcrete(&escrow.OpenMsg{}, "escrow/open", nil)
	cdc.RegisterConcrete(&escrow.ListMsg{}, "escrow/list", nil)
	cdc.RegisterConcrete(&escrow.TakeMsg{}, "escrow/take", nil)
	cdc.RegisterConcrete(&escrow.CancelMsg{}, "escrow/cancel", nil)
}

// Tx is the transaction envelope accepted by the chain. It carries exactly
// one message and the signatures authorizing it.
type Tx struct {
	Msg        weave.Msg            `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps msg into an unsigned transaction.
func NewTx(msg weave.Msg) *Tx {
	return &Tx{Msg: msg}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot decode tx: %s", err)
	}
	return nil
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "missing message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

// Sign appends a signature of signer for the given chain and sequence.
func (tx *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
