package nft

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

const (
	pathTransferMsg = "nft/transfer"

	transferCost int64 = 100
)

var _ weave.Msg = (*TransferMsg)(nil)

// TransferMsg hands an asset over to a new owner.
type TransferMsg struct {
	ID       weave.Address `json:"id"`
	NewOwner weave.Address `json:"new_owner"`
}

// Path returns the routing path for this message
func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *TransferMsg) Validate() error {
	if err := m.ID.Validate(); err != nil {
		return errors.Wrap(err, "id")
	}
	if err := m.NewOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	return nil
}
