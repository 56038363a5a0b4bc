package cash

import (
	amino "github.com/tendermint/go-amino"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// Messages travel inside amino encoded transactions.
var cdc = amino.NewCodec()

// Ensure we implement the Msg interface
var _ weave.Msg = (*SendMsg)(nil)

const (
	pathSendMsg = "cash/send"

	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves Amount of Currency from the account of Source to the
// account of Destination.
type SendMsg struct {
	Currency    weave.Address `json:"currency"`
	Source      weave.Address `json:"source"`
	Destination weave.Address `json:"destination"`
	Amount      uint64        `json:"amount"`
	Memo        string        `json:"memo,omitempty"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive SendMsg")
	}
	if err := m.Currency.Validate(); err != nil {
		return errors.Wrap(err, "currency")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInvalidInput, "memo too long")
	}
	return nil
}
