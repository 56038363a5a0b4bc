package escrow

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

const (
	pathOpenMsg   = "escrow/open"
	pathListMsg   = "escrow/list"
	pathTakeMsg   = "escrow/take"
	pathCancelMsg = "escrow/cancel"
)

var (
	_ weave.Msg = (*OpenMsg)(nil)
	_ weave.Msg = (*ListMsg)(nil)
	_ weave.Msg = (*TakeMsg)(nil)
	_ weave.Msg = (*CancelMsg)(nil)
)

// OpenMsg opens an escrow under Seed offering Asset for Price units of
// Currency. Maker defaults to the main signer.
type OpenMsg struct {
	Seed     uint64        `json:"seed"`
	Maker    weave.Address `json:"maker,omitempty"`
	Currency weave.Address `json:"currency"`
	Asset    weave.Address `json:"asset"`
	Price    uint64        `json:"price"`
}

func (OpenMsg) Path() string {
	return pathOpenMsg
}

func (m *OpenMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *OpenMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *OpenMsg) Validate() error {
	return errors.Append(
		validateOptional("Maker", m.Maker),
		errors.Field("Currency", m.Currency.Validate(), ""),
		errors.Field("Asset", m.Asset.Validate(), ""),
		priceErr(m.Price),
	)
}

func priceErr(price uint64) error {
	if price == 0 {
		return errors.Field("Price", errors.ErrInvalidAmount, "must be positive")
	}
	return nil
}

// ListMsg moves Asset into the escrow opened under Seed.
type ListMsg struct {
	Seed  uint64        `json:"seed"`
	Maker weave.Address `json:"maker,omitempty"`
	Asset weave.Address `json:"asset"`
}

func (ListMsg) Path() string {
	return pathListMsg
}

func (m *ListMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ListMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *ListMsg) Validate() error {
	return errors.Append(
		validateOptional("Maker", m.Maker),
		errors.Field("Asset", m.Asset.Validate(), ""),
	)
}

// TakeMsg buys the asset of the escrow opened under Seed. If Address is
// set, it must be the address derived from Seed.
type TakeMsg struct {
	Seed    uint64        `json:"seed"`
	Taker   weave.Address `json:"taker,omitempty"`
	Address weave.Address `json:"address,omitempty"`
}

func (TakeMsg) Path() string {
	return pathTakeMsg
}

func (m *TakeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *TakeMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *TakeMsg) Validate() error {
	return errors.Append(
		validateOptional("Taker", m.Taker),
		validateOptional("Address", m.Address),
	)
}

// CancelMsg closes the escrow opened under Seed and returns the asset to
// its maker.
type CancelMsg struct {
	Seed    uint64        `json:"seed"`
	Maker   weave.Address `json:"maker,omitempty"`
	Address weave.Address `json:"address,omitempty"`
}

func (CancelMsg) Path() string {
	return pathCancelMsg
}

func (m *CancelMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CancelMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *CancelMsg) Validate() error {
	return errors.Append(
		validateOptional("Maker", m.Maker),
		validateOptional("Address", m.Address),
	)
}

func validateOptional(field string, a weave.Address) error {
	if len(a) == 0 {
		return nil
	}
	return errors.Field(field, a.Validate(), "")
}
