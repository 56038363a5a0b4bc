package escrow

import (
	"github.com/gogo/protobuf/proto"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
)

const bondBucketName = "escrowbond"

// Bond is the storage bond held by an escrow address. It is saved when the
// bond is charged, so Close refunds exactly what was paid even if the
// configuration changed or the address received other funds since.
type Bond struct {
	Currency weave.Address `json:"currency"`
	Amount   uint64        `json:"amount"`
}

var _ orm.Model = (*Bond)(nil)

func (b *Bond) Validate() error {
	if b.Amount == 0 {
		return errors.Field("Amount", errors.ErrInvalidAmount, "must be positive")
	}
	return errors.Field("Currency", b.Currency.Validate(), "")
}

func (b *Bond) Marshal() ([]byte, error) {
	return proto.Marshal(&bondRecord{Currency: b.Currency, Amount: b.Amount})
}

func (b *Bond) Unmarshal(raw []byte) error {
	var rec bondRecord
	if err := proto.Unmarshal(raw, &rec); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	b.Currency = rec.Currency
	b.Amount = rec.Amount
	return nil
}

// bondRecord is the protobuf wire form of Bond.
type bondRecord struct {
	Currency []byte `protobuf:"bytes,1,opt,name=currency,proto3" json:"currency,omitempty"`
	Amount   uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *bondRecord) Reset()         { *m = bondRecord{} }
func (m *bondRecord) String() string { return proto.CompactTextString(m) }
func (*bondRecord) ProtoMessage()    {}

func newBondBucket() orm.ModelBucket {
	return orm.NewModelBucket(bondBucketName, &Bond{})
}
