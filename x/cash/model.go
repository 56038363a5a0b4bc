package cash

import (
	"regexp"

	"github.com/gogo/protobuf/proto"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
)

const (
	// CurrencyBucketName is where registered currencies are stored.
	CurrencyBucketName = "currency"
	// AccountBucketName is where account balances are stored.
	AccountBucketName = "account"

	maxDecimals = 18
)

var isTicker = regexp.MustCompile(`^[A-Z]{3,6}$`).MatchString

// Currency is a fungible asset that accounts can hold.
type Currency struct {
	ID       weave.Address `json:"id"`
	Ticker   string        `json:"ticker"`
	Decimals uint8         `json:"decimals"`
}

var _ orm.Model = (*Currency)(nil)

func (c *Currency) Marshal() ([]byte, error) {
	return proto.Marshal(&currencyRecord{ID: c.ID, Ticker: c.Ticker, Decimals: uint32(c.Decimals)})
}

func (c *Currency) Unmarshal(raw []byte) error {
	var rec currencyRecord
	if err := proto.Unmarshal(raw, &rec); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	if rec.Decimals > maxDecimals {
		return errors.Wrapf(errors.ErrInvalidModel, "%d decimals", rec.Decimals)
	}
	*c = Currency{ID: rec.ID, Ticker: rec.Ticker, Decimals: uint8(rec.Decimals)}
	return nil
}

// Validate ensures the currency is well formed.
func (c *Currency) Validate() error {
	if err := c.ID.Validate(); err != nil {
		return errors.Wrap(err, "id")
	}
	if !isTicker(c.Ticker) {
		return errors.Wrapf(ErrInvalidCurrency, "ticker %q", c.Ticker)
	}
	if c.Decimals > maxDecimals {
		return errors.Wrapf(ErrInvalidCurrency, "%d decimals", c.Decimals)
	}
	return nil
}

// Account holds the balance of a single owner in a single currency.
type Account struct {
	Owner    weave.Address `json:"owner"`
	Currency weave.Address `json:"currency"`
	Balance  uint64        `json:"balance"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return proto.Marshal(&accountRecord{Owner: a.Owner, Currency: a.Currency, Balance: a.Balance})
}

func (a *Account) Unmarshal(raw []byte) error {
	var rec accountRecord
	if err := proto.Unmarshal(raw, &rec); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	*a = Account{Owner: rec.Owner, Currency: rec.Currency, Balance: rec.Balance}
	return nil
}

// Validate ensures the account references an owner and a currency.
func (a *Account) Validate() error {
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := a.Currency.Validate(); err != nil {
		return errors.Wrap(err, "currency")
	}
	return nil
}

// Address returns the key this account is stored under.
func (a *Account) Address() weave.Address {
	return AccountAddress(a.Currency, a.Owner)
}

// AccountAddress returns the address of the account holding currency for
// owner. It is a pure function of both, so it can be computed before the
// account exists.
func AccountAddress(currency, owner weave.Address) weave.Address {
	data := make([]byte, 0, len(currency)+len(owner))
	data = append(data, currency...)
	data = append(data, owner...)
	return weave.NewCondition("cash", "account", data).Address()
}

// NewCurrencyBucket returns the bucket holding registered currencies.
func NewCurrencyBucket() orm.ModelBucket {
	return orm.NewModelBucket(CurrencyBucketName, &Currency{})
}

// NewAccountBucket returns the bucket holding accounts, keyed by
// AccountAddress.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket(AccountBucketName, &Account{})
}

// The models are stored in their protobuf wire form. The record types carry
// the field numbers and must not change them.

type currencyRecord struct {
	ID       []byte `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Ticker   string `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Decimals uint32 `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals,omitempty"`
}

func (m *currencyRecord) Reset()         { *m = currencyRecord{} }
func (m *currencyRecord) String() string { return proto.CompactTextString(m) }
func (*currencyRecord) ProtoMessage()    {}

type accountRecord struct {
	Owner    []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Currency []byte `protobuf:"bytes,2,opt,name=currency,proto3" json:"currency,omitempty"`
	Balance  uint64 `protobuf:"varint,3,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (m *accountRecord) Reset()         { *m = accountRecord{} }
func (m *accountRecord) String() string { return proto.CompactTextString(m) }
func (*accountRecord) ProtoMessage()    {}
