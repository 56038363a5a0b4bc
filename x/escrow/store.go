package escrow

import (
	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
	"github.com/iov-one/nftescrow/x/cash"
)

// Store persists escrow records and manages their storage bond.
type Store struct {
	bucket orm.ModelBucket
	bonds  orm.ModelBucket
	cash   cash.Controller
}

// NewStore returns a store charging bonds through cash.
func NewStore(cashCtrl cash.Controller) Store {
	return Store{
		bucket: NewBucket(),
		bonds:  newBondBucket(),
		cash:   cashCtrl,
	}
}

// Create saves rec under address. If the address was empty, payer funds the
// configured bond, which is held by the escrow address itself. An existing
// record is overwritten and no further bond is taken.
func (s Store) Create(ctx weave.Context, db weave.KVStore, address weave.Address, rec *Escrow, payer weave.Address) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	occupied, err := s.Has(db, address)
	if err != nil {
		return err
	}
	if !occupied {
		if err := s.chargeBond(ctx, db, address, payer); err != nil {
			return errors.Wrap(err, "bond")
		}
	}
	return s.bucket.Put(db, address, rec)
}

func (s Store) chargeBond(ctx weave.Context, db weave.KVStore, address, payer weave.Address) error {
	conf, err := LoadConfig(db)
	if err != nil {
		return err
	}
	if conf.Bond == 0 {
		return nil
	}
	if _, err := s.cash.EnsureAccount(db, conf.BondCurrency, address); err != nil {
		return err
	}
	if err := s.cash.Transfer(ctx, db, conf.BondCurrency, payer, address, conf.Bond); err != nil {
		return err
	}
	return s.bonds.Put(db, address, &Bond{Currency: conf.BondCurrency, Amount: conf.Bond})
}

// Read loads the record stored under address.
func (s Store) Read(db weave.ReadOnlyKVStore, address weave.Address) (*Escrow, error) {
	var e Escrow
	if err := s.bucket.One(db, address, &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", address)
	}
	return &e, nil
}

// Has reports whether a record is stored under address.
func (s Store) Has(db weave.ReadOnlyKVStore, address weave.Address) (bool, error) {
	switch err := s.bucket.Has(db, address); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Close refunds the bond charged when the record was created to refundTo
// and deletes the record. Other funds held by the escrow address stay where
// they are. The escrow authority must be present on ctx for the refund to be
// authorized.
func (s Store) Close(ctx weave.Context, db weave.KVStore, address, refundTo weave.Address) error {
	if err := s.refundBond(ctx, db, address, refundTo); err != nil {
		return errors.Wrap(err, "refund")
	}
	if err := s.bucket.Delete(db, address); err != nil {
		return errors.Wrapf(err, "escrow %s", address)
	}
	return nil
}

func (s Store) refundBond(ctx weave.Context, db weave.KVStore, address, refundTo weave.Address) error {
	var bond Bond
	switch err := s.bonds.One(db, address, &bond); {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return err
	}
	if _, err := s.cash.EnsureAccount(db, bond.Currency, refundTo); err != nil {
		return err
	}
	if err := s.cash.Transfer(ctx, db, bond.Currency, address, refundTo, bond.Amount); err != nil {
		return err
	}
	return s.bonds.Delete(db, address)
}
