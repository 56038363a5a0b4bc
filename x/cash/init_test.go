package cash

import (
	"encoding/json"
	"testing"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/store"
	"github.com/iov-one/nftescrow/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"currencies": [
			{"id": "cond:test/currency/01", "ticker": "USDC", "decimals": 6}
		],
		"cash": [
			{"owner": "cond:sigs/ed25519/aa", "currency": "cond:test/currency/01", "balance": 1000000}
		]
	}`
	var opts weave.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	usdc := weave.NewCondition("test", "currency", []byte{1}).Address()
	owner := weave.NewCondition("sigs", "ed25519", []byte{0xaa}).Address()
	bal, err := NewController(nil).Balance(db, usdc, owner)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000000), bal)
}

func TestGenesisUnknownCurrency(t *testing.T) {
	const genesis = `{
		"cash": [
			{"owner": "cond:sigs/ed25519/aa", "currency": "cond:test/currency/01", "balance": 1}
		]
	}`
	var opts weave.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, errors.ErrNotFound, err)
}
