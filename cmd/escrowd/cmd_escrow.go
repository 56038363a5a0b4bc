package main

import (
	"flag"
	"fmt"
	"io"

	abci "github.com/tendermint/tendermint/abci/types"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/app"
	escrowapp "github.com/iov-one/nftescrow/cmd/escrowd/app"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x/escrow"
	"github.com/iov-one/nftescrow/x/sigs"
)

// txFlags are the flags shared by all commands submitting a transaction.
type txFlags struct {
	home *string
	key  *string
	seed *uint64
}

func newTxFlags(fl *flag.FlagSet) txFlags {
	return txFlags{
		home: fl.String("home", defaultHome(), "Directory holding the ledger files."),
		key:  fl.String("key", "", "Name of the key signing the transaction. Required."),
		seed: fl.Uint64("seed", 0, "Seed identifying the escrow."),
	}
}

func cmdOpen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Open an escrow offering an asset for a price. The signing key becomes the
maker. Opening a seed that is already in use overwrites its terms.
`)
		fl.PrintDefaults()
	}
	var (
		txFl       = newTxFlags(fl)
		currencyFl = flAddress(fl, "currency", "Currency the price is paid in. Required.")
		assetFl    = flAddress(fl, "asset", "Asset offered. Required.")
		priceFl    = fl.Uint64("price", 0, "Price in the smallest unit of the currency.")
	)
	fl.Parse(args)

	msg := &escrow.OpenMsg{
		Seed:     *txFl.seed,
		Currency: *currencyFl,
		Asset:    *assetFl,
		Price:    *priceFl,
	}
	return submit(output, txFl, msg)
}

func cmdList(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Move the asset into an opened escrow, making it available to takers. Only the
maker can list.
`)
		fl.PrintDefaults()
	}
	var (
		txFl    = newTxFlags(fl)
		assetFl = flAddress(fl, "asset", "Asset stored in the escrow. Required.")
	)
	fl.Parse(args)

	msg := &escrow.ListMsg{
		Seed:  *txFl.seed,
		Asset: *assetFl,
	}
	return submit(output, txFl, msg)
}

func cmdTake(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Pay the price of a listed escrow and receive its asset. The signing key pays.
`)
		fl.PrintDefaults()
	}
	var (
		txFl      = newTxFlags(fl)
		addressFl = flAddress(fl, "address", "Expected escrow address. Optional.")
	)
	fl.Parse(args)

	msg := &escrow.TakeMsg{
		Seed:    *txFl.seed,
		Address: *addressFl,
	}
	return submit(output, txFl, msg)
}

func cmdCancel(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Return the asset of a listed escrow to its maker and close it. Only the maker
can cancel.
`)
		fl.PrintDefaults()
	}
	var (
		txFl      = newTxFlags(fl)
		addressFl = flAddress(fl, "address", "Expected escrow address. Optional.")
	)
	fl.Parse(args)

	msg := &escrow.CancelMsg{
		Seed:    *txFl.seed,
		Address: *addressFl,
	}
	return submit(output, txFl, msg)
}

// submit signs msg with the key named in flags and applies it to the
// ledger as a block of its own.
func submit(output io.Writer, fl txFlags, msg weave.Msg) error {
	key, err := loadKey(*fl.home, *fl.key)
	if err != nil {
		return err
	}
	cfg, err := LoadConfig(*fl.home)
	if err != nil {
		return err
	}
	n, err := openNodeFromConfig(*fl.home, cfg)
	if err != nil {
		return err
	}
	defer n.Close()
	if err := n.requireInitialized(); err != nil {
		return err
	}

	seq, err := nextSequence(n.Ledger, key.PublicKey().Address())
	if err != nil {
		return err
	}
	tx := escrowapp.NewTx(msg)
	if err := tx.Sign(key, n.ChainID(), seq); err != nil {
		return err
	}
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal tx")
	}
	return printResult(output, n.Apply(raw), n.Height())
}

// nextSequence returns the sequence the next signature of signer must
// carry.
func nextSequence(l *app.Ledger, signer weave.Address) (int64, error) {
	res := l.Query("/auth", signer)
	if res.Code != errors.SuccessABCICode {
		return 0, fmt.Errorf("query sequence: %s", res.Log)
	}
	var user sigs.UserData
	if err := app.UnmarshalOneResult(res.Value, &user); err != nil {
		return 0, err
	}
	return user.Sequence, nil
}

func printResult(output io.Writer, res abci.ResponseDeliverTx, height int64) error {
	if res.Code != errors.SuccessABCICode {
		return fmt.Errorf("transaction failed with code %d: %s", res.Code, res.Log)
	}
	fmt.Fprintf(output, "height: %d\n", height)
	if len(res.Data) > 0 {
		fmt.Fprintf(output, "data: %X\n", res.Data)
	}
	for _, t := range res.Tags {
		fmt.Fprintf(output, "%s: %s\n", t.Key, t.Value)
	}
	return nil
}
