package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/nftescrow/app"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a new ledger in the home directory from a genesis file. A default
config.toml is written unless one exists. The chain ID and the escrow bond are
taken from config.toml when the genesis file does not set them.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", defaultHome(), "Directory holding the ledger files.")
		genesisFl = fl.String("genesis", "genesis.json", "Path to the genesis file.")
	)
	fl.Parse(args)

	if err := os.MkdirAll(*homeFl, 0700); err != nil {
		return fmt.Errorf("cannot create home directory: %s", err)
	}
	if err := writeConfig(*homeFl, DefaultConfig()); err != nil {
		return err
	}
	cfg, err := LoadConfig(*homeFl)
	if err != nil {
		return err
	}
	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}
	if err := prepareGenesis(gen, cfg); err != nil {
		return err
	}

	n, err := openNodeFromConfig(*homeFl, cfg)
	if err != nil {
		return err
	}
	defer n.Close()

	if n.Height() != 0 {
		return fmt.Errorf("ledger in %s is already initialized at height %d", *homeFl, n.Height())
	}
	if err := n.Init(gen); err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "initialized %s at height %d\n", gen.ChainID, n.Height())
	return err
}

// newLogger writes to stderr so that command output stays parsable.
func newLogger(cfg Config) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	logger, err := flags.ParseLogLevel(cfg.LogLevel, logger, "info")
	if err != nil {
		return nil, fmt.Errorf("log_level: %s", err)
	}
	return logger.With("module", "escrowd"), nil
}

// openNodeFromConfig opens the ledger with a logger configured from cfg.
func openNodeFromConfig(home string, cfg Config) (*node, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return openNode(home, cfg, logger)
}
