package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/crypto/ed25519"

	"github.com/iov-one/nftescrow/crypto"
)

const (
	keysDir = "keys"

	// bech32Prefix is the human readable part of bech32 addresses printed
	// by keyaddr.
	bech32Prefix = "escrow"
)

var isKeyName = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,32}$`).MatchString

func keyPath(home, name string) (string, error) {
	if !isKeyName(name) {
		return "", fmt.Errorf("invalid key name %q", name)
	}
	return filepath.Join(home, keysDir, name+".key"), nil
}

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key and store it in the home directory under the given
name. This command fails if a key with that name already exists.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(), "Directory holding the ledger files.")
		nameFl = fl.String("name", "", "Name of the key. Required.")
	)
	fl.Parse(args)

	path, err := keyPath(*homeFl, *nameFl)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cannot create keys directory: %s", err)
	}

	key := crypto.GenPrivKeyEd25519()
	if err := ioutil.WriteFile(path, key.Ed25519, 0600); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the hex and bech32 address associated with a stored private key.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(), "Directory holding the ledger files.")
		nameFl = fl.String("name", "", "Name of the key. Required.")
	)
	fl.Parse(args)

	key, err := loadKey(*homeFl, *nameFl)
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	b32, err := addr.Bech32String(bech32Prefix)
	if err != nil {
		return fmt.Errorf("cannot encode bech32 address: %s", err)
	}
	_, err = fmt.Fprintf(output, "%s\nbech32:%s\n", addr, b32)
	return err
}

// loadKey reads the named private key from home.
func loadKey(home, name string) (*crypto.PrivateKey, error) {
	path, err := keyPath(home, name)
	if err != nil {
		return nil, err
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}
