package main

import (
	"encoding/hex"
	"flag"

	weave "github.com/iov-one/nftescrow"
)

// flAddress registers a flag accepting any address format understood by
// weave.ParseAddress. The address is empty unless the flag is given.
func flAddress(fl *flag.FlagSet, name, usage string) *weave.Address {
	var a weave.Address
	fl.Var(&a, name, usage)
	return &a
}

// flHex registers a flag holding hex encoded bytes.
func flHex(fl *flag.FlagSet, name, usage string) *[]byte {
	var b flagbyte
	fl.Var(&b, name, usage)
	return (*[]byte)(&b)
}

type flagbyte []byte

func (b flagbyte) String() string {
	return hex.EncodeToString(b)
}

func (b *flagbyte) Set(raw string) error {
	val, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*b = val
	return nil
}
