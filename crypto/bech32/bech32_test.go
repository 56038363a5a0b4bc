package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/nftescrow/errors"
)

func TestDecodeKnownVector(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	hrp, payload, err := Decode("tiov1w3jhxapdwpshjmr0v9jqymqq4y")
	if err != nil {
		t.Fatalf("decode: %+v", err)
	}
	want, _ := hex.DecodeString("746573742d7061796c6f6164")
	if hrp != "tiov" || !bytes.Equal(want, payload) {
		t.Fatalf("got %q %X", hrp, payload)
	}
}

func TestRoundTrip(t *testing.T) {
	cases := map[string][]byte{
		"escrow address": bytes.Repeat([]byte{0xE5}, 32),
		"zero address":   make([]byte, 32),
		"short payload":  []byte("escrow"),
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			enc, err := Encode("escrow", payload)
			if err != nil {
				t.Fatalf("encode: %+v", err)
			}
			hrp, got, err := Decode(enc)
			if err != nil {
				t.Fatalf("decode: %+v", err)
			}
			if hrp != "escrow" || !bytes.Equal(payload, got) {
				t.Fatalf("got %q %X", hrp, got)
			}
		})
	}
}

func TestDecodeFailures(t *testing.T) {
	cases := map[string]string{
		"broken checksum": "tiov1w3jhxapdwpshjmr0v9jqymqq4z",
		"no separator":    "tiovw3jhxapdwpshjmr0v9jqymqq4y",
		"empty":           "",
	}
	for name, enc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := Decode(enc); !errors.ErrInvalidInput.Is(err) {
				t.Fatalf("want invalid input, got %+v", err)
			}
		})
	}
}
