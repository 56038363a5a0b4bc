package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/store"
	"github.com/iov-one/nftescrow/weavetest"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	derr := errors.ErrInsufficientAmount.New("not enough")

	failing := func() *weavetest.Handler {
		return &weavetest.Handler{WriteKey: nk, WriteValue: nv, CheckErr: derr, DeliverErr: derr}
	}

	cases := map[string]struct {
		save    weave.Decorator
		handler weave.Handler
		check   bool
		wantErr bool
		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled keeps partial writes": {
			save:    NewSavepoint(),
			handler: failing(),
			check:   true,
			wantErr: true,
			written: [][]byte{ok, nk},
		},
		"check savepoint rolls back": {
			save:    NewSavepoint().OnCheck(),
			handler: failing(),
			check:   true,
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint rolls back": {
			save:    NewSavepoint().OnDeliver(),
			handler: failing(),
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: failing(),
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: failing(),
			wantErr: true,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &weavetest.Handler{WriteKey: nk, WriteValue: nv},
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			kv.Set(ok, ov)

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				assert.True(t, kv.Has(k), "%x", k)
			}
			for _, k := range tc.missing {
				assert.False(t, kv.Has(k), "%x", k)
			}
		})
	}
}
