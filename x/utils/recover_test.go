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

func TestRecovery(t *testing.T) {
	cases := map[string]struct {
		handler weave.Handler
		wantErr *errors.Error
	}{
		"panic in handler is converted": {
			handler: explodingHandler{},
			wantErr: errors.ErrPanic,
		},
		"regular error is kept": {
			handler: &weavetest.Handler{CheckErr: errors.ErrNotFound, DeliverErr: errors.ErrNotFound},
			wantErr: errors.ErrNotFound,
		},
		"success": {
			handler: &weavetest.Handler{},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			_, err := NewRecovery().Check(ctx, db, nil, tc.handler)
			if !tc.wantErr.Is(err) {
				t.Fatalf("check: want %v, got %+v", tc.wantErr, err)
			}
			_, err = NewRecovery().Deliver(ctx, db, nil, tc.handler)
			if !tc.wantErr.Is(err) {
				t.Fatalf("deliver: want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestRecoveryKeepsPanicMessage(t *testing.T) {
	_, err := NewRecovery().Deliver(context.Background(), store.MemStore(), nil, explodingHandler{})
	assert.Contains(t, err.Error(), "escrow record corrupted")
}

type explodingHandler struct{}

func (explodingHandler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	panic("escrow record corrupted")
}

func (explodingHandler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	panic("escrow record corrupted")
}
