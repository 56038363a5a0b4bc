package utils_test

import (
	"context"
	"testing"

	"github.com/tendermint/tendermint/libs/common"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/store"
	"github.com/iov-one/nftescrow/weavetest"
	"github.com/iov-one/nftescrow/weavetest/assert"
	"github.com/iov-one/nftescrow/x/utils"
)

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		stack weave.Handler
		tx    weave.Tx
		err   *errors.Error
		tags  []common.KVPair
	}{
		"simple call": {
			stack: weavetest.Decorate(&weavetest.Handler{}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/open"}},
			tags:  []common.KVPair{weave.Tag(utils.ActionKey, "escrow/open")},
		},
		"passes through error": {
			stack: weavetest.Decorate(&weavetest.Handler{DeliverErr: errors.ErrHuman}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/open"}},
			err:   errors.ErrHuman,
		},
		"broken message fails early": {
			stack: weavetest.Decorate(&weavetest.Handler{}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Err: errors.ErrInvalidMsg},
			err:   errors.ErrInvalidMsg,
		},
		"tags are additive": {
			stack: weavetest.Decorate(&weavetest.Handler{
				DeliverResult: weave.DeliverResult{Tags: []common.KVPair{weave.Tag("escrow", "abcd")}},
			}, utils.NewActionTagger()),
			tx:   &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/take"}},
			tags: []common.KVPair{weave.Tag("escrow", "abcd"), weave.Tag(utils.ActionKey, "escrow/take")},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			res, err := tc.stack.Deliver(ctx, db, tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("Unexpected error type returned: %v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, len(tc.tags), len(res.Tags))
			for i := range tc.tags {
				assert.Equal(t, string(tc.tags[i].Key), string(res.Tags[i].Key))
				assert.Equal(t, string(tc.tags[i].Value), string(res.Tags[i].Value))
			}
		})
	}
}
