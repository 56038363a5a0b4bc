package weavetest

import (
	"context"
	"testing"

	weave "github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/weavetest/assert"
)

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()

	cases := map[string]struct {
		auth      Auth
		wantConds []weave.Condition
	}{
		"no signers": {
			auth:      Auth{},
			wantConds: nil,
		},
		"signer only": {
			auth:      Auth{Signer: a},
			wantConds: []weave.Condition{a},
		},
		"signers only": {
			auth:      Auth{Signers: []weave.Condition{a, b}},
			wantConds: []weave.Condition{a, b},
		},
		"signer is listed last": {
			auth:      Auth{Signer: c, Signers: []weave.Condition{a, b}},
			wantConds: []weave.Condition{a, b, c},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			assert.Equal(t, tc.wantConds, tc.auth.GetConditions(ctx))
			for _, cond := range tc.wantConds {
				if !tc.auth.HasAddress(ctx, cond.Address()) {
					t.Errorf("%s address should be present", cond)
				}
			}
			if tc.auth.HasAddress(ctx, NewCondition().Address()) {
				t.Fatal("random condition must not be present")
			}
		})
	}
}

func TestCtxAuth(t *testing.T) {
	perms := []weave.Condition{NewCondition(), NewCondition()}

	a := CtxAuth{Key: "auth"}
	ctx := a.SetConditions(context.Background(), perms...)
	assert.Equal(t, perms, a.GetConditions(ctx))
	for _, p := range perms {
		if !a.HasAddress(ctx, p.Address()) {
			t.Errorf("%s address should be present", p)
		}
	}

	// a different key does not see them
	other := CtxAuth{Key: "other"}
	assert.Nil(t, other.GetConditions(ctx))
	if other.HasAddress(ctx, perms[0].Address()) {
		t.Fatal("condition leaked to another key")
	}
}

func TestKeyFromNameIsStable(t *testing.T) {
	k1 := KeyFromName("alice").PublicKey().Address()
	k2 := KeyFromName("alice").PublicKey().Address()
	k3 := KeyFromName("bob").PublicKey().Address()
	assert.Equal(t, k1, k2)
	if k1.Equals(k3) {
		t.Fatal("different names gave the same key")
	}
}
