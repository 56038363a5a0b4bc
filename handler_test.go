package weave

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/nftescrow/weavetest/assert"
)

func TestReadOptions(t *testing.T) {
	type bond struct {
		Bond uint64 `json:"bond"`
	}
	cases := map[string]struct {
		json    string
		want    bond
		wantErr bool
	}{
		"happy path": {
			json: `{"escrow": {"bond": 7}}`,
			want: bond{Bond: 7},
		},
		"missing key is a noop": {
			json: `{"cash": []}`,
		},
		"wrong value": {
			json:    `{"escrow": {"bond": "seven"}}`,
			wantErr: true,
		},
		"wrong body": {
			json:    `{"escrow": [1, 2]}`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))

			var got bond
			err := o.ReadOptions("escrow", &got)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want an error")
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
